package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"lavender_breeze/internal/domain/models"
	"lavender_breeze/internal/lib/ident"
	catalog "lavender_breeze/internal/services/catalog_service"
	"lavender_breeze/internal/transport/http/dto"
	"lavender_breeze/internal/transport/http/views"

	"github.com/labstack/echo/v4"
)

const adminExhibitions = "/admin/exhibitions"

// trail resolves the nested admin address. A GET on a non-canonical address
// is redirected; done reports that the response is already written. Writes
// proceed on whatever address they arrived at.
func (r *Routers) trail(c echo.Context) (t catalog.Trail, done bool, err error) {
	segs := catalog.Segments{
		Exhibition: c.Param("id"),
		Room:       c.Param("roomId"),
	}
	switch route := c.Path(); {
	case strings.Contains(route, "/posts/:itemId"):
		segs.Post = c.Param("itemId")
	case strings.Contains(route, "/gallery/:itemId"):
		segs.Item = c.Param("itemId")
	}

	t, err = r.Catalog.ResolveTrail(c.Request().Context(), segs)
	if err != nil {
		return t, true, notFound(err)
	}

	if t.Redirect && c.Request().Method == http.MethodGet {
		return t, true, c.Redirect(http.StatusFound, canonicalPath(c.Path(), t.Canonical))
	}

	return t, false, nil
}

// canonicalPath fills the route template with canonical segments.
func canonicalPath(route string, s catalog.Segments) string {
	item := s.Post
	if item == "" {
		item = s.Item
	}

	return strings.NewReplacer(
		":id", url.PathEscape(s.Exhibition),
		":roomId", url.PathEscape(s.Room),
		":itemId", item,
	).Replace(route)
}

func exhibitionAdminPath(e models.Exhibition) string {
	return adminExhibitions + "/" + url.PathEscape(ident.SegmentOf(e))
}

func roomAdminPath(e models.Exhibition, room models.Room) string {
	return exhibitionAdminPath(e) + "/rooms/" + url.PathEscape(ident.SegmentOf(room))
}

// formFailure re-renders a form with the reason above it, or passes the
// error on when it is not the editor's to fix.
func formFailure(c echo.Context, err error, data views.FormData) error {
	msg, ok := formMessage(err)
	if !ok {
		return err
	}

	data.Error = msg
	return RenderStatus(c, http.StatusUnprocessableEntity, views.Form(data))
}

// Exhibitions

func (r *Routers) AdminExhibitions(c echo.Context) error {
	exhibitions, err := r.Exhibitions.ListExhibitions(c.Request().Context())
	if err != nil {
		return err
	}

	rows := make([]views.Row, 0, len(exhibitions))
	for _, e := range exhibitions {
		rows = append(rows, views.Row{
			Href:     exhibitionAdminPath(e),
			Title:    e.Title,
			Subtitle: str(e.Slug),
			Image:    str(e.CoverImage),
			Order:    orderLabel(e.Order),
		})
	}

	return Render(c, views.List(views.ListData{
		Meta:    meta(c, "Exhibitions"),
		Heading: "Exhibitions",
		NewHref: adminExhibitions + "/new",
		Links:   []views.Link{{Label: "Export catalogue", Href: adminExhibitions + "/export.xlsx"}},
		Rows:    rows,
	}))
}

func (r *Routers) NewExhibition(c echo.Context) error {
	return Render(c, views.Form(exhibitionFormData(c, dto.ExhibitionForm{}, nil)))
}

func (r *Routers) CreateExhibition(c echo.Context) error {
	var form dto.ExhibitionForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}
	form.Cover = optionalFile(c, "cover")

	if err := c.Validate(form); err != nil {
		return formFailure(c, err, exhibitionFormData(c, form, nil))
	}

	e, err := r.Exhibitions.CreateExhibition(c.Request().Context(), form)
	if err != nil {
		return formFailure(c, err, exhibitionFormData(c, form, nil))
	}

	return c.Redirect(http.StatusSeeOther, exhibitionAdminPath(e))
}

func (r *Routers) EditExhibition(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	return Render(c, views.Form(exhibitionFormData(c, exhibitionForm(t.Exhibition), &t.Exhibition)))
}

func (r *Routers) UpdateExhibition(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	var form dto.ExhibitionForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}
	form.Cover = optionalFile(c, "cover")

	if err := c.Validate(form); err != nil {
		return formFailure(c, err, exhibitionFormData(c, form, &t.Exhibition))
	}

	e, err := r.Exhibitions.UpdateExhibition(c.Request().Context(), t.Exhibition, form)
	if err != nil {
		return formFailure(c, err, exhibitionFormData(c, form, &t.Exhibition))
	}

	return c.Redirect(http.StatusSeeOther, exhibitionAdminPath(e))
}

// DeleteExhibition removes the exhibition with its rooms and their content.
func (r *Routers) DeleteExhibition(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	if err := r.Exhibitions.DeleteExhibition(c.Request().Context(), t.Exhibition.ID); err != nil {
		return notFound(err)
	}

	return c.Redirect(http.StatusSeeOther, adminExhibitions)
}

func exhibitionForm(e models.Exhibition) dto.ExhibitionForm {
	return dto.ExhibitionForm{
		Title:       e.Title,
		Slug:        str(e.Slug),
		Description: str(e.Description),
		Order:       orderValue(e.Order),
	}
}

func exhibitionFormData(c echo.Context, form dto.ExhibitionForm, current *models.Exhibition) views.FormData {
	data := views.FormData{
		Meta:    meta(c, "New exhibition"),
		Heading: "New exhibition",
		Action:  adminExhibitions + "/new",
		Fields: []views.Field{
			{Name: "title", Label: "Title", Kind: views.FieldText, Value: form.Title, Required: true},
			slugField(form.Slug),
			{Name: "description", Label: "Description", Kind: views.FieldTextarea, Value: form.Description},
			orderField(form.Order),
			{Name: "cover", Label: "Cover image", Kind: views.FieldFile},
		},
	}

	if current != nil {
		path := exhibitionAdminPath(*current)
		data.Meta = meta(c, current.Title)
		data.Heading = current.Title
		data.Action = path
		data.DeleteAction = path + "/delete"
		data.Fields[4].Preview = str(current.CoverImage)
		data.Links = []views.Link{{Label: "Rooms", Href: path + "/rooms"}}
	}

	return data
}

// Rooms

func (r *Routers) AdminRooms(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	rooms, err := r.Rooms.ListRooms(c.Request().Context(), t.Exhibition.ID)
	if err != nil {
		return err
	}

	rows := make([]views.Row, 0, len(rooms))
	for _, room := range rooms {
		rows = append(rows, views.Row{
			Href:     roomAdminPath(t.Exhibition, room),
			Title:    room.DisplayTitle(),
			Subtitle: roomTypeLabel(room),
			Image:    str(room.CoverImageURL),
			Order:    orderLabel(room.Order),
		})
	}

	base := exhibitionAdminPath(t.Exhibition)
	return Render(c, views.List(views.ListData{
		Meta:    meta(c, "Rooms"),
		Heading: t.Exhibition.Title + ": rooms",
		NewHref: base + "/rooms/new",
		Links:   []views.Link{{Label: "Exhibition", Href: base}},
		Rows:    rows,
	}))
}

func (r *Routers) NewRoom(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	return Render(c, views.Form(roomFormData(c, t.Exhibition, dto.RoomForm{}, nil)))
}

func (r *Routers) CreateRoom(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	var form dto.RoomForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}
	form.Cover = optionalFile(c, "cover")

	if err := c.Validate(form); err != nil {
		return formFailure(c, err, roomFormData(c, t.Exhibition, form, nil))
	}

	room, err := r.Rooms.CreateRoom(c.Request().Context(), t.Exhibition.ID, form)
	if err != nil {
		return formFailure(c, err, roomFormData(c, t.Exhibition, form, nil))
	}

	return c.Redirect(http.StatusSeeOther, roomAdminPath(t.Exhibition, room))
}

func (r *Routers) EditRoom(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	return Render(c, views.Form(roomFormData(c, t.Exhibition, roomForm(*t.Room), t.Room)))
}

func (r *Routers) UpdateRoom(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	var form dto.RoomForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}
	form.Cover = optionalFile(c, "cover")

	if err := c.Validate(form); err != nil {
		return formFailure(c, err, roomFormData(c, t.Exhibition, form, t.Room))
	}

	room, err := r.Rooms.UpdateRoom(c.Request().Context(), *t.Room, form)
	if err != nil {
		return formFailure(c, err, roomFormData(c, t.Exhibition, form, t.Room))
	}

	return c.Redirect(http.StatusSeeOther, roomAdminPath(t.Exhibition, room))
}

func (r *Routers) DeleteRoom(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	if err := r.Rooms.DeleteRoom(c.Request().Context(), t.Room.ID); err != nil {
		return notFound(err)
	}

	return c.Redirect(http.StatusSeeOther, exhibitionAdminPath(t.Exhibition)+"/rooms")
}

func roomForm(room models.Room) dto.RoomForm {
	form := dto.RoomForm{
		Title:       room.Title,
		Slug:        str(room.Slug),
		Subtitle:    str(room.Subtitle),
		Description: str(room.Description),
		Order:       orderValue(room.Order),
	}
	if room.Type != nil {
		form.Type = string(*room.Type)
	}

	return form
}

func roomFormData(c echo.Context, e models.Exhibition, form dto.RoomForm, current *models.Room) views.FormData {
	base := exhibitionAdminPath(e) + "/rooms"

	data := views.FormData{
		Meta:    meta(c, "New room"),
		Heading: "New room in " + e.Title,
		Action:  base + "/new",
		Fields: []views.Field{
			{Name: "title", Label: "Title", Kind: views.FieldText, Value: form.Title, Required: true},
			slugField(form.Slug),
			{Name: "subtitle", Label: "Subtitle", Kind: views.FieldText, Value: form.Subtitle},
			{Name: "description", Label: "Description", Kind: views.FieldTextarea, Value: form.Description},
			orderField(form.Order),
			{
				Name:  "type",
				Label: "Type",
				Kind:  views.FieldSelect,
				Options: []views.Option{
					{Value: string(models.RoomTypeText), Label: "Text (posts)", Selected: form.Type != string(models.RoomTypeImage)},
					{Value: string(models.RoomTypeImage), Label: "Image (gallery)", Selected: form.Type == string(models.RoomTypeImage)},
				},
			},
			{Name: "cover", Label: "Cover image", Kind: views.FieldFile},
		},
		Links: []views.Link{{Label: "Rooms", Href: base}},
	}

	if current != nil {
		path := roomAdminPath(e, *current)
		data.Meta = meta(c, current.DisplayTitle())
		data.Heading = current.DisplayTitle()
		data.Action = path
		data.DeleteAction = path + "/delete"
		data.Fields[6].Preview = str(current.CoverImageURL)
		if current.IsImage() {
			data.Links = append(data.Links, views.Link{Label: "Gallery", Href: path + "/gallery"})
		} else {
			data.Links = append(data.Links, views.Link{Label: "Posts", Href: path + "/posts"})
		}
	}

	return data
}

func roomTypeLabel(room models.Room) string {
	if room.IsImage() {
		return "image"
	}

	return "text"
}

// Posts

func (r *Routers) AdminPosts(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	posts, err := r.Posts.ListPosts(c.Request().Context(), t.Room.ID)
	if err != nil {
		return err
	}

	base := roomAdminPath(t.Exhibition, *t.Room)
	rows := make([]views.Row, 0, len(posts))
	for _, post := range posts {
		rows = append(rows, views.Row{
			Href:     base + "/posts/" + post.ID.String(),
			Title:    post.Title,
			Subtitle: str(post.Subtitle),
			Image:    str(post.Thumbnail),
			Order:    orderLabel(post.Order),
		})
	}

	return Render(c, views.List(views.ListData{
		Meta:    meta(c, "Posts"),
		Heading: t.Room.DisplayTitle() + ": posts",
		NewHref: base + "/posts/new",
		Links:   []views.Link{{Label: "Room", Href: base}},
		Rows:    rows,
	}))
}

func (r *Routers) NewPost(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	return Render(c, views.Form(postFormData(c, t, dto.PostForm{}, nil)))
}

func (r *Routers) CreatePost(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	var form dto.PostForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}
	form.Thumbnail = optionalFile(c, "thumbnail")

	if err := c.Validate(form); err != nil {
		return formFailure(c, err, postFormData(c, t, form, nil))
	}

	post, err := r.Posts.CreatePost(c.Request().Context(), t.Room.ID, form)
	if err != nil {
		return formFailure(c, err, postFormData(c, t, form, nil))
	}

	return c.Redirect(http.StatusSeeOther, roomAdminPath(t.Exhibition, *t.Room)+"/posts/"+post.ID.String())
}

func (r *Routers) EditPost(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	return Render(c, views.Form(postFormData(c, t, postForm(*t.Post), t.Post)))
}

func (r *Routers) UpdatePost(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	var form dto.PostForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}
	form.Thumbnail = optionalFile(c, "thumbnail")

	if err := c.Validate(form); err != nil {
		return formFailure(c, err, postFormData(c, t, form, t.Post))
	}

	post, err := r.Posts.UpdatePost(c.Request().Context(), *t.Post, form)
	if err != nil {
		return formFailure(c, err, postFormData(c, t, form, t.Post))
	}

	return c.Redirect(http.StatusSeeOther, roomAdminPath(t.Exhibition, *t.Room)+"/posts/"+post.ID.String())
}

func (r *Routers) DeletePost(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	if err := r.Posts.DeletePost(c.Request().Context(), t.Post.ID); err != nil {
		return notFound(err)
	}

	return c.Redirect(http.StatusSeeOther, roomAdminPath(t.Exhibition, *t.Room)+"/posts")
}

func postForm(post models.Post) dto.PostForm {
	return dto.PostForm{
		Title:    post.Title,
		Subtitle: str(post.Subtitle),
		Content:  str(post.Content),
		Order:    orderValue(post.Order),
	}
}

func postFormData(c echo.Context, t catalog.Trail, form dto.PostForm, current *models.Post) views.FormData {
	base := roomAdminPath(t.Exhibition, *t.Room) + "/posts"

	data := views.FormData{
		Meta:    meta(c, "New post"),
		Heading: "New post in " + t.Room.DisplayTitle(),
		Action:  base + "/new",
		Fields: []views.Field{
			{Name: "title", Label: "Title", Kind: views.FieldText, Value: form.Title, Required: true},
			{Name: "subtitle", Label: "Subtitle", Kind: views.FieldText, Value: form.Subtitle},
			{Name: "content", Label: "Content", Kind: views.FieldTextarea, Value: form.Content, Hint: "Blank lines separate paragraphs."},
			orderField(form.Order),
			{Name: "thumbnail", Label: "Thumbnail", Kind: views.FieldFile},
		},
		Links: []views.Link{{Label: "Posts", Href: base}},
	}

	if current != nil {
		path := base + "/" + current.ID.String()
		data.Meta = meta(c, current.Title)
		data.Heading = current.Title
		data.Action = path
		data.DeleteAction = path + "/delete"
		data.Fields[4].Preview = str(current.Thumbnail)
		data.Links = append(data.Links, views.Link{Label: "View", Href: "/post/" + current.ID.String()})
	}

	return data
}

// Gallery

func (r *Routers) AdminGallery(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	items, err := r.Gallery.ListGalleryItems(c.Request().Context(), t.Room.ID)
	if err != nil {
		return err
	}

	base := roomAdminPath(t.Exhibition, *t.Room)
	rows := make([]views.Row, 0, len(items))
	for _, item := range items {
		title := str(item.Caption)
		if title == "" {
			title = "Untitled"
		}
		rows = append(rows, views.Row{
			Href:  base + "/gallery/" + item.ID.String(),
			Title: title,
			Image: str(item.ImageURL),
			Order: orderLabel(item.Order),
		})
	}

	return Render(c, views.List(views.ListData{
		Meta:    meta(c, "Gallery"),
		Heading: t.Room.DisplayTitle() + ": gallery",
		NewHref: base + "/gallery/new",
		Links:   []views.Link{{Label: "Room", Href: base}},
		Rows:    rows,
	}))
}

func (r *Routers) NewGalleryItem(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	return Render(c, views.Form(galleryFormData(c, t, dto.GalleryItemForm{}, nil)))
}

func (r *Routers) CreateGalleryItem(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	var form dto.GalleryItemForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}
	form.Image = optionalFile(c, "image")

	if err := c.Validate(form); err != nil {
		return formFailure(c, err, galleryFormData(c, t, form, nil))
	}

	item, err := r.Gallery.CreateGalleryItem(c.Request().Context(), t.Room.ID, form)
	if err != nil {
		return formFailure(c, err, galleryFormData(c, t, form, nil))
	}

	return c.Redirect(http.StatusSeeOther, roomAdminPath(t.Exhibition, *t.Room)+"/gallery/"+item.ID.String())
}

func (r *Routers) EditGalleryItem(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	return Render(c, views.Form(galleryFormData(c, t, galleryForm(*t.Item), t.Item)))
}

func (r *Routers) UpdateGalleryItem(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	var form dto.GalleryItemForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}
	form.Image = optionalFile(c, "image")

	if err := c.Validate(form); err != nil {
		return formFailure(c, err, galleryFormData(c, t, form, t.Item))
	}

	item, err := r.Gallery.UpdateGalleryItem(c.Request().Context(), *t.Item, form)
	if err != nil {
		return formFailure(c, err, galleryFormData(c, t, form, t.Item))
	}

	return c.Redirect(http.StatusSeeOther, roomAdminPath(t.Exhibition, *t.Room)+"/gallery/"+item.ID.String())
}

func (r *Routers) DeleteGalleryItem(c echo.Context) error {
	t, done, err := r.trail(c)
	if done || err != nil {
		return err
	}

	if err := r.Gallery.DeleteGalleryItem(c.Request().Context(), t.Item.ID); err != nil {
		return notFound(err)
	}

	return c.Redirect(http.StatusSeeOther, roomAdminPath(t.Exhibition, *t.Room)+"/gallery")
}

func galleryForm(item models.GalleryItem) dto.GalleryItemForm {
	return dto.GalleryItemForm{
		Caption:     str(item.Caption),
		Description: str(item.Description),
		Order:       orderValue(item.Order),
	}
}

func galleryFormData(c echo.Context, t catalog.Trail, form dto.GalleryItemForm, current *models.GalleryItem) views.FormData {
	base := roomAdminPath(t.Exhibition, *t.Room) + "/gallery"

	data := views.FormData{
		Meta:    meta(c, "New image"),
		Heading: "New image in " + t.Room.DisplayTitle(),
		Action:  base + "/new",
		Fields: []views.Field{
			{Name: "image", Label: "Image", Kind: views.FieldFile, Required: current == nil},
			{Name: "caption", Label: "Caption", Kind: views.FieldText, Value: form.Caption},
			{Name: "description", Label: "Description", Kind: views.FieldTextarea, Value: form.Description},
			orderField(form.Order),
		},
		Links: []views.Link{{Label: "Gallery", Href: base}},
	}

	if current != nil {
		path := base + "/" + current.ID.String()
		data.Meta = meta(c, "Image")
		data.Heading = "Image"
		data.Action = path
		data.DeleteAction = path + "/delete"
		data.Fields[0].Preview = str(current.ImageURL)
	}

	return data
}

func slugField(value string) views.Field {
	return views.Field{
		Name:  "slug",
		Label: "Slug",
		Kind:  views.FieldText,
		Value: value,
		Hint:  "Optional address used instead of the id.",
	}
}

func orderField(value int) views.Field {
	return views.Field{
		Name:  "order",
		Label: "Order",
		Kind:  views.FieldNumber,
		Value: strconv.Itoa(value),
		Hint:  "0 on a new record places it last.",
	}
}

func orderValue(o *int) int {
	if o == nil {
		return 0
	}

	return *o
}

func orderLabel(o *int) string {
	if o == nil {
		return "-"
	}

	return strconv.Itoa(*o)
}

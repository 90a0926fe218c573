package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"lavender_breeze/internal/domain/models"
	"lavender_breeze/internal/lib/ident"
	"lavender_breeze/internal/lib/logger/sl"
	"lavender_breeze/internal/lib/pagination"
	catalog "lavender_breeze/internal/services/catalog_service"
	"lavender_breeze/internal/transport/http/views"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (r *Routers) Root(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/main")
}

func (r *Routers) Main(c echo.Context) error {
	page, err := r.MainPage.GetMainPage(c.Request().Context())
	if err != nil {
		return err
	}

	return Render(c, views.MainPage(views.MainData{
		Meta:        meta(c, "Gallery"),
		ImageURL:    str(page.MainImageURL),
		OpeningText: page.Text(),
	}))
}

func (r *Routers) ExhibitionList(c echo.Context) error {
	exhibitions, err := r.Exhibitions.ListExhibitions(c.Request().Context())
	if err != nil {
		return err
	}

	cards := make([]views.Card, 0, len(exhibitions))
	for _, e := range exhibitions {
		cards = append(cards, views.Card{
			Href:     "/exhibitions/" + ident.SegmentOf(e),
			Title:    e.Title,
			Subtitle: str(e.Description),
			Image:    str(e.CoverImage),
		})
	}

	return Render(c, views.Exhibitions(views.ExhibitionsData{
		Meta:  meta(c, "Exhibitions"),
		Cards: cards,
	}))
}

// Exhibition sends the visitor into the first room. Without rooms the
// "in preparation" page is shown at the canonical address.
func (r *Routers) Exhibition(c echo.Context) error {
	const op = "http.routers.Exhibition"

	entry, err := r.Catalog.EnterExhibition(c.Request().Context(), c.Param("id"))
	if err != nil {
		r.log.Error("failed to enter exhibition", slog.String("op", op), sl.Err(err))
		return err
	}

	switch {
	case entry.Result.Outcome == ident.NotFound:
		return echo.ErrNotFound
	case entry.FirstRoom != nil:
		return c.Redirect(http.StatusFound, "/rooms/"+url.PathEscape(ident.SegmentOf(*entry.FirstRoom)))
	case entry.Result.Outcome == ident.Redirect:
		return c.Redirect(http.StatusFound, "/exhibitions/"+url.PathEscape(entry.Result.Segment))
	}

	return Render(c, views.Preparing(views.PreparingData{
		Meta:       meta(c, entry.Result.Row.Title),
		Exhibition: entry.Result.Row.Title,
	}))
}

func (r *Routers) Room(c echo.Context) error {
	const op = "http.routers.Room"
	ctx := c.Request().Context()

	res, err := r.Rooms.ResolveRoom(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	switch res.Outcome {
	case ident.NotFound:
		return echo.ErrNotFound
	case ident.Redirect:
		target := "/rooms/" + url.PathEscape(res.Segment)
		if q := c.Request().URL.RawQuery; q != "" {
			target += "?" + q
		}
		return c.Redirect(http.StatusFound, target)
	}

	page, err := r.Catalog.LoadRoomPage(ctx, res.Row)
	if err != nil {
		r.log.Error("failed to load room", slog.String("op", op), sl.Err(err))
		return err
	}

	base := "/rooms/" + url.PathEscape(res.Segment)
	requested, _ := strconv.Atoi(c.QueryParam("page"))

	data := views.RoomData{
		Meta:           meta(c, res.Row.DisplayTitle()),
		Exhibition:     page.Exhibition.Title,
		ExhibitionHref: "/exhibitions",
		Poster: views.Poster{
			Title:       res.Row.DisplayTitle(),
			Subtitle:    str(res.Row.Subtitle),
			Description: str(res.Row.Description),
			Image:       str(res.Row.CoverImageURL),
		},
		Switcher: switcher(page),
		IsImage:  !res.Row.IsText(),
	}

	if data.IsImage {
		current := pagination.Paginate(page.Items, pagination.GalleryPageSize, requested)
		for _, item := range current.Items {
			data.Cards = append(data.Cards, views.Card{
				Href:  fmt.Sprintf("%s?page=%d&item=%s", base, current.Current, item.ID),
				Title: str(item.Caption),
				Image: str(item.ImageURL),
			})
		}
		data.Pager = pager(base, current)
		data.Modal = lightbox(page.Items, c.QueryParam("item"), fmt.Sprintf("%s?page=%d", base, current.Current))
	} else {
		current := pagination.Paginate(page.Posts, pagination.PostsPageSize, requested)
		for _, post := range current.Items {
			data.Cards = append(data.Cards, views.Card{
				Href:     "/post/" + post.ID.String(),
				Title:    post.Title,
				Subtitle: str(post.Subtitle),
				Image:    str(post.Thumbnail),
			})
		}
		data.Pager = pager(base, current)
	}

	return Render(c, views.Room(data))
}

func (r *Routers) Post(c echo.Context) error {
	ctx := c.Request().Context()

	post, err := r.Posts.GetPost(ctx, c.Param("id"))
	if err != nil {
		return notFound(err)
	}

	var back string
	if post.RoomID != nil {
		res, err := r.Rooms.ResolveRoom(ctx, post.RoomID.String())
		if err != nil {
			return err
		}
		if res.Outcome != ident.NotFound {
			back = "/rooms/" + url.PathEscape(res.Segment)
		}
	}

	return Render(c, views.Post(views.PostData{
		Meta:      meta(c, post.Title),
		Title:     post.Title,
		Subtitle:  str(post.Subtitle),
		Thumbnail: str(post.Thumbnail),
		Content:   str(post.Content),
		BackHref:  back,
	}))
}

func switcher(page catalog.RoomPage) []views.SwitchItem {
	items := make([]views.SwitchItem, 0, len(page.Siblings))
	for _, room := range page.Siblings {
		items = append(items, views.SwitchItem{
			Label:   room.DisplayTitle(),
			Href:    "/rooms/" + url.PathEscape(ident.SegmentOf(room)),
			Current: room.ID == page.Room.ID,
		})
	}

	return items
}

func pager[T any](base string, page pagination.Page[T]) views.Pager {
	href := func(n int) string { return fmt.Sprintf("%s?page=%d", base, n) }

	p := views.Pager{}
	if page.HasPrev() {
		p.Prev = href(page.Prev())
	}
	if page.HasNext() {
		p.Next = href(page.Next())
	}

	for _, n := range page.Window {
		if n == pagination.Ellipsis {
			p.Pages = append(p.Pages, views.PageLink{Ellipsis: true})
			continue
		}
		p.Pages = append(p.Pages, views.PageLink{Number: n, Href: href(n), Current: n == page.Current})
	}

	return p
}

// lightbox opens the modal for the item named in the query, if it belongs to
// the room.
func lightbox(items []models.GalleryItem, raw, closeHref string) *views.Lightbox {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}

	for _, item := range items {
		if item.ID == id {
			return &views.Lightbox{
				Image:       str(item.ImageURL),
				Caption:     str(item.Caption),
				Description: str(item.Description),
				CloseHref:   closeHref,
			}
		}
	}

	return nil
}

func str(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

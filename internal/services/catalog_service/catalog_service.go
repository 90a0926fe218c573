package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lavender_breeze/internal/domain/models"
	"lavender_breeze/internal/lib/ident"
	"lavender_breeze/internal/lib/logger/sl"
	"lavender_breeze/internal/repository"
	"lavender_breeze/internal/storage"

	"github.com/google/uuid"
)

// Segments сегменты вложенного адреса админки. Пустой сегмент означает,
// что уровень в адресе отсутствует.
type Segments struct {
	Exhibition string
	Room       string
	Post       string
	Item       string
}

// Trail цепочка найденных сущностей по вложенному адресу
type Trail struct {
	Exhibition models.Exhibition
	Room       *models.Room
	Post       *models.Post
	Item       *models.GalleryItem

	// Canonical канонические сегменты. Redirect = true, если выставка или
	// зал найдены по id, а у них есть slug.
	Canonical Segments
	Redirect  bool
}

// RoomPage все, что нужно публичной странице зала
type RoomPage struct {
	Room       models.Room
	Exhibition models.Exhibition
	Siblings   []models.Room
	Posts      []models.Post
	Items      []models.GalleryItem
}

// ExhibitionEntry куда ведет публичный адрес выставки
type ExhibitionEntry struct {
	Result    ident.Result[models.Exhibition]
	FirstRoom *models.Room
}

type CatalogService struct {
	log         *slog.Logger
	exhibitions repository.ExhibitionRepository
	rooms       repository.RoomRepository
	posts       repository.PostRepository
	gallery     repository.GalleryRepository
}

func NewCatalogService(
	log *slog.Logger,
	exhibitions repository.ExhibitionRepository,
	rooms repository.RoomRepository,
	posts repository.PostRepository,
	gallery repository.GalleryRepository,
) *CatalogService {
	return &CatalogService{
		log:         log,
		exhibitions: exhibitions,
		rooms:       rooms,
		posts:       posts,
		gallery:     gallery,
	}
}

// ResolveTrail разбирает вложенный адрес целиком. Отсутствие любого уровня
// дает storage.ErrNotFound для всего запроса. Редирект решается один раз,
// после того как найдены все уровни.
func (s *CatalogService) ResolveTrail(ctx context.Context, segs Segments) (Trail, error) {
	const op = "service.CatalogService.ResolveTrail"
	log := s.log.With(
		slog.String("op", op),
		slog.String("exhibition", segs.Exhibition),
		slog.String("room", segs.Room),
	)

	var trail Trail

	ex, err := ident.Resolve(ctx, segs.Exhibition, s.exhibitions.GetExhibition)
	if err != nil {
		log.Error("failed to resolve exhibition", sl.Err(err))
		return trail, fmt.Errorf("%s: %w", op, err)
	}
	if ex.Outcome == ident.NotFound {
		return trail, fmt.Errorf("%s: exhibition: %w", op, storage.ErrNotFound)
	}
	trail.Exhibition = ex.Row
	trail.Canonical.Exhibition = ex.Segment

	trail.Redirect = ex.Outcome == ident.Redirect

	if segs.Room == "" {
		return trail, nil
	}

	lookup := func(ctx context.Context, column, value string) (models.Room, error) {
		return s.rooms.GetExhibitionRoom(ctx, ex.Row.ID, column, value)
	}

	room, err := ident.Resolve(ctx, segs.Room, lookup)
	if err != nil {
		log.Error("failed to resolve room", sl.Err(err))
		return trail, fmt.Errorf("%s: %w", op, err)
	}
	if room.Outcome == ident.NotFound {
		return trail, fmt.Errorf("%s: room: %w", op, storage.ErrNotFound)
	}
	trail.Room = &room.Row
	trail.Canonical.Room = room.Segment
	trail.Redirect = trail.Redirect || room.Outcome == ident.Redirect

	switch {
	case segs.Post != "":
		post, err := s.roomPost(ctx, room.Row.ID, segs.Post)
		if err != nil {
			return trail, fmt.Errorf("%s: post: %w", op, err)
		}
		trail.Post = &post
		trail.Canonical.Post = post.ID.String()
	case segs.Item != "":
		item, err := s.roomItem(ctx, room.Row.ID, segs.Item)
		if err != nil {
			return trail, fmt.Errorf("%s: item: %w", op, err)
		}
		trail.Item = &item
		trail.Canonical.Item = item.ID.String()
	}

	return trail, nil
}

func (s *CatalogService) roomPost(ctx context.Context, roomID uuid.UUID, segment string) (models.Post, error) {
	if !ident.IsUUID(segment) {
		return models.Post{}, storage.ErrNotFound
	}

	post, err := s.posts.GetPostByID(ctx, uuid.MustParse(segment))
	if err != nil {
		return models.Post{}, err
	}
	if post.RoomID == nil || *post.RoomID != roomID {
		return models.Post{}, storage.ErrNotFound
	}

	return post, nil
}

func (s *CatalogService) roomItem(ctx context.Context, roomID uuid.UUID, segment string) (models.GalleryItem, error) {
	if !ident.IsUUID(segment) {
		return models.GalleryItem{}, storage.ErrNotFound
	}

	item, err := s.gallery.GetGalleryItemByID(ctx, uuid.MustParse(segment))
	if err != nil {
		return models.GalleryItem{}, err
	}
	if item.RoomID != roomID {
		return models.GalleryItem{}, storage.ErrNotFound
	}

	return item, nil
}

// EnterExhibition находит выставку и ее первый зал. FirstRoom nil, если
// залов нет.
func (s *CatalogService) EnterExhibition(ctx context.Context, segment string) (ExhibitionEntry, error) {
	const op = "service.CatalogService.EnterExhibition"

	var entry ExhibitionEntry

	res, err := ident.Resolve(ctx, segment, s.exhibitions.GetExhibition)
	if err != nil {
		s.log.Error("failed to resolve exhibition", slog.String("op", op), sl.Err(err))
		return entry, fmt.Errorf("%s: %w", op, err)
	}
	entry.Result = res

	if res.Outcome == ident.NotFound {
		return entry, nil
	}

	rooms, err := s.rooms.ListRooms(ctx, res.Row.ID)
	if err != nil {
		s.log.Error("failed to list rooms", slog.String("op", op), sl.Err(err))
		return entry, fmt.Errorf("%s: %w", op, err)
	}
	if len(rooms) > 0 {
		entry.FirstRoom = &rooms[0]
	}

	return entry, nil
}

// LoadRoomPage собирает публичную страницу зала: соседние залы для
// переключателя и содержимое по типу зала. Для зала без типа содержимое
// не загружается.
func (s *CatalogService) LoadRoomPage(ctx context.Context, room models.Room) (RoomPage, error) {
	const op = "service.CatalogService.LoadRoomPage"
	log := s.log.With(
		slog.String("op", op),
		slog.String("room_id", room.ID.String()),
	)

	page := RoomPage{Room: room}

	ex, err := s.exhibitions.GetExhibition(ctx, ident.ColumnID, room.ExhibitionID.String())
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Error("failed to load exhibition", sl.Err(err))
		return page, fmt.Errorf("%s: %w", op, err)
	}
	page.Exhibition = ex

	page.Siblings, err = s.rooms.ListRooms(ctx, room.ExhibitionID)
	if err != nil {
		log.Error("failed to list sibling rooms", sl.Err(err))
		return page, fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case room.IsImage():
		page.Items, err = s.gallery.ListGalleryItems(ctx, room.ID)
	case room.IsText():
		page.Posts, err = s.posts.ListPosts(ctx, room.ID)
	}
	if err != nil {
		log.Error("failed to load room content", sl.Err(err))
		return page, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"lavender_breeze/internal/domain/models"
	"lavender_breeze/internal/lib/failure"
	"lavender_breeze/internal/lib/ident"
	"lavender_breeze/internal/lib/logger/sl"
	"lavender_breeze/internal/lib/ordering"
	"lavender_breeze/internal/repository"
	media "lavender_breeze/internal/services/media_service"
	"lavender_breeze/internal/transport/http/dto"

	"github.com/google/uuid"
)

type RoomService struct {
	log   *slog.Logger
	repo  repository.RoomRepository
	media media.Uploader
}

func NewRoomService(log *slog.Logger, repo repository.RoomRepository, uploader media.Uploader) *RoomService {
	return &RoomService{
		log:   log,
		repo:  repo,
		media: uploader,
	}
}

// ListRooms залы выставки по порядку
func (s *RoomService) ListRooms(ctx context.Context, exhibitionID uuid.UUID) ([]models.Room, error) {
	const op = "service.RoomService.ListRooms"

	rooms, err := s.repo.ListRooms(ctx, exhibitionID)
	if err != nil {
		s.log.Error("failed to list rooms", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rooms, nil
}

// ResolveRoom ищет зал среди всех выставок (публичный адрес /rooms/:id)
func (s *RoomService) ResolveRoom(ctx context.Context, segment string) (ident.Result[models.Room], error) {
	const op = "service.RoomService.ResolveRoom"

	res, err := ident.Resolve(ctx, segment, s.repo.GetRoom)
	if err != nil {
		s.log.Error("failed to resolve room", slog.String("op", op), slog.String("segment", segment), sl.Err(err))
		return res, fmt.Errorf("%s: %w", op, err)
	}

	return res, nil
}

func roomType(t string) *models.RoomType {
	rt := models.RoomType(t)
	if !rt.Valid() {
		return nil
	}

	return &rt
}

// CreateRoom создает зал в выставке. Порядок считается среди залов этой выставки.
func (s *RoomService) CreateRoom(ctx context.Context, exhibitionID uuid.UUID, form dto.RoomForm) (models.Room, error) {
	const op = "service.RoomService.CreateRoom"
	log := s.log.With(
		slog.String("op", op),
		slog.String("exhibition_id", exhibitionID.String()),
		slog.String("title", form.Title),
	)

	log.Info("creating room")

	slug, err := ident.NormalizeSlug(form.Slug)
	if err != nil {
		return models.Room{}, fmt.Errorf("%s: %w", op, failure.Save(err))
	}

	room := models.Room{
		ExhibitionID: exhibitionID,
		Title:        form.Title,
		Slug:         slug,
		Subtitle:     dto.Optional(form.Subtitle),
		Description:  dto.Optional(form.Description),
		Type:         roomType(form.Type),
	}

	var uploaded *media.Uploaded
	if form.Cover != nil {
		up, err := s.media.Upload(ctx, media.PrefixRooms, form.Cover)
		if err != nil {
			return models.Room{}, fmt.Errorf("%s: %w", op, failure.Upload(err))
		}
		uploaded = &up
		room.CoverImageURL = &up.URL
	}

	max, err := s.repo.MaxRoomOrder(ctx, exhibitionID)
	if err != nil {
		log.Error("failed to read max order", sl.Err(err))
		s.orphan(uploaded, err)
		return models.Room{}, fmt.Errorf("%s: %w", op, failure.Save(err))
	}

	order := ordering.Next(max, form.Order)
	room.Order = &order

	id, err := s.repo.CreateRoom(ctx, room)
	if err != nil {
		log.Error("failed to create room", sl.Err(err))
		s.orphan(uploaded, err)
		return models.Room{}, fmt.Errorf("%s: %w", op, failure.Save(err))
	}
	room.ID = id

	log.Info("room created", slog.String("id", id.String()), slog.Int("order", order))

	return room, nil
}

// UpdateRoom перезаписывает поля зала, обложка меняется только при новом файле
func (s *RoomService) UpdateRoom(ctx context.Context, current models.Room, form dto.RoomForm) (models.Room, error) {
	const op = "service.RoomService.UpdateRoom"
	log := s.log.With(
		slog.String("op", op),
		slog.String("room_id", current.ID.String()),
	)

	slug, err := ident.NormalizeSlug(form.Slug)
	if err != nil {
		return current, fmt.Errorf("%s: %w", op, failure.Save(err))
	}

	updated := current
	updated.Title = form.Title
	updated.Slug = slug
	updated.Subtitle = dto.Optional(form.Subtitle)
	updated.Description = dto.Optional(form.Description)
	updated.Type = roomType(form.Type)
	order := form.Order
	updated.Order = &order

	var uploaded *media.Uploaded
	if form.Cover != nil {
		up, err := s.media.Upload(ctx, media.PrefixRooms, form.Cover)
		if err != nil {
			return current, fmt.Errorf("%s: %w", op, failure.Upload(err))
		}
		uploaded = &up
		updated.CoverImageURL = &up.URL
	}

	if err := s.repo.UpdateRoom(ctx, updated); err != nil {
		log.Error("failed to update room", sl.Err(err))
		s.orphan(uploaded, err)
		return current, fmt.Errorf("%s: %w", op, failure.Save(err))
	}

	log.Info("room updated")

	return updated, nil
}

// DeleteRoom удаляет зал вместе с постами и изображениями
func (s *RoomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	const op = "service.RoomService.DeleteRoom"
	log := s.log.With(
		slog.String("op", op),
		slog.String("room_id", id.String()),
	)

	if err := s.repo.DeleteRoom(ctx, id); err != nil {
		log.Error("failed to delete room", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("room deleted")

	return nil
}

func (s *RoomService) orphan(up *media.Uploaded, cause error) {
	if up != nil {
		s.media.Orphaned(*up, cause)
	}
}

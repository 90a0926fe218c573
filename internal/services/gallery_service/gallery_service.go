package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lavender_breeze/internal/domain/models"
	"lavender_breeze/internal/lib/failure"
	"lavender_breeze/internal/lib/ident"
	"lavender_breeze/internal/lib/logger/sl"
	"lavender_breeze/internal/lib/ordering"
	"lavender_breeze/internal/repository"
	media "lavender_breeze/internal/services/media_service"
	"lavender_breeze/internal/storage"
	"lavender_breeze/internal/transport/http/dto"

	"github.com/google/uuid"
)

var ErrImageRequired = errors.New("image is required")

type GalleryService struct {
	log   *slog.Logger
	repo  repository.GalleryRepository
	media media.Uploader
}

func NewGalleryService(log *slog.Logger, repo repository.GalleryRepository, uploader media.Uploader) *GalleryService {
	return &GalleryService{
		log:   log,
		repo:  repo,
		media: uploader,
	}
}

// ListGalleryItems изображения зала по порядку
func (s *GalleryService) ListGalleryItems(ctx context.Context, roomID uuid.UUID) ([]models.GalleryItem, error) {
	const op = "service.GalleryService.ListGalleryItems"

	items, err := s.repo.ListGalleryItems(ctx, roomID)
	if err != nil {
		s.log.Error("failed to list gallery items", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// GetGalleryItem изображения адресуются только по id
func (s *GalleryService) GetGalleryItem(ctx context.Context, segment string) (models.GalleryItem, error) {
	const op = "service.GalleryService.GetGalleryItem"

	if !ident.IsUUID(segment) {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	item, err := s.repo.GetGalleryItemByID(ctx, uuid.MustParse(segment))
	if err != nil {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

// CreateGalleryItem загружает изображение и добавляет его в зал
func (s *GalleryService) CreateGalleryItem(ctx context.Context, roomID uuid.UUID, form dto.GalleryItemForm) (models.GalleryItem, error) {
	const op = "service.GalleryService.CreateGalleryItem"
	log := s.log.With(
		slog.String("op", op),
		slog.String("room_id", roomID.String()),
	)

	log.Info("creating gallery item")

	if form.Image == nil {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, failure.Upload(ErrImageRequired))
	}

	up, err := s.media.Upload(ctx, media.PrefixGalleryItems, form.Image)
	if err != nil {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, failure.Upload(err))
	}

	item := models.GalleryItem{
		RoomID:      roomID,
		ImageURL:    &up.URL,
		Caption:     dto.Optional(form.Caption),
		Description: dto.Optional(form.Description),
	}

	max, err := s.repo.MaxGalleryItemOrder(ctx, roomID)
	if err != nil {
		log.Error("failed to read max order", sl.Err(err))
		s.media.Orphaned(up, err)
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, failure.Save(err))
	}

	order := ordering.Next(max, form.Order)
	item.Order = &order

	id, err := s.repo.CreateGalleryItem(ctx, item)
	if err != nil {
		log.Error("failed to create gallery item", sl.Err(err))
		s.media.Orphaned(up, err)
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, failure.Save(err))
	}
	item.ID = id

	log.Info("gallery item created", slog.String("id", id.String()), slog.Int("order", order))

	return item, nil
}

// UpdateGalleryItem обновляет подпись и порядок, файл заменяется только если передан
func (s *GalleryService) UpdateGalleryItem(ctx context.Context, current models.GalleryItem, form dto.GalleryItemForm) (models.GalleryItem, error) {
	const op = "service.GalleryService.UpdateGalleryItem"
	log := s.log.With(
		slog.String("op", op),
		slog.String("item_id", current.ID.String()),
	)

	updated := current
	updated.Caption = dto.Optional(form.Caption)
	updated.Description = dto.Optional(form.Description)
	order := form.Order
	updated.Order = &order

	var uploaded *media.Uploaded
	if form.Image != nil {
		up, err := s.media.Upload(ctx, media.PrefixGalleryItems, form.Image)
		if err != nil {
			return current, fmt.Errorf("%s: %w", op, failure.Upload(err))
		}
		uploaded = &up
		updated.ImageURL = &up.URL
	}

	if err := s.repo.UpdateGalleryItem(ctx, updated); err != nil {
		log.Error("failed to update gallery item", sl.Err(err))
		if uploaded != nil {
			s.media.Orphaned(*uploaded, err)
		}
		return current, fmt.Errorf("%s: %w", op, failure.Save(err))
	}

	log.Info("gallery item updated")

	return updated, nil
}

// DeleteGalleryItem удаляет изображение из зала. Файл в хранилище остается.
func (s *GalleryService) DeleteGalleryItem(ctx context.Context, id uuid.UUID) error {
	const op = "service.GalleryService.DeleteGalleryItem"
	log := s.log.With(
		slog.String("op", op),
		slog.String("item_id", id.String()),
	)

	if err := s.repo.DeleteGalleryItem(ctx, id); err != nil {
		log.Error("failed to delete gallery item", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery item deleted")

	return nil
}

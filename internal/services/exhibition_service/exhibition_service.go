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

type ExhibitionService struct {
	log   *slog.Logger
	repo  repository.ExhibitionRepository
	media media.Uploader
}

func NewExhibitionService(log *slog.Logger, repo repository.ExhibitionRepository, uploader media.Uploader) *ExhibitionService {
	return &ExhibitionService{
		log:   log,
		repo:  repo,
		media: uploader,
	}
}

// ListExhibitions возвращает все выставки по порядку
func (s *ExhibitionService) ListExhibitions(ctx context.Context) ([]models.Exhibition, error) {
	const op = "service.ExhibitionService.ListExhibitions"

	exhibitions, err := s.repo.ListExhibitions(ctx)
	if err != nil {
		s.log.Error("failed to list exhibitions", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return exhibitions, nil
}

// CreateExhibition загружает обложку, вычисляет порядок и создает выставку
func (s *ExhibitionService) CreateExhibition(ctx context.Context, form dto.ExhibitionForm) (models.Exhibition, error) {
	const op = "service.ExhibitionService.CreateExhibition"
	log := s.log.With(
		slog.String("op", op),
		slog.String("title", form.Title),
	)

	log.Info("creating exhibition")

	slug, err := ident.NormalizeSlug(form.Slug)
	if err != nil {
		return models.Exhibition{}, fmt.Errorf("%s: %w", op, failure.Save(err))
	}

	exhibition := models.Exhibition{
		Title:       form.Title,
		Slug:        slug,
		Description: dto.Optional(form.Description),
	}

	var uploaded *media.Uploaded
	if form.Cover != nil {
		up, err := s.media.Upload(ctx, media.PrefixExhibitions, form.Cover)
		if err != nil {
			return models.Exhibition{}, fmt.Errorf("%s: %w", op, failure.Upload(err))
		}
		uploaded = &up
		exhibition.CoverImage = &up.URL
	}

	max, err := s.repo.MaxExhibitionOrder(ctx)
	if err != nil {
		log.Error("failed to read max order", sl.Err(err))
		s.orphan(uploaded, err)
		return models.Exhibition{}, fmt.Errorf("%s: %w", op, failure.Save(err))
	}

	order := ordering.Next(max, form.Order)
	exhibition.Order = &order

	id, err := s.repo.CreateExhibition(ctx, exhibition)
	if err != nil {
		log.Error("failed to create exhibition", sl.Err(err))
		s.orphan(uploaded, err)
		return models.Exhibition{}, fmt.Errorf("%s: %w", op, failure.Save(err))
	}
	exhibition.ID = id

	log.Info("exhibition created", slog.String("id", id.String()), slog.Int("order", order))

	return exhibition, nil
}

// UpdateExhibition перезаписывает поля выставки. Порядок берется из формы как есть.
// Без нового файла обложка остается прежней.
func (s *ExhibitionService) UpdateExhibition(ctx context.Context, current models.Exhibition, form dto.ExhibitionForm) (models.Exhibition, error) {
	const op = "service.ExhibitionService.UpdateExhibition"
	log := s.log.With(
		slog.String("op", op),
		slog.String("exhibition_id", current.ID.String()),
	)

	slug, err := ident.NormalizeSlug(form.Slug)
	if err != nil {
		return current, fmt.Errorf("%s: %w", op, failure.Save(err))
	}

	updated := current
	updated.Title = form.Title
	updated.Slug = slug
	updated.Description = dto.Optional(form.Description)
	order := form.Order
	updated.Order = &order

	var uploaded *media.Uploaded
	if form.Cover != nil {
		up, err := s.media.Upload(ctx, media.PrefixExhibitions, form.Cover)
		if err != nil {
			return current, fmt.Errorf("%s: %w", op, failure.Upload(err))
		}
		uploaded = &up
		updated.CoverImage = &up.URL
	}

	if err := s.repo.UpdateExhibition(ctx, updated); err != nil {
		log.Error("failed to update exhibition", sl.Err(err))
		s.orphan(uploaded, err)
		return current, fmt.Errorf("%s: %w", op, failure.Save(err))
	}

	log.Info("exhibition updated")

	return updated, nil
}

// DeleteExhibition удаляет выставку вместе с залами
func (s *ExhibitionService) DeleteExhibition(ctx context.Context, id uuid.UUID) error {
	const op = "service.ExhibitionService.DeleteExhibition"
	log := s.log.With(
		slog.String("op", op),
		slog.String("exhibition_id", id.String()),
	)

	if err := s.repo.DeleteExhibition(ctx, id); err != nil {
		log.Error("failed to delete exhibition", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("exhibition deleted")

	return nil
}

func (s *ExhibitionService) orphan(up *media.Uploaded, cause error) {
	if up != nil {
		s.media.Orphaned(*up, cause)
	}
}

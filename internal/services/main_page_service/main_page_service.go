package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lavender_breeze/internal/domain/models"
	"lavender_breeze/internal/lib/failure"
	"lavender_breeze/internal/lib/logger/sl"
	"lavender_breeze/internal/repository"
	media "lavender_breeze/internal/services/media_service"
	"lavender_breeze/internal/storage"
	"lavender_breeze/internal/transport/http/dto"
)

type MainPageService struct {
	log   *slog.Logger
	repo  repository.MainPageRepository
	media media.Uploader
	now   func() time.Time
}

func NewMainPageService(log *slog.Logger, repo repository.MainPageRepository, uploader media.Uploader) *MainPageService {
	return &MainPageService{
		log:   log,
		repo:  repo,
		media: uploader,
		now:   time.Now,
	}
}

// GetMainPage возвращает настройки главной. Если строки еще нет, отдается
// пустая запись, Text() у нее вернет текст по умолчанию.
func (s *MainPageService) GetMainPage(ctx context.Context) (models.MainPage, error) {
	const op = "service.MainPageService.GetMainPage"

	page, err := s.repo.GetMainPage(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.MainPage{ID: models.MainPageID}, nil
		}

		s.log.Error("failed to get main page", slog.String("op", op), sl.Err(err))
		return models.MainPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// SaveMainPage сохраняет текст и, если передан файл, новое изображение.
// Без файла остается прежний адрес изображения.
func (s *MainPageService) SaveMainPage(ctx context.Context, current models.MainPage, form dto.MainPageForm) (models.MainPage, error) {
	const op = "service.MainPageService.SaveMainPage"
	log := s.log.With(slog.String("op", op))

	updated := current
	updated.ID = models.MainPageID
	updated.OpeningText = dto.Optional(form.OpeningText)
	now := s.now()
	updated.UpdatedAt = &now

	var uploaded *media.Uploaded
	if form.Image != nil {
		up, err := s.media.Upload(ctx, media.PrefixMainPage, form.Image)
		if err != nil {
			return current, fmt.Errorf("%s: %w", op, failure.Upload(err))
		}
		uploaded = &up
		updated.MainImageURL = &up.URL
	}

	if err := s.repo.SaveMainPage(ctx, updated); err != nil {
		log.Error("failed to save main page", sl.Err(err))
		if uploaded != nil {
			s.media.Orphaned(*uploaded, err)
		}
		return current, fmt.Errorf("%s: %w", op, failure.Save(err))
	}

	log.Info("main page saved")

	return updated, nil
}

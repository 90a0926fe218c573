package services

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"testing"
	"time"

	"lavender_breeze/internal/domain/models"
	"lavender_breeze/internal/lib/failure"
	media "lavender_breeze/internal/services/media_service"
	"lavender_breeze/internal/storage"
	"lavender_breeze/internal/transport/http/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMainPageRepository struct {
	mock.Mock
}

func (m *MockMainPageRepository) GetMainPage(ctx context.Context) (models.MainPage, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.MainPage), args.Error(1)
}

func (m *MockMainPageRepository) SaveMainPage(ctx context.Context, page models.MainPage) error {
	args := m.Called(ctx, page)
	return args.Error(0)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, prefix media.Prefix, file *multipart.FileHeader) (media.Uploaded, error) {
	args := m.Called(ctx, prefix, file)
	return args.Get(0).(media.Uploaded), args.Error(1)
}

func (m *MockUploader) Orphaned(up media.Uploaded, cause error) {
	m.Called(up, cause)
}

func TestMainPageService_GetMainPage(t *testing.T) {
	ctx := context.Background()

	t.Run("missing row falls back to defaults", func(t *testing.T) {
		repo := new(MockMainPageRepository)
		repo.On("GetMainPage", ctx).Return(models.MainPage{}, storage.ErrNotFound).Once()

		service := NewMainPageService(slog.Default(), repo, new(MockUploader))
		page, err := service.GetMainPage(ctx)

		require.NoError(t, err)
		assert.Equal(t, models.MainPageID, page.ID)
		assert.Nil(t, page.MainImageURL)
		assert.Equal(t, models.DefaultOpeningText, page.Text())
	})

	t.Run("store error", func(t *testing.T) {
		repo := new(MockMainPageRepository)
		repo.On("GetMainPage", ctx).Return(models.MainPage{}, errors.New("timeout")).Once()

		service := NewMainPageService(slog.Default(), repo, new(MockUploader))
		_, err := service.GetMainPage(ctx)

		assert.ErrorContains(t, err, "timeout")
	})
}

func TestMainPageService_SaveMainPage(t *testing.T) {
	ctx := context.Background()
	image := "http://cdn/main_page/old.png"
	current := models.MainPage{ID: models.MainPageID, MainImageURL: &image}
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("text only keeps image", func(t *testing.T) {
		repo := new(MockMainPageRepository)
		repo.On("SaveMainPage", ctx, mock.MatchedBy(func(p models.MainPage) bool {
			return *p.MainImageURL == image && *p.OpeningText == "Welcome" && p.UpdatedAt.Equal(fixed)
		})).Return(nil).Once()

		service := NewMainPageService(slog.Default(), repo, new(MockUploader))
		service.now = func() time.Time { return fixed }

		got, err := service.SaveMainPage(ctx, current, dto.MainPageForm{OpeningText: " Welcome "})

		require.NoError(t, err)
		assert.Equal(t, "Welcome", got.Text())
		repo.AssertExpectations(t)
	})

	t.Run("blank text clears back to default", func(t *testing.T) {
		repo := new(MockMainPageRepository)
		repo.On("SaveMainPage", ctx, mock.MatchedBy(func(p models.MainPage) bool {
			return p.OpeningText == nil
		})).Return(nil).Once()

		service := NewMainPageService(slog.Default(), repo, new(MockUploader))
		got, err := service.SaveMainPage(ctx, current, dto.MainPageForm{})

		require.NoError(t, err)
		assert.Equal(t, models.DefaultOpeningText, got.Text())
	})

	t.Run("upload failure keeps previous image", func(t *testing.T) {
		repo := new(MockMainPageRepository)
		up := new(MockUploader)
		file := &multipart.FileHeader{Filename: "hero.png"}
		up.On("Upload", ctx, media.PrefixMainPage, file).Return(media.Uploaded{}, errors.New("quota")).Once()

		service := NewMainPageService(slog.Default(), repo, up)
		got, err := service.SaveMainPage(ctx, current, dto.MainPageForm{Image: file})

		fe, ok := failure.As(err)
		require.True(t, ok)
		assert.Equal(t, failure.KindUpload, fe.Kind)
		assert.Equal(t, image, *got.MainImageURL)
		repo.AssertNotCalled(t, "SaveMainPage", mock.Anything, mock.Anything)
	})
}

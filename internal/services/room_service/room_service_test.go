package services

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"testing"

	"lavender_breeze/internal/domain/models"
	"lavender_breeze/internal/lib/failure"
	"lavender_breeze/internal/lib/ident"
	media "lavender_breeze/internal/services/media_service"
	"lavender_breeze/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) CreateRoom(ctx context.Context, room models.Room) (uuid.UUID, error) {
	args := m.Called(ctx, room)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockRoomRepository) UpdateRoom(ctx context.Context, room models.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomRepository) GetRoom(ctx context.Context, column, value string) (models.Room, error) {
	args := m.Called(ctx, column, value)
	return args.Get(0).(models.Room), args.Error(1)
}

func (m *MockRoomRepository) GetExhibitionRoom(ctx context.Context, exhibitionID uuid.UUID, column, value string) (models.Room, error) {
	args := m.Called(ctx, exhibitionID, column, value)
	return args.Get(0).(models.Room), args.Error(1)
}

func (m *MockRoomRepository) ListRooms(ctx context.Context, exhibitionID uuid.UUID) ([]models.Room, error) {
	args := m.Called(ctx, exhibitionID)
	return args.Get(0).([]models.Room), args.Error(1)
}

func (m *MockRoomRepository) MaxRoomOrder(ctx context.Context, exhibitionID uuid.UUID) (*int, error) {
	args := m.Called(ctx, exhibitionID)
	return args.Get(0).(*int), args.Error(1)
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

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func TestRoomService_CreateRoom(t *testing.T) {
	ctx := context.Background()
	exhibitionID := uuid.New()
	roomID := uuid.New()

	tests := []struct {
		name     string
		form     dto.RoomForm
		max      *int
		check    func(r models.Room) bool
		wantType *models.RoomType
	}{
		{
			name: "text room by default",
			form: dto.RoomForm{Title: "Intro"},
			max:  intPtr(1),
			check: func(r models.Room) bool {
				return r.ExhibitionID == exhibitionID && *r.Order == 2 && r.Type == nil
			},
		},
		{
			name: "image room keeps its type",
			form: dto.RoomForm{Title: "Works", Type: "image", Slug: "works"},
			max:  nil,
			check: func(r models.Room) bool {
				return *r.Order == 0 && r.IsImage() && *r.Slug == "works"
			},
		},
		{
			name: "unknown type is dropped",
			form: dto.RoomForm{Title: "Odd", Type: "video", Order: 7},
			max:  intPtr(1),
			check: func(r models.Room) bool {
				return *r.Order == 7 && r.Type == nil && !r.IsImage()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRoomRepository)
			repo.On("MaxRoomOrder", ctx, exhibitionID).Return(tt.max, nil).Once()
			repo.On("CreateRoom", ctx, mock.MatchedBy(tt.check)).Return(roomID, nil).Once()

			service := NewRoomService(slog.Default(), repo, new(MockUploader))
			got, err := service.CreateRoom(ctx, exhibitionID, tt.form)

			require.NoError(t, err)
			assert.Equal(t, roomID, got.ID)
			repo.AssertExpectations(t)
		})
	}
}

func TestRoomService_CreateRoom_Failures(t *testing.T) {
	ctx := context.Background()
	exhibitionID := uuid.New()
	cover := &multipart.FileHeader{Filename: "room.png"}
	uploaded := media.Uploaded{Key: "rooms/1-x.png", URL: "http://cdn/rooms/1-x.png"}

	t.Run("upload", func(t *testing.T) {
		repo := new(MockRoomRepository)
		up := new(MockUploader)
		up.On("Upload", ctx, media.PrefixRooms, cover).Return(media.Uploaded{}, errors.New("denied")).Once()

		service := NewRoomService(slog.Default(), repo, up)
		_, err := service.CreateRoom(ctx, exhibitionID, dto.RoomForm{Title: "R", Cover: cover})

		fe, ok := failure.As(err)
		require.True(t, ok)
		assert.Equal(t, failure.KindUpload, fe.Kind)
		assert.Equal(t, "Image upload failed: denied", fe.Message())
		repo.AssertNotCalled(t, "CreateRoom", mock.Anything, mock.Anything)
	})

	t.Run("max order", func(t *testing.T) {
		repo := new(MockRoomRepository)
		up := new(MockUploader)
		cause := errors.New("connection reset")
		up.On("Upload", ctx, media.PrefixRooms, cover).Return(uploaded, nil).Once()
		up.On("Orphaned", uploaded, mock.Anything).Once()
		repo.On("MaxRoomOrder", ctx, exhibitionID).Return((*int)(nil), cause).Once()

		service := NewRoomService(slog.Default(), repo, up)
		_, err := service.CreateRoom(ctx, exhibitionID, dto.RoomForm{Title: "R", Cover: cover})

		fe, ok := failure.As(err)
		require.True(t, ok)
		assert.Equal(t, failure.KindSave, fe.Kind)
		up.AssertExpectations(t)
	})
}

func TestRoomService_UpdateRoom(t *testing.T) {
	ctx := context.Background()
	image := models.RoomTypeImage
	current := models.Room{
		ID:            uuid.New(),
		ExhibitionID:  uuid.New(),
		Title:         "Gallery",
		Type:          &image,
		CoverImageURL: strPtr("http://cdn/rooms/old.png"),
		Order:         intPtr(1),
	}

	repo := new(MockRoomRepository)
	repo.On("UpdateRoom", ctx, mock.MatchedBy(func(r models.Room) bool {
		return r.ID == current.ID && r.Type != nil && *r.Type == models.RoomTypeText &&
			*r.CoverImageURL == "http://cdn/rooms/old.png" && *r.Order == 4
	})).Return(nil).Once()

	service := NewRoomService(slog.Default(), repo, new(MockUploader))
	got, err := service.UpdateRoom(ctx, current, dto.RoomForm{Title: "Texts", Type: "text", Order: 4})

	require.NoError(t, err)
	assert.False(t, got.IsImage())
	repo.AssertExpectations(t)
}

func TestRoomService_ResolveRoom_Error(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRoomRepository)
	repo.On("GetRoom", ctx, ident.ColumnSlug, "hall").Return(models.Room{}, errors.New("pool closed")).Once()

	service := NewRoomService(slog.Default(), repo, new(MockUploader))
	_, err := service.ResolveRoom(ctx, "hall")

	assert.ErrorContains(t, err, "pool closed")
}

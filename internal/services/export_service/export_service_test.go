package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"lavender_breeze/internal/domain/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type MockExhibitionRepository struct {
	mock.Mock
}

func (m *MockExhibitionRepository) CreateExhibition(ctx context.Context, e models.Exhibition) (uuid.UUID, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockExhibitionRepository) UpdateExhibition(ctx context.Context, e models.Exhibition) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockExhibitionRepository) DeleteExhibition(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockExhibitionRepository) GetExhibition(ctx context.Context, column, value string) (models.Exhibition, error) {
	args := m.Called(ctx, column, value)
	return args.Get(0).(models.Exhibition), args.Error(1)
}

func (m *MockExhibitionRepository) ListExhibitions(ctx context.Context) ([]models.Exhibition, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Exhibition), args.Error(1)
}

func (m *MockExhibitionRepository) MaxExhibitionOrder(ctx context.Context) (*int, error) {
	args := m.Called(ctx)
	return args.Get(0).(*int), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) CreateRoom(ctx context.Context, room models.Room) (uuid.UUID, error) {
	args := m.Called(ctx, room)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockRoomRepository) UpdateRoom(ctx context.Context, room models.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *MockRoomRepository) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
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

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreatePost(ctx context.Context, post models.Post) (uuid.UUID, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockPostRepository) UpdatePost(ctx context.Context, post models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepository) DeletePost(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPostRepository) GetPostByID(ctx context.Context, id uuid.UUID) (models.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *MockPostRepository) ListPosts(ctx context.Context, roomID uuid.UUID) ([]models.Post, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) MaxPostOrder(ctx context.Context, roomID uuid.UUID) (*int, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(*int), args.Error(1)
}

type MockGalleryRepository struct {
	mock.Mock
}

func (m *MockGalleryRepository) CreateGalleryItem(ctx context.Context, item models.GalleryItem) (uuid.UUID, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockGalleryRepository) UpdateGalleryItem(ctx context.Context, item models.GalleryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockGalleryRepository) DeleteGalleryItem(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGalleryRepository) GetGalleryItemByID(ctx context.Context, id uuid.UUID) (models.GalleryItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.GalleryItem), args.Error(1)
}

func (m *MockGalleryRepository) ListGalleryItems(ctx context.Context, roomID uuid.UUID) ([]models.GalleryItem, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).([]models.GalleryItem), args.Error(1)
}

func (m *MockGalleryRepository) MaxGalleryItemOrder(ctx context.Context, roomID uuid.UUID) (*int, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(*int), args.Error(1)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestExportService_WriteXLSX(t *testing.T) {
	ctx := context.Background()
	image := models.RoomTypeImage

	exhibition := models.Exhibition{ID: uuid.New(), Slug: strPtr("spring"), Title: "Spring", Order: intPtr(0), CreatedAt: time.Now()}
	textRoom := models.Room{ID: uuid.New(), ExhibitionID: exhibition.ID, Slug: strPtr("letters"), Title: "Letters", Order: intPtr(1)}
	imageRoom := models.Room{ID: uuid.New(), ExhibitionID: exhibition.ID, Type: &image, Order: intPtr(2)}

	exhibitions := new(MockExhibitionRepository)
	rooms := new(MockRoomRepository)
	posts := new(MockPostRepository)
	gallery := new(MockGalleryRepository)

	exhibitions.On("ListExhibitions", ctx).Return([]models.Exhibition{exhibition}, nil).Once()
	rooms.On("ListRooms", ctx, exhibition.ID).Return([]models.Room{textRoom, imageRoom}, nil).Once()
	posts.On("ListPosts", ctx, textRoom.ID).Return([]models.Post{{ID: uuid.New(), Title: "Dear friend"}}, nil).Once()
	gallery.On("ListGalleryItems", ctx, imageRoom.ID).Return([]models.GalleryItem{
		{ID: uuid.New(), Caption: strPtr("One")},
		{ID: uuid.New(), Caption: strPtr("Two")},
	}, nil).Once()

	service := NewExportService(slog.Default(), exhibitions, rooms, posts, gallery)

	var buf bytes.Buffer
	require.NoError(t, service.WriteXLSX(ctx, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetExhibitions, SheetRooms, SheetPosts, SheetGallery}, f.GetSheetList())

	exRows, err := f.GetRows(SheetExhibitions)
	require.NoError(t, err)
	require.Len(t, exRows, 2)
	assert.Equal(t, "Title", exRows[0][2])
	assert.Equal(t, "spring", exRows[1][1])

	roomRows, err := f.GetRows(SheetRooms)
	require.NoError(t, err)
	require.Len(t, roomRows, 3)
	assert.Equal(t, "Room 2", roomRows[2][3])
	assert.Equal(t, "image", roomRows[2][5])

	postRows, err := f.GetRows(SheetPosts)
	require.NoError(t, err)
	require.Len(t, postRows, 2)
	assert.Equal(t, "letters", postRows[1][2])

	itemRows, err := f.GetRows(SheetGallery)
	require.NoError(t, err)
	assert.Len(t, itemRows, 3)

	posts.AssertNotCalled(t, "ListPosts", ctx, imageRoom.ID)
}

func TestExportService_CollectError(t *testing.T) {
	ctx := context.Background()
	exhibitions := new(MockExhibitionRepository)
	exhibitions.On("ListExhibitions", ctx).Return([]models.Exhibition(nil), errors.New("conn refused")).Once()

	service := NewExportService(slog.Default(), exhibitions, new(MockRoomRepository), new(MockPostRepository), new(MockGalleryRepository))

	var buf bytes.Buffer
	err := service.WriteXLSX(ctx, &buf)

	assert.ErrorContains(t, err, "conn refused")
	assert.Zero(t, buf.Len())
}

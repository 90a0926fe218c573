package repository

import (
	"context"
	"time"

	"lavender_breeze/internal/domain/models"

	"github.com/google/uuid"
)

type ExhibitionRepository interface {
	CreateExhibition(ctx context.Context, e models.Exhibition) (uuid.UUID, error)
	UpdateExhibition(ctx context.Context, e models.Exhibition) error
	DeleteExhibition(ctx context.Context, id uuid.UUID) error
	GetExhibition(ctx context.Context, column, value string) (models.Exhibition, error)
	ListExhibitions(ctx context.Context) ([]models.Exhibition, error)
	MaxExhibitionOrder(ctx context.Context) (*int, error)
}

type RoomRepository interface {
	CreateRoom(ctx context.Context, room models.Room) (uuid.UUID, error)
	UpdateRoom(ctx context.Context, room models.Room) error
	DeleteRoom(ctx context.Context, id uuid.UUID) error
	GetRoom(ctx context.Context, column, value string) (models.Room, error)
	GetExhibitionRoom(ctx context.Context, exhibitionID uuid.UUID, column, value string) (models.Room, error)
	ListRooms(ctx context.Context, exhibitionID uuid.UUID) ([]models.Room, error)
	MaxRoomOrder(ctx context.Context, exhibitionID uuid.UUID) (*int, error)
}

type PostRepository interface {
	CreatePost(ctx context.Context, post models.Post) (uuid.UUID, error)
	UpdatePost(ctx context.Context, post models.Post) error
	DeletePost(ctx context.Context, id uuid.UUID) error
	GetPostByID(ctx context.Context, id uuid.UUID) (models.Post, error)
	ListPosts(ctx context.Context, roomID uuid.UUID) ([]models.Post, error)
	MaxPostOrder(ctx context.Context, roomID uuid.UUID) (*int, error)
}

type GalleryRepository interface {
	CreateGalleryItem(ctx context.Context, item models.GalleryItem) (uuid.UUID, error)
	UpdateGalleryItem(ctx context.Context, item models.GalleryItem) error
	DeleteGalleryItem(ctx context.Context, id uuid.UUID) error
	GetGalleryItemByID(ctx context.Context, id uuid.UUID) (models.GalleryItem, error)
	ListGalleryItems(ctx context.Context, roomID uuid.UUID) ([]models.GalleryItem, error)
	MaxGalleryItemOrder(ctx context.Context, roomID uuid.UUID) (*int, error)
}

type MainPageRepository interface {
	GetMainPage(ctx context.Context) (models.MainPage, error)
	SaveMainPage(ctx context.Context, page models.MainPage) error
}

type AdminRepository interface {
	SaveAdmin(ctx context.Context, email string, passwordHash []byte) (uuid.UUID, error)
	AdminByEmail(ctx context.Context, email string) (models.AdminUser, error)
	AdminByID(ctx context.Context, id uuid.UUID) (models.AdminUser, error)
}

// AttemptRepository хранит счетчики неудачных входов
type AttemptRepository interface {
	CountAttempts(ctx context.Context, key string) (int, error)
	RecordAttempt(ctx context.Context, key string, window time.Duration) error
	ResetAttempts(ctx context.Context, key string) error
}

package http

import (
	"context"
	"io"
	"log/slog"

	"lavender_breeze/internal/domain/models"
	"lavender_breeze/internal/lib/ident"
	catalog "lavender_breeze/internal/services/catalog_service"
	"lavender_breeze/internal/transport/http/dto"

	"github.com/google/uuid"
)

type ExhibitionService interface {
	ListExhibitions(ctx context.Context) ([]models.Exhibition, error)
	CreateExhibition(ctx context.Context, form dto.ExhibitionForm) (models.Exhibition, error)
	UpdateExhibition(ctx context.Context, current models.Exhibition, form dto.ExhibitionForm) (models.Exhibition, error)
	DeleteExhibition(ctx context.Context, id uuid.UUID) error
}

type RoomService interface {
	ListRooms(ctx context.Context, exhibitionID uuid.UUID) ([]models.Room, error)
	ResolveRoom(ctx context.Context, segment string) (ident.Result[models.Room], error)
	CreateRoom(ctx context.Context, exhibitionID uuid.UUID, form dto.RoomForm) (models.Room, error)
	UpdateRoom(ctx context.Context, current models.Room, form dto.RoomForm) (models.Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
}

type PostService interface {
	ListPosts(ctx context.Context, roomID uuid.UUID) ([]models.Post, error)
	GetPost(ctx context.Context, segment string) (models.Post, error)
	CreatePost(ctx context.Context, roomID uuid.UUID, form dto.PostForm) (models.Post, error)
	UpdatePost(ctx context.Context, current models.Post, form dto.PostForm) (models.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
}

type GalleryService interface {
	ListGalleryItems(ctx context.Context, roomID uuid.UUID) ([]models.GalleryItem, error)
	CreateGalleryItem(ctx context.Context, roomID uuid.UUID, form dto.GalleryItemForm) (models.GalleryItem, error)
	UpdateGalleryItem(ctx context.Context, current models.GalleryItem, form dto.GalleryItemForm) (models.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id uuid.UUID) error
}

type MainPageService interface {
	GetMainPage(ctx context.Context) (models.MainPage, error)
	SaveMainPage(ctx context.Context, current models.MainPage, form dto.MainPageForm) (models.MainPage, error)
}

type CatalogService interface {
	ResolveTrail(ctx context.Context, segs catalog.Segments) (catalog.Trail, error)
	EnterExhibition(ctx context.Context, segment string) (catalog.ExhibitionEntry, error)
	LoadRoomPage(ctx context.Context, room models.Room) (catalog.RoomPage, error)
}

type AuthService interface {
	SignIn(ctx context.Context, email, password string) (models.AdminUser, error)
}

type LoginLimiter interface {
	Check(ctx context.Context, ip string) bool
	Record(ctx context.Context, ip string)
	Reset(ctx context.Context, ip string)
}

type ExportService interface {
	WriteXLSX(ctx context.Context, w io.Writer) error
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps collects everything the handlers call into.
type Deps struct {
	Exhibitions ExhibitionService
	Rooms       RoomService
	Posts       PostService
	Gallery     GalleryService
	MainPage    MainPageService
	Catalog     CatalogService
	Auth        AuthService
	Limiter     LoginLimiter
	Export      ExportService
	Checks      map[string]HealthChecker
}

type Routers struct {
	log *slog.Logger
	Deps
}

func NewRouter(log *slog.Logger, deps Deps) *Routers {
	return &Routers{
		log:  log,
		Deps: deps,
	}
}

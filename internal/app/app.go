package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpapp "lavender_breeze/internal/app/http"
	"lavender_breeze/internal/config"
	"lavender_breeze/internal/lib/limiter"
	"lavender_breeze/internal/lib/logger/sl"
	"lavender_breeze/internal/repository"
	"lavender_breeze/internal/services/auth"
	catalog "lavender_breeze/internal/services/catalog_service"
	exhibitions "lavender_breeze/internal/services/exhibition_service"
	export "lavender_breeze/internal/services/export_service"
	gallery "lavender_breeze/internal/services/gallery_service"
	mainpage "lavender_breeze/internal/services/main_page_service"
	media "lavender_breeze/internal/services/media_service"
	posts "lavender_breeze/internal/services/post_service"
	rooms "lavender_breeze/internal/services/room_service"
	filestorage "lavender_breeze/internal/storage/filestorage"
	"lavender_breeze/internal/storage/postgresql"
	redisapp "lavender_breeze/internal/storage/redis"
	s3storage "lavender_breeze/internal/storage/s3"
	httprouters "lavender_breeze/internal/transport/http"
)

const startupTimeout = 30 * time.Second

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	storage    *postgresql.Storage
	redis      *redisapp.Client
}

// New собирает приложение целиком. Любая ошибка на старте это panic,
// как и при чтении конфига.
func New(log *slog.Logger, cfg *config.Config) *App {
	const op = "app.New"

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		panic(err)
	}

	if err := storage.Migrate(ctx); err != nil {
		panic(err)
	}

	files, uploadsDir, err := newFileStorage(ctx, cfg)
	if err != nil {
		panic(err)
	}

	repo := repository.NewRepository(storage.Pool())
	uploader := media.NewMediaService(log, files, cfg.FileStorage.MaxSize)

	authService := auth.New(log, repo.Admins, repo.Admins)
	if err := authService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		panic(fmt.Errorf("%s: %w", op, err))
	}

	checks := map[string]httprouters.HealthChecker{"postgres": storage}

	var (
		attempts limiter.Store
		redis    *redisapp.Client
	)
	if cfg.Redis.RedisAddr != "" {
		redis, err = redisapp.Connect(ctx, cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
		if err != nil {
			panic(err)
		}
		attempts = repository.NewRedisAttemptRepo(redis)
		checks["redis"] = redis
		log.Info("login limiter uses redis", slog.String("addr", cfg.Redis.RedisAddr))
	} else {
		attempts = limiter.NewMemoryStore(cfg.LoginLimit.Window)
		log.Info("login limiter uses process memory")
	}

	routers := httprouters.NewRouter(log, httprouters.Deps{
		Exhibitions: exhibitions.NewExhibitionService(log, repo.Exhibitions, uploader),
		Rooms:       rooms.NewRoomService(log, repo.Rooms, uploader),
		Posts:       posts.NewPostService(log, repo.Posts, uploader),
		Gallery:     gallery.NewGalleryService(log, repo.Gallery, uploader),
		MainPage:    mainpage.NewMainPageService(log, repo.MainPage, uploader),
		Catalog:     catalog.NewCatalogService(log, repo.Exhibitions, repo.Rooms, repo.Posts, repo.Gallery),
		Auth:        authService,
		Limiter:     limiter.New(log, attempts, cfg.LoginLimit.Attempts, cfg.LoginLimit.Window),
		Export:      export.NewExportService(log, repo.Exhibitions, repo.Rooms, repo.Posts, repo.Gallery),
		Checks:      checks,
	})

	server := httpapp.New(log, cfg.HTTP, cfg.Session, routers, authService, uploadsDir)
	server.BuildRouters()

	return &App{
		log:        log,
		HTTPServer: server,
		storage:    storage,
		redis:      redis,
	}
}

// newFileStorage выбирает бэкенд хранилища. uploadsDir не пустой только
// для локального диска: его раздает сам сервер.
func newFileStorage(ctx context.Context, cfg *config.Config) (filestorage.FileStorage, string, error) {
	const op = "app.newFileStorage"

	switch cfg.FileStorage.Driver {
	case config.DriverS3:
		client, err := s3storage.NewClient(s3storage.Config{
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Bucket:          cfg.FileStorage.Bucket,
			UseSSL:          cfg.S3.UseSSL,
			PublicBaseURL:   cfg.S3.PublicBaseURL,
		})
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", op, err)
		}

		if err := client.EnsureBucket(ctx); err != nil {
			return nil, "", fmt.Errorf("%s: %w", op, err)
		}

		return client, "", nil
	default:
		local, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", op, err)
		}

		return local, local.BaseDir(), nil
	}
}

func (a *App) Stop() {
	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("failed to stop http server", sl.Err(err))
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("failed to close redis", sl.Err(err))
		}
	}

	a.storage.Stop()
}

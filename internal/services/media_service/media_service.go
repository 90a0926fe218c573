package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"lavender_breeze/internal/lib/logger/sl"
	"lavender_breeze/internal/metrics"
	"lavender_breeze/internal/storage"
	filestorage "lavender_breeze/internal/storage/filestorage"

	"github.com/google/uuid"
)

// Prefix раздел бакета, в который попадает файл
type Prefix string

const (
	PrefixExhibitions  Prefix = "exhibitions"
	PrefixRooms        Prefix = "rooms"
	PrefixPosts        Prefix = "posts"
	PrefixGalleryItems Prefix = "gallery_items"
	PrefixMainPage     Prefix = "main_page"
)

const defaultExtension = "png"

var extensionPattern = regexp.MustCompile(`^[a-z0-9]+$`)

// Uploaded результат загрузки: ключ объекта и его публичный адрес
type Uploaded struct {
	Key string
	URL string
}

type MediaService struct {
	log         *slog.Logger
	fileStorage filestorage.FileStorage
	maxSize     int64
	now         func() time.Time
	suffix      func() string
}

func NewMediaService(log *slog.Logger, fileStorage filestorage.FileStorage, maxSize int64) *MediaService {
	return &MediaService{
		log:         log,
		fileStorage: fileStorage,
		maxSize:     maxSize,
		now:         time.Now,
		suffix:      randomSuffix,
	}
}

// Extension берет расширение из имени файла. Без точки или с чем-то кроме
// [a-z0-9] после перевода в нижний регистр получается png.
func Extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return defaultExtension
	}

	ext := strings.ToLower(filename[i+1:])
	if !extensionPattern.MatchString(ext) {
		return defaultExtension
	}

	return ext
}

// StoragePath собирает ключ вида {prefix}/{unix ms}-{suffix}.{ext}
func StoragePath(prefix Prefix, filename string, at time.Time, suffix string) string {
	return fmt.Sprintf("%s/%d-%s.%s", prefix, at.UnixMilli(), suffix, Extension(filename))
}

func randomSuffix() string {
	return uuid.NewString()[:8]
}

// Upload сохраняет файл в хранилище и возвращает его публичный URL.
// При ошибке ничего не записано, вызывающий оставляет прежний URL.
func (s *MediaService) Upload(ctx context.Context, prefix Prefix, file *multipart.FileHeader) (Uploaded, error) {
	const op = "media_service.Upload"

	log := s.log.With(
		slog.String("op", op),
		slog.String("prefix", string(prefix)),
		slog.String("filename", file.Filename),
	)

	if s.maxSize > 0 && file.Size > s.maxSize {
		log.Warn("file too large", slog.Int64("size", file.Size))

		return Uploaded{}, fmt.Errorf("%s: %w", op, storage.ErrFileTooLarge)
	}

	src, err := file.Open()
	if err != nil {
		log.Error("failed to open upload", sl.Err(err))

		return Uploaded{}, fmt.Errorf("%s: %w", op, err)
	}
	defer src.Close()

	return s.store(ctx, log, op, prefix, file.Filename, contentType(file), src)
}

func (s *MediaService) store(ctx context.Context, log *slog.Logger, op string, prefix Prefix, filename, ctype string, body io.Reader) (Uploaded, error) {
	key := StoragePath(prefix, filename, s.now(), s.suffix())

	if err := s.fileStorage.Upload(ctx, key, body, ctype); err != nil {
		log.Error("failed to upload file", slog.String("key", key), sl.Err(err))
		metrics.UploadsTotal.WithLabelValues(string(prefix), "error").Inc()

		return Uploaded{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("file uploaded", slog.String("key", key))
	metrics.UploadsTotal.WithLabelValues(string(prefix), "ok").Inc()

	return Uploaded{Key: key, URL: s.fileStorage.PublicURL(key)}, nil
}

// Orphaned фиксирует в логе объект, запись о котором не сохранилась.
// Объект не удаляется.
func (s *MediaService) Orphaned(up Uploaded, cause error) {
	metrics.OrphanedObjectsTotal.Inc()
	s.log.Warn("uploaded object left without owner",
		slog.String("op", "media_service.Orphaned"),
		slog.String("key", up.Key),
		slog.String("url", up.URL),
		sl.Err(cause),
	)
}

func contentType(file *multipart.FileHeader) string {
	if ct := file.Header.Get("Content-Type"); ct != "" {
		return ct
	}

	return mime.TypeByExtension(filepath.Ext(file.Filename))
}

// Uploader то, что нужно сервисам сущностей от загрузчика
type Uploader interface {
	Upload(ctx context.Context, prefix Prefix, file *multipart.FileHeader) (Uploaded, error)
	Orphaned(up Uploaded, cause error)
}

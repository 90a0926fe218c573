package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage объектное хранилище с публичными URL.
// Upload перезаписывает объект, если ключ уже занят.
type FileStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// LocalFileStorage реализация для локальной файловой системы
type LocalFileStorage struct {
	baseDir string // Базовый каталог для хранения (например: "./uploads")
	baseURL string // Базовый URL для доступа к файлам (например: "http://localhost:8080/uploads")
}

func NewLocalFileStorage(baseDir, baseURL string) (*LocalFileStorage, error) {
	// Создаем директорию, если она не существует
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *LocalFileStorage) Upload(ctx context.Context, key string, body io.Reader, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	filePath, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	// Пишем во временный файл и переименовываем, чтобы перезапись была атомарной
	tmp, err := os.CreateTemp(filepath.Dir(filePath), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer os.Remove(tmp.Name())

	done := make(chan struct{})
	var copyErr error

	go func() {
		_, copyErr = io.Copy(tmp, body)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			tmp.Close()
			return fmt.Errorf("failed to copy file: %w", copyErr)
		}
	case <-ctx.Done():
		tmp.Close()
		<-done
		return ctx.Err()
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return fmt.Errorf("failed to move file: %w", err)
	}

	return nil
}

// Delete удаляет файл из хранилища
func (s *LocalFileStorage) Delete(_ context.Context, key string) error {
	filePath, err := s.resolve(key)
	if err != nil {
		return err
	}

	return os.Remove(filePath)
}

// PublicURL возвращает адрес, по которому файл отдается наружу
func (s *LocalFileStorage) PublicURL(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}

	return s.baseURL + "/" + strings.Join(parts, "/")
}

// BaseDir каталог, который надо раздавать по BaseURL
func (s *LocalFileStorage) BaseDir() string {
	return s.baseDir
}

// resolve не дает ключу выйти за пределы baseDir
func (s *LocalFileStorage) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	if clean == string(filepath.Separator) {
		return "", fmt.Errorf("invalid key %q", key)
	}

	return filepath.Join(s.baseDir, clean), nil
}

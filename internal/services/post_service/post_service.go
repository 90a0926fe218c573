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
	"lavender_breeze/internal/storage"
	"lavender_breeze/internal/transport/http/dto"

	"github.com/google/uuid"
)

type PostService struct {
	log   *slog.Logger
	repo  repository.PostRepository
	media media.Uploader
}

func NewPostService(log *slog.Logger, repo repository.PostRepository, uploader media.Uploader) *PostService {
	return &PostService{
		log:   log,
		repo:  repo,
		media: uploader,
	}
}

// ListPosts посты зала по порядку
func (s *PostService) ListPosts(ctx context.Context, roomID uuid.UUID) ([]models.Post, error) {
	const op = "service.PostService.ListPosts"

	posts, err := s.repo.ListPosts(ctx, roomID)
	if err != nil {
		s.log.Error("failed to list posts", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return posts, nil
}

// GetPost ищет пост по id. Сегмент не в форме id сразу дает ErrNotFound.
func (s *PostService) GetPost(ctx context.Context, segment string) (models.Post, error) {
	const op = "service.PostService.GetPost"

	if !ident.IsUUID(segment) {
		return models.Post{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	post, err := s.repo.GetPostByID(ctx, uuid.MustParse(segment))
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	return post, nil
}

// CreatePost создает пост в зале, порядок считается среди постов зала
func (s *PostService) CreatePost(ctx context.Context, roomID uuid.UUID, form dto.PostForm) (models.Post, error) {
	const op = "service.PostService.CreatePost"
	log := s.log.With(
		slog.String("op", op),
		slog.String("room_id", roomID.String()),
		slog.String("title", form.Title),
	)

	log.Info("creating post")

	post := models.Post{
		RoomID:   &roomID,
		Title:    form.Title,
		Subtitle: dto.Optional(form.Subtitle),
		Content:  dto.Optional(form.Content),
	}

	var uploaded *media.Uploaded
	if form.Thumbnail != nil {
		up, err := s.media.Upload(ctx, media.PrefixPosts, form.Thumbnail)
		if err != nil {
			return models.Post{}, fmt.Errorf("%s: %w", op, failure.Upload(err))
		}
		uploaded = &up
		post.Thumbnail = &up.URL
	}

	max, err := s.repo.MaxPostOrder(ctx, roomID)
	if err != nil {
		log.Error("failed to read max order", sl.Err(err))
		s.orphan(uploaded, err)
		return models.Post{}, fmt.Errorf("%s: %w", op, failure.Save(err))
	}

	order := ordering.Next(max, form.Order)
	post.Order = &order

	id, err := s.repo.CreatePost(ctx, post)
	if err != nil {
		log.Error("failed to create post", sl.Err(err))
		s.orphan(uploaded, err)
		return models.Post{}, fmt.Errorf("%s: %w", op, failure.Save(err))
	}
	post.ID = id

	log.Info("post created", slog.String("id", id.String()), slog.Int("order", order))

	return post, nil
}

// UpdatePost обновляет пост, миниатюра меняется только при новом файле
func (s *PostService) UpdatePost(ctx context.Context, current models.Post, form dto.PostForm) (models.Post, error) {
	const op = "service.PostService.UpdatePost"
	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", current.ID.String()),
	)

	updated := current
	updated.Title = form.Title
	updated.Subtitle = dto.Optional(form.Subtitle)
	updated.Content = dto.Optional(form.Content)
	order := form.Order
	updated.Order = &order

	var uploaded *media.Uploaded
	if form.Thumbnail != nil {
		up, err := s.media.Upload(ctx, media.PrefixPosts, form.Thumbnail)
		if err != nil {
			return current, fmt.Errorf("%s: %w", op, failure.Upload(err))
		}
		uploaded = &up
		updated.Thumbnail = &up.URL
	}

	if err := s.repo.UpdatePost(ctx, updated); err != nil {
		log.Error("failed to update post", sl.Err(err))
		s.orphan(uploaded, err)
		return current, fmt.Errorf("%s: %w", op, failure.Save(err))
	}

	log.Info("post updated")

	return updated, nil
}

func (s *PostService) DeletePost(ctx context.Context, id uuid.UUID) error {
	const op = "service.PostService.DeletePost"
	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", id.String()),
	)

	if err := s.repo.DeletePost(ctx, id); err != nil {
		log.Error("failed to delete post", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post deleted")

	return nil
}

func (s *PostService) orphan(up *media.Uploaded, cause error) {
	if up != nil {
		s.media.Orphaned(*up, cause)
	}
}

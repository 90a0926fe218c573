package repository

import (
	"context"
	"fmt"

	"lavender_breeze/internal/domain/models"
	"lavender_breeze/internal/storage"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type PostRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewPostRepo(db *pgxpool.Pool) *PostRepo {
	return &PostRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var postColumns = []string{"id", "room_id", "title", "subtitle", "content", "thumbnail", `"order"`}

func scanPost(row pgx.Rows) (models.Post, error) {
	var p models.Post
	err := row.Scan(&p.ID, &p.RoomID, &p.Title, &p.Subtitle, &p.Content, &p.Thumbnail, &p.Order)
	return p, err
}

// CreatePost создает пост и возвращает его ID
func (r *PostRepo) CreatePost(ctx context.Context, post models.Post) (uuid.UUID, error) {
	const op = "repository.PostRepo.CreatePost"

	query, args, err := r.sb.Insert("posts").
		Columns("room_id", "title", "subtitle", "content", "thumbnail", `"order"`).
		Values(post.RoomID, post.Title, post.Subtitle, post.Content, post.Thumbnail, post.Order).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// UpdatePost обновляет пост, зал поста не меняется
func (r *PostRepo) UpdatePost(ctx context.Context, post models.Post) error {
	const op = "repository.PostRepo.UpdatePost"

	query, args, err := r.sb.Update("posts").
		Set("title", post.Title).
		Set("subtitle", post.Subtitle).
		Set("content", post.Content).
		Set("thumbnail", post.Thumbnail).
		Set(`"order"`, post.Order).
		Where(squirrel.Eq{"id": post.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *PostRepo) DeletePost(ctx context.Context, id uuid.UUID) error {
	const op = "repository.PostRepo.DeletePost"

	query, args, err := r.sb.Delete("posts").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// GetPostByID посты адресуются только по id
func (r *PostRepo) GetPostByID(ctx context.Context, id uuid.UUID) (models.Post, error) {
	const op = "repository.PostRepo.GetPostByID"

	query, args, err := r.sb.Select(postColumns...).
		From("posts").
		Where(squirrel.Eq{"id": id}).
		Limit(2).
		ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	post, err := scanOne(ctx, r.db, query, args, scanPost)
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, err)
	}

	return post, nil
}

// ListPosts возвращает посты зала в порядке показа
func (r *PostRepo) ListPosts(ctx context.Context, roomID uuid.UUID) ([]models.Post, error) {
	const op = "repository.PostRepo.ListPosts"

	query, args, err := r.sb.Select(postColumns...).
		From("posts").
		Where(squirrel.Eq{"room_id": roomID}).
		OrderBy(orderAsc, idAsc).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	posts, err := scanAll(rows, scanPost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return posts, nil
}

func (r *PostRepo) MaxPostOrder(ctx context.Context, roomID uuid.UUID) (*int, error) {
	const op = "repository.PostRepo.MaxPostOrder"

	query, args, err := r.sb.Select(`MAX("order")`).
		From("posts").
		Where(squirrel.Eq{"room_id": roomID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	max, err := maxOrder(ctx, r.db, query, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return max, nil
}

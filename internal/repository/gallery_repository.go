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

type GalleryRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewGalleryRepo(db *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var galleryItemColumns = []string{"id", "room_id", "image_url", "caption", "description", `"order"`}

func scanGalleryItem(row pgx.Rows) (models.GalleryItem, error) {
	var item models.GalleryItem
	err := row.Scan(&item.ID, &item.RoomID, &item.ImageURL, &item.Caption, &item.Description, &item.Order)
	return item, err
}

// CreateGalleryItem добавляет изображение в зал и возвращает его ID
func (r *GalleryRepo) CreateGalleryItem(ctx context.Context, item models.GalleryItem) (uuid.UUID, error) {
	const op = "repository.GalleryRepo.CreateGalleryItem"

	query, args, err := r.sb.Insert("gallery_items").
		Columns("room_id", "image_url", "caption", "description", `"order"`).
		Values(item.RoomID, item.ImageURL, item.Caption, item.Description, item.Order).
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

// UpdateGalleryItem обновляет данные изображения
func (r *GalleryRepo) UpdateGalleryItem(ctx context.Context, item models.GalleryItem) error {
	const op = "repository.GalleryRepo.UpdateGalleryItem"

	query, args, err := r.sb.Update("gallery_items").
		Set("image_url", item.ImageURL).
		Set("caption", item.Caption).
		Set("description", item.Description).
		Set(`"order"`, item.Order).
		Where(squirrel.Eq{"id": item.ID}).
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

// DeleteGalleryItem удаляет изображение по ID
func (r *GalleryRepo) DeleteGalleryItem(ctx context.Context, id uuid.UUID) error {
	const op = "repository.GalleryRepo.DeleteGalleryItem"

	query, args, err := r.sb.Delete("gallery_items").Where(squirrel.Eq{"id": id}).ToSql()
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

// GetGalleryItemByID возвращает изображение по ID
func (r *GalleryRepo) GetGalleryItemByID(ctx context.Context, id uuid.UUID) (models.GalleryItem, error) {
	const op = "repository.GalleryRepo.GetGalleryItemByID"

	query, args, err := r.sb.Select(galleryItemColumns...).
		From("gallery_items").
		Where(squirrel.Eq{"id": id}).
		Limit(2).
		ToSql()
	if err != nil {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	item, err := scanOne(ctx, r.db, query, args, scanGalleryItem)
	if err != nil {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

// ListGalleryItems возвращает изображения зала в порядке показа
func (r *GalleryRepo) ListGalleryItems(ctx context.Context, roomID uuid.UUID) ([]models.GalleryItem, error) {
	const op = "repository.GalleryRepo.ListGalleryItems"

	query, args, err := r.sb.Select(galleryItemColumns...).
		From("gallery_items").
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

	items, err := scanAll(rows, scanGalleryItem)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

func (r *GalleryRepo) MaxGalleryItemOrder(ctx context.Context, roomID uuid.UUID) (*int, error) {
	const op = "repository.GalleryRepo.MaxGalleryItemOrder"

	query, args, err := r.sb.Select(`MAX("order")`).
		From("gallery_items").
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

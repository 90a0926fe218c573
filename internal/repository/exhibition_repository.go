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

type ExhibitionRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewExhibitionRepo(db *pgxpool.Pool) *ExhibitionRepo {
	return &ExhibitionRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var exhibitionColumns = []string{"id", "slug", "title", "description", "cover_image", `"order"`, "created_at"}

func scanExhibition(row pgx.Rows) (models.Exhibition, error) {
	var e models.Exhibition
	err := row.Scan(&e.ID, &e.Slug, &e.Title, &e.Description, &e.CoverImage, &e.Order, &e.CreatedAt)
	return e, err
}

// CreateExhibition создает выставку и возвращает её ID
func (r *ExhibitionRepo) CreateExhibition(ctx context.Context, e models.Exhibition) (uuid.UUID, error) {
	const op = "repository.ExhibitionRepo.CreateExhibition"

	query, args, err := r.sb.Insert("exhibitions").
		Columns("slug", "title", "description", "cover_image", `"order"`).
		Values(e.Slug, e.Title, e.Description, e.CoverImage, e.Order).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrSlugTaken)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// UpdateExhibition обновляет все редактируемые поля выставки
func (r *ExhibitionRepo) UpdateExhibition(ctx context.Context, e models.Exhibition) error {
	const op = "repository.ExhibitionRepo.UpdateExhibition"

	query, args, err := r.sb.Update("exhibitions").
		Set("slug", e.Slug).
		Set("title", e.Title).
		Set("description", e.Description).
		Set("cover_image", e.CoverImage).
		Set(`"order"`, e.Order).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrSlugTaken)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteExhibition удаляет выставку вместе с залами и их содержимым
func (r *ExhibitionRepo) DeleteExhibition(ctx context.Context, id uuid.UUID) error {
	const op = "repository.ExhibitionRepo.DeleteExhibition"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	roomIDs, err := selectIDs(ctx, tx, r.sb.Select("id").From("rooms").Where(squirrel.Eq{"exhibition_id": id}))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := deleteRoomChildren(ctx, tx, r.sb, roomIDs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	steps := []squirrel.DeleteBuilder{
		r.sb.Delete("rooms").Where(squirrel.Eq{"exhibition_id": id}),
		r.sb.Delete("exhibitions").Where(squirrel.Eq{"id": id}),
	}

	var affected int64
	for _, step := range steps {
		query, args, err := step.ToSql()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		affected = tag.RowsAffected()
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetExhibition ищет выставку по id или slug
func (r *ExhibitionRepo) GetExhibition(ctx context.Context, column, value string) (models.Exhibition, error) {
	const op = "repository.ExhibitionRepo.GetExhibition"

	column, err := lookupColumn(column)
	if err != nil {
		return models.Exhibition{}, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Select(exhibitionColumns...).
		From("exhibitions").
		Where(squirrel.Eq{column: value}).
		Limit(2).
		ToSql()
	if err != nil {
		return models.Exhibition{}, fmt.Errorf("%s: %w", op, err)
	}

	e, err := scanOne(ctx, r.db, query, args, scanExhibition)
	if err != nil {
		return models.Exhibition{}, fmt.Errorf("%s: %w", op, err)
	}

	return e, nil
}

// ListExhibitions возвращает все выставки в порядке показа
func (r *ExhibitionRepo) ListExhibitions(ctx context.Context) ([]models.Exhibition, error) {
	const op = "repository.ExhibitionRepo.ListExhibitions"

	query, args, err := r.sb.Select(exhibitionColumns...).
		From("exhibitions").
		OrderBy(orderAsc, idAsc).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exhibitions, err := scanAll(rows, scanExhibition)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return exhibitions, nil
}

func (r *ExhibitionRepo) MaxExhibitionOrder(ctx context.Context) (*int, error) {
	const op = "repository.ExhibitionRepo.MaxExhibitionOrder"

	query, args, err := r.sb.Select(`MAX("order")`).From("exhibitions").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	max, err := maxOrder(ctx, r.db, query, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return max, nil
}

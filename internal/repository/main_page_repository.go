package repository

import (
	"context"
	"errors"
	"fmt"

	"lavender_breeze/internal/domain/models"
	"lavender_breeze/internal/storage"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
)

type MainPageRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewMainPageRepo(db *pgxpool.Pool) *MainPageRepo {
	return &MainPageRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetMainPage читает единственную строку главной. Если строки нет, возвращает ErrNotFound.
func (r *MainPageRepo) GetMainPage(ctx context.Context) (models.MainPage, error) {
	const op = "repository.MainPageRepo.GetMainPage"

	query, args, err := r.sb.Select("id", "main_image_url", "opening_text", "updated_at").
		From("main_page").
		Where(squirrel.Eq{"id": models.MainPageID}).
		ToSql()
	if err != nil {
		return models.MainPage{}, fmt.Errorf("%s: %w", op, err)
	}

	var page models.MainPage
	err = r.db.QueryRow(ctx, query, args...).Scan(&page.ID, &page.MainImageURL, &page.OpeningText, &page.UpdatedAt)
	if err != nil {
		if err = notFound(err); errors.Is(err, storage.ErrNotFound) {
			return models.MainPage{ID: models.MainPageID}, fmt.Errorf("%s: %w", op, err)
		}
		return models.MainPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// SaveMainPage вставляет или перезаписывает строку главной
func (r *MainPageRepo) SaveMainPage(ctx context.Context, page models.MainPage) error {
	const op = "repository.MainPageRepo.SaveMainPage"

	query, args, err := r.sb.Insert("main_page").
		Columns("id", "main_image_url", "opening_text", "updated_at").
		Values(models.MainPageID, page.MainImageURL, page.OpeningText, squirrel.Expr("NOW()")).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			main_image_url = EXCLUDED.main_image_url,
			opening_text = EXCLUDED.opening_text,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"lavender_breeze/internal/lib/ident"
	"lavender_breeze/internal/storage"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const (
	orderAsc = `"order" ASC NULLS LAST`
	idAsc    = "id ASC"

	uniqueViolation = "23505"
)

type Repository struct {
	db          *pgxpool.Pool
	Exhibitions *ExhibitionRepo
	Rooms       *RoomRepo
	Posts       *PostRepo
	Gallery     *GalleryRepo
	MainPage    *MainPageRepo
	Admins      *AdminRepo
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:          db,
		Exhibitions: NewExhibitionRepo(db),
		Rooms:       NewRoomRepo(db),
		Posts:       NewPostRepo(db),
		Gallery:     NewGalleryRepo(db),
		MainPage:    NewMainPageRepo(db),
		Admins:      NewAdminRepo(db),
	}
}

func (r *Repository) Close() {
	r.db.Close()
}

// lookupColumn пропускает только колонки, по которым допустим поиск из URL
func lookupColumn(column string) (string, error) {
	switch column {
	case ident.ColumnID, ident.ColumnSlug:
		return column, nil
	default:
		return "", fmt.Errorf("unsupported lookup column %q", column)
	}
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}

	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// scanOne читает не более одной строки: ноль строк это ErrNotFound,
// больше одной это ErrAmbiguous. Запрос должен иметь LIMIT 2.
func scanOne[T any](ctx context.Context, db *pgxpool.Pool, query string, args []interface{}, scan func(pgx.Rows) (T, error)) (T, error) {
	var zero T

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return zero, err
	}
	defer rows.Close()

	var (
		found T
		count int
	)
	for rows.Next() {
		count++
		if count > 1 {
			return zero, storage.ErrAmbiguous
		}

		found, err = scan(rows)
		if err != nil {
			return zero, err
		}
	}
	if err := rows.Err(); err != nil {
		return zero, err
	}

	if count == 0 {
		return zero, storage.ErrNotFound
	}

	return found, nil
}

func scanAll[T any](rows pgx.Rows, scan func(pgx.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// maxOrder возвращает MAX("order") по выборке или nil, если упорядоченных строк нет
func maxOrder(ctx context.Context, db *pgxpool.Pool, query string, args []interface{}) (*int, error) {
	var max *int
	if err := db.QueryRow(ctx, query, args...).Scan(&max); err != nil {
		return nil, err
	}

	return max, nil
}

func selectIDs(ctx context.Context, tx pgx.Tx, builder squirrel.SelectBuilder) ([]uuid.UUID, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return scanAll(rows, func(row pgx.Rows) (uuid.UUID, error) {
		var id uuid.UUID
		err := row.Scan(&id)
		return id, err
	})
}

// deleteRoomChildren удаляет изображения и посты перечисленных залов
func deleteRoomChildren(ctx context.Context, tx pgx.Tx, sb squirrel.StatementBuilderType, roomIDs []uuid.UUID) error {
	if len(roomIDs) == 0 {
		return nil
	}

	for _, table := range []string{"gallery_items", "posts"} {
		query, args, err := sb.Delete(table).Where(squirrel.Eq{"room_id": roomIDs}).ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}

	return nil
}

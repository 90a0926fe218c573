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

type RoomRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewRoomRepo(db *pgxpool.Pool) *RoomRepo {
	return &RoomRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var roomColumns = []string{
	"id", "exhibition_id", "slug", "title", "subtitle",
	"description", "cover_image_url", `"order"`, "type",
}

func scanRoom(row pgx.Rows) (models.Room, error) {
	var (
		room     models.Room
		roomType *string
	)

	err := row.Scan(
		&room.ID,
		&room.ExhibitionID,
		&room.Slug,
		&room.Title,
		&room.Subtitle,
		&room.Description,
		&room.CoverImageURL,
		&room.Order,
		&roomType,
	)
	if roomType != nil {
		t := models.RoomType(*roomType)
		room.Type = &t
	}

	return room, err
}

func roomTypeValue(t *models.RoomType) *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

// CreateRoom создает зал внутри выставки
func (r *RoomRepo) CreateRoom(ctx context.Context, room models.Room) (uuid.UUID, error) {
	const op = "repository.RoomRepo.CreateRoom"

	query, args, err := r.sb.Insert("rooms").
		Columns(
			"exhibition_id",
			"slug",
			"title",
			"subtitle",
			"description",
			"cover_image_url",
			`"order"`,
			"type",
		).
		Values(
			room.ExhibitionID,
			room.Slug,
			room.Title,
			room.Subtitle,
			room.Description,
			room.CoverImageURL,
			room.Order,
			roomTypeValue(room.Type),
		).
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

// UpdateRoom обновляет зал. Выставку зала сменить нельзя.
func (r *RoomRepo) UpdateRoom(ctx context.Context, room models.Room) error {
	const op = "repository.RoomRepo.UpdateRoom"

	query, args, err := r.sb.Update("rooms").
		Set("slug", room.Slug).
		Set("title", room.Title).
		Set("subtitle", room.Subtitle).
		Set("description", room.Description).
		Set("cover_image_url", room.CoverImageURL).
		Set(`"order"`, room.Order).
		Set("type", roomTypeValue(room.Type)).
		Where(squirrel.Eq{"id": room.ID, "exhibition_id": room.ExhibitionID}).
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

// DeleteRoom удаляет зал вместе с постами и изображениями
func (r *RoomRepo) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	const op = "repository.RoomRepo.DeleteRoom"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	if err := deleteRoomChildren(ctx, tx, r.sb, []uuid.UUID{id}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Delete("rooms").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetRoom ищет зал по id или slug среди всех выставок.
// Slug залов не уникален, поэтому совпадение нескольких строк дает ErrAmbiguous.
func (r *RoomRepo) GetRoom(ctx context.Context, column, value string) (models.Room, error) {
	const op = "repository.RoomRepo.GetRoom"

	room, err := r.getRoom(ctx, nil, column, value)
	if err != nil {
		return models.Room{}, fmt.Errorf("%s: %w", op, err)
	}

	return room, nil
}

// GetExhibitionRoom ищет зал по id или slug в пределах одной выставки
func (r *RoomRepo) GetExhibitionRoom(ctx context.Context, exhibitionID uuid.UUID, column, value string) (models.Room, error) {
	const op = "repository.RoomRepo.GetExhibitionRoom"

	room, err := r.getRoom(ctx, &exhibitionID, column, value)
	if err != nil {
		return models.Room{}, fmt.Errorf("%s: %w", op, err)
	}

	return room, nil
}

func (r *RoomRepo) getRoom(ctx context.Context, exhibitionID *uuid.UUID, column, value string) (models.Room, error) {
	column, err := lookupColumn(column)
	if err != nil {
		return models.Room{}, err
	}

	where := squirrel.Eq{column: value}
	if exhibitionID != nil {
		where["exhibition_id"] = *exhibitionID
	}

	query, args, err := r.sb.Select(roomColumns...).
		From("rooms").
		Where(where).
		Limit(2).
		ToSql()
	if err != nil {
		return models.Room{}, err
	}

	return scanOne(ctx, r.db, query, args, scanRoom)
}

// ListRooms возвращает залы выставки в порядке показа
func (r *RoomRepo) ListRooms(ctx context.Context, exhibitionID uuid.UUID) ([]models.Room, error) {
	const op = "repository.RoomRepo.ListRooms"

	query, args, err := r.sb.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"exhibition_id": exhibitionID}).
		OrderBy(orderAsc, idAsc).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rooms, err := scanAll(rows, scanRoom)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rooms, nil
}

func (r *RoomRepo) MaxRoomOrder(ctx context.Context, exhibitionID uuid.UUID) (*int, error) {
	const op = "repository.RoomRepo.MaxRoomOrder"

	query, args, err := r.sb.Select(`MAX("order")`).
		From("rooms").
		Where(squirrel.Eq{"exhibition_id": exhibitionID}).
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

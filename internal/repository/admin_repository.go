package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lavender_breeze/internal/domain/models"
	"lavender_breeze/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

type AdminRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewAdminRepo(db *pgxpool.Pool) *AdminRepo {
	return &AdminRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *AdminRepo) SaveAdmin(ctx context.Context, email string, passwordHash []byte) (uuid.UUID, error) {
	const op = "repository.admin_repository.SaveAdmin"

	query, args, err := r.sb.Insert("admin_users").
		Columns("email", "password_hash").
		Values(strings.ToLower(email), passwordHash).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrAdminExists)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *AdminRepo) AdminByEmail(ctx context.Context, email string) (models.AdminUser, error) {
	const op = "repository.admin_repository.AdminByEmail"

	return r.admin(ctx, op, sq.Eq{"email": strings.ToLower(email)})
}

func (r *AdminRepo) AdminByID(ctx context.Context, id uuid.UUID) (models.AdminUser, error) {
	const op = "repository.admin_repository.AdminByID"

	return r.admin(ctx, op, sq.Eq{"id": id})
}

func (r *AdminRepo) admin(ctx context.Context, op string, where sq.Eq) (models.AdminUser, error) {
	query, args, err := r.sb.Select("id", "email", "password_hash", "created_at").
		From("admin_users").
		Where(where).
		ToSql()
	if err != nil {
		return models.AdminUser{}, fmt.Errorf("%s: %w", op, err)
	}

	var admin models.AdminUser
	err = r.db.QueryRow(ctx, query, args...).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(notFound(err), storage.ErrNotFound) {
			return models.AdminUser{}, fmt.Errorf("%s: %w", op, storage.ErrAdminNotFound)
		}
		return models.AdminUser{}, fmt.Errorf("%s: %w", op, err)
	}

	return admin, nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"lavender_breeze/internal/domain/models"
	"lavender_breeze/internal/lib/logger/sl"
	"lavender_breeze/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminExist         = errors.New("admin already exist")
	ErrAdminNotFound      = errors.New("admin not found")
)

type Auth struct {
	log           *slog.Logger
	adminSaver    AdminSaver
	adminProvider AdminProvider
}

type AdminSaver interface {
	SaveAdmin(ctx context.Context, email string, passwordHash []byte) (uuid.UUID, error)
}

type AdminProvider interface {
	AdminByEmail(ctx context.Context, email string) (models.AdminUser, error)
	AdminByID(ctx context.Context, id uuid.UUID) (models.AdminUser, error)
}

func New(log *slog.Logger, adminSaver AdminSaver, adminProvider AdminProvider) *Auth {
	return &Auth{
		log:           log,
		adminSaver:    adminSaver,
		adminProvider: adminProvider,
	}
}

// SignIn проверяет пароль администратора. Неизвестный email и неверный
// пароль неразличимы для вызывающего.
func (a *Auth) SignIn(ctx context.Context, email, password string) (models.AdminUser, error) {
	const op = "auth.SignIn"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("attempting to sign in")

	admin, err := a.adminProvider.AdminByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, storage.ErrAdminNotFound) {
			log.Warn("admin not found", sl.Err(err))

			return models.AdminUser{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get admin", sl.Err(err))

		return models.AdminUser{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return models.AdminUser{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	log.Info("admin signed in")

	return admin, nil
}

// Admin нужен проверке сессии: администратор мог быть удален после входа
func (a *Auth) Admin(ctx context.Context, id uuid.UUID) (models.AdminUser, error) {
	const op = "auth.Admin"

	admin, err := a.adminProvider.AdminByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrAdminNotFound) {
			return models.AdminUser{}, fmt.Errorf("%s: %w", op, ErrAdminNotFound)
		}

		return models.AdminUser{}, fmt.Errorf("%s: %w", op, err)
	}

	return admin, nil
}

func (a *Auth) RegisterAdmin(ctx context.Context, email, pass string) (uuid.UUID, error) {
	const op = "auth.RegisterAdmin"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("register admin")

	passHash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := a.adminSaver.SaveAdmin(ctx, strings.TrimSpace(email), passHash)
	if err != nil {
		if errors.Is(err, storage.ErrAdminExists) {
			log.Warn("admin already exist", sl.Err(err))

			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrAdminExist)
		}

		log.Error("failed to save admin", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin registered")

	return id, nil
}

// EnsureAdmin создает стартового администратора из конфига, если его еще нет.
// Пустой email ничего не делает.
func (a *Auth) EnsureAdmin(ctx context.Context, email, pass string) error {
	const op = "auth.EnsureAdmin"

	if strings.TrimSpace(email) == "" {
		return nil
	}

	if _, err := a.RegisterAdmin(ctx, email, pass); err != nil {
		if errors.Is(err, ErrAdminExist) {
			return nil
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

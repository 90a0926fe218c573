package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

type Storage struct {
	db *pgxpool.Pool
}

const (
	// tables
	ExhibitionsTable  = "exhibitions"
	RoomsTable        = "rooms"
	PostsTable        = "posts"
	GalleryItemsTable = "gallery_items"
	MainPageTable     = "main_page"
	AdminUsersTable   = "admin_users"
)

// schema применяется при каждом старте, поэтому только IF NOT EXISTS.
const schema = `
CREATE TABLE IF NOT EXISTS exhibitions (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	slug        TEXT UNIQUE,
	title       TEXT NOT NULL,
	description TEXT,
	cover_image TEXT,
	"order"     INT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS rooms (
	id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	exhibition_id   UUID NOT NULL REFERENCES exhibitions(id),
	slug            TEXT,
	title           TEXT NOT NULL,
	subtitle        TEXT,
	description     TEXT,
	cover_image_url TEXT,
	"order"         INT,
	type            TEXT CHECK (type IN ('text', 'image'))
);

CREATE INDEX IF NOT EXISTS rooms_exhibition_id_idx ON rooms (exhibition_id);
CREATE INDEX IF NOT EXISTS rooms_slug_idx ON rooms (slug);

CREATE TABLE IF NOT EXISTS posts (
	id        UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	room_id   UUID REFERENCES rooms(id),
	title     TEXT NOT NULL,
	subtitle  TEXT,
	content   TEXT,
	thumbnail TEXT,
	"order"   INT
);

CREATE INDEX IF NOT EXISTS posts_room_id_idx ON posts (room_id);

CREATE TABLE IF NOT EXISTS gallery_items (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	room_id     UUID NOT NULL REFERENCES rooms(id),
	image_url   TEXT,
	caption     TEXT,
	description TEXT,
	"order"     INT
);

CREATE INDEX IF NOT EXISTS gallery_items_room_id_idx ON gallery_items (room_id);

CREATE TABLE IF NOT EXISTS main_page (
	id             TEXT PRIMARY KEY,
	main_image_url TEXT,
	opening_text   TEXT,
	updated_at     TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS admin_users (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	email         TEXT UNIQUE NOT NULL,
	password_hash BYTEA NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

func New(ctx context.Context, dsn string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// Migrate создает таблицы, если их еще нет
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgresql.Migrate"

	if err := Migrate(ctx, s.db); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schema)
	return err
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.db
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Storage) Stop() {
	s.db.Close()
}

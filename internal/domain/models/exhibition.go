package models

import (
	"time"

	"github.com/google/uuid"
)

// Exhibition верхний уровень каталога
type Exhibition struct {
	ID uuid.UUID `json:"id"`
	// Slug человекочитаемый адрес, может отсутствовать
	Slug        *string   `json:"slug"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CoverImage  *string   `json:"cover_image"`
	Order       *int      `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e Exhibition) Identity() (string, *string) {
	return e.ID.String(), e.Slug
}

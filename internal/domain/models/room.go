package models

import (
	"fmt"

	"github.com/google/uuid"
)

type RoomType string

const (
	RoomTypeText  RoomType = "text"
	RoomTypeImage RoomType = "image"
)

func (t RoomType) Valid() bool {
	return t == RoomTypeText || t == RoomTypeImage
}

// Room зал выставки: текстовый (посты) или графический (галерея)
type Room struct {
	ID            uuid.UUID `json:"id"`
	ExhibitionID  uuid.UUID `json:"exhibition_id"`
	Slug          *string   `json:"slug"`
	Title         string    `json:"title"`
	Subtitle      *string   `json:"subtitle"`
	Description   *string   `json:"description"`
	CoverImageURL *string   `json:"cover_image_url"`
	Order         *int      `json:"order"`
	Type          *RoomType `json:"type"`
}

func (r Room) Identity() (string, *string) {
	return r.ID.String(), r.Slug
}

// IsImage true только для явно графического зала.
func (r Room) IsImage() bool {
	return r.Type != nil && *r.Type == RoomTypeImage
}

// IsText true только для явно текстового зала. У зала без типа нет ни
// постов, ни галереи: публично он показывается пустой галереей.
func (r Room) IsText() bool {
	return r.Type != nil && *r.Type == RoomTypeText
}

// DisplayTitle подставляет "Room N" для зала без заголовка.
func (r Room) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	if r.Order != nil {
		return fmt.Sprintf("Room %d", *r.Order)
	}

	return "Room"
}

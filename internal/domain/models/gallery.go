package models

import (
	"github.com/google/uuid"
)

// GalleryItem изображение графического зала
type GalleryItem struct {
	ID          uuid.UUID `json:"id"`
	RoomID      uuid.UUID `json:"room_id"`
	ImageURL    *string   `json:"image_url"`
	Caption     *string   `json:"caption"`
	Description *string   `json:"description"`
	Order       *int      `json:"order"`
}

package models

import (
	"github.com/google/uuid"
)

// Post запись текстового зала
type Post struct {
	ID        uuid.UUID  `json:"id"`
	RoomID    *uuid.UUID `json:"room_id"`
	Title     string     `json:"title"`
	Subtitle  *string    `json:"subtitle"`
	Content   *string    `json:"content"`
	Thumbnail *string    `json:"thumbnail"`
	Order     *int       `json:"order"`
}

package models

import (
	"strings"
	"time"
)

const MainPageID = "main"

// DefaultOpeningText показывается, пока текст главной не задан.
const DefaultOpeningText = "Thank you for visiting the gallery.\nHere you can discover a variety of exhibitions and works."

type MainPage struct {
	ID           string     `json:"id"`
	MainImageURL *string    `json:"main_image_url"`
	OpeningText  *string    `json:"opening_text"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

func (m MainPage) Text() string {
	if m.OpeningText == nil || strings.TrimSpace(*m.OpeningText) == "" {
		return DefaultOpeningText
	}

	return strings.TrimSpace(*m.OpeningText)
}

package dto

import (
	"mime/multipart"
	"strings"
)

// ExhibitionForm поля формы выставки
type ExhibitionForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"omitempty,max=120,excludesall=/?#"`
	Description string `form:"description" validate:"max=5000"`
	Order       int    `form:"order"`

	Cover *multipart.FileHeader `form:"-" validate:"-"`
}

// RoomForm поля формы зала
type RoomForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"omitempty,max=120,excludesall=/?#"`
	Subtitle    string `form:"subtitle" validate:"max=300"`
	Description string `form:"description" validate:"max=5000"`
	Order       int    `form:"order"`
	Type        string `form:"type" validate:"omitempty,oneof=text image"`

	Cover *multipart.FileHeader `form:"-" validate:"-"`
}

// PostForm поля формы поста
type PostForm struct {
	Title    string `form:"title" validate:"required,max=300"`
	Subtitle string `form:"subtitle" validate:"max=300"`
	Content  string `form:"content"`
	Order    int    `form:"order"`

	Thumbnail *multipart.FileHeader `form:"-" validate:"-"`
}

// GalleryItemForm поля формы изображения. Файл обязателен только при создании.
type GalleryItemForm struct {
	Caption     string `form:"caption" validate:"max=300"`
	Description string `form:"description" validate:"max=5000"`
	Order       int    `form:"order"`

	Image *multipart.FileHeader `form:"-" validate:"-"`
}

// MainPageForm поля формы главной страницы
type MainPageForm struct {
	OpeningText string `form:"opening_text" validate:"max=10000"`

	Image *multipart.FileHeader `form:"-" validate:"-"`
}

// Optional обрезает пробелы, пустая строка превращается в nil
func Optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}

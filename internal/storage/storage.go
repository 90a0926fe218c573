package storage

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrAmbiguous   = errors.New("more than one row matches")
	ErrSlugTaken   = errors.New("slug already taken")
	ErrInvalidSlug = errors.New("slug must be one url segment and not look like an id")
)

var (
	ErrAdminNotFound = errors.New("admin not found")
	ErrAdminExists   = errors.New("admin already exists")
)

var ErrFileTooLarge = errors.New("file size exceeds limit")

// Package ident resolves a URL segment that may carry either a row id or a
// human readable slug, and decides when the address should be rewritten to
// its canonical form.
package ident

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"

	"lavender_breeze/internal/storage"
)

const (
	ColumnID   = "id"
	ColumnSlug = "slug"
)

var (
	uuidPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	slugPattern = regexp.MustCompile(`^[\p{L}\p{N}._~-]+$`)
)

// IsUUID reports whether s has the canonical 8-4-4-4-12 hex shape.
// Version and variant nibbles are not checked.
func IsUUID(s string) bool {
	return uuidPattern.MatchString(s)
}

// Column picks the lookup column for a segment.
func Column(segment string) string {
	if IsUUID(segment) {
		return ColumnID
	}

	return ColumnSlug
}

// Keyed is a row addressable by id and optional slug.
type Keyed interface {
	Identity() (id string, slug *string)
}

// Segment returns the preferred path segment for a row: its slug when the
// slug is set and cannot be mistaken for an id, otherwise the id.
func Segment(id string, slug *string) string {
	if hasUsableSlug(slug) {
		return *slug
	}

	return id
}

func hasUsableSlug(slug *string) bool {
	return slug != nil && *slug != "" && !IsUUID(*slug)
}

// SegmentOf is Segment for a Keyed row.
func SegmentOf(row Keyed) string {
	return Segment(row.Identity())
}

type Outcome int

const (
	NotFound Outcome = iota
	Canonical
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Canonical:
		return "canonical"
	case Redirect:
		return "redirect"
	default:
		return "not_found"
	}
}

type Result[T Keyed] struct {
	Outcome Outcome
	Row     T
	// Segment is the canonical segment. Empty when Outcome is NotFound.
	Segment string
}

// Lookup fetches zero or one row where column equals value. A missing row is
// reported with storage.ErrNotFound, several matches with storage.ErrAmbiguous.
type Lookup[T Keyed] func(ctx context.Context, column, value string) (T, error)

// Resolve looks the segment up by the column its shape implies. A row found by
// id that has a usable slug resolves to Redirect; a row found by slug never
// redirects. The segment may arrive still percent-encoded from the raw path.
func Resolve[T Keyed](ctx context.Context, segment string, lookup Lookup[T]) (Result[T], error) {
	var res Result[T]

	if unescaped, err := url.PathUnescape(segment); err == nil {
		segment = unescaped
	}

	if segment == "" {
		return res, nil
	}

	column := Column(segment)

	row, err := lookup(ctx, column, segment)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrAmbiguous) {
			return res, nil
		}

		return res, err
	}

	res.Row = row
	res.Segment = SegmentOf(row)
	res.Outcome = Canonical

	if _, slug := row.Identity(); column == ColumnID && hasUsableSlug(slug) {
		res.Outcome = Redirect
	}

	return res, nil
}

// NormalizeSlug trims s. Blank becomes nil. A slug shaped like an id is
// rejected because lookups would always take the id branch for it. Only
// letters, digits and "-._~" are allowed so the slug is one path segment.
func NormalizeSlug(s string) (*string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if IsUUID(s) || !slugPattern.MatchString(s) || s == "." || s == ".." {
		return nil, storage.ErrInvalidSlug
	}

	return &s, nil
}

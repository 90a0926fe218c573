package http

import (
	"strings"

	"lavender_breeze/internal/lib/ident"
	"lavender_breeze/internal/transport/http/views"
)

var crumbLabels = map[string]string{
	"admin":       "Admin",
	"exhibitions": "Exhibitions",
	"new":         "New",
	"rooms":       "Rooms",
	"posts":       "Posts",
	"gallery":     "Gallery",
}

// Breadcrumb builds the admin trail from the request path. Every step links
// to its prefix except the last one.
func Breadcrumb(path string) []views.Crumb {
	parts := strings.Split(strings.Trim(path, "/"), "/")

	var crumbs []views.Crumb
	href := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		href += "/" + p

		label, ok := crumbLabels[p]
		switch {
		case ok:
		case ident.IsUUID(p):
			label = "Detail"
		default:
			label = p
		}

		crumbs = append(crumbs, views.Crumb{Label: label, Href: href})
	}

	if n := len(crumbs); n > 0 {
		crumbs[n-1].Href = ""
	}

	return crumbs
}

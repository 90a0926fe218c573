package views_test

import (
	"bytes"
	"context"
	"testing"

	"lavender_breeze/internal/transport/http/views"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, cmp templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, cmp.Render(context.Background(), &buf))

	return buf.String()
}

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "single line", in: "hello", want: []string{"hello"}},
		{name: "blank lines dropped", in: "one\n\n  two  \r\n\nthree", want: []string{"one", "two", "three"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, views.Paragraphs(tt.in))
		})
	}
}

func TestMainPage_EscapesText(t *testing.T) {
	out := render(t, views.MainPage(views.MainData{
		Meta:        views.Meta{Title: "Gallery"},
		OpeningText: "First line\n<script>alert(1)</script>",
	}))

	assert.Contains(t, out, "<p>First line</p>")
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRoom_PagerHiddenOnSinglePage(t *testing.T) {
	single := render(t, views.Room(views.RoomData{
		Meta:   views.Meta{Title: "Hall"},
		Poster: views.Poster{Title: "Hall"},
		Pager:  views.Pager{Pages: []views.PageLink{{Number: 1, Href: "/rooms/hall?page=1", Current: true}}},
	}))
	assert.NotContains(t, single, "?page=1")

	several := render(t, views.Room(views.RoomData{
		Meta:   views.Meta{Title: "Hall"},
		Poster: views.Poster{Title: "Hall"},
		Pager: views.Pager{
			Next: "/rooms/hall?page=2",
			Pages: []views.PageLink{
				{Number: 1, Href: "/rooms/hall?page=1", Current: true},
				{Number: 2, Href: "/rooms/hall?page=2"},
			},
		},
	}))
	assert.Contains(t, several, "/rooms/hall?page=2")
}

func TestNotFound(t *testing.T) {
	out := render(t, views.NotFound())

	assert.Contains(t, out, "Not found")
	assert.Contains(t, out, `href="/main"`)
}

func TestForm_RendersFieldsAndCSRF(t *testing.T) {
	out := render(t, views.Form(views.FormData{
		Meta:         views.Meta{Title: "Edit", CSRF: "tok123", Admin: true},
		Heading:      "Edit",
		Action:       "/admin/exhibitions/spring",
		Error:        "Save failed: slug taken",
		DeleteAction: "/admin/exhibitions/spring/delete",
		Fields: []views.Field{
			{Name: "title", Label: "Title", Kind: views.FieldText, Value: "Spring", Required: true},
			{Name: "type", Label: "Type", Kind: views.FieldSelect, Options: []views.Option{
				{Value: "text", Label: "Text"},
				{Value: "image", Label: "Image", Selected: true},
			}},
			{Name: "cover", Label: "Cover", Kind: views.FieldFile, Preview: "/uploads/exhibitions/a.png"},
		},
	}))

	assert.Contains(t, out, `value="tok123"`)
	assert.Contains(t, out, `name="title" value="Spring" required`)
	assert.Contains(t, out, `<option value="image" selected>`)
	assert.Contains(t, out, `src="/uploads/exhibitions/a.png"`)
	assert.Contains(t, out, "Save failed: slug taken")
	assert.Contains(t, out, `action="/admin/exhibitions/spring/delete"`)
}

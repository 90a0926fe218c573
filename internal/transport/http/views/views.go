// Package views holds the page templates. Pages are html/template files
// embedded in the binary and exposed as templ components.
package views

import (
	"embed"
	"html/template"
	"strings"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var files embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"paragraphs": Paragraphs,
}).ParseFS(files, "templates/*.html"))

func page(name string, data any) templ.Component {
	return templ.FromGoHTML(pages.Lookup(name), data)
}

// Paragraphs splits text on blank-line or newline boundaries and drops empty
// lines.
func Paragraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Meta is shared by every page.
type Meta struct {
	Title  string
	CSRF   string
	Admin  bool
	Crumbs []Crumb
}

// Crumb is one breadcrumb step. The last one has no Href.
type Crumb struct {
	Label string
	Href  string
}

// Card is a tile in an exhibition, post or gallery grid.
type Card struct {
	Href     string
	Title    string
	Subtitle string
	Image    string
}

type PageLink struct {
	Number   int
	Href     string
	Current  bool
	Ellipsis bool
}

type Pager struct {
	Prev  string
	Next  string
	Pages []PageLink
}

// Show is false when everything fits on one page.
func (p Pager) Show() bool {
	return len(p.Pages) > 1
}

type MainData struct {
	Meta
	ImageURL    string
	OpeningText string
}

func MainPage(d MainData) templ.Component { return page("main.html", d) }

type ExhibitionsData struct {
	Meta
	Cards []Card
}

func Exhibitions(d ExhibitionsData) templ.Component { return page("exhibitions.html", d) }

type PreparingData struct {
	Meta
	Exhibition string
}

func Preparing(d PreparingData) templ.Component { return page("preparing.html", d) }

type SwitchItem struct {
	Label   string
	Href    string
	Current bool
}

type Poster struct {
	Title       string
	Subtitle    string
	Description string
	Image       string
}

type Lightbox struct {
	Image       string
	Caption     string
	Description string
	CloseHref   string
}

type RoomData struct {
	Meta
	Exhibition     string
	ExhibitionHref string
	Poster         Poster
	Switcher       []SwitchItem
	IsImage        bool
	Cards          []Card
	Pager          Pager
	Modal          *Lightbox
}

func Room(d RoomData) templ.Component { return page("room.html", d) }

type PostData struct {
	Meta
	Title     string
	Subtitle  string
	Thumbnail string
	Content   string
	BackHref  string
}

func Post(d PostData) templ.Component { return page("post.html", d) }

func NotFound() templ.Component {
	return page("not_found.html", Meta{Title: "Not found"})
}

func ServerError() templ.Component {
	return page("server_error.html", Meta{Title: "Something went wrong"})
}

type LoginData struct {
	Meta
	Email   string
	Error   string
	Blocked bool
}

func Login(d LoginData) templ.Component { return page("login.html", d) }

// Row is a line in an admin list.
type Row struct {
	Href     string
	Title    string
	Subtitle string
	Image    string
	Order    string
}

type Link struct {
	Label string
	Href  string
}

type DashboardData struct {
	Meta
	MainImage   string
	OpeningText string
	Error       string
	Notice      string
	Links       []Link
}

func Dashboard(d DashboardData) templ.Component { return page("dashboard.html", d) }

type ListData struct {
	Meta
	Heading string
	NewHref string
	Links   []Link
	Rows    []Row
}

func List(d ListData) templ.Component { return page("list.html", d) }

type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldNumber   FieldKind = "number"
	FieldTextarea FieldKind = "textarea"
	FieldSelect   FieldKind = "select"
	FieldFile     FieldKind = "file"
)

type Option struct {
	Value    string
	Label    string
	Selected bool
}

type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Value    string
	Preview  string
	Options  []Option
	Required bool
	Hint     string
}

type FormData struct {
	Meta
	Heading      string
	Action       string
	Error        string
	Fields       []Field
	DeleteAction string
	Links        []Link
}

func Form(d FormData) templ.Component { return page("form.html", d) }

package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"lavender_breeze/internal/lib/ident"
	"lavender_breeze/internal/lib/logger/sl"
	"lavender_breeze/internal/repository"

	"github.com/xuri/excelize/v2"
)

const (
	SheetExhibitions = "Exhibitions"
	SheetRooms       = "Rooms"
	SheetPosts       = "Posts"
	SheetGallery     = "Gallery"
)

var (
	exhibitionHeaders = []string{"ID", "Slug", "Title", "Description", "Cover Image", "Order", "Created At"}
	roomHeaders       = []string{"ID", "Exhibition", "Slug", "Title", "Subtitle", "Type", "Cover Image", "Order"}
	postHeaders       = []string{"ID", "Exhibition", "Room", "Title", "Subtitle", "Thumbnail", "Order"}
	galleryHeaders    = []string{"ID", "Exhibition", "Room", "Image", "Caption", "Description", "Order"}
)

type ExportService struct {
	log         *slog.Logger
	exhibitions repository.ExhibitionRepository
	rooms       repository.RoomRepository
	posts       repository.PostRepository
	gallery     repository.GalleryRepository
}

func NewExportService(
	log *slog.Logger,
	exhibitions repository.ExhibitionRepository,
	rooms repository.RoomRepository,
	posts repository.PostRepository,
	gallery repository.GalleryRepository,
) *ExportService {
	return &ExportService{
		log:         log,
		exhibitions: exhibitions,
		rooms:       rooms,
		posts:       posts,
		gallery:     gallery,
	}
}

// Catalogue выгрузка всего каталога в том порядке, в каком его видят посетители
type Catalogue struct {
	Exhibitions [][]any
	Rooms       [][]any
	Posts       [][]any
	Gallery     [][]any
}

// Collect обходит иерархию выставка -> зал -> посты или изображения
func (s *ExportService) Collect(ctx context.Context) (Catalogue, error) {
	const op = "service.ExportService.Collect"

	var cat Catalogue

	exhibitions, err := s.exhibitions.ListExhibitions(ctx)
	if err != nil {
		return cat, fmt.Errorf("%s: %w", op, err)
	}

	for _, ex := range exhibitions {
		exSegment := ident.SegmentOf(ex)
		cat.Exhibitions = append(cat.Exhibitions, []any{
			ex.ID.String(), deref(ex.Slug), ex.Title, deref(ex.Description), deref(ex.CoverImage), orderValue(ex.Order), ex.CreatedAt,
		})

		rooms, err := s.rooms.ListRooms(ctx, ex.ID)
		if err != nil {
			return cat, fmt.Errorf("%s: %w", op, err)
		}

		for _, room := range rooms {
			roomSegment := ident.SegmentOf(room)
			var roomType string
			if room.Type != nil {
				roomType = string(*room.Type)
			}

			cat.Rooms = append(cat.Rooms, []any{
				room.ID.String(), exSegment, deref(room.Slug), room.DisplayTitle(), deref(room.Subtitle), roomType, deref(room.CoverImageURL), orderValue(room.Order),
			})

			if room.IsImage() {
				items, err := s.gallery.ListGalleryItems(ctx, room.ID)
				if err != nil {
					return cat, fmt.Errorf("%s: %w", op, err)
				}
				for _, item := range items {
					cat.Gallery = append(cat.Gallery, []any{
						item.ID.String(), exSegment, roomSegment, deref(item.ImageURL), deref(item.Caption), deref(item.Description), orderValue(item.Order),
					})
				}
				continue
			}

			posts, err := s.posts.ListPosts(ctx, room.ID)
			if err != nil {
				return cat, fmt.Errorf("%s: %w", op, err)
			}
			for _, post := range posts {
				cat.Posts = append(cat.Posts, []any{
					post.ID.String(), exSegment, roomSegment, post.Title, deref(post.Subtitle), deref(post.Thumbnail), orderValue(post.Order),
				})
			}
		}
	}

	return cat, nil
}

// WriteXLSX пишет каталог в w как книгу xlsx с листом на каждый тип записей
func (s *ExportService) WriteXLSX(ctx context.Context, w io.Writer) error {
	const op = "service.ExportService.WriteXLSX"
	log := s.log.With(slog.String("op", op))

	cat, err := s.Collect(ctx)
	if err != nil {
		log.Error("failed to collect catalogue", sl.Err(err))
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name    string
		headers []string
		rows    [][]any
	}{
		{SheetExhibitions, exhibitionHeaders, cat.Exhibitions},
		{SheetRooms, roomHeaders, cat.Rooms},
		{SheetPosts, postHeaders, cat.Posts},
		{SheetGallery, galleryHeaders, cat.Gallery},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#EDE7F6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("%s: header style: %w", op, err)
	}

	for i, sh := range sheets {
		index, err := f.NewSheet(sh.name)
		if err != nil {
			return fmt.Errorf("%s: sheet %s: %w", op, sh.name, err)
		}
		if i == 0 {
			f.SetActiveSheet(index)
		}

		if err := writeSheet(f, sh.name, sh.headers, sh.rows, headerStyle); err != nil {
			return fmt.Errorf("%s: sheet %s: %w", op, sh.name, err)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := f.Write(w); err != nil {
		log.Error("failed to write workbook", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("catalogue exported",
		slog.Int("exhibitions", len(cat.Exhibitions)),
		slog.Int("rooms", len(cat.Rooms)),
		slog.Int("posts", len(cat.Posts)),
		slog.Int("gallery_items", len(cat.Gallery)),
	)

	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any, headerStyle int) error {
	for col, header := range headers {
		if err := setCellValue(f, sheet, col+1, 1, header); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for r, row := range rows {
		for c, value := range row {
			if value == nil || value == "" {
				continue
			}
			if err := setCellValue(f, sheet, c+1, r+2, value); err != nil {
				return err
			}
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func setCellValue(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}

	return f.SetCellValue(sheet, cell, value)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// orderValue оставляет ячейку пустой для записи без порядка
func orderValue(o *int) any {
	if o == nil {
		return nil
	}

	return *o
}

// Package xlsx is the excelize-backed report sink.
package xlsx

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/AnyUserName/swatchcard/internal/apperr"
	"github.com/AnyUserName/swatchcard/internal/placement"
	"github.com/AnyUserName/swatchcard/internal/report"
)

// Sink writes one worksheet of an in-memory workbook. Not safe for
// concurrent use; create one per report.
type Sink struct {
	f      *excelize.File
	sheet  string
	styles map[string]int
}

var _ report.Sink = (*Sink)(nil)

// New creates a workbook with a single sheet named sheetName.
func New(sheetName string) (*Sink, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("name sheet %q: %w", sheetName, err)
	}
	return &Sink{f: f, sheet: sheetName, styles: map[string]int{}}, nil
}

// Close releases the workbook.
func (s *Sink) Close() error { return s.f.Close() }

func (s *Sink) SetProperties(p report.DocProps) error {
	if err := s.f.SetDocProps(&excelize.DocProperties{
		Title:   p.Title,
		Creator: p.Author,
	}); err != nil {
		return err
	}
	return s.f.SetAppProps(&excelize.AppProperties{Company: p.Company})
}

func (s *Sink) DefineStyle(name string, cs report.CellStyle) error {
	st := &excelize.Style{
		Font: &excelize.Font{
			Bold:   cs.Bold,
			Family: cs.FontFamily,
			Size:   cs.FontSize,
			Color:  cs.FontColor,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   cs.Wrap,
		},
	}
	if cs.Background != "" {
		st.Fill = excelize.Fill{Type: "pattern", Color: []string{cs.Background}, Pattern: 1}
	}
	if cs.Border != "" {
		for _, side := range []string{"left", "top", "right", "bottom"} {
			st.Border = append(st.Border, excelize.Border{Type: side, Color: cs.Border, Style: 1})
		}
	}

	id, err := s.f.NewStyle(st)
	if err != nil {
		return fmt.Errorf("style %s: %w", name, err)
	}
	s.styles[name] = id
	return nil
}

func (s *Sink) SetText(row, col int, text, style string) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return err
	}
	if err := s.f.SetCellValue(s.sheet, cell, text); err != nil {
		return err
	}
	if style == "" {
		return nil
	}
	id, ok := s.styles[style]
	if !ok {
		return fmt.Errorf("undefined style %q", style)
	}
	return s.f.SetCellStyle(s.sheet, cell, cell, id)
}

// EmbedImage anchors img at the top-left of the cell, scaled and offset by
// pl. ext is the extension img was encoded with. Buffers excelize cannot
// read are reported as ErrEmbedFailure.
func (s *Sink) EmbedImage(row, col int, img []byte, ext string, pl placement.Placement) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return err
	}
	dotted, err := extension(ext)
	if err != nil {
		return err
	}

	err = s.f.AddPictureFromBytes(s.sheet, cell, &excelize.Picture{
		Extension: dotted,
		File:      img,
		Format: &excelize.GraphicOptions{
			ScaleX:          pl.ScaleX,
			ScaleY:          pl.ScaleY,
			OffsetX:         int(math.Round(pl.OffsetX)),
			OffsetY:         int(math.Round(pl.OffsetY)),
			LockAspectRatio: true,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %s at %s: %v", apperr.ErrEmbedFailure, ext, cell, err)
	}
	return nil
}

func extension(ext string) (string, error) {
	switch e := strings.ToLower(strings.TrimPrefix(ext, ".")); e {
	case "jpg", "jpeg", "png", "gif":
		return "." + e, nil
	}
	return "", fmt.Errorf("%w: unsupported extension %q", apperr.ErrEmbedFailure, ext)
}

func (s *Sink) SetColumnWidth(col int, width float64) error {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return err
	}
	return s.f.SetColWidth(s.sheet, name, name, width)
}

func (s *Sink) SetRowHeight(row int, height float64) error {
	return s.f.SetRowHeight(s.sheet, row+1, height)
}

func (s *Sink) FreezeHeader() error {
	return s.f.SetPanes(s.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (s *Sink) HideGridlines() error {
	off := false
	return s.f.SetSheetView(s.sheet, 0, &excelize.ViewOptions{ShowGridLines: &off})
}

// WriteTo serializes the workbook.
func (s *Sink) WriteTo(w io.Writer) (int64, error) {
	return s.f.WriteTo(w)
}

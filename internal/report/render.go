package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AnyUserName/swatchcard/internal/apperr"
	"github.com/AnyUserName/swatchcard/internal/placement"
	"github.com/AnyUserName/swatchcard/internal/profile"
)

// ContentType is the MIME type of the rendered workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DocProps are the document-level properties of a workbook.
type DocProps struct {
	Title   string
	Author  string
	Company string
}

// Sink is a spreadsheet writer. Rows and columns are 0-based.
type Sink interface {
	SetProperties(DocProps) error
	DefineStyle(name string, style CellStyle) error
	SetText(row, col int, text, style string) error
	EmbedImage(row, col int, img []byte, ext string, pl placement.Placement) error
	SetColumnWidth(col int, width float64) error
	SetRowHeight(row int, height float64) error
	FreezeHeader() error
	HideGridlines() error
	WriteTo(w io.Writer) (int64, error)
}

// Layout collects everything Render needs besides the rows.
type Layout struct {
	Profile profile.Profile
	Styles  *Styles
	Props   DocProps
	Footer  Footer
}

// RenderStats counts what ended up in the sheet.
type RenderStats struct {
	Rows     int
	Embedded int
	Errors   int // embeds rejected by the sink
}

// Render writes the header, every row and the footer into sink. Embeds the
// sink rejects become ErrorText cells; any other sink failure aborts with an
// AssemblyFailure.
func Render(sink Sink, rows []Row, layout Layout) (RenderStats, error) {
	var stats RenderStats
	styles := layout.Styles
	if styles == nil {
		styles = DefaultStyles()
	}

	fail := func(what string, err error) (RenderStats, error) {
		return stats, apperr.AssemblyFailure(what, err)
	}

	if err := sink.SetProperties(layout.Props); err != nil {
		return fail("set document properties", err)
	}
	for _, name := range styles.Names() {
		cs, _ := styles.Get(name)
		if err := sink.DefineStyle(name, cs); err != nil {
			return fail("define style "+name, err)
		}
	}

	for col, h := range Headers {
		if err := sink.SetText(0, col, h, StyleHeader); err != nil {
			return fail("write header", err)
		}
	}
	if err := sink.SetColumnWidth(ColImage, layout.Profile.ImageColumn); err != nil {
		return fail("set column width", err)
	}
	for i, w := range ColumnWidths {
		if err := sink.SetColumnWidth(i+1, w); err != nil {
			return fail("set column width", err)
		}
	}
	if err := sink.SetRowHeight(0, layout.Profile.HeaderHeight); err != nil {
		return fail("set header height", err)
	}

	for _, r := range rows {
		sheetRow := r.Index + 1
		if err := sink.SetRowHeight(sheetRow, layout.Profile.RowHeight); err != nil {
			return fail("set row height", err)
		}
		for _, c := range r.Cells {
			if c.Image == nil {
				if err := sink.SetText(sheetRow, c.Col, c.Text, c.Style); err != nil {
					return fail(fmt.Sprintf("write row %d", r.Index), err)
				}
				continue
			}

			err := sink.EmbedImage(sheetRow, c.Col, c.Image.Data, c.Image.Ext, c.Image.Placement)
			switch {
			case err == nil:
				stats.Embedded++
				// Keeps the parity fill behind the picture.
				if err := sink.SetText(sheetRow, c.Col, "", c.Style); err != nil {
					return fail(fmt.Sprintf("write row %d", r.Index), err)
				}
			case errors.Is(err, apperr.ErrEmbedFailure):
				stats.Errors++
				if err := sink.SetText(sheetRow, c.Col, ErrorText, c.Style); err != nil {
					return fail(fmt.Sprintf("write row %d", r.Index), err)
				}
			default:
				return fail(fmt.Sprintf("embed row %d", r.Index), err)
			}
		}
		stats.Rows++
	}

	if f := layout.Footer; f.Text != "" {
		if err := sink.SetText(len(rows)+f.Offset, f.Col, f.Text, f.Style); err != nil {
			return fail("write footer", err)
		}
	}

	if err := sink.FreezeHeader(); err != nil {
		return fail("freeze header", err)
	}
	if err := sink.HideGridlines(); err != nil {
		return fail("hide gridlines", err)
	}
	return stats, nil
}

// Filename returns the download name for a report reference. Characters
// that would break a path or a Content-Disposition header are replaced.
func Filename(ref string) string {
	ref = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '\r', '\n':
			return '_'
		}
		return r
	}, strings.TrimSpace(ref))
	if ref == "" {
		ref = "Export"
	}
	return "SwatchCard_" + ref + ".xlsx"
}

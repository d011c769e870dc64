package report

import (
	"github.com/AnyUserName/swatchcard/internal/pipeline"
	"github.com/AnyUserName/swatchcard/internal/placement"
	"github.com/AnyUserName/swatchcard/internal/swatch"
)

// Placeholder texts for image cells without an embedded picture.
const (
	NoImageText = "No Image"
	ErrorText   = "Error"
)

// DefaultFooter is the contact line written under the last data row.
const DefaultFooter = "320 West 37th Street, 3rd floor, New York, NY 10018 | Tel 212-697-1660"

// Headers are the column titles, in column order.
var Headers = []string{
	"Image", "Style #", "Brand", "Fit", "Fabric Code", "Fabrication", "Color Name", "Delivery", "PO Ref",
}

// ColumnWidths are the widths of columns 1..8. Column 0 takes the image
// column width of the layout profile.
var ColumnWidths = []float64{18, 15, 12, 12, 32, 16, 16, 12}

// Column indexes.
const (
	ColImage = iota
	ColStyle
	ColBrand
	ColFit
	ColFabricCode
	ColFabrication
	ColColorName
	ColDelivery
	ColPORef
)

// Embed is an image to place into a cell. Ext is the file extension the
// buffer was encoded with, without the dot.
type Embed struct {
	Data      []byte
	Ext       string
	Placement placement.Placement
}

// Cell is one cell instruction. Exactly one of Text or Image is meaningful:
// a cell with a non-nil Image is an embed.
type Cell struct {
	Col   int
	Text  string
	Image *Embed
	Style string
}

// Row is the instruction set for one data row.
type Row struct {
	Index int // position in the swatch list
	Cells []Cell
}

// Footer is the trailing row instruction.
type Footer struct {
	Offset int // rows below the last data row
	Col    int
	Text   string
	Style  string
}

// Assemble builds one row per swatch, in input order. outcomes must be
// index-aligned with swatches; a missing or absent slot renders the
// NoImageText placeholder.
func Assemble(swatches []swatch.Swatch, outcomes []pipeline.Outcome) []Row {
	rows := make([]Row, len(swatches))
	for i, s := range swatches {
		cell := parity(i, StyleCellOdd, StyleCellEven)

		img := Cell{Col: ColImage, Text: NoImageText, Style: cell}
		if i < len(outcomes) && outcomes[i].Placed() {
			o := outcomes[i]
			img = Cell{
				Col:   ColImage,
				Style: cell,
				Image: &Embed{Data: o.Image.Data, Ext: o.Image.Ext, Placement: o.Placement},
			}
		}

		rows[i] = Row{
			Index: i,
			Cells: []Cell{
				img,
				{Col: ColStyle, Text: s.StyleNumber, Style: parity(i, StyleStyleOdd, StyleStyleEven)},
				{Col: ColBrand, Text: s.Brand, Style: cell},
				{Col: ColFit, Text: s.Fit, Style: cell},
				{Col: ColFabricCode, Text: s.FabricCode, Style: cell},
				{Col: ColFabrication, Text: s.Fabrication, Style: cell},
				{Col: ColColorName, Text: s.ColorName, Style: cell},
				{Col: ColDelivery, Text: s.Delivery, Style: cell},
				{Col: ColPORef, Text: s.PORef, Style: parity(i, StylePOOdd, StylePOEven)},
			},
		}
	}
	return rows
}

// NewFooter returns the footer instruction: one blank row after the data,
// in the style-number column.
func NewFooter(text string) Footer {
	if text == "" {
		text = DefaultFooter
	}
	return Footer{Offset: 2, Col: ColStyle, Text: text, Style: StyleFooter}
}

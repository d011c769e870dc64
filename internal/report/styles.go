// Package report turns swatches and pipeline outcomes into row instructions
// and renders them into a document sink.
package report

// CellStyle describes a reusable named cell format.
type CellStyle struct {
	Background string // hex fill, empty for none
	Border     string // hex colour of a thin border on all sides, empty for none
	FontFamily string
	FontSize   float64
	FontColor  string
	Bold       bool
	Wrap       bool
}

// Style names defined on every sheet.
const (
	StyleHeader    = "header"
	StyleCellOdd   = "cell_odd"
	StyleCellEven  = "cell_even"
	StyleStyleOdd  = "style_odd"
	StyleStyleEven = "style_even"
	StylePOOdd     = "po_odd"
	StylePOEven    = "po_even"
	StyleFooter    = "footer"
)

// Palette holds the colours and fonts the styles are derived from.
type Palette struct {
	HeaderBackground string
	HeaderText       string
	RowOdd           string
	RowEven          string
	Border           string
	Accent           string
	FooterText       string
	Font             string
	MonoFont         string
}

var defaultPalette = Palette{
	HeaderBackground: "#1E3A5F",
	HeaderText:       "#FFFFFF",
	RowOdd:           "#FFFFFF",
	RowEven:          "#F0F4F8",
	Border:           "#E2E8F0",
	Accent:           "#DC2626",
	FooterText:       "#666666",
	Font:             "Calibri",
	MonoFont:         "Consolas",
}

// Styles is an immutable set of named cell styles. Build it once with
// DefaultStyles or NewStyles and share it between requests.
type Styles struct {
	names  []string
	styles map[string]CellStyle
}

// DefaultStyles returns the house styles.
func DefaultStyles() *Styles { return NewStyles(defaultPalette) }

// NewStyles derives the named styles from a palette.
func NewStyles(p Palette) *Styles {
	row := func(bg string) CellStyle {
		return CellStyle{Background: bg, Border: p.Border, FontFamily: p.Font, FontSize: 10, Wrap: true}
	}
	mono := func(bg string) CellStyle {
		s := row(bg)
		s.FontFamily = p.MonoFont
		s.FontSize = 11
		s.Bold = true
		return s
	}
	po := func(bg string) CellStyle {
		s := row(bg)
		s.Bold = true
		s.FontColor = p.Accent
		return s
	}

	s := &Styles{styles: map[string]CellStyle{}}
	s.add(StyleHeader, CellStyle{
		Background: p.HeaderBackground,
		Border:     p.Border,
		FontFamily: p.Font,
		FontSize:   11,
		FontColor:  p.HeaderText,
		Bold:       true,
		Wrap:       true,
	})
	s.add(StyleCellOdd, row(p.RowOdd))
	s.add(StyleCellEven, row(p.RowEven))
	s.add(StyleStyleOdd, mono(p.RowOdd))
	s.add(StyleStyleEven, mono(p.RowEven))
	s.add(StylePOOdd, po(p.RowOdd))
	s.add(StylePOEven, po(p.RowEven))
	s.add(StyleFooter, CellStyle{FontFamily: p.Font, FontSize: 9, FontColor: p.FooterText})
	return s
}

func (s *Styles) add(name string, cs CellStyle) {
	s.names = append(s.names, name)
	s.styles[name] = cs
}

// Names returns the style names in definition order.
func (s *Styles) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Get looks up a style by name.
func (s *Styles) Get(name string) (CellStyle, bool) {
	cs, ok := s.styles[name]
	return cs, ok
}

// parity picks the odd or even variant for data row i. Row 0 is odd, so
// the first data row sits on a white background.
func parity(i int, odd, even string) string {
	if i%2 == 1 {
		return even
	}
	return odd
}

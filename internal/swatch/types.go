package swatch

// Swatch is one garment record rendered as one report row. Absent or null
// fields decode as "".
type Swatch struct {
	ImageURL    string `json:"imageUrl"`
	StyleNumber string `json:"styleNumber"`
	Brand       string `json:"brand"`
	Fit         string `json:"fit"`
	FabricCode  string `json:"fabricCode"`
	Fabrication string `json:"fabrication"`
	ColorName   string `json:"colorName"`
	Delivery    string `json:"delivery"`
	PORef       string `json:"poRef"`
}

// CardInfo carries request-level metadata.
type CardInfo struct {
	PORef string `json:"poRef"`
}

// Request is the export payload: swatches in display order plus card info.
type Request struct {
	Swatches []Swatch `json:"swatches"`
	CardInfo CardInfo `json:"cardInfo"`
}

// DefaultReference names exports whose card info has no PO reference.
const DefaultReference = "Export"

// Reference returns the identifier used to name the output document.
func (r *Request) Reference() string {
	if r.CardInfo.PORef == "" {
		return DefaultReference
	}
	return r.CardInfo.PORef
}

package profile

import "sort"

// Profile defines the thumbnail footprint and sheet geometry of a report.
type Profile struct {
	Name         string
	TargetWidth  int     // image cell footprint in pixels
	TargetHeight int     // image cell footprint in pixels
	ImageColumn  float64 // image column width in character units
	RowHeight    float64 // data row height in points
	HeaderHeight float64 // header row height in points
}

// DefaultName is used when no profile, or an unknown one, is requested.
const DefaultName = "standard"

// Built-in profiles. ImageColumn and RowHeight are sized so the cell is a
// little larger than the target footprint.
var profiles = map[string]Profile{
	"standard": {
		Name:         "standard",
		TargetWidth:  150,
		TargetHeight: 150,
		ImageColumn:  22,
		RowHeight:    112.5,
		HeaderHeight: 25,
	},
	"compact": {
		Name:         "compact",
		TargetWidth:  100,
		TargetHeight: 100,
		ImageColumn:  15,
		RowHeight:    75,
		HeaderHeight: 22,
	},
	"large": {
		Name:         "large",
		TargetWidth:  220,
		TargetHeight: 220,
		ImageColumn:  32,
		RowHeight:    165,
		HeaderHeight: 25,
	},
}

// Get returns a profile by name. Falls back to standard if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[DefaultName]
	p.Name = name // preserve requested name
	return p
}

// Known reports whether name is a built-in profile.
func Known(name string) bool {
	_, ok := profiles[name]
	return ok
}

// Names returns the built-in profile names, sorted.
func Names() []string {
	out := make([]string, 0, len(profiles))
	for n := range profiles {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Envelope returns the bounding box images are downscaled into before
// placement: twice the target footprint on each axis.
func (p Profile) Envelope() (int, int) {
	return p.TargetWidth * 2, p.TargetHeight * 2
}

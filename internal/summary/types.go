// Package summary records the outcome of one report run as JSON.
package summary

import "github.com/AnyUserName/swatchcard/internal/placement"

// Summary is the top-level record of one report run.
type Summary struct {
	Version     int      `json:"version"`
	RunID       string   `json:"run_id"`
	GeneratedAt string   `json:"generated_at"`
	Reference   string   `json:"reference"`
	Filename    string   `json:"filename"`
	Profile     string   `json:"profile"`
	RunInfo     *RunInfo `json:"run_info,omitempty"`
	Rows        []Row    `json:"rows"`
	Stats       Stats    `json:"stats"`
}

// RunInfo captures run-time parameters for diagnostics.
type RunInfo struct {
	Workers      int   `json:"workers"`
	TargetWidth  int   `json:"target_width"`
	TargetHeight int   `json:"target_height"`
	ElapsedMS    int64 `json:"elapsed_ms"`
}

// Row describes the image cell of one data row.
type Row struct {
	Index       int                  `json:"index"`
	StyleNumber string               `json:"style_number"`
	ImageURL    string               `json:"image_url,omitempty"`
	Status      string               `json:"status"` // "placed" or "absent"
	Format      string               `json:"format,omitempty"`
	Width       int                  `json:"width,omitempty"`
	Height      int                  `json:"height,omitempty"`
	Size        int64                `json:"size,omitempty"`
	Hash        string               `json:"hash,omitempty"`
	Placement   *placement.Placement `json:"placement,omitempty"`

	// Size of the picture as it appears in the cell, in pixels.
	DisplayWidth  float64 `json:"display_width,omitempty"`
	DisplayHeight float64 `json:"display_height,omitempty"`
	Reason        string  `json:"reason,omitempty"`
}

// Stats aggregates row outcomes.
type Stats struct {
	TotalRows   int   `json:"total_rows"`
	Placed      int   `json:"placed"`
	Absent      int   `json:"absent"`
	EmbedErrors int   `json:"embed_errors,omitempty"`
	OutputBytes int64 `json:"output_bytes"`
	ReportBytes int64 `json:"report_bytes"`
}

// Row statuses.
const (
	StatusPlaced = "placed"
	StatusAbsent = "absent"
)

// SupportedVersion is the current schema version.
const SupportedVersion = 1

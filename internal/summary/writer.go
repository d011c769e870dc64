package summary

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/AnyUserName/swatchcard/internal/pipeline"
	"github.com/AnyUserName/swatchcard/internal/swatch"
)

// New creates an empty summary with a fresh run id.
func New(reference, profileName string) *Summary {
	return &Summary{
		Version:     SupportedVersion,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Reference:   reference,
		Profile:     profileName,
		Rows:        []Row{},
	}
}

// AddOutcomes appends one row per swatch. outcomes is index-aligned with
// swatches.
func (s *Summary) AddOutcomes(swatches []swatch.Swatch, outcomes []pipeline.Outcome) {
	for i, sw := range swatches {
		row := Row{
			Index:       i,
			StyleNumber: sw.StyleNumber,
			ImageURL:    sw.ImageURL,
			Status:      StatusAbsent,
		}
		if i < len(outcomes) {
			o := outcomes[i]
			if o.Placed() {
				pl := o.Placement
				row.Status = StatusPlaced
				row.Format = o.Image.Format
				row.Width = o.Image.Width
				row.Height = o.Image.Height
				row.Size = int64(len(o.Image.Data))
				row.Hash = o.Image.Hash
				row.Placement = &pl
				row.DisplayWidth, row.DisplayHeight = pl.Size(o.Image.Width, o.Image.Height)
			} else if o.Err != nil {
				row.Reason = o.Err.Error()
			}
		}
		s.Rows = append(s.Rows, row)
	}
}

// ComputeStats recalculates aggregate statistics from rows. ReportBytes and
// EmbedErrors are set by the caller and kept.
func (s *Summary) ComputeStats() {
	st := Stats{
		TotalRows:   len(s.Rows),
		EmbedErrors: s.Stats.EmbedErrors,
		ReportBytes: s.Stats.ReportBytes,
	}
	for _, r := range s.Rows {
		if r.Status == StatusPlaced {
			st.Placed++
			st.OutputBytes += r.Size
		} else {
			st.Absent++
		}
	}
	s.Stats = st
}

// WriteJSON serializes the summary to a JSON file.
func WriteJSON(s *Summary, path string) error {
	s.ComputeStats()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

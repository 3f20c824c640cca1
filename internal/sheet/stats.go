package sheet

import (
	"sprite-splitter/internal/grid"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes cell geometry across a sheet. Large deviations usually
// mean the grid was cut badly (merged or fragmented cells).
type Stats struct {
	WidthMean    float64 `json:"width_mean"`
	WidthStdDev  float64 `json:"width_stddev"`
	HeightMean   float64 `json:"height_mean"`
	HeightStdDev float64 `json:"height_stddev"`
}

// ComputeStats derives geometry statistics from extracted cells.
func ComputeStats(cells []grid.Cell) Stats {
	if len(cells) == 0 {
		return Stats{}
	}

	widths := make([]float64, len(cells))
	heights := make([]float64, len(cells))
	for i, c := range cells {
		widths[i] = float64(c.Bounds.Width)
		heights[i] = float64(c.Bounds.Height)
	}

	var s Stats
	s.WidthMean, s.WidthStdDev = stat.MeanStdDev(widths, nil)
	s.HeightMean, s.HeightStdDev = stat.MeanStdDev(heights, nil)

	// A single cell has no spread; keep NaN out of the manifest
	if len(cells) < 2 {
		s.WidthStdDev = 0
		s.HeightStdDev = 0
	}
	return s
}

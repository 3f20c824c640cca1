package sheet

import (
	"fmt"
	"runtime"

	"sprite-splitter/internal/grid"
	"sprite-splitter/internal/segment"
)

// Options configures a full sheet run.
type Options struct {
	Method         segment.Method `json:"method"`
	Clusters       int            `json:"clusters"`        // clustering strategy only
	Tolerance      float64        `json:"tolerance"`       // color-distance strategy only
	WhiteThreshold int            `json:"white_threshold"` // grid line detection
	Crop           bool           `json:"crop"`
	Padding        int            `json:"padding"`
	MinCellSize    int            `json:"min_cell_size"`
	RowTolerance   int            `json:"row_tolerance"`
	Workers        int            `json:"workers"` // parallel cell segmentation

	// OverlayPath, when set, receives an annotated copy of the sheet
	// showing detected lines and cell assignments.
	OverlayPath string `json:"overlay,omitempty"`
}

// DefaultOptions returns default run options.
func DefaultOptions() Options {
	return Options{
		Method:         segment.MethodClustering,
		Clusters:       3,
		Tolerance:      40,
		WhiteThreshold: 240,
		Crop:           true,
		Padding:        1,
		MinCellSize:    10,
		RowTolerance:   5,
		Workers:        runtime.NumCPU(),
	}
}

// Validate rejects out-of-range options before they reach the pipeline.
func (o Options) Validate() error {
	if !o.Method.Valid() {
		return fmt.Errorf("unknown method %q (want %q or %q)", o.Method, segment.MethodClustering, segment.MethodColorDistance)
	}
	if o.Clusters < 2 {
		return fmt.Errorf("clusters must be at least 2, got %d", o.Clusters)
	}
	if o.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", o.Tolerance)
	}
	if o.WhiteThreshold < 0 || o.WhiteThreshold > 255 {
		return fmt.Errorf("white threshold must be in [0,255], got %d", o.WhiteThreshold)
	}
	if o.Padding < 0 {
		return fmt.Errorf("padding must be non-negative, got %d", o.Padding)
	}
	if o.MinCellSize <= 0 {
		return fmt.Errorf("min cell size must be positive, got %d", o.MinCellSize)
	}
	if o.RowTolerance < 0 {
		return fmt.Errorf("row tolerance must be non-negative, got %d", o.RowTolerance)
	}
	if o.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", o.Workers)
	}
	return nil
}

func (o Options) gridOptions() grid.Options {
	return grid.Options{
		WhiteThreshold: uint8(o.WhiteThreshold),
		MinCellSize:    o.MinCellSize,
		RowTolerance:   o.RowTolerance,
	}
}

func (o Options) segmentOptions() segment.Options {
	return segment.Options{
		Method:    o.Method,
		Clusters:  o.Clusters,
		Tolerance: o.Tolerance,
	}
}

// Package sheet orchestrates sprite sheet splitting: grid detection, cell
// extraction, per-cell segmentation, cropping, and output.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"sync"

	"sprite-splitter/internal/grid"
	"sprite-splitter/internal/imgconv"
	"sprite-splitter/internal/segment"
	"sprite-splitter/internal/sprite"
	"sprite-splitter/pkg/colorutil"
	"sprite-splitter/pkg/geometry"

	"gocv.io/x/gocv"
)

// ErrNoCells reports that grid detection found no usable cells. It means the
// sheet's grid could not be read, not that the input was unreadable.
var ErrNoCells = errors.New("no cells detected")

// SpriteResult is one cell's outcome.
type SpriteResult struct {
	Row        int
	Col        int
	Bounds     geometry.RectInt
	Background colorutil.BGR
	Image      *image.NRGBA // nil when the cell was skipped
	File       string       // name reported by the writer
	SkipReason string       // set when the cell was skipped
}

// Result holds everything a sheet run produced.
type Result struct {
	SheetWidth      int
	SheetHeight     int
	HorizontalBands int
	VerticalBands   int
	Rows            int
	Written         int
	Skipped         int
	Stats           Stats
	Sprites         []SpriteResult
}

// Processor runs the splitting pipeline over sheets.
type Processor struct {
	opts   Options
	logger *log.Logger
}

// NewProcessor validates the options and builds a processor. A nil logger
// silences progress output.
func NewProcessor(opts Options, logger *log.Logger) (*Processor, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Processor{opts: opts, logger: logger}, nil
}

// Process splits one sheet and hands every finished sprite to the writer.
// Cells whose segmentation fails are skipped and recorded, not fatal; a
// sheet yielding no cells at all fails with ErrNoCells and writes nothing.
func (p *Processor) Process(ctx context.Context, img image.Image, writer SpriteWriter) (*Result, error) {
	mat, err := imgconv.ImageToMat(img)
	if err != nil {
		return nil, fmt.Errorf("converting sheet: %w", err)
	}
	defer mat.Close()

	evidence, err := grid.DetectLines(mat, p.opts.gridOptions())
	if err != nil {
		return nil, fmt.Errorf("detecting grid lines: %w", err)
	}
	defer evidence.Close()
	p.logger.Printf("Detected %d horizontal and %d vertical line bands",
		evidence.HorizontalBands, evidence.VerticalBands)

	cells, err := grid.ExtractCells(mat, evidence, p.opts.gridOptions())
	if err != nil {
		return nil, fmt.Errorf("extracting cells: %w", err)
	}
	defer grid.CloseCells(cells)

	if len(cells) == 0 {
		return nil, ErrNoCells
	}

	rows := grid.RowCount(cells)
	p.logger.Printf("Extracted %d cells in %d rows", len(cells), rows)

	if p.opts.OverlayPath != "" {
		overlay := RenderOverlay(mat, evidence, cells)
		if !gocv.IMWrite(p.opts.OverlayPath, overlay) {
			p.logger.Printf("Could not write overlay to %s", p.opts.OverlayPath)
		}
		overlay.Close()
	}

	result := &Result{
		SheetWidth:      mat.Cols(),
		SheetHeight:     mat.Rows(),
		HorizontalBands: evidence.HorizontalBands,
		VerticalBands:   evidence.VerticalBands,
		Rows:            rows,
		Stats:           ComputeStats(cells),
	}

	result.Sprites = p.segmentCells(ctx, cells)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Writing is sequential in row-major order; the writer never sees
	// concurrent calls.
	rowCounts := make([]int, rows)
	for _, s := range result.Sprites {
		rowCounts[s.Row]++
	}
	for i := range result.Sprites {
		s := &result.Sprites[i]
		if s.Col == 0 {
			p.logger.Printf("Row %d: processing %d sprites", s.Row, rowCounts[s.Row])
		}
		if s.Image == nil {
			result.Skipped++
			p.logger.Printf("Skipping sprite (%d,%d): %s", s.Row, s.Col, s.SkipReason)
			continue
		}

		name, err := writer.WriteSprite(s.Row, s.Col, s.Image)
		if err != nil {
			return nil, fmt.Errorf("writing sprite (%d,%d): %w", s.Row, s.Col, err)
		}
		s.File = name
		result.Written++
	}

	p.logger.Printf("Wrote %d sprites (%d skipped)", result.Written, result.Skipped)
	return result, nil
}

// segmentCells runs per-cell segmentation on a bounded worker pool. Results
// land at their cell's index, so output order matches extraction order no
// matter which worker finishes first.
func (p *Processor) segmentCells(ctx context.Context, cells []grid.Cell) []SpriteResult {
	results := make([]SpriteResult, len(cells))

	workers := p.opts.Workers
	if workers > len(cells) {
		workers = len(cells)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = p.processCell(cells[idx])
			}
		}()
	}

feed:
	for i := range cells {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// processCell segments and crops one cell. Failures never escape: the cell
// comes back marked skipped and the batch continues.
func (p *Processor) processCell(cell grid.Cell) (res SpriteResult) {
	res = SpriteResult{Row: cell.Row, Col: cell.Col, Bounds: cell.Bounds}

	defer func() {
		if r := recover(); r != nil {
			res.Image = nil
			res.SkipReason = fmt.Sprintf("panic: %v", r)
		}
	}()

	background, err := segment.EstimateBackground(cell.Image)
	if err != nil {
		res.SkipReason = fmt.Sprintf("estimating background: %v", err)
		return res
	}
	res.Background = background

	img, err := segment.Segment(cell.Image, background, p.opts.segmentOptions())
	if err != nil {
		res.SkipReason = fmt.Sprintf("segmenting: %v", err)
		return res
	}

	if p.opts.Crop {
		img = sprite.Crop(img, p.opts.Padding)
	}
	res.Image = img
	return res
}

// Package grid provides white grid line detection and cell extraction for
// sprite sheets.
package grid

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

const (
	// Structuring element length for the directional openings. White runs
	// shorter than this are not counted as line evidence.
	lineKernelLength = 40

	// Opening passes per direction.
	openIterations = 2
)

// Options configures grid detection and cell extraction.
type Options struct {
	WhiteThreshold uint8 // Minimum grayscale value counted as white
	MinCellSize    int   // Minimum width/height for valid cells
	RowTolerance   int   // Max vertical offset between cells in the same row
}

// DefaultOptions returns default detection options.
func DefaultOptions() Options {
	return Options{
		WhiteThreshold: 240,
		MinCellSize:    10,
		RowTolerance:   5,
	}
}

// LineEvidence holds the binary masks produced by grid line detection.
type LineEvidence struct {
	Horizontal gocv.Mat // white runs at least lineKernelLength wide
	Vertical   gocv.Mat // white runs at least lineKernelLength tall
	Combined   gocv.Mat // union of both

	HorizontalBands int // image rows containing horizontal evidence
	VerticalBands   int // image columns containing vertical evidence
}

// Close releases the evidence masks.
func (e *LineEvidence) Close() {
	e.Horizontal.Close()
	e.Vertical.Close()
	e.Combined.Close()
}

// DetectLines finds the white grid line structure of a sheet. The sheet must
// be a BGR matrix. Line evidence survives a directional morphological opening
// in each axis; everything else is stripped away.
func DetectLines(img gocv.Mat, opts Options) (*LineEvidence, error) {
	if img.Empty() {
		return nil, fmt.Errorf("empty input matrix")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	// OpenCV's binary threshold keeps strictly brighter pixels only; shift
	// by one so pixels exactly at the configured value count as white.
	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(gray, &binary, float32(opts.WhiteThreshold)-1, 255, gocv.ThresholdBinary)

	// Directional openings: a wide flat kernel keeps horizontal runs, a tall
	// thin kernel keeps vertical runs.
	horizontalKernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: lineKernelLength, Y: 1})
	defer horizontalKernel.Close()
	verticalKernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 1, Y: lineKernelLength})
	defer verticalKernel.Close()

	horizontal := gocv.NewMat()
	gocv.MorphologyExWithParams(binary, &horizontal, gocv.MorphOpen, horizontalKernel, openIterations, gocv.BorderConstant)

	vertical := gocv.NewMat()
	gocv.MorphologyExWithParams(binary, &vertical, gocv.MorphOpen, verticalKernel, openIterations, gocv.BorderConstant)

	combined := gocv.NewMat()
	gocv.Add(horizontal, vertical, &combined)

	evidence := &LineEvidence{
		Horizontal: horizontal,
		Vertical:   vertical,
		Combined:   combined,
	}
	evidence.HorizontalBands = countOccupiedRows(horizontal)
	evidence.VerticalBands = countOccupiedCols(vertical)

	return evidence, nil
}

// countOccupiedRows counts image rows containing at least one set pixel.
func countOccupiedRows(mask gocv.Mat) int {
	h, w := mask.Rows(), mask.Cols()
	count := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.GetUCharAt(y, x) > 0 {
				count++
				break
			}
		}
	}
	return count
}

// countOccupiedCols counts image columns containing at least one set pixel.
func countOccupiedCols(mask gocv.Mat) int {
	h, w := mask.Rows(), mask.Cols()
	count := 0
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if mask.GetUCharAt(y, x) > 0 {
				count++
				break
			}
		}
	}
	return count
}

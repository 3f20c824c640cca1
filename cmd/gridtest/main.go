// Command gridtest runs grid detection on a sprite sheet and reports the
// detected cell layout without extracting sprites.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"sprite-splitter/internal/grid"
	"sprite-splitter/internal/imgconv"
	"sprite-splitter/internal/segment"
	"sprite-splitter/internal/sheet"

	"gocv.io/x/gocv"
	_ "golang.org/x/image/tiff"
)

func main() {
	imagePath := flag.String("image", "", "Path to sprite sheet (PNG, JPEG, or TIFF)")
	whiteThreshold := flag.Int("white-threshold", 240, "Grayscale value at or above which a pixel counts as grid white (0-255)")
	minCellSize := flag.Int("min-cell-size", 10, "Minimum cell width and height in pixels")
	rowTolerance := flag.Int("row-tolerance", 5, "Vertical distance in pixels within which cells share a row")
	overlayPath := flag.String("overlay", "", "Write a detection overlay image to this path")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: gridtest -image <path> [-white-threshold 240] [-overlay out.png]")
		os.Exit(1)
	}
	if *whiteThreshold < 0 || *whiteThreshold > 255 {
		fmt.Fprintf(os.Stderr, "White threshold must be in [0,255], got %d\n", *whiteThreshold)
		os.Exit(1)
	}

	// Load image
	f, err := os.Open(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open image: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode image: %v\n", err)
		os.Exit(1)
	}

	bounds := img.Bounds()
	fmt.Printf("Loaded %s image: %dx%d pixels\n", format, bounds.Dx(), bounds.Dy())

	mat, err := imgconv.ImageToMat(img)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to convert image: %v\n", err)
		os.Exit(1)
	}
	defer mat.Close()

	opts := grid.Options{
		WhiteThreshold: uint8(*whiteThreshold),
		MinCellSize:    *minCellSize,
		RowTolerance:   *rowTolerance,
	}

	evidence, err := grid.DetectLines(mat, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Line detection failed: %v\n", err)
		os.Exit(1)
	}
	defer evidence.Close()

	fmt.Printf("Line bands: %d horizontal, %d vertical\n", evidence.HorizontalBands, evidence.VerticalBands)

	cells, err := grid.ExtractCells(mat, evidence, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cell extraction failed: %v\n", err)
		os.Exit(1)
	}
	defer grid.CloseCells(cells)

	fmt.Printf("\nDetected %d cells in %d rows:\n", len(cells), grid.RowCount(cells))
	fmt.Printf("%-8s %6s %6s %6s %6s %9s\n", "Cell", "X", "Y", "W", "H", "BG")
	fmt.Println(strings.Repeat("-", 46))

	for _, c := range cells {
		bg := "-"
		if est, err := segment.EstimateBackground(c.Image); err == nil {
			bg = est.Hex()
		}
		fmt.Printf("%-8s %6d %6d %6d %6d %9s\n",
			fmt.Sprintf("%d,%d", c.Row, c.Col),
			c.Bounds.X, c.Bounds.Y, c.Bounds.Width, c.Bounds.Height, bg)
	}

	if len(cells) > 1 {
		stats := sheet.ComputeStats(cells)
		fmt.Printf("\nCell size: %.1fx%.1f px mean, %.1fx%.1f px stddev\n",
			stats.WidthMean, stats.HeightMean, stats.WidthStdDev, stats.HeightStdDev)
	}

	if *overlayPath != "" {
		overlay := sheet.RenderOverlay(mat, evidence, cells)
		defer overlay.Close()
		if !gocv.IMWrite(*overlayPath, overlay) {
			fmt.Fprintf(os.Stderr, "Failed to write overlay to %s\n", *overlayPath)
			os.Exit(1)
		}
		fmt.Printf("Wrote overlay to %s\n", *overlayPath)
	}
}

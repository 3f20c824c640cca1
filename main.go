// Command sprite-splitter splits a grid-based sprite sheet into individual
// sprite images with transparent backgrounds.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"sprite-splitter/internal/segment"
	"sprite-splitter/internal/sheet"
	"sprite-splitter/internal/version"

	_ "golang.org/x/image/tiff"
)

func main() {
	defaults := sheet.DefaultOptions()

	imagePath := flag.String("image", "", "Path to sprite sheet (PNG, JPEG, or TIFF)")
	outDir := flag.String("o", "", "Output directory (default: <sheet name>_processed next to the input)")
	method := flag.String("method", string(defaults.Method), "Segmentation method: clustering or color-distance")
	clusters := flag.Int("clusters", defaults.Clusters, "Number of color clusters (clustering method)")
	tolerance := flag.Float64("tolerance", defaults.Tolerance, "Background color distance tolerance (color-distance method)")
	whiteThreshold := flag.Int("white-threshold", defaults.WhiteThreshold, "Grayscale value at or above which a pixel counts as grid white (0-255)")
	noCrop := flag.Bool("no-crop", false, "Keep full cell bounds instead of cropping sprites to content")
	padding := flag.Int("padding", defaults.Padding, "Pixels of padding kept around content when cropping")
	minCellSize := flag.Int("min-cell-size", defaults.MinCellSize, "Minimum cell width and height in pixels")
	rowTolerance := flag.Int("row-tolerance", defaults.RowTolerance, "Vertical distance in pixels within which cells share a row")
	workers := flag.Int("workers", defaults.Workers, "Number of parallel segmentation workers")
	overlayPath := flag.String("overlay", "", "Write a grid detection overlay image to this path")
	manifest := flag.Bool("manifest", true, "Write manifest.json describing the extracted sprites")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s (built %s, commit %s)\n", version.Name, version.Version, version.BuildTime, version.GitCommit)
		return
	}

	if *imagePath == "" {
		fmt.Println("Usage: sprite-splitter -image <path> [-o <dir>] [-method clustering|color-distance]")
		fmt.Println("Flags:")
		flag.PrintDefaults()
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

	opts := defaults
	opts.Method = segment.Method(*method)
	opts.Clusters = *clusters
	opts.Tolerance = *tolerance
	opts.WhiteThreshold = *whiteThreshold
	opts.Crop = !*noCrop
	opts.Padding = *padding
	opts.MinCellSize = *minCellSize
	opts.RowTolerance = *rowTolerance
	opts.Workers = *workers
	opts.OverlayPath = *overlayPath

	dir := *outDir
	if dir == "" {
		stem := strings.TrimSuffix(filepath.Base(*imagePath), filepath.Ext(*imagePath))
		dir = filepath.Join(filepath.Dir(*imagePath), stem+"_processed")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nSplit parameters:\n")
	fmt.Printf("  Method: %s\n", opts.Method)
	switch opts.Method {
	case segment.MethodClustering:
		fmt.Printf("  Clusters: %d\n", opts.Clusters)
	case segment.MethodColorDistance:
		fmt.Printf("  Tolerance: %.1f\n", opts.Tolerance)
	}
	fmt.Printf("  White threshold: %d\n", opts.WhiteThreshold)
	fmt.Printf("  Min cell size: %d px\n", opts.MinCellSize)
	fmt.Printf("  Row tolerance: %d px\n", opts.RowTolerance)
	if opts.Crop {
		fmt.Printf("  Crop: on (padding %d px)\n", opts.Padding)
	} else {
		fmt.Printf("  Crop: off\n")
	}
	fmt.Printf("  Workers: %d\n", opts.Workers)
	fmt.Printf("  Output: %s\n", dir)
	fmt.Println()

	proc, err := sheet.NewProcessor(opts, log.New(os.Stdout, "", 0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid parameters: %v\n", err)
		os.Exit(1)
	}

	result, err := proc.Process(context.Background(), img, sheet.NewDirWriter(dir))
	if err != nil {
		if errors.Is(err, sheet.ErrNoCells) {
			fmt.Fprintf(os.Stderr, "No cells detected: check -white-threshold and that the sheet has white grid lines\n")
		} else {
			fmt.Fprintf(os.Stderr, "Processing failed: %v\n", err)
		}
		os.Exit(1)
	}

	if *manifest {
		m := sheet.BuildManifest(result, *imagePath, opts)
		if err := m.Save(filepath.Join(dir, sheet.ManifestName)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write manifest: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("\nSaved %d sprites in %d rows to %s\n", result.Written, result.Rows, dir)
	if result.Skipped > 0 {
		fmt.Printf("Skipped %d cells (see manifest for reasons)\n", result.Skipped)
	}
	if result.Written > 1 {
		fmt.Printf("Sprite size: %.1fx%.1f px mean, %.1fx%.1f px stddev\n",
			result.Stats.WidthMean, result.Stats.HeightMean,
			result.Stats.WidthStdDev, result.Stats.HeightStdDev)
	}
}

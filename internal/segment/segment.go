// Package segment provides background estimation and sprite segmentation for
// extracted cells.
package segment

import (
	"fmt"
	"image"

	"sprite-splitter/internal/imgconv"
	"sprite-splitter/pkg/colorutil"

	"gocv.io/x/gocv"
)

// Method selects the segmentation strategy.
type Method string

const (
	// MethodClustering partitions the cell palette with k-means and drops
	// the cluster the corners vote for. Best visual quality, higher cost.
	MethodClustering Method = "clustering"

	// MethodColorDistance maps each pixel's distance to the estimated
	// background color through a sigmoid. Fastest, assumes one dominant
	// background color.
	MethodColorDistance Method = "color-distance"
)

// Valid reports whether m names a known strategy.
func (m Method) Valid() bool {
	return m == MethodClustering || m == MethodColorDistance
}

// Options configures segmentation.
type Options struct {
	Method    Method
	Clusters  int     // cluster count for MethodClustering
	Tolerance float64 // distance tolerance for MethodColorDistance
}

// DefaultOptions returns default segmentation options.
func DefaultOptions() Options {
	return Options{
		Method:    MethodClustering,
		Clusters:  3,
		Tolerance: 40,
	}
}

// Segment runs the configured strategy on a BGR cell and composites the
// result into an alpha-masked image. The background color is only consulted
// by the color-distance strategy; clustering derives its own from the corner
// vote.
func Segment(cell gocv.Mat, background colorutil.BGR, opts Options) (*image.NRGBA, error) {
	var (
		alpha gocv.Mat
		err   error
	)
	switch opts.Method {
	case MethodClustering:
		alpha, err = ClusterAlpha(cell, opts.Clusters)
	case MethodColorDistance:
		alpha, err = DistanceAlpha(cell, background, opts.Tolerance)
	default:
		return nil, fmt.Errorf("unknown segmentation method %q", opts.Method)
	}
	if err != nil {
		return nil, err
	}
	defer alpha.Close()

	img, err := imgconv.ComposeNRGBA(cell, alpha)
	if err != nil {
		return nil, fmt.Errorf("composing alpha mask: %w", err)
	}
	return img, nil
}

package segment

import (
	"fmt"

	"sprite-splitter/pkg/colorutil"

	"gocv.io/x/gocv"
)

// EstimateBackground picks the most frequent exact color in the cell's border
// band. The band is a tenth of the smaller cell dimension, at least 2 pixels.
// Frequency ties go to the numerically smallest packed color key so the
// result never depends on map order.
func EstimateBackground(cell gocv.Mat) (colorutil.BGR, error) {
	if cell.Empty() {
		return colorutil.BGR{}, fmt.Errorf("empty cell matrix")
	}

	h, w := cell.Rows(), cell.Cols()
	band := min(h, w) / 10
	if band < 2 {
		band = 2
	}

	counts := make(map[uint32]int)
	sample := func(y, x int) {
		vec := cell.GetVecbAt(y, x)
		c := colorutil.BGR{B: vec[0], G: vec[1], R: vec[2]}
		counts[c.Pack()]++
	}

	// Four overlapping slabs; corner pixels are counted twice, matching the
	// band's construction as row slices plus column slices.
	for y := 0; y < min(band, h); y++ {
		for x := 0; x < w; x++ {
			sample(y, x)
		}
	}
	for y := max(h-band, 0); y < h; y++ {
		for x := 0; x < w; x++ {
			sample(y, x)
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < min(band, w); x++ {
			sample(y, x)
		}
		for x := max(w-band, 0); x < w; x++ {
			sample(y, x)
		}
	}

	var (
		bestKey   uint32
		bestCount int
	)
	for key, count := range counts {
		if count > bestCount || (count == bestCount && key < bestKey) {
			bestKey = key
			bestCount = count
		}
	}

	return colorutil.UnpackBGR(bestKey), nil
}

package segment

import (
	"fmt"
	"math"

	"sprite-splitter/pkg/colorutil"

	"gocv.io/x/gocv"
)

// DistanceAlpha computes an alpha mask for a BGR cell from each pixel's
// Euclidean distance to the background color. Distance maps to alpha through
// a sigmoid centered at the tolerance: alpha = 255 / (1 + e^(-(d-tol)/10)).
// A pixel matching the background exactly gets alpha near 0, a pixel at the
// tolerance gets the sigmoid midpoint, and far pixels saturate at 255. The
// smooth ramp preserves soft sprite edges instead of cutting them hard.
func DistanceAlpha(cell gocv.Mat, background colorutil.BGR, tolerance float64) (gocv.Mat, error) {
	if cell.Empty() {
		return gocv.NewMat(), fmt.Errorf("empty cell matrix")
	}

	h, w := cell.Rows(), cell.Cols()
	alpha := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8U)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			vec := cell.GetVecbAt(y, x)
			c := colorutil.BGR{B: vec[0], G: vec[1], R: vec[2]}
			d := c.Distance(background)

			// Round to nearest so saturated distances reach full opacity
			v := math.Round(255 / (1 + math.Exp(-(d-tolerance)/10)))
			if v > 255 {
				v = 255
			}
			if v < 0 {
				v = 0
			}
			alpha.SetUCharAt(y, x, uint8(v))
		}
	}

	return alpha, nil
}

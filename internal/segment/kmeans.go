package segment

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ClusterAlpha computes an alpha mask for a BGR cell by k-means clustering
// its palette. The cluster holding the majority of the four corner pixels is
// declared background and mapped to alpha 0; every other cluster maps to
// alpha 255. Corner ties go to the lowest cluster index. The binary mask is
// softened with a small blur before it is returned.
//
// Initial centers are random, so pixel-exact output varies between runs on
// cells whose palette sits near a cluster boundary.
func ClusterAlpha(cell gocv.Mat, clusters int) (gocv.Mat, error) {
	if cell.Empty() {
		return gocv.NewMat(), fmt.Errorf("empty cell matrix")
	}
	h, w := cell.Rows(), cell.Cols()
	if h*w < clusters {
		return gocv.NewMat(), fmt.Errorf("cell has %d pixels, fewer than %d clusters", h*w, clusters)
	}

	// Reshape for k-means: (h*w) x 3 float32
	pixels := gocv.NewMatWithSize(h*w, 3, gocv.MatTypeCV32F)
	defer pixels.Close()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			vec := cell.GetVecbAt(y, x)
			pixels.SetFloatAt(idx, 0, float32(vec[0]))
			pixels.SetFloatAt(idx, 1, float32(vec[1]))
			pixels.SetFloatAt(idx, 2, float32(vec[2]))
		}
	}

	labels := gocv.NewMat()
	defer labels.Close()
	centers := gocv.NewMat()
	defer centers.Close()

	criteria := gocv.NewTermCriteria(gocv.EPS+gocv.MaxIter, 100, 0.2)
	gocv.KMeans(pixels, clusters, &labels, criteria, 10, gocv.KMeansRandomCenters, &centers)

	// Corner-pixel majority vote picks the background cluster
	cornerIdx := []int{0, w - 1, (h - 1) * w, h*w - 1}
	votes := make([]int, clusters)
	for _, idx := range cornerIdx {
		votes[labels.GetIntAt(idx, 0)]++
	}
	background := 0
	for i := 1; i < clusters; i++ {
		if votes[i] > votes[background] {
			background = i
		}
	}

	mask := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8U)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if labels.GetIntAt(idx, 0) != int32(background) {
				mask.SetUCharAt(y, x, 255)
			}
		}
	}

	gocv.GaussianBlur(mask, &mask, image.Point{X: 3, Y: 3}, 0, 0, gocv.BorderDefault)

	return mask, nil
}

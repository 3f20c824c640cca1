// Package imgconv converts between standard library images and OpenCV matrices.
package imgconv

import (
	"fmt"
	"image"
	"runtime"
	"sync"

	"gocv.io/x/gocv"
)

// ImageToMat converts a Go image.Image to a BGR gocv.Mat (parallelized).
func ImageToMat(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return gocv.NewMat(), fmt.Errorf("image has zero size (%dx%d)", width, height)
	}

	// OpenCV default channel order is BGR
	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)

	// Parallelize by horizontal stripes
	numWorkers := runtime.NumCPU()
	rowsPerWorker := (height + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		startY := w * rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > height {
			endY = height
		}
		if startY >= height {
			break
		}

		wg.Add(1)
		go func(yStart, yEnd int) {
			defer wg.Done()
			for y := yStart; y < yEnd; y++ {
				for x := 0; x < width; x++ {
					r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
					mat.SetUCharAt(y, x*3+0, uint8(b>>8))
					mat.SetUCharAt(y, x*3+1, uint8(g>>8))
					mat.SetUCharAt(y, x*3+2, uint8(r>>8))
				}
			}
		}(startY, endY)
	}
	wg.Wait()

	return mat, nil
}

// ComposeNRGBA merges a BGR color matrix with a single-channel alpha matrix
// into a non-premultiplied RGBA image. The two matrices must have identical
// dimensions. Alpha 0 is fully transparent, 255 fully opaque; the color
// channels are carried through untouched so transparent pixels keep their
// original color.
func ComposeNRGBA(bgr gocv.Mat, alpha gocv.Mat) (*image.NRGBA, error) {
	h := bgr.Rows()
	w := bgr.Cols()
	if alpha.Rows() != h || alpha.Cols() != w {
		return nil, fmt.Errorf("alpha size %dx%d does not match color size %dx%d",
			alpha.Cols(), alpha.Rows(), w, h)
	}
	if bgr.Type() != gocv.MatTypeCV8UC3 {
		return nil, fmt.Errorf("color matrix has type %d, want 8UC3", bgr.Type())
	}
	if alpha.Type() != gocv.MatTypeCV8U {
		return nil, fmt.Errorf("alpha matrix has type %d, want 8U", alpha.Type())
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	stride := img.Stride
	for y := 0; y < h; y++ {
		rowOffset := y * stride
		for x := 0; x < w; x++ {
			pixOffset := rowOffset + x*4
			img.Pix[pixOffset+0] = bgr.GetUCharAt(y, x*3+2) // R
			img.Pix[pixOffset+1] = bgr.GetUCharAt(y, x*3+1) // G
			img.Pix[pixOffset+2] = bgr.GetUCharAt(y, x*3+0) // B
			img.Pix[pixOffset+3] = alpha.GetUCharAt(y, x)
		}
	}

	return img, nil
}

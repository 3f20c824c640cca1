package sheet

import (
	"fmt"
	"image"

	"sprite-splitter/internal/grid"
	"sprite-splitter/pkg/colorutil"

	"gocv.io/x/gocv"
)

// RenderOverlay draws the detected structure over a copy of the sheet for
// visual inspection: line evidence tinted yellow, cell rectangles in green,
// row,col labels in red. The caller owns the returned matrix.
func RenderOverlay(img gocv.Mat, evidence *grid.LineEvidence, cells []grid.Cell) gocv.Mat {
	out := img.Clone()

	// Blend detected line pixels toward yellow (BGR 0,255,255)
	h, w := out.Rows(), out.Cols()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if evidence.Combined.GetUCharAt(y, x) == 0 {
				continue
			}
			b := out.GetUCharAt(y, x*3+0)
			g := out.GetUCharAt(y, x*3+1)
			r := out.GetUCharAt(y, x*3+2)
			out.SetUCharAt(y, x*3+0, b/2)
			out.SetUCharAt(y, x*3+1, g/2+128)
			out.SetUCharAt(y, x*3+2, r/2+128)
		}
	}

	for _, c := range cells {
		gocv.Rectangle(&out, c.Bounds.ToImageRect(), colorutil.Green, 2)
		gocv.PutText(&out, fmt.Sprintf("%d,%d", c.Row, c.Col),
			image.Point{X: c.Bounds.X + 4, Y: c.Bounds.Y + 16},
			gocv.FontHersheyPlain, 1.2, colorutil.Red, 2)
	}

	return out
}

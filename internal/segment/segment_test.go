package segment

import (
	"testing"

	"sprite-splitter/pkg/colorutil"

	"gocv.io/x/gocv"
)

// bgrMat builds a uniform BGR matrix.
func bgrMat(t *testing.T, w, h int, fill colorutil.BGR) gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			setBGR(&mat, x, y, fill)
		}
	}
	return mat
}

func setBGR(mat *gocv.Mat, x, y int, c colorutil.BGR) {
	mat.SetUCharAt(y, x*3+0, c.B)
	mat.SetUCharAt(y, x*3+1, c.G)
	mat.SetUCharAt(y, x*3+2, c.R)
}

func TestDistanceAlphaBoundaries(t *testing.T) {
	background := colorutil.BGR{}
	cell := bgrMat(t, 3, 1, background)
	defer cell.Close()
	setBGR(&cell, 1, 0, colorutil.BGR{B: 40})                  // distance exactly at tolerance
	setBGR(&cell, 2, 0, colorutil.BGR{B: 255, G: 255, R: 255}) // far beyond tolerance

	alpha, err := DistanceAlpha(cell, background, 40)
	if err != nil {
		t.Fatalf("DistanceAlpha: %v", err)
	}
	defer alpha.Close()

	if got := alpha.GetUCharAt(0, 0); got != 5 {
		t.Errorf("alpha at distance 0 = %d, want 5", got)
	}
	if got := alpha.GetUCharAt(0, 1); got != 128 {
		t.Errorf("alpha at the tolerance = %d, want the sigmoid midpoint 128", got)
	}
	if got := alpha.GetUCharAt(0, 2); got != 255 {
		t.Errorf("alpha far from background = %d, want 255", got)
	}
}

func TestDistanceAlphaMonotonic(t *testing.T) {
	background := colorutil.BGR{}
	distances := []uint8{0, 20, 40, 60, 80}

	cell := bgrMat(t, len(distances), 1, background)
	defer cell.Close()
	for i, d := range distances {
		setBGR(&cell, i, 0, colorutil.BGR{B: d})
	}

	alpha, err := DistanceAlpha(cell, background, 40)
	if err != nil {
		t.Fatalf("DistanceAlpha: %v", err)
	}
	defer alpha.Close()

	prev := -1
	for i := range distances {
		got := int(alpha.GetUCharAt(0, i))
		if got <= prev {
			t.Errorf("alpha not increasing with distance: alpha[%d]=%d after %d", i, got, prev)
		}
		prev = got
	}
}

func TestEstimateBackgroundBorderMode(t *testing.T) {
	red := colorutil.BGR{R: 200}
	blue := colorutil.BGR{B: 220, G: 50, R: 30}

	// Red cell with a blue center square: the border band never sees blue.
	cell := bgrMat(t, 20, 20, red)
	defer cell.Close()
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			setBGR(&cell, x, y, blue)
		}
	}

	got, err := EstimateBackground(cell)
	if err != nil {
		t.Fatalf("EstimateBackground: %v", err)
	}
	if got != red {
		t.Errorf("EstimateBackground = %+v, want %+v", got, red)
	}
}

func TestEstimateBackgroundTieUsesSmallestKey(t *testing.T) {
	red := colorutil.BGR{R: 200}  // packs to 200
	blue := colorutil.BGR{B: 200} // packs to 200<<16

	// A checkerboard splits the border band exactly in half.
	cell := bgrMat(t, 20, 20, red)
	defer cell.Close()
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if (x+y)%2 == 1 {
				setBGR(&cell, x, y, blue)
			}
		}
	}

	got, err := EstimateBackground(cell)
	if err != nil {
		t.Fatalf("EstimateBackground: %v", err)
	}
	if got != red {
		t.Errorf("EstimateBackground = %+v, want the smaller packed key %+v", got, red)
	}
}

func TestClusterAlphaSeparatesSprite(t *testing.T) {
	red := colorutil.BGR{B: 20, G: 20, R: 180}
	blue := colorutil.BGR{B: 220, G: 50, R: 30}

	cell := bgrMat(t, 30, 30, red)
	defer cell.Close()
	for y := 10; y < 20; y++ {
		for x := 10; x < 20; x++ {
			setBGR(&cell, x, y, blue)
		}
	}

	alpha, err := ClusterAlpha(cell, 3)
	if err != nil {
		t.Fatalf("ClusterAlpha: %v", err)
	}
	defer alpha.Close()

	// Flat regions away from the sprite edge are untouched by the blur.
	if got := alpha.GetUCharAt(2, 2); got != 0 {
		t.Errorf("background corner alpha = %d, want 0", got)
	}
	if got := alpha.GetUCharAt(15, 15); got != 255 {
		t.Errorf("sprite center alpha = %d, want 255", got)
	}
}

func TestClusterAlphaTooFewPixels(t *testing.T) {
	cell := bgrMat(t, 2, 1, colorutil.BGR{})
	defer cell.Close()

	alpha, err := ClusterAlpha(cell, 3)
	if err == nil {
		alpha.Close()
		t.Fatal("ClusterAlpha accepted a cell smaller than the cluster count")
	}
}

func TestSegmentColorDistanceComposite(t *testing.T) {
	background := colorutil.BGR{}
	cell := bgrMat(t, 2, 1, background)
	defer cell.Close()
	white := colorutil.BGR{B: 255, G: 255, R: 255}
	setBGR(&cell, 1, 0, white)

	opts := DefaultOptions()
	opts.Method = MethodColorDistance

	img, err := Segment(cell, background, opts)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}

	bg := img.NRGBAAt(0, 0)
	if bg.A != 5 {
		t.Errorf("background alpha = %d, want 5", bg.A)
	}
	if bg.R != 0 || bg.G != 0 || bg.B != 0 {
		t.Errorf("background color = (%d,%d,%d), want black preserved", bg.R, bg.G, bg.B)
	}
	fg := img.NRGBAAt(1, 0)
	if fg.A != 255 || fg.R != 255 || fg.G != 255 || fg.B != 255 {
		t.Errorf("sprite pixel = %+v, want opaque white", fg)
	}
}

func TestSegmentUnknownMethod(t *testing.T) {
	cell := bgrMat(t, 4, 4, colorutil.BGR{})
	defer cell.Close()

	opts := DefaultOptions()
	opts.Method = "voronoi"

	if _, err := Segment(cell, colorutil.BGR{}, opts); err == nil {
		t.Fatal("Segment accepted an unknown method")
	}
}

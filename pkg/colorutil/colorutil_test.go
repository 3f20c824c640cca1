package colorutil

import (
	"math"
	"testing"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []BGR{
		{},
		{B: 255, G: 255, R: 255},
		{B: 1, G: 2, R: 3},
		{B: 200, G: 0, R: 17},
	}
	for _, c := range cases {
		if got := UnpackBGR(c.Pack()); got != c {
			t.Errorf("UnpackBGR(Pack(%+v)) = %+v", c, got)
		}
	}
}

func TestPackOrdersBlueBeforeRed(t *testing.T) {
	// The key weights B highest, so pure blue sorts above pure red.
	blue := BGR{B: 255}
	red := BGR{R: 255}
	if blue.Pack() <= red.Pack() {
		t.Errorf("Pack(blue)=%d not greater than Pack(red)=%d", blue.Pack(), red.Pack())
	}
}

func TestDistance(t *testing.T) {
	white := BGR{B: 255, G: 255, R: 255}
	black := BGR{}
	want := math.Sqrt(3 * 255 * 255)
	if got := white.Distance(black); math.Abs(got-want) > 1e-9 {
		t.Errorf("Distance(white, black) = %f, want %f", got, want)
	}
	if got := white.Distance(white); got != 0 {
		t.Errorf("Distance(white, white) = %f, want 0", got)
	}
}

func TestHex(t *testing.T) {
	c := BGR{B: 0x30, G: 0x20, R: 0x10}
	if got := c.Hex(); got != "#102030" {
		t.Errorf("Hex() = %q, want #102030", got)
	}
}

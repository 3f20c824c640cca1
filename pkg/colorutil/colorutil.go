// Package colorutil provides shared color utilities for the sprite splitter.
package colorutil

import (
	"fmt"
	"image/color"
	"math"
)

// Common overlay colors used by the debug renderers.
var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Green  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// BGR is an 8-bit color in OpenCV channel order.
type BGR struct {
	B uint8 `json:"b"`
	G uint8 `json:"g"`
	R uint8 `json:"r"`
}

// Pack returns the color as a single integer key (B<<16 | G<<8 | R).
// Keys give colors a total order, used to break frequency ties.
func (c BGR) Pack() uint32 {
	return uint32(c.B)<<16 | uint32(c.G)<<8 | uint32(c.R)
}

// UnpackBGR reconstructs a color from a packed key.
func UnpackBGR(key uint32) BGR {
	return BGR{
		B: uint8(key >> 16),
		G: uint8(key >> 8),
		R: uint8(key),
	}
}

// Distance returns the Euclidean distance to another color in BGR space.
func (c BGR) Distance(other BGR) float64 {
	db := float64(c.B) - float64(other.B)
	dg := float64(c.G) - float64(other.G)
	dr := float64(c.R) - float64(other.R)
	return math.Sqrt(db*db + dg*dg + dr*dr)
}

// Hex returns the color as "#rrggbb".
func (c BGR) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NRGBA converts to a fully opaque standard library color.
func (c BGR) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

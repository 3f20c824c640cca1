// Package sprite post-processes segmented sprite images.
package sprite

import (
	"image"
	"image/draw"

	"sprite-splitter/pkg/geometry"
)

// minContentAlpha separates content from background when locating the crop
// box. The color-distance strategy leaves a faint alpha residue on
// background pixels, so pixels at or below this floor do not count as
// content.
const minContentAlpha = 16

// ContentBounds returns the bounding box of content pixels, in the image's
// coordinate space. ok is false when the image has no content at all.
func ContentBounds(img *image.NRGBA) (bounds geometry.RectInt, ok bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y) + 3
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pix[i] > minContentAlpha {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
			i += 4
		}
	}

	if maxX < minX {
		return geometry.RectInt{}, false
	}
	return geometry.NewRectInt(minX, minY, maxX-minX+1, maxY-minY+1), true
}

// Crop trims the image to its content bounding box plus padding on each
// side, clamped to the image edges. An image with no content comes back
// unchanged.
func Crop(img *image.NRGBA, padding int) *image.NRGBA {
	content, ok := ContentBounds(img)
	if !ok {
		return img
	}

	r := content.Expand(padding).Intersect(geometry.FromImageRect(img.Bounds()))
	out := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(out, out.Bounds(), img, image.Point{X: r.X, Y: r.Y}, draw.Src)
	return out
}

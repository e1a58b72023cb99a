package julia

import (
	"image"
)

// Renderer renders a tile of the Dim×Dim image.
// The returned image has the tile's global coordinates as its bounds.
type Renderer interface {
	RenderTile(tile image.Rectangle) (image.RGBA, error)
}

// Bounds of the full image.
func Bounds() image.Rectangle {
	return image.Rect(0, 0, Dim, Dim)
}

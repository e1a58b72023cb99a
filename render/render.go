// Package render fills the Julia set pixel buffer, either whole or one tile at a time.
package render

import (
	"fmt"
	"image"

	julia "github.com/marben/julia_cpu"
)

// Image allocates the Dim×Dim buffer and fills it row by row.
func Image() *image.RGBA {
	img := image.NewRGBA(julia.Bounds())
	fill(img)
	return img
}

// fill evaluates every pixel of img.Rect, y outer and x inner.
func fill(img *image.RGBA) {
	r := img.Rect
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, julia.Color(julia.Julia(x, y)))
		}
	}
}

type RendererImpl struct {
	OnTileRender func(tile image.Rectangle) // optional progress hook
}

func (imp RendererImpl) RenderTile(tile image.Rectangle) (image.RGBA, error) {
	if tile.Empty() || !tile.In(julia.Bounds()) {
		return image.RGBA{}, fmt.Errorf("tile %v outside image %v", tile, julia.Bounds())
	}
	if imp.OnTileRender != nil {
		imp.OnTileRender(tile)
	}

	// Image has global coordinates (tile.Min .. tile.Max)
	img := image.NewRGBA(tile)
	fill(img)
	return *img, nil
}

var _ julia.Renderer = RendererImpl{}

// SplitRect covers r with tiles of size tileW × tileH in row-major order.
// Tiles are clipped to r, so the last column and row may be narrower.
func SplitRect(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	cols := (r.Dx() + tileW - 1) / tileW
	rows := (r.Dy() + tileH - 1) / tileH
	tiles := make([]image.Rectangle, 0, cols*rows)
	for y := r.Min.Y; y < r.Max.Y; y += tileH {
		for x := r.Min.X; x < r.Max.X; x += tileW {
			tiles = append(tiles, image.Rect(x, y, x+tileW, y+tileH).Intersect(r))
		}
	}
	return tiles
}

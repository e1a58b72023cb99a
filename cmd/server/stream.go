package main

import (
	"context"
	"fmt"
	"image"

	julia "github.com/marben/julia_cpu"
	"github.com/marben/julia_cpu/render"
)

const tileSize = 64

// tileStream renders the image one tile after another and hands each
// finished tile to a sender. It belongs to a single connection.
type tileStream struct {
	renderer julia.Renderer
	tiles    []image.Rectangle

	totalPixels    int
	finishedPixels int
}

func newTileStream(renderer julia.Renderer) *tileStream {
	bounds := julia.Bounds()
	return &tileStream{
		renderer:    renderer,
		tiles:       render.SplitRect(bounds, tileSize, tileSize),
		totalPixels: bounds.Dx() * bounds.Dy(),
	}
}

func (ts *tileStream) finished() float32 {
	return float32(ts.finishedPixels) / float32(ts.totalPixels)
}

// run renders and sends all tiles in row-major order.
// It stops at the first render or send error, or when ctx is done.
func (ts *tileStream) run(ctx context.Context, send func(context.Context, *image.RGBA) error) error {
	for _, tile := range ts.tiles {
		if err := ctx.Err(); err != nil {
			return err
		}
		tileImg, err := ts.renderer.RenderTile(tile)
		if err != nil {
			return fmt.Errorf("render of tile %s: %w", tile, err)
		}
		if err := send(ctx, &tileImg); err != nil {
			return fmt.Errorf("send tile %s: %w", tile, err)
		}
		ts.finishedPixels += tile.Dx() * tile.Dy()
	}
	return nil
}

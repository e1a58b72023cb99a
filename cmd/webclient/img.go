//go:build js && wasm

package main

import (
	"image"
	"syscall/js"
)

// initCanvas sizes the canvas to the image and paints the placeholder
// background that tiles are drawn over.
func initCanvas(width, height int, background string) js.Value {
	canvas := element("myCanvas")
	canvas.Set("width", width)
	canvas.Set("height", height)

	ctx := canvas.Call("getContext", "2d")
	ctx.Set("fillStyle", background)
	ctx.Call("fillRect", 0, 0, width, height)
	return ctx
}

// drawTileToCanvas puts a decoded tile frame on the canvas at its global
// coordinates. The canvas reads the buffer as R, G, B, A, so in-set pixels
// are red here.
func drawTileToCanvas(ctx js.Value, tile *image.RGBA) {
	// tile frames are packed: Pix holds exactly dx*dy*4 bytes
	data := js.Global().Get("Uint8ClampedArray").New(len(tile.Pix))
	js.CopyBytesToJS(data, tile.Pix)

	imageData := js.Global().Get("ImageData").New(data, tile.Rect.Dx(), tile.Rect.Dy())
	ctx.Call("putImageData", imageData, tile.Rect.Min.X, tile.Rect.Min.Y)
}

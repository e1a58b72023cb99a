package julia

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
)

// tileHeaderLen is the size of the tile frame header:
// Min.X, Min.Y, Max.X, Max.Y as little-endian uint32.
const tileHeaderLen = 16

// StreamDone is the text message that ends a tile stream.
const StreamDone = "done"

var ErrTileFrame = errors.New("malformed tile frame")

// EncodeTileFrame serializes a rendered tile for streaming.
// Rows are packed, so the pixel part is dx*dy*4 bytes whatever the stride of img.
func EncodeTileFrame(img *image.RGBA) []byte {
	r := img.Rect
	w, h := r.Dx(), r.Dy()
	buf := make([]byte, tileHeaderLen, tileHeaderLen+w*h*4)
	binary.LittleEndian.PutUint32(buf[0:], uint32(r.Min.X))
	binary.LittleEndian.PutUint32(buf[4:], uint32(r.Min.Y))
	binary.LittleEndian.PutUint32(buf[8:], uint32(r.Max.X))
	binary.LittleEndian.PutUint32(buf[12:], uint32(r.Max.Y))
	for y := 0; y < h; y++ {
		off := y * img.Stride
		buf = append(buf, img.Pix[off:off+w*4]...)
	}
	return buf
}

// DecodeTileFrame is the inverse of EncodeTileFrame.
func DecodeTileFrame(b []byte) (*image.RGBA, error) {
	if len(b) < tileHeaderLen {
		return nil, fmt.Errorf("%w: short header (%d bytes)", ErrTileFrame, len(b))
	}
	r := image.Rect(
		int(binary.LittleEndian.Uint32(b[0:])),
		int(binary.LittleEndian.Uint32(b[4:])),
		int(binary.LittleEndian.Uint32(b[8:])),
		int(binary.LittleEndian.Uint32(b[12:])),
	)
	if r.Empty() || !r.In(Bounds()) {
		return nil, fmt.Errorf("%w: tile %v outside %v", ErrTileFrame, r, Bounds())
	}
	pix := b[tileHeaderLen:]
	if want := r.Dx() * r.Dy() * 4; len(pix) != want {
		return nil, fmt.Errorf("%w: tile %v has %d pixel bytes, want %d", ErrTileFrame, r, len(pix), want)
	}
	return &image.RGBA{
		Pix:    pix,
		Stride: r.Dx() * 4,
		Rect:   r,
	}, nil
}

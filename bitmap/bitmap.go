// Package bitmap writes uncompressed 32-bit BMP files.
//
// Pixel bytes are stored verbatim in buffer order, four bytes per pixel.
// BMP readers interpret them as B, G, R, A and take the first row written
// as the bottom row of the picture.
package bitmap

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
)

const (
	fileHeaderLen = 14
	infoHeaderLen = 40
	headerLen     = fileHeaderLen + infoHeaderLen
	bitsPerPixel  = 32
)

var (
	ErrUnwritable = errors.New("could not open file for writing")
	ErrBufferSize = errors.New("pixel buffer does not match dimensions")
	ErrNotBMP     = errors.New("not a BMP file")
)

// FileHeader is the 14-byte BITMAPFILEHEADER.
type FileHeader struct {
	Type      [2]byte // "BM"
	Size      uint32  // total file size in bytes
	Reserved1 uint16
	Reserved2 uint16
	OffBits   uint32 // offset of the pixel array
}

// InfoHeader is the 40-byte BITMAPINFOHEADER.
type InfoHeader struct {
	Size            uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitCount        uint16
	Compression     uint32 // 0 = BI_RGB
	SizeImage       uint32
	XPixelsPerM     int32
	YPixelsPerM     int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// FileSize returns the size of an encoded width×height image.
func FileSize(width, height int) int {
	return headerLen + width*height*4
}

func headers(width, height int) (FileHeader, InfoHeader) {
	fh := FileHeader{
		Type:    [2]byte{'B', 'M'},
		Size:    uint32(FileSize(width, height)),
		OffBits: headerLen,
	}
	ih := InfoHeader{
		Size:     infoHeaderLen,
		Width:    int32(width),
		Height:   int32(height),
		Planes:   1,
		BitCount: bitsPerPixel,
	}
	return fh, ih
}

func writeHeaders(w io.Writer, width, height int) error {
	fh, ih := headers(width, height)
	if err := binary.Write(w, binary.LittleEndian, &fh); err != nil {
		return fmt.Errorf("write file header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, &ih); err != nil {
		return fmt.Errorf("write info header: %w", err)
	}
	return nil
}

func checkBuffer(pix []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBufferSize, width, height)
	}
	if len(pix) != width*height*4 {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrBufferSize, len(pix), width, height)
	}
	return nil
}

// Encode writes a width×height image whose pixels are the row-major
// byte-quadruples in pix.
func Encode(w io.Writer, pix []byte, width, height int) error {
	if err := checkBuffer(pix, width, height); err != nil {
		return err
	}
	if err := writeHeaders(w, width, height); err != nil {
		return err
	}
	if _, err := w.Write(pix); err != nil {
		return fmt.Errorf("write pixels: %w", err)
	}
	return nil
}

// EncodeRGBA writes img using its bounds as the image dimensions.
// img.Pix is written row by row, so sub-images are fine.
func EncodeRGBA(w io.Writer, img *image.RGBA) error {
	width, height := img.Rect.Dx(), img.Rect.Dy()
	if img.Stride == width*4 {
		return Encode(w, img.Pix[:width*height*4], width, height)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBufferSize, width, height)
	}
	if err := writeHeaders(w, width, height); err != nil {
		return err
	}
	for y := 0; y < height; y++ {
		off := y * img.Stride
		if _, err := w.Write(img.Pix[off : off+width*4]); err != nil {
			return fmt.Errorf("write row %d: %w", y, err)
		}
	}
	return nil
}

// Save writes the image to the named file.
// A buffer that does not match the dimensions is rejected before the file
// is touched. If the file cannot be opened, the returned error wraps
// ErrUnwritable and nothing is written.
func Save(path string, pix []byte, width, height int) (err error) {
	if err := checkBuffer(pix, width, height); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnwritable, path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Encode(bw, pix, width, height); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// ReadHeader reads the file and info headers from the start of r.
func ReadHeader(r io.Reader) (FileHeader, InfoHeader, error) {
	var fh FileHeader
	var ih InfoHeader
	if err := binary.Read(r, binary.LittleEndian, &fh); err != nil {
		return fh, ih, fmt.Errorf("read file header: %w", err)
	}
	if fh.Type != [2]byte{'B', 'M'} {
		return fh, ih, fmt.Errorf("%w: signature %q", ErrNotBMP, fh.Type[:])
	}
	if err := binary.Read(r, binary.LittleEndian, &ih); err != nil {
		return fh, ih, fmt.Errorf("read info header: %w", err)
	}
	return fh, ih, nil
}

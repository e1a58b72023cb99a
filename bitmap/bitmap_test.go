package bitmap

import (
	"bytes"
	"encoding/hex"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// testPix returns a w×h buffer with a distinct value in every byte
// and an opaque alpha channel.
func testPix(w, h int) []byte {
	pix := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		pix[i*4+0] = byte(i)
		pix[i*4+1] = byte(i * 3)
		pix[i*4+2] = byte(i * 7)
		pix[i*4+3] = 255
	}
	return pix
}

func TestHeaderBytes(t *testing.T) {
	// headers of a 1000×1000 image
	const want = "424d36093d0000000000360000002800" +
		"0000e8030000e8030000010020000000" +
		"00000000000000000000000000000000" +
		"000000000000"

	var buf bytes.Buffer
	if err := writeHeaders(&buf, 1000, 1000); err != nil {
		t.Fatal(err)
	}
	if got := hex.EncodeToString(buf.Bytes()); got != want {
		t.Errorf("headers:\n got %s\nwant %s", got, want)
	}
}

func TestEncodeLayout(t *testing.T) {
	const w, h = 5, 3
	pix := testPix(w, h)

	var buf bytes.Buffer
	if err := Encode(&buf, pix, w, h); err != nil {
		t.Fatal(err)
	}
	out := buf.Bytes()
	if len(out) != FileSize(w, h) {
		t.Fatalf("encoded %d bytes, want %d", len(out), FileSize(w, h))
	}
	if !bytes.Equal(out[headerLen:], pix) {
		t.Error("pixel data not written verbatim")
	}

	fh, ih, err := ReadHeader(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if fh.Size != uint32(FileSize(w, h)) || fh.OffBits != headerLen || fh.Reserved1 != 0 || fh.Reserved2 != 0 {
		t.Errorf("file header %+v", fh)
	}
	wantInfo := InfoHeader{Size: 40, Width: w, Height: h, Planes: 1, BitCount: 32}
	if ih != wantInfo {
		t.Errorf("info header %+v, want %+v", ih, wantInfo)
	}
}

func TestEncodeRGBASubImage(t *testing.T) {
	full := image.NewRGBA(image.Rect(0, 0, 6, 4))
	copy(full.Pix, testPix(6, 4))
	sub := full.SubImage(image.Rect(1, 1, 4, 3)).(*image.RGBA)

	var got bytes.Buffer
	if err := EncodeRGBA(&got, sub); err != nil {
		t.Fatal(err)
	}

	var packed []byte
	for y := 1; y < 3; y++ {
		packed = append(packed, full.Pix[y*full.Stride+4:y*full.Stride+16]...)
	}
	var want bytes.Buffer
	if err := Encode(&want, packed, 3, 2); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Bytes(), want.Bytes()) {
		t.Error("sub-image encoding differs from packed encoding")
	}
}

func TestEncodeBufferSize(t *testing.T) {
	tests := []struct {
		name string
		pix  []byte
		w, h int
	}{
		{"short", make([]byte, 15), 2, 2},
		{"long", make([]byte, 17), 2, 2},
		{"zero width", nil, 0, 2},
		{"negative height", nil, 2, -1},
	}
	for _, tc := range tests {
		var buf bytes.Buffer
		err := Encode(&buf, tc.pix, tc.w, tc.h)
		if !errors.Is(err, ErrBufferSize) {
			t.Errorf("%s: got %v, want ErrBufferSize", tc.name, err)
		}
		if buf.Len() != 0 {
			t.Errorf("%s: %d bytes written on error", tc.name, buf.Len())
		}
	}
}

// Readers see the stored bytes as B, G, R, A with the first row at the bottom.
func TestDecode(t *testing.T) {
	const w, h = 4, 3
	pix := testPix(w, h)
	var buf bytes.Buffer
	if err := Encode(&buf, pix, w, h); err != nil {
		t.Fatal(err)
	}

	cfg, err := bmp.DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != w || cfg.Height != h {
		t.Errorf("config %dx%d, want %dx%d", cfg.Width, cfg.Height, w, h)
	}

	img, err := bmp.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (x + y*w) * 4
			want := color.RGBA{R: pix[i+2], G: pix[i+1], B: pix[i], A: 255}
			got := color.RGBAModel.Convert(img.At(x, h-1-y)).(color.RGBA)
			if got != want {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, h-1-y, got, want)
			}
		}
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bmp")
	pix := testPix(7, 2)
	if err := Save(path, pix, 7, 2); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var want bytes.Buffer
	if err := Encode(&want, pix, 7, 2); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, want.Bytes()) {
		t.Error("saved file differs from Encode output")
	}
}

func TestSaveBadBufferKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bmp")
	pix := testPix(3, 3)
	if err := Save(path, pix, 3, 3); err != nil {
		t.Fatal(err)
	}

	if err := Save(path, []byte{1, 2, 3}, 3, 3); !errors.Is(err, ErrBufferSize) {
		t.Fatalf("got %v, want ErrBufferSize", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != FileSize(3, 3) || !bytes.Equal(data[headerLen:], pix) {
		t.Errorf("existing file changed to %d bytes", len(data))
	}

	fresh := filepath.Join(t.TempDir(), "fresh.bmp")
	if err := Save(fresh, nil, 0, 3); !errors.Is(err, ErrBufferSize) {
		t.Fatalf("got %v, want ErrBufferSize", err)
	}
	if _, err := os.Stat(fresh); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file created for rejected buffer: %v", err)
	}
}

func TestSaveUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.bmp")
	err := Save(path, testPix(2, 2), 2, 2)
	if !errors.Is(err, ErrUnwritable) {
		t.Fatalf("got %v, want ErrUnwritable", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("%v does not wrap the open error", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("file exists after failed save: %v", statErr)
	}
}

func TestReadHeaderNotBMP(t *testing.T) {
	_, _, err := ReadHeader(bytes.NewReader(make([]byte, headerLen)))
	if !errors.Is(err, ErrNotBMP) {
		t.Errorf("got %v, want ErrNotBMP", err)
	}
	if _, _, err := ReadHeader(bytes.NewReader([]byte("BM"))); err == nil {
		t.Error("short header accepted")
	}
}

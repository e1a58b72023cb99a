package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	julia "github.com/marben/julia_cpu"
	"github.com/marben/julia_cpu/bitmap"
)

// SHA-256 of a known-good julia_cpu.bmp.
const fileSHA256 = "07c7950efaa6d75f2ea9411be418905b5115022ba3df99e6eabeb3b3e6e10864"

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestRun(t *testing.T) {
	logs := captureLog(t)
	path := filepath.Join(t.TempDir(), filename)

	run(path)

	if logs.Len() != 0 {
		t.Errorf("unexpected diagnostics: %q", logs.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 4_000_054 {
		t.Fatalf("file is %d bytes, want 4000054", len(data))
	}

	fh, ih, err := bitmap.ReadHeader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if fh.Size != 4_000_054 || fh.OffBits != 54 {
		t.Errorf("file header %+v", fh)
	}
	if ih.Width != julia.Dim || ih.Height != julia.Dim || ih.BitCount != 32 || ih.Compression != 0 {
		t.Errorf("info header %+v", ih)
	}

	// center pixel is in the set, stored as 255 in the buffer's first channel
	center := 54 + (500+500*julia.Dim)*4
	if got := data[center : center+4]; !bytes.Equal(got, []byte{255, 0, 0, 255}) {
		t.Errorf("center pixel bytes %v", got)
	}

	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != fileSHA256 {
		t.Errorf("sha256 %s, want %s", got, fileSHA256)
	}
}

func TestRunUnwritable(t *testing.T) {
	logs := captureLog(t)
	path := filepath.Join(t.TempDir(), "no-such-dir", filename)

	run(path) // must return normally

	msg := logs.String()
	if !strings.Contains(msg, "could not open file for writing") || !strings.Contains(msg, path) {
		t.Errorf("diagnostic %q", msg)
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("output file created")
	}
}

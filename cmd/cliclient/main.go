// cliclient is a CLI client for the Julia set tile server.
// It connects to the server websocket, assembles the streamed tiles, and saves the image as julia_cpu.bmp.

package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io/fs"
	"log"
	"os"

	"github.com/coder/websocket"
	"github.com/joho/godotenv"
	julia "github.com/marben/julia_cpu"
	"github.com/marben/julia_cpu/bitmap"
)

const (
	defaultURL = "ws://localhost:8080/ws"
	filename   = "julia_cpu.bmp"
)

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	log.Printf("Starting CLI client...")
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// run fetches the streamed image from the server and saves it as a BMP file.
func run() error {
	// Step 1: Resolve the server address
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	url := os.Getenv("JULIA_SERVER_URL")
	if url == "" {
		url = defaultURL
	}

	// Step 2: Receive all tiles
	log.Printf("Connecting to Julia server at %s...", url)
	img, err := fetch(context.Background(), url)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	// Step 3: Save the assembled image
	log.Printf("Saving image to %q...", filename)
	if err := bitmap.Save(filename, img.Pix, julia.Dim, julia.Dim); err != nil {
		return err
	}

	log.Printf("Fully rendered image saved to %q", filename)
	return nil
}

var errTileOverlap = errors.New("tile overlaps a received tile")

// fetch reads tile frames from the websocket at url until the server
// reports the end of the stream. The tiles must cover the whole image,
// each pixel exactly once.
func fetch(ctx context.Context, url string) (*image.RGBA, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer c.CloseNow()

	img := image.NewRGBA(julia.Bounds())
	var received []image.Rectangle
	covered := 0
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			return nil, fmt.Errorf("read after %d pixels: %w", covered, err)
		}
		if typ == websocket.MessageText {
			if string(data) != julia.StreamDone {
				return nil, fmt.Errorf("unexpected message %q", data)
			}
			break
		}

		tile, err := julia.DecodeTileFrame(data)
		if err != nil {
			return nil, err
		}
		for _, r := range received {
			if r.Overlaps(tile.Rect) {
				return nil, fmt.Errorf("%w: %v and %v", errTileOverlap, tile.Rect, r)
			}
		}
		received = append(received, tile.Rect)

		draw.Draw(img, tile.Rect, tile, tile.Rect.Min, draw.Src)
		covered += tile.Rect.Dx() * tile.Rect.Dy()
	}

	// tiles are disjoint and inside the image, so the area sum is the coverage
	if total := julia.Dim * julia.Dim; covered != total {
		return nil, fmt.Errorf("stream covered %d of %d pixels", covered, total)
	}
	c.Close(websocket.StatusNormalClosure, "")
	return img, nil
}

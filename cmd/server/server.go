// Command server serves the Julia set image over http.
// GET /julia.bmp returns the whole bitmap, GET /ws streams it tile by tile
// over a websocket. Tiles are rendered one after another on the
// connection's goroutine.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/marben/julia_cpu/render"
)

const defaultAddr = ":8080"

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	// a missing .env is fine, the environment and defaults still apply
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	addr := os.Getenv("JULIA_SERVER_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	renderer := render.RendererImpl{}
	httpServer := webServer(addr, renderer)

	if err := httpServer.ListenAndServe(); err != nil {
		return fmt.Errorf("httpServer: %w", err)
	}
	return nil
}

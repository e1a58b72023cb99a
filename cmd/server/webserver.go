package main

import (
	"bytes"
	"context"
	"image"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/coder/websocket"
	julia "github.com/marben/julia_cpu"
	"github.com/marben/julia_cpu/bitmap"
	"github.com/marben/julia_cpu/render"
)

// webServer creates the http server with the bmp and websocket endpoints.
// Files in ./static (the web client) are served at /.
func webServer(addr string, renderer julia.Renderer) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(renderer),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://%s", addr)
	return srv
}

func newMux(renderer julia.Renderer) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", websocketHandler(renderer))
	mux.HandleFunc("GET /julia.bmp", bmpHandler(&bmpCache{}))
	mux.Handle("/", http.FileServer(http.Dir("./static"))) // index.html, main.wasm
	return mux
}

// bmpCache holds the encoded full image. The image never changes, so it
// is rendered on first request only.
type bmpCache struct {
	once sync.Once
	data []byte
	err  error
}

func (c *bmpCache) get() ([]byte, error) {
	c.once.Do(func() {
		start := time.Now()
		var buf bytes.Buffer
		c.err = bitmap.EncodeRGBA(&buf, render.Image())
		c.data = buf.Bytes()
		log.Printf("full image rendered in %s", time.Since(start))
	})
	return c.data, c.err
}

func bmpHandler(cache *bmpCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := cache.get()
		if err != nil {
			log.Printf("encode bmp: %v", err)
			http.Error(w, "encoding failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/bmp")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		if _, err := w.Write(data); err != nil {
			log.Printf("write bmp to %s: %v", r.RemoteAddr, err)
		}
	}
}

// websocketHandler streams the image tile by tile to the client as binary
// tile frames and finishes with a StreamDone text message.
func websocketHandler(renderer julia.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		log.Printf("got connection from: %s", r.RemoteAddr)
		ctx := r.Context()

		ts := newTileStream(renderer)
		err = ts.run(ctx, func(ctx context.Context, tile *image.RGBA) error {
			return c.Write(ctx, websocket.MessageBinary, julia.EncodeTileFrame(tile))
		})
		if err != nil {
			log.Printf("stream to %s aborted at %.0f%%: %v", r.RemoteAddr, ts.finished()*100, err)
			c.Close(websocket.StatusInternalError, "render failed")
			return
		}

		if err := c.Write(ctx, websocket.MessageText, []byte(julia.StreamDone)); err != nil {
			log.Printf("write done to %s: %v", r.RemoteAddr, err)
			return
		}
		c.Close(websocket.StatusNormalClosure, "")
		log.Printf("streamed %d tiles to %s", len(ts.tiles), r.RemoteAddr)
	}
}

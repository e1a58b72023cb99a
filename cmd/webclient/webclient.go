//go:build js && wasm

// webclient.go is a WASM web client for the Julia set tile server.
// It opens the server websocket and draws every streamed tile on a canvas as it arrives.

package main

import (
	"fmt"
	"log"
	"syscall/js"

	julia "github.com/marben/julia_cpu"
)

// main is the entry point for the WASM web client.
func main() {
	logScreenf("Starting WASM web client...")

	// Step 1: Determine server address for WebSocket connection
	loc := js.Global().Get("window").Get("location")
	host := loc.Get("host").String()
	proto := "ws"
	if loc.Get("protocol").String() == "https:" {
		proto = "wss"
	}
	websocketUrl := proto + "://" + host + "/ws"

	// Step 2: Initialize canvas with full image dimensions
	ctx := initCanvas(julia.Dim, julia.Dim, "#3a3a6e")
	hudSet("tilesTotal", tilesCount(julia.Dim, 64))

	// Step 3: Connect to server via WebSocket
	logScreenf("Connecting to Julia server at %s...", websocketUrl)
	conn := newWSConn(js.Global().Get("WebSocket").New(websocketUrl))

	// Step 4: Draw tiles until the stream ends
	if err := tilesLoadLoop(ctx, conn); err != nil {
		logFatalf("tilesLoadLoop: %v", err)
	}
	conn.close()
	logScreenf("Image complete.")

	// Step 5: Block main goroutine to keep WASM running
	select {}
}

// element looks up a DOM element of the client page by id.
func element(id string) js.Value {
	return js.Global().Get("document").Call("getElementById", id)
}

// logScreenf appends a line to the page log and mirrors it to the console.
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	logElem := element("log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
	log.Print(msg)
}

func logFatalf(format string, a ...any) {
	logScreenf("FATAL: "+format, a...)
	select {} // keep the page and its log alive
}

// tilesLoadLoop draws each tile frame received from the server.
// It returns once the server sends the end of stream marker.
func tilesLoadLoop(ctx js.Value, conn *wsConn) error {
	finished := 0
	for msg := range conn.messages() {
		if msg.text {
			if string(msg.data) != julia.StreamDone {
				return fmt.Errorf("unexpected message %q", msg.data)
			}
			return nil
		}

		tile, err := julia.DecodeTileFrame(msg.data)
		if err != nil {
			return err
		}
		drawTileToCanvas(ctx, tile)

		finished++
		hudSet("tilesDone", finished)
	}
	return fmt.Errorf("connection closed after %d tiles", finished)
}

func tilesCount(dim, tileSize int) int {
	n := (dim + tileSize - 1) / tileSize
	return n * n
}

// hudSet shows a tile counter in the HUD element id.
func hudSet(id string, n int) {
	element(id).Set("textContent", n)
}

//go:build js && wasm

package main

import (
	"syscall/js"
)

// wsMessage is one websocket message received by the browser.
type wsMessage struct {
	text bool
	data []byte
}

// wsConn adapts a browser WebSocket to a channel of messages.
// The channel is closed when the socket closes or fails.
type wsConn struct {
	ws     js.Value
	readCh chan wsMessage
}

func newWSConn(ws js.Value) *wsConn {
	c := &wsConn{
		ws:     ws,
		readCh: make(chan wsMessage, 8),
	}

	ws.Set("binaryType", "arraybuffer")

	ws.Set("onerror", js.FuncOf(func(js.Value, []js.Value) any {
		logScreenf("websocket error")
		return nil
	}))

	ws.Set("onmessage", js.FuncOf(func(this js.Value, args []js.Value) any {
		data := args[0].Get("data")

		if data.Type() == js.TypeString {
			c.readCh <- wsMessage{text: true, data: []byte(data.String())}
			return nil
		}
		jsDataToBytes(data, func(b []byte) {
			c.readCh <- wsMessage{data: b}
		})

		return nil
	}))

	ws.Set("onclose", js.FuncOf(func(js.Value, []js.Value) any {
		logScreenf("ws onClose received")
		close(c.readCh)
		return nil
	}))

	return c
}

func (c *wsConn) messages() <-chan wsMessage {
	return c.readCh
}

func (c *wsConn) close() {
	c.ws.Call("close")
}

func jsDataToBytes(data js.Value, deliver func([]byte)) {
	// Uint8Array / Uint8ClampedArray
	if data.InstanceOf(js.Global().Get("Uint8Array")) ||
		data.InstanceOf(js.Global().Get("Uint8ClampedArray")) {

		b := make([]byte, data.Get("byteLength").Int())
		js.CopyBytesToGo(b, data)
		deliver(b)
		return
	}

	// ArrayBuffer
	if data.InstanceOf(js.Global().Get("ArrayBuffer")) {
		u8 := js.Global().Get("Uint8Array").New(data)
		b := make([]byte, u8.Get("byteLength").Int())
		js.CopyBytesToGo(b, u8)
		deliver(b)
		return
	}

	logScreenf("unsupported websocket data type: %s", data.Type())
}

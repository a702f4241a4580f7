//go:build js && wasm

// Package web drives frames from the browser and adapts its audio and
// image objects to the engine interfaces.
package web

import (
	"context"
	"errors"
	"fmt"
	"syscall/js"

	"github.com/spaghettifunk/resonance/engine/core"
	"github.com/spaghettifunk/resonance/engine/platform"
	"github.com/spaghettifunk/resonance/engine/renderer/metadata"
)

const FFT_SIZE = 512

// Driver runs frames from requestAnimationFrame.
type Driver struct {
	window js.Value
}

var _ platform.Driver = (*Driver)(nil)

func NewDriver() *Driver {
	return &Driver{window: js.Global()}
}

func (d *Driver) Run(ctx context.Context, frame platform.FrameFunc) error {
	done := make(chan error, 1)
	var last float64
	var callback js.Func

	callback = js.FuncOf(func(this js.Value, args []js.Value) any {
		now := args[0].Float()
		// requestAnimationFrame timestamps are in milliseconds
		var delta float64
		if last > 0 {
			delta = now - last
		}
		last = now

		if err := ctx.Err(); err != nil {
			done <- err
			return nil
		}
		if err := frame(delta); err != nil {
			if errors.Is(err, platform.ErrStop) {
				err = nil
			}
			done <- err
			return nil
		}
		d.window.Call("requestAnimationFrame", callback)
		return nil
	})
	defer callback.Release()

	d.window.Call("requestAnimationFrame", callback)
	return <-done
}

/**
 * @brief Posts EVENT_CODE_RESIZED with the canvas size whenever the window
 * is resized. The canvas backing store is matched to its CSS size first.
 * @return a function removing the listener.
 */
func ListenResize(bus *core.EventBus, canvasID string) func() {
	window := js.Global()
	canvas := window.Get("document").Call("getElementById", canvasID)

	handler := js.FuncOf(func(this js.Value, args []js.Value) any {
		if canvas.IsNull() {
			return nil
		}
		width := canvas.Get("clientWidth").Int()
		height := canvas.Get("clientHeight").Int()
		canvas.Set("width", width)
		canvas.Set("height", height)

		ctx := core.EventContext{}
		ctx.Data.U32[0] = uint32(width)
		ctx.Data.U32[1] = uint32(height)
		bus.Post(core.EVENT_CODE_RESIZED, canvas, ctx)
		return nil
	})
	window.Call("addEventListener", "resize", handler)

	return func() {
		window.Call("removeEventListener", "resize", handler)
		handler.Release()
	}
}

/**
 * @brief Reads byte frequency data from a WebAudio AnalyserNode. Reports no
 * data until Connect attached a media element.
 */
type Analyser struct {
	node   js.Value
	buffer js.Value
}

func NewAnalyser() *Analyser {
	return &Analyser{node: js.Undefined()}
}

// Connect routes the media element with the given id through an analyser to
// the speakers.
func (a *Analyser) Connect(mediaID string) error {
	window := js.Global()
	media := window.Get("document").Call("getElementById", mediaID)
	if media.IsNull() {
		return fmt.Errorf("media element %q not found", mediaID)
	}

	ctor := window.Get("AudioContext")
	if ctor.IsUndefined() {
		ctor = window.Get("webkitAudioContext")
	}
	if ctor.IsUndefined() {
		return fmt.Errorf("web audio is not available")
	}
	audioCtx := ctor.New()

	node := audioCtx.Call("createAnalyser")
	node.Set("fftSize", FFT_SIZE)
	source := audioCtx.Call("createMediaElementSource", media)
	source.Call("connect", node)
	node.Call("connect", audioCtx.Get("destination"))

	a.node = node
	a.buffer = window.Get("Uint8Array").New(node.Get("frequencyBinCount").Int())
	core.LogInfo("analyser connected to %s, %d bins", mediaID, node.Get("frequencyBinCount").Int())
	return nil
}

func (a *Analyser) ByteFrequencyData(buf []uint8) bool {
	if a.node.IsUndefined() {
		return false
	}
	a.node.Call("getByteFrequencyData", a.buffer)
	n := js.CopyBytesToGo(buf, a.buffer)
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
	return true
}

// Images serves ImageData objects stored by name on a JS object.
type Images struct {
	images js.Value
}

// NewImages reads from globalThis[name], typically "images".
func NewImages(name string) *Images {
	return &Images{images: js.Global().Get(name)}
}

func (im *Images) Image(name string) (*metadata.ImageData, error) {
	if im.images.IsUndefined() || im.images.IsNull() {
		return nil, fmt.Errorf("image %q: %w", name, core.ErrImageNotFound)
	}
	v := im.images.Get(name)
	if v.IsUndefined() || v.IsNull() {
		return nil, fmt.Errorf("image %q: %w", name, core.ErrImageNotFound)
	}

	data := v.Get("data")
	img := &metadata.ImageData{
		Width:  uint32(v.Get("width").Int()),
		Height: uint32(v.Get("height").Int()),
		Pixels: make([]uint8, data.Get("length").Int()),
	}
	// CopyBytesToGo wants a Uint8Array, ImageData carries a Uint8ClampedArray
	u8 := js.Global().Get("Uint8Array").New(data.Get("buffer"), data.Get("byteOffset"), data.Get("length"))
	js.CopyBytesToGo(img.Pixels, u8)
	return img, nil
}

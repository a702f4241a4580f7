//go:build js && wasm

// Package webgl implements device.Host on the browser's WebGLRenderingContext.
package webgl

import (
	"syscall/js"

	"github.com/spaghettifunk/resonance/engine/renderer/device"
	"github.com/spaghettifunk/resonance/engine/renderer/metadata"
)

// Host forwards every call to the JavaScript context object. Native objects
// are js.Value, nil becomes null.
type Host struct {
	document js.Value
}

var _ device.Host = (*Host)(nil)

func New() *Host {
	return &Host{document: js.Global().Get("document")}
}

func value(o device.Object) js.Value {
	if o == nil {
		return js.Null()
	}
	return o.(js.Value)
}

func object(v js.Value) device.Object {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return v
}

func call(ctx device.Object, method string, args ...any) js.Value {
	return value(ctx).Call(method, args...)
}

// typedArray copies the view bytes into a fresh ArrayBuffer and returns the
// typed array matching the view kind.
func typedArray(v device.View) js.Value {
	u8 := js.Global().Get("Uint8Array").New(len(v.Bytes()))
	js.CopyBytesToJS(u8, v.Bytes())

	var ctor string
	switch v.Kind() {
	case device.Float32:
		ctor = "Float32Array"
	case device.Float64:
		ctor = "Float64Array"
	case device.Int32:
		ctor = "Int32Array"
	case device.Uint16:
		ctor = "Uint16Array"
	default:
		return u8
	}
	return js.Global().Get(ctor).New(u8.Get("buffer"), 0, v.Len())
}

func imageData(img *metadata.ImageData) js.Value {
	if img == nil {
		return js.Null()
	}
	pixels := js.Global().Get("Uint8ClampedArray").New(len(img.Pixels))
	js.CopyBytesToJS(pixels, img.Pixels)
	return js.Global().Get("ImageData").New(pixels, img.Width, img.Height)
}

func boolParameter(v js.Value) int {
	switch v.Type() {
	case js.TypeBoolean:
		if v.Bool() {
			return device.TRUE
		}
		return device.FALSE
	case js.TypeNumber:
		return v.Int()
	}
	return 0
}

// Context ------------------------------

func (h *Host) GetContext(canvasID, contextType string) device.Object {
	canvas := h.document.Call("getElementById", canvasID)
	if canvas.IsNull() || canvas.IsUndefined() {
		return nil
	}
	return object(canvas.Call("getContext", contextType))
}

func (h *Host) GetParameter(ctx device.Object, pname device.Enum) int {
	return boolParameter(call(ctx, "getParameter", uint32(pname)))
}

func (h *Host) DrawingBufferSize(ctx device.Object) (int, int) {
	gl := value(ctx)
	return gl.Get("drawingBufferWidth").Int(), gl.Get("drawingBufferHeight").Int()
}

func (h *Host) Enable(ctx device.Object, capability device.Enum) {
	call(ctx, "enable", uint32(capability))
}

func (h *Host) BlendFunc(ctx device.Object, sfactor, dfactor device.Enum) {
	call(ctx, "blendFunc", uint32(sfactor), uint32(dfactor))
}

func (h *Host) Clear(ctx device.Object, mask device.Enum) {
	call(ctx, "clear", uint32(mask))
}

func (h *Host) ClearColor(ctx device.Object, r, g, b, a float32) {
	call(ctx, "clearColor", r, g, b, a)
}

func (h *Host) Viewport(ctx device.Object, x, y, width, height int) {
	call(ctx, "viewport", x, y, width, height)
}

// Shaders ------------------------------

func (h *Host) CreateShader(ctx device.Object, shaderType device.Enum) device.Object {
	return object(call(ctx, "createShader", uint32(shaderType)))
}

func (h *Host) ShaderSource(ctx, shader device.Object, source string) {
	call(ctx, "shaderSource", value(shader), source)
}

func (h *Host) CompileShader(ctx, shader device.Object) {
	call(ctx, "compileShader", value(shader))
}

func (h *Host) ShaderParameter(ctx, shader device.Object, pname device.Enum) int {
	return boolParameter(call(ctx, "getShaderParameter", value(shader), uint32(pname)))
}

func (h *Host) ShaderInfoLog(ctx, shader device.Object) string {
	log := call(ctx, "getShaderInfoLog", value(shader))
	if log.IsNull() {
		return ""
	}
	return log.String()
}

// Programs -----------------------------

func (h *Host) CreateProgram(ctx device.Object) device.Object {
	return object(call(ctx, "createProgram"))
}

func (h *Host) AttachShader(ctx, program, shader device.Object) {
	call(ctx, "attachShader", value(program), value(shader))
}

func (h *Host) LinkProgram(ctx, program device.Object) {
	call(ctx, "linkProgram", value(program))
}

func (h *Host) ProgramParameter(ctx, program device.Object, pname device.Enum) int {
	return boolParameter(call(ctx, "getProgramParameter", value(program), uint32(pname)))
}

func (h *Host) ProgramInfoLog(ctx, program device.Object) string {
	log := call(ctx, "getProgramInfoLog", value(program))
	if log.IsNull() {
		return ""
	}
	return log.String()
}

func (h *Host) UseProgram(ctx, program device.Object) {
	call(ctx, "useProgram", value(program))
}

func (h *Host) GetAttribLocation(ctx, program device.Object, name string) int {
	return call(ctx, "getAttribLocation", value(program), name).Int()
}

// Buffers ------------------------------

func (h *Host) CreateBuffer(ctx device.Object) device.Object {
	return object(call(ctx, "createBuffer"))
}

func (h *Host) BindBuffer(ctx device.Object, target device.Enum, buffer device.Object) {
	call(ctx, "bindBuffer", uint32(target), value(buffer))
}

func (h *Host) BufferData(ctx device.Object, target device.Enum, data device.View, usage device.Enum) {
	call(ctx, "bufferData", uint32(target), typedArray(data), uint32(usage))
}

func (h *Host) EnableVertexAttribArray(ctx device.Object, index int) {
	call(ctx, "enableVertexAttribArray", index)
}

func (h *Host) VertexAttribPointer(ctx device.Object, index, size int, dataType device.Enum, normalized bool, stride, offset int) {
	call(ctx, "vertexAttribPointer", index, size, uint32(dataType), normalized, stride, offset)
}

// Uniforms -----------------------------

func (h *Host) GetUniformLocation(ctx, program device.Object, name string) device.Object {
	return object(call(ctx, "getUniformLocation", value(program), name))
}

func (h *Host) Uniform1f(ctx, location device.Object, x float32) {
	call(ctx, "uniform1f", value(location), x)
}

func (h *Host) Uniform1i(ctx, location device.Object, x int) {
	call(ctx, "uniform1i", value(location), x)
}

func (h *Host) Uniform2f(ctx, location device.Object, x, y float32) {
	call(ctx, "uniform2f", value(location), x, y)
}

func (h *Host) Uniform1fv(ctx, location device.Object, data device.View) {
	call(ctx, "uniform1fv", value(location), typedArray(data))
}

// Textures -----------------------------

func (h *Host) CreateTexture(ctx device.Object) device.Object {
	return object(call(ctx, "createTexture"))
}

func (h *Host) BindTexture(ctx device.Object, target device.Enum, texture device.Object) {
	call(ctx, "bindTexture", uint32(target), value(texture))
}

func (h *Host) ActiveTexture(ctx device.Object, unit device.Enum) {
	call(ctx, "activeTexture", uint32(unit))
}

func (h *Host) TexParameteri(ctx device.Object, target, pname device.Enum, param int) {
	call(ctx, "texParameteri", uint32(target), uint32(pname), param)
}

func (h *Host) TexImage2D(ctx device.Object, target device.Enum, level int, internalFormat, format, dataType device.Enum, image *metadata.ImageData) {
	call(ctx, "texImage2D", uint32(target), level, uint32(internalFormat), uint32(format), uint32(dataType), imageData(image))
}

// Draw ---------------------------------

func (h *Host) DrawArrays(ctx device.Object, mode device.Enum, first, count int) {
	call(ctx, "drawArrays", uint32(mode), first, count)
}

func (h *Host) DrawElements(ctx device.Object, mode device.Enum, count int, dataType device.Enum, offset int) {
	call(ctx, "drawElements", uint32(mode), count, uint32(dataType), offset)
}

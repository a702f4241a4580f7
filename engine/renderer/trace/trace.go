// Package trace is a device.Host that draws nothing. It hands out numbered
// fake objects and records every call, so it serves both as the test spy and
// as the native host of the headless runner.
package trace

import (
	"fmt"
	"hash/fnv"
	"io"
	"strings"

	"github.com/spaghettifunk/resonance/engine/renderer/device"
	"github.com/spaghettifunk/resonance/engine/renderer/metadata"
)

// Object is a fake native object. IDs start at 1 and count per kind.
type Object struct {
	Kind string
	ID   int
	// Name is the uniform name for uniform locations.
	Name string
}

func (o *Object) String() string {
	if o.Name != "" {
		return fmt.Sprintf("%s#%d(%s)", o.Kind, o.ID, o.Name)
	}
	return fmt.Sprintf("%s#%d", o.Kind, o.ID)
}

// Call is one recorded host call.
type Call struct {
	Name string
	Args []any
}

// String renders the call as name(arg, ...). Views, images and long strings
// are summarised with a content hash so identical uploads render alike.
func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = formatArg(a)
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

const maxInlineString = 32

func formatArg(a any) string {
	switch v := a.(type) {
	case nil:
		return "null"
	case *Object:
		if v == nil {
			return "null"
		}
		return v.String()
	case device.Enum:
		return fmt.Sprintf("0x%04X", uint32(v))
	case device.View:
		return fmt.Sprintf("%s[%d]#%016x", v.Kind(), v.Len(), hashBytes(v.Bytes()))
	case *metadata.ImageData:
		if v == nil {
			return "null"
		}
		return fmt.Sprintf("image[%dx%d]#%016x", v.Width, v.Height, hashBytes(v.Pixels))
	case string:
		if len(v) > maxInlineString {
			return fmt.Sprintf("str[%d]#%016x", len(v), hashBytes([]byte(v)))
		}
		return fmt.Sprintf("%q", v)
	case float32:
		return fmt.Sprintf("%g", v)
	}
	return fmt.Sprint(a)
}

func hashBytes(b []byte) uint64 {
	h := fnv.New64a()
	h.Write(b)
	return h.Sum64()
}

// Options configures the fake device.
type Options struct {
	// Canvases that GetContext accepts. Empty accepts any id.
	Canvases []string
	// Drawing buffer size reported for every context.
	Width, Height int
	// LinkFailures maps a program ID to the info log of its failed link.
	LinkFailures map[int]string
	// ShaderInfoLog is returned by every ShaderInfoLog call.
	ShaderInfoLog string
	// AttribLocations pins attribute locations by name, -1 for a missing
	// attribute. Unlisted names get the next free location of their program.
	AttribLocations map[string]int
	// MissingUniforms makes GetUniformLocation return null for these names.
	MissingUniforms []string
	// Parameters answers GetParameter.
	Parameters map[device.Enum]int
}

// DefaultOptions is a 640x480 device with WebGL 1 minimum uniform limits.
func DefaultOptions() Options {
	return Options{
		Width:  640,
		Height: 480,
		Parameters: map[device.Enum]int{
			device.MAX_VERTEX_UNIFORM_VECTORS:   128,
			device.MAX_FRAGMENT_UNIFORM_VECTORS: 16,
		},
	}
}

// Recorder implements device.Host. Not safe for concurrent use.
type Recorder struct {
	opts    Options
	calls   []Call
	nextID  map[string]int
	attribs map[*Object]map[string]int
}

var _ device.Host = (*Recorder)(nil)

func New(opts Options) *Recorder {
	return &Recorder{
		opts:    opts,
		nextID:  make(map[string]int),
		attribs: make(map[*Object]map[string]int),
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.calls = append(r.calls, Call{Name: name, Args: args})
}

func (r *Recorder) object(kind string) *Object {
	r.nextID[kind]++
	return &Object{Kind: kind, ID: r.nextID[kind]}
}

// Calls returns the recorded calls in order.
func (r *Recorder) Calls() []Call {
	return r.calls
}

// Count returns how many times the named call was made.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Last returns the most recent call with that name.
func (r *Recorder) Last(name string) (Call, bool) {
	for i := len(r.calls) - 1; i >= 0; i-- {
		if r.calls[i].Name == name {
			return r.calls[i], true
		}
	}
	return Call{}, false
}

// Reset drops the recorded calls. Object numbering continues.
func (r *Recorder) Reset() {
	r.calls = nil
}

// WriteTo writes one line per call.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, c := range r.calls {
		n, err := io.WriteString(w, c.String()+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (r *Recorder) hasCanvas(id string) bool {
	if len(r.opts.Canvases) == 0 {
		return true
	}
	for _, c := range r.opts.Canvases {
		if c == id {
			return true
		}
	}
	return false
}

// Context ------------------------------

func (r *Recorder) GetContext(canvasID, contextType string) device.Object {
	r.record("getContext", canvasID, contextType)
	if !r.hasCanvas(canvasID) {
		return nil
	}
	return r.object("context")
}

func (r *Recorder) GetParameter(ctx device.Object, pname device.Enum) int {
	r.record("getParameter", ctx, pname)
	return r.opts.Parameters[pname]
}

func (r *Recorder) DrawingBufferSize(ctx device.Object) (int, int) {
	return r.opts.Width, r.opts.Height
}

// Resize changes the reported drawing buffer size.
func (r *Recorder) Resize(width, height int) {
	r.opts.Width, r.opts.Height = width, height
}

func (r *Recorder) Enable(ctx device.Object, capability device.Enum) {
	r.record("enable", ctx, capability)
}

func (r *Recorder) BlendFunc(ctx device.Object, sfactor, dfactor device.Enum) {
	r.record("blendFunc", ctx, sfactor, dfactor)
}

func (r *Recorder) Clear(ctx device.Object, mask device.Enum) {
	r.record("clear", ctx, mask)
}

func (r *Recorder) ClearColor(ctx device.Object, red, green, blue, alpha float32) {
	r.record("clearColor", ctx, red, green, blue, alpha)
}

func (r *Recorder) Viewport(ctx device.Object, x, y, width, height int) {
	r.record("viewport", ctx, x, y, width, height)
}

// Shaders ------------------------------

func (r *Recorder) CreateShader(ctx device.Object, shaderType device.Enum) device.Object {
	r.record("createShader", ctx, shaderType)
	return r.object("shader")
}

func (r *Recorder) ShaderSource(ctx, shader device.Object, source string) {
	r.record("shaderSource", ctx, shader, source)
}

func (r *Recorder) CompileShader(ctx, shader device.Object) {
	r.record("compileShader", ctx, shader)
}

func (r *Recorder) ShaderParameter(ctx, shader device.Object, pname device.Enum) int {
	r.record("getShaderParameter", ctx, shader, pname)
	if pname == device.COMPILE_STATUS {
		return device.TRUE
	}
	return 0
}

func (r *Recorder) ShaderInfoLog(ctx, shader device.Object) string {
	r.record("getShaderInfoLog", ctx, shader)
	return r.opts.ShaderInfoLog
}

// Programs -----------------------------

func (r *Recorder) CreateProgram(ctx device.Object) device.Object {
	r.record("createProgram", ctx)
	return r.object("program")
}

func (r *Recorder) AttachShader(ctx, program, shader device.Object) {
	r.record("attachShader", ctx, program, shader)
}

func (r *Recorder) LinkProgram(ctx, program device.Object) {
	r.record("linkProgram", ctx, program)
}

func (r *Recorder) linkLog(program device.Object) (string, bool) {
	o, ok := program.(*Object)
	if !ok || o == nil {
		return "", false
	}
	log, failed := r.opts.LinkFailures[o.ID]
	return log, failed
}

func (r *Recorder) ProgramParameter(ctx, program device.Object, pname device.Enum) int {
	r.record("getProgramParameter", ctx, program, pname)
	if pname != device.LINK_STATUS {
		return 0
	}
	if _, failed := r.linkLog(program); failed {
		return device.FALSE
	}
	return device.TRUE
}

func (r *Recorder) ProgramInfoLog(ctx, program device.Object) string {
	r.record("getProgramInfoLog", ctx, program)
	log, _ := r.linkLog(program)
	return log
}

func (r *Recorder) UseProgram(ctx, program device.Object) {
	r.record("useProgram", ctx, program)
}

func (r *Recorder) GetAttribLocation(ctx, program device.Object, name string) int {
	r.record("getAttribLocation", ctx, program, name)
	if loc, ok := r.opts.AttribLocations[name]; ok {
		return loc
	}
	o, _ := program.(*Object)
	locs, ok := r.attribs[o]
	if !ok {
		locs = make(map[string]int)
		r.attribs[o] = locs
	}
	if loc, ok := locs[name]; ok {
		return loc
	}
	loc := len(locs)
	locs[name] = loc
	return loc
}

// Buffers ------------------------------

func (r *Recorder) CreateBuffer(ctx device.Object) device.Object {
	r.record("createBuffer", ctx)
	return r.object("buffer")
}

func (r *Recorder) BindBuffer(ctx device.Object, target device.Enum, buffer device.Object) {
	r.record("bindBuffer", ctx, target, buffer)
}

func (r *Recorder) BufferData(ctx device.Object, target device.Enum, data device.View, usage device.Enum) {
	r.record("bufferData", ctx, target, data, usage)
}

func (r *Recorder) EnableVertexAttribArray(ctx device.Object, index int) {
	r.record("enableVertexAttribArray", ctx, index)
}

func (r *Recorder) VertexAttribPointer(ctx device.Object, index, size int, dataType device.Enum, normalized bool, stride, offset int) {
	r.record("vertexAttribPointer", ctx, index, size, dataType, normalized, stride, offset)
}

// Uniforms -----------------------------

func (r *Recorder) GetUniformLocation(ctx, program device.Object, name string) device.Object {
	r.record("getUniformLocation", ctx, program, name)
	for _, missing := range r.opts.MissingUniforms {
		if missing == name {
			return nil
		}
	}
	loc := r.object("uniform")
	loc.Name = name
	return loc
}

func (r *Recorder) Uniform1f(ctx, location device.Object, x float32) {
	r.record("uniform1f", ctx, location, x)
}

func (r *Recorder) Uniform1i(ctx, location device.Object, x int) {
	r.record("uniform1i", ctx, location, x)
}

func (r *Recorder) Uniform2f(ctx, location device.Object, x, y float32) {
	r.record("uniform2f", ctx, location, x, y)
}

func (r *Recorder) Uniform1fv(ctx, location device.Object, data device.View) {
	r.record("uniform1fv", ctx, location, data)
}

// Textures -----------------------------

func (r *Recorder) CreateTexture(ctx device.Object) device.Object {
	r.record("createTexture", ctx)
	return r.object("texture")
}

func (r *Recorder) BindTexture(ctx device.Object, target device.Enum, texture device.Object) {
	r.record("bindTexture", ctx, target, texture)
}

func (r *Recorder) ActiveTexture(ctx device.Object, unit device.Enum) {
	r.record("activeTexture", ctx, unit)
}

func (r *Recorder) TexParameteri(ctx device.Object, target, pname device.Enum, param int) {
	r.record("texParameteri", ctx, target, pname, param)
}

func (r *Recorder) TexImage2D(ctx device.Object, target device.Enum, level int, internalFormat, format, dataType device.Enum, image *metadata.ImageData) {
	r.record("texImage2D", ctx, target, level, internalFormat, format, dataType, image)
}

// Draw ---------------------------------

func (r *Recorder) DrawArrays(ctx device.Object, mode device.Enum, first, count int) {
	r.record("drawArrays", ctx, mode, first, count)
}

func (r *Recorder) DrawElements(ctx device.Object, mode device.Enum, count int, dataType device.Enum, offset int) {
	r.record("drawElements", ctx, mode, count, dataType, offset)
}

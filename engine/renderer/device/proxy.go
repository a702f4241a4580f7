package device

import (
	"fmt"

	"github.com/spaghettifunk/resonance/engine/core"
	"github.com/spaghettifunk/resonance/engine/renderer/metadata"
)

// Proxy owns one handle table per object category and forwards every call
// to the Host with handles resolved to native objects.
//
// A handle that does not resolve is a programming error and panics. Bind
// style calls also accept the Invalid* sentinel and pass nil, which unbinds.
type Proxy struct {
	host   Host
	images ImageSource

	contexts *core.Table[Object]
	shaders  *core.Table[Object]
	programs *core.Table[Object]
	buffers  *core.Table[Object]
	textures *core.Table[Object]
	uniforms *core.Table[Object]
	staged   *core.Table[*metadata.ImageData]
}

// TableStats describes one handle table.
type TableStats struct {
	Category string
	Live     int
	Slots    int
}

func NewProxy(host Host, images ImageSource) *Proxy {
	return &Proxy{
		host:     host,
		images:   images,
		contexts: core.NewTable[Object]("context"),
		shaders:  core.NewTable[Object]("shader"),
		programs: core.NewTable[Object]("program"),
		buffers:  core.NewTable[Object]("buffer"),
		textures: core.NewTable[Object]("texture"),
		uniforms: core.NewTable[Object]("uniform location"),
		staged:   core.NewTable[*metadata.ImageData]("image"),
	}
}

func (p *Proxy) Host() Host {
	return p.host
}

// Stats reports live and total slots for every table.
func (p *Proxy) Stats() []TableStats {
	stats := func(category string, live, slots int) TableStats {
		return TableStats{Category: category, Live: live, Slots: slots}
	}
	return []TableStats{
		stats(p.contexts.Category(), p.contexts.Live(), p.contexts.Len()),
		stats(p.shaders.Category(), p.shaders.Live(), p.shaders.Len()),
		stats(p.programs.Category(), p.programs.Live(), p.programs.Len()),
		stats(p.buffers.Category(), p.buffers.Live(), p.buffers.Len()),
		stats(p.textures.Category(), p.textures.Live(), p.textures.Len()),
		stats(p.uniforms.Category(), p.uniforms.Live(), p.uniforms.Len()),
		stats(p.staged.Category(), p.staged.Live(), p.staged.Len()),
	}
}

func resolve[H ~int32](t *core.Table[Object], h H) Object {
	return t.Resolve(core.Handle(h))
}

// resolveBindable maps the invalid sentinel to nil.
func resolveBindable[H ~int32](t *core.Table[Object], h H) Object {
	if !core.Handle(h).Valid() {
		return nil
	}
	return t.Resolve(core.Handle(h))
}

func (p *Proxy) context(ctx ContextID) Object {
	return resolve(p.contexts, ctx)
}

// Context ------------------------------

func (p *Proxy) CreateContext(canvasID, contextType string) (ContextID, error) {
	gl := p.host.GetContext(canvasID, contextType)
	if gl == nil {
		err := fmt.Errorf("canvas %q with context %q: %w", canvasID, contextType, core.ErrInvalidCanvas)
		core.LogError(err.Error())
		return InvalidContext, err
	}

	core.LogDebug("MAX_VERTEX_UNIFORM_VECTORS: %d", p.host.GetParameter(gl, MAX_VERTEX_UNIFORM_VECTORS))
	core.LogDebug("MAX_FRAGMENT_UNIFORM_VECTORS: %d", p.host.GetParameter(gl, MAX_FRAGMENT_UNIFORM_VECTORS))

	return ContextID(p.contexts.Allocate(gl)), nil
}

func (p *Proxy) GetParameter(ctx ContextID, pname Enum) int {
	return p.host.GetParameter(p.context(ctx), pname)
}

func (p *Proxy) DrawingBufferWidth(ctx ContextID) int {
	w, _ := p.host.DrawingBufferSize(p.context(ctx))
	return w
}

func (p *Proxy) DrawingBufferHeight(ctx ContextID) int {
	_, h := p.host.DrawingBufferSize(p.context(ctx))
	return h
}

func (p *Proxy) Enable(ctx ContextID, capability Enum) {
	p.host.Enable(p.context(ctx), capability)
}

func (p *Proxy) BlendFunc(ctx ContextID, sfactor, dfactor Enum) {
	p.host.BlendFunc(p.context(ctx), sfactor, dfactor)
}

func (p *Proxy) Clear(ctx ContextID, mask Enum) {
	p.host.Clear(p.context(ctx), mask)
}

func (p *Proxy) ClearColor(ctx ContextID, r, g, b, a float32) {
	p.host.ClearColor(p.context(ctx), r, g, b, a)
}

func (p *Proxy) Viewport(ctx ContextID, x, y, width, height int) {
	p.host.Viewport(p.context(ctx), x, y, width, height)
}

// Shaders ------------------------------

func (p *Proxy) CreateShader(ctx ContextID, shaderType Enum) ShaderID {
	shader := p.host.CreateShader(p.context(ctx), shaderType)
	return ShaderID(p.shaders.Allocate(shader))
}

func (p *Proxy) ShaderSource(ctx ContextID, shader ShaderID, source string) {
	p.host.ShaderSource(p.context(ctx), resolve(p.shaders, shader), source)
}

func (p *Proxy) CompileShader(ctx ContextID, shader ShaderID) string {
	gl := p.context(ctx)
	sh := resolve(p.shaders, shader)
	p.host.CompileShader(gl, sh)

	infoLog := p.host.ShaderInfoLog(gl, sh)
	if len(infoLog) > 0 {
		core.LogWarn("compileShader: %s", infoLog)
	}
	return infoLog
}

func (p *Proxy) ShaderParameter(ctx ContextID, shader ShaderID, pname Enum) int {
	return p.host.ShaderParameter(p.context(ctx), resolve(p.shaders, shader), pname)
}

func (p *Proxy) ShaderInfoLog(ctx ContextID, shader ShaderID) string {
	return p.host.ShaderInfoLog(p.context(ctx), resolve(p.shaders, shader))
}

// Programs -----------------------------

func (p *Proxy) CreateProgram(ctx ContextID) ProgramID {
	program := p.host.CreateProgram(p.context(ctx))
	return ProgramID(p.programs.Allocate(program))
}

func (p *Proxy) AttachShader(ctx ContextID, program ProgramID, shader ShaderID) {
	p.host.AttachShader(p.context(ctx), resolve(p.programs, program), resolve(p.shaders, shader))
}

// LinkProgram logs the info log of a failed link and carries on. Callers that
// need to stop on failure query LINK_STATUS themselves.
func (p *Proxy) LinkProgram(ctx ContextID, program ProgramID) {
	gl := p.context(ctx)
	prog := resolve(p.programs, program)
	p.host.LinkProgram(gl, prog)

	if p.host.ProgramParameter(gl, prog, LINK_STATUS) == FALSE {
		core.LogError("linkProgram %d: %s", program, p.host.ProgramInfoLog(gl, prog))
	}
}

func (p *Proxy) ProgramParameter(ctx ContextID, program ProgramID, pname Enum) int {
	return p.host.ProgramParameter(p.context(ctx), resolve(p.programs, program), pname)
}

func (p *Proxy) ProgramInfoLog(ctx ContextID, program ProgramID) string {
	return p.host.ProgramInfoLog(p.context(ctx), resolve(p.programs, program))
}

func (p *Proxy) UseProgram(ctx ContextID, program ProgramID) {
	p.host.UseProgram(p.context(ctx), resolveBindable(p.programs, program))
}

func (p *Proxy) GetAttribLocation(ctx ContextID, program ProgramID, name string) int {
	return p.host.GetAttribLocation(p.context(ctx), resolve(p.programs, program), name)
}

// Buffers ------------------------------

func (p *Proxy) CreateBuffer(ctx ContextID) BufferID {
	buffer := p.host.CreateBuffer(p.context(ctx))
	return BufferID(p.buffers.Allocate(buffer))
}

func (p *Proxy) BindBuffer(ctx ContextID, target Enum, buffer BufferID) {
	p.host.BindBuffer(p.context(ctx), target, resolveBindable(p.buffers, buffer))
}

func (p *Proxy) BufferData(ctx ContextID, target Enum, data View, usage Enum) {
	p.host.BufferData(p.context(ctx), target, data, usage)
}

func (p *Proxy) EnableVertexAttribArray(ctx ContextID, index int) {
	p.host.EnableVertexAttribArray(p.context(ctx), index)
}

func (p *Proxy) VertexAttribPointer(ctx ContextID, index, size int, dataType Enum, normalized bool, stride, offset int) {
	p.host.VertexAttribPointer(p.context(ctx), index, size, dataType, normalized, stride, offset)
}

// Uniforms -----------------------------

// GetUniformLocation always allocates a handle, also for a location the host
// reports as missing. Setting a uniform through it is then a no-op on the
// device.
func (p *Proxy) GetUniformLocation(ctx ContextID, program ProgramID, name string) UniformID {
	loc := p.host.GetUniformLocation(p.context(ctx), resolve(p.programs, program), name)
	return UniformID(p.uniforms.Allocate(loc))
}

func (p *Proxy) Uniform1f(ctx ContextID, location UniformID, x float32) {
	p.host.Uniform1f(p.context(ctx), resolve(p.uniforms, location), x)
}

func (p *Proxy) Uniform1i(ctx ContextID, location UniformID, x int) {
	p.host.Uniform1i(p.context(ctx), resolve(p.uniforms, location), x)
}

func (p *Proxy) Uniform2f(ctx ContextID, location UniformID, x, y float32) {
	p.host.Uniform2f(p.context(ctx), resolve(p.uniforms, location), x, y)
}

func (p *Proxy) Uniform1fv(ctx ContextID, location UniformID, data View) {
	p.host.Uniform1fv(p.context(ctx), resolve(p.uniforms, location), data)
}

// Textures -----------------------------

func (p *Proxy) CreateTexture(ctx ContextID) TextureID {
	texture := p.host.CreateTexture(p.context(ctx))
	return TextureID(p.textures.Allocate(texture))
}

func (p *Proxy) BindTexture(ctx ContextID, target Enum, texture TextureID) {
	p.host.BindTexture(p.context(ctx), target, resolveBindable(p.textures, texture))
}

func (p *Proxy) ActiveTexture(ctx ContextID, unit Enum) {
	p.host.ActiveTexture(p.context(ctx), unit)
}

func (p *Proxy) TexParameteri(ctx ContextID, target, pname Enum, param int) {
	p.host.TexParameteri(p.context(ctx), target, pname, param)
}

func (p *Proxy) StageImage(name string) (ImageID, error) {
	if p.images == nil {
		return InvalidImage, fmt.Errorf("%q: no image source: %w", name, core.ErrImageNotFound)
	}
	img, err := p.images.Image(name)
	if err != nil {
		return InvalidImage, err
	}
	if img == nil {
		return InvalidImage, fmt.Errorf("%q: %w", name, core.ErrImageNotFound)
	}
	return ImageID(p.staged.Allocate(img)), nil
}

func (p *Proxy) ReleaseImage(image ImageID) error {
	return p.staged.Free(core.Handle(image))
}

func (p *Proxy) TexImage2D(ctx ContextID, target Enum, level int, internalFormat, format, dataType Enum, image ImageID) {
	img := p.staged.Resolve(core.Handle(image))
	p.host.TexImage2D(p.context(ctx), target, level, internalFormat, format, dataType, img)
}

// Draw ---------------------------------

func (p *Proxy) DrawArrays(ctx ContextID, mode Enum, first, count int) {
	p.host.DrawArrays(p.context(ctx), mode, first, count)
}

func (p *Proxy) DrawElements(ctx ContextID, mode Enum, count int, dataType Enum, offset int) {
	p.host.DrawElements(p.context(ctx), mode, count, dataType, offset)
}

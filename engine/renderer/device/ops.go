package device

// The capability sets a component can depend on. Every operation addresses
// device objects by handle, the proxy resolves them against its tables.

type ContextOps interface {
	CreateContext(canvasID, contextType string) (ContextID, error)
	GetParameter(ctx ContextID, pname Enum) int
	DrawingBufferWidth(ctx ContextID) int
	DrawingBufferHeight(ctx ContextID) int
	Enable(ctx ContextID, capability Enum)
	BlendFunc(ctx ContextID, sfactor, dfactor Enum)
	Clear(ctx ContextID, mask Enum)
	ClearColor(ctx ContextID, r, g, b, a float32)
	Viewport(ctx ContextID, x, y, width, height int)
}

type ShaderOps interface {
	CreateShader(ctx ContextID, shaderType Enum) ShaderID
	ShaderSource(ctx ContextID, shader ShaderID, source string)
	// CompileShader returns the compiler info log, empty on a clean compile.
	CompileShader(ctx ContextID, shader ShaderID) string
	ShaderParameter(ctx ContextID, shader ShaderID, pname Enum) int
	ShaderInfoLog(ctx ContextID, shader ShaderID) string
}

type ProgramOps interface {
	CreateProgram(ctx ContextID) ProgramID
	AttachShader(ctx ContextID, program ProgramID, shader ShaderID)
	LinkProgram(ctx ContextID, program ProgramID)
	ProgramParameter(ctx ContextID, program ProgramID, pname Enum) int
	ProgramInfoLog(ctx ContextID, program ProgramID) string
	UseProgram(ctx ContextID, program ProgramID)
	GetAttribLocation(ctx ContextID, program ProgramID, name string) int
}

type BufferOps interface {
	CreateBuffer(ctx ContextID) BufferID
	BindBuffer(ctx ContextID, target Enum, buffer BufferID)
	BufferData(ctx ContextID, target Enum, data View, usage Enum)
	EnableVertexAttribArray(ctx ContextID, index int)
	VertexAttribPointer(ctx ContextID, index, size int, dataType Enum, normalized bool, stride, offset int)
}

type UniformOps interface {
	GetUniformLocation(ctx ContextID, program ProgramID, name string) UniformID
	Uniform1f(ctx ContextID, location UniformID, x float32)
	Uniform1i(ctx ContextID, location UniformID, x int)
	Uniform2f(ctx ContextID, location UniformID, x, y float32)
	Uniform1fv(ctx ContextID, location UniformID, data View)
}

type TextureOps interface {
	CreateTexture(ctx ContextID) TextureID
	BindTexture(ctx ContextID, target Enum, texture TextureID)
	ActiveTexture(ctx ContextID, unit Enum)
	TexParameteri(ctx ContextID, target, pname Enum, param int)
	// StageImage fetches a named image and parks it under an image handle
	// until TexImage2D consumes it.
	StageImage(name string) (ImageID, error)
	ReleaseImage(image ImageID) error
	TexImage2D(ctx ContextID, target Enum, level int, internalFormat, format, dataType Enum, image ImageID)
}

type DrawOps interface {
	DrawArrays(ctx ContextID, mode Enum, first, count int)
	DrawElements(ctx ContextID, mode Enum, count int, dataType Enum, offset int)
}

// Device is the full surface. *Proxy implements it.
type Device interface {
	ContextOps
	ShaderOps
	ProgramOps
	BufferOps
	UniformOps
	TextureOps
	DrawOps
}

// BufferDataOf uploads a typed slice, one instantiation per element kind.
func BufferDataOf[T Element](dev BufferOps, ctx ContextID, target Enum, data []T, usage Enum) {
	dev.BufferData(ctx, target, NewView(data), usage)
}

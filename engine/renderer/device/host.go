package device

import "github.com/spaghettifunk/resonance/engine/renderer/metadata"

// Object is a native device object: a WebGLShader, a js.Value, a recorded
// fake. Only the Host that produced it knows what it is. nil stands for the
// JavaScript null and unbinds in Bind* calls.
type Object any

// Host is the native side of the device boundary. It never sees handles,
// only the objects it created itself.
type Host interface {
	// GetContext returns nil when the canvas does not exist or refuses the
	// context type.
	GetContext(canvasID, contextType string) Object
	GetParameter(ctx Object, pname Enum) int
	DrawingBufferSize(ctx Object) (width, height int)
	Enable(ctx Object, capability Enum)
	BlendFunc(ctx Object, sfactor, dfactor Enum)
	Clear(ctx Object, mask Enum)
	ClearColor(ctx Object, r, g, b, a float32)
	Viewport(ctx Object, x, y, width, height int)

	CreateShader(ctx Object, shaderType Enum) Object
	ShaderSource(ctx, shader Object, source string)
	CompileShader(ctx, shader Object)
	ShaderParameter(ctx, shader Object, pname Enum) int
	ShaderInfoLog(ctx, shader Object) string

	CreateProgram(ctx Object) Object
	AttachShader(ctx, program, shader Object)
	LinkProgram(ctx, program Object)
	ProgramParameter(ctx, program Object, pname Enum) int
	ProgramInfoLog(ctx, program Object) string
	UseProgram(ctx, program Object)
	GetAttribLocation(ctx, program Object, name string) int

	CreateBuffer(ctx Object) Object
	BindBuffer(ctx Object, target Enum, buffer Object)
	BufferData(ctx Object, target Enum, data View, usage Enum)
	EnableVertexAttribArray(ctx Object, index int)
	VertexAttribPointer(ctx Object, index, size int, dataType Enum, normalized bool, stride, offset int)

	// GetUniformLocation returns nil for a uniform the program does not use.
	GetUniformLocation(ctx, program Object, name string) Object
	Uniform1f(ctx, location Object, x float32)
	Uniform1i(ctx, location Object, x int)
	Uniform2f(ctx, location Object, x, y float32)
	Uniform1fv(ctx, location Object, data View)

	CreateTexture(ctx Object) Object
	BindTexture(ctx Object, target Enum, texture Object)
	ActiveTexture(ctx Object, unit Enum)
	TexParameteri(ctx Object, target, pname Enum, param int)
	TexImage2D(ctx Object, target Enum, level int, internalFormat, format, dataType Enum, image *metadata.ImageData)

	DrawArrays(ctx Object, mode Enum, first, count int)
	DrawElements(ctx Object, mode Enum, count int, dataType Enum, offset int)
}

// ImageSource resolves image names to decoded RGBA pixels. Lookups are
// synchronous, the image must already be loaded.
type ImageSource interface {
	Image(name string) (*metadata.ImageData, error)
}

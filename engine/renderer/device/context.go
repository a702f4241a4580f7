package device

// Context is a Device bound to one rendering context, the handle-side
// counterpart of a WebGLRenderingContext.
type Context struct {
	dev Device
	id  ContextID
}

// NewContext creates a device context on the named canvas.
func NewContext(dev Device, canvasID, contextType string) (*Context, error) {
	id, err := dev.CreateContext(canvasID, contextType)
	if err != nil {
		return nil, err
	}
	return &Context{dev: dev, id: id}, nil
}

// Bind wraps an existing context handle.
func Bind(dev Device, id ContextID) *Context {
	return &Context{dev: dev, id: id}
}

func (c *Context) ID() ContextID  { return c.id }
func (c *Context) Device() Device { return c.dev }

func (c *Context) GetParameter(pname Enum) int { return c.dev.GetParameter(c.id, pname) }
func (c *Context) DrawingBufferWidth() int     { return c.dev.DrawingBufferWidth(c.id) }
func (c *Context) DrawingBufferHeight() int    { return c.dev.DrawingBufferHeight(c.id) }
func (c *Context) Enable(capability Enum)      { c.dev.Enable(c.id, capability) }
func (c *Context) BlendFunc(sfactor, dfactor Enum) {
	c.dev.BlendFunc(c.id, sfactor, dfactor)
}
func (c *Context) Clear(mask Enum) { c.dev.Clear(c.id, mask) }
func (c *Context) ClearColor(r, g, b, a float32) {
	c.dev.ClearColor(c.id, r, g, b, a)
}
func (c *Context) Viewport(x, y, width, height int) {
	c.dev.Viewport(c.id, x, y, width, height)
}

func (c *Context) CreateShader(shaderType Enum) ShaderID {
	return c.dev.CreateShader(c.id, shaderType)
}
func (c *Context) ShaderSource(shader ShaderID, source string) {
	c.dev.ShaderSource(c.id, shader, source)
}
func (c *Context) CompileShader(shader ShaderID) string {
	return c.dev.CompileShader(c.id, shader)
}
func (c *Context) ShaderParameter(shader ShaderID, pname Enum) int {
	return c.dev.ShaderParameter(c.id, shader, pname)
}
func (c *Context) ShaderInfoLog(shader ShaderID) string {
	return c.dev.ShaderInfoLog(c.id, shader)
}

func (c *Context) CreateProgram() ProgramID { return c.dev.CreateProgram(c.id) }
func (c *Context) AttachShader(program ProgramID, shader ShaderID) {
	c.dev.AttachShader(c.id, program, shader)
}
func (c *Context) LinkProgram(program ProgramID) { c.dev.LinkProgram(c.id, program) }
func (c *Context) ProgramParameter(program ProgramID, pname Enum) int {
	return c.dev.ProgramParameter(c.id, program, pname)
}
func (c *Context) ProgramInfoLog(program ProgramID) string {
	return c.dev.ProgramInfoLog(c.id, program)
}
func (c *Context) UseProgram(program ProgramID) { c.dev.UseProgram(c.id, program) }
func (c *Context) GetAttribLocation(program ProgramID, name string) int {
	return c.dev.GetAttribLocation(c.id, program, name)
}

func (c *Context) CreateBuffer() BufferID { return c.dev.CreateBuffer(c.id) }
func (c *Context) BindBuffer(target Enum, buffer BufferID) {
	c.dev.BindBuffer(c.id, target, buffer)
}
func (c *Context) BufferData(target Enum, data View, usage Enum) {
	c.dev.BufferData(c.id, target, data, usage)
}
func (c *Context) EnableVertexAttribArray(index int) {
	c.dev.EnableVertexAttribArray(c.id, index)
}
func (c *Context) VertexAttribPointer(index, size int, dataType Enum, normalized bool, stride, offset int) {
	c.dev.VertexAttribPointer(c.id, index, size, dataType, normalized, stride, offset)
}

func (c *Context) GetUniformLocation(program ProgramID, name string) UniformID {
	return c.dev.GetUniformLocation(c.id, program, name)
}
func (c *Context) Uniform1f(location UniformID, x float32) { c.dev.Uniform1f(c.id, location, x) }
func (c *Context) Uniform1i(location UniformID, x int)     { c.dev.Uniform1i(c.id, location, x) }
func (c *Context) Uniform2f(location UniformID, x, y float32) {
	c.dev.Uniform2f(c.id, location, x, y)
}
func (c *Context) Uniform1fv(location UniformID, data View) {
	c.dev.Uniform1fv(c.id, location, data)
}

func (c *Context) CreateTexture() TextureID { return c.dev.CreateTexture(c.id) }
func (c *Context) BindTexture(target Enum, texture TextureID) {
	c.dev.BindTexture(c.id, target, texture)
}
func (c *Context) ActiveTexture(unit Enum) { c.dev.ActiveTexture(c.id, unit) }
func (c *Context) TexParameteri(target, pname Enum, param int) {
	c.dev.TexParameteri(c.id, target, pname, param)
}
func (c *Context) StageImage(name string) (ImageID, error) { return c.dev.StageImage(name) }
func (c *Context) ReleaseImage(image ImageID) error        { return c.dev.ReleaseImage(image) }
func (c *Context) TexImage2D(target Enum, level int, internalFormat, format, dataType Enum, image ImageID) {
	c.dev.TexImage2D(c.id, target, level, internalFormat, format, dataType, image)
}

func (c *Context) DrawArrays(mode Enum, first, count int) {
	c.dev.DrawArrays(c.id, mode, first, count)
}
func (c *Context) DrawElements(mode Enum, count int, dataType Enum, offset int) {
	c.dev.DrawElements(c.id, mode, count, dataType, offset)
}

// ContextBufferData is BufferDataOf on a bound context.
func ContextBufferData[T Element](c *Context, target Enum, data []T, usage Enum) {
	c.BufferData(target, NewView(data), usage)
}

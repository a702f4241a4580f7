package components

import (
	"fmt"

	"github.com/spaghettifunk/resonance/engine/core"
	"github.com/spaghettifunk/resonance/engine/renderer/device"
)

// ShaderMaterial is a linked vertex + fragment program with per-name caches
// of attribute and uniform locations.
type ShaderMaterial struct {
	Object3D

	program  device.ProgramID
	attribs  map[string]int
	uniforms map[string]device.UniformID
}

func NewShaderMaterial(gl *device.Context) *ShaderMaterial {
	return &ShaderMaterial{
		Object3D: NewObject3D(gl),
		program:  device.InvalidProgram,
		attribs:  make(map[string]int),
		uniforms: make(map[string]device.UniformID),
	}
}

/**
 * @brief Compiles both stages and links them into the material program.
 * A material compiles once, a second call fails with ErrAlreadyCompiled and
 * leaves the program untouched.
 * @return ErrLinkFailed wrapped with the program info log when the device
 * rejects the program. The material still counts as compiled.
 */
func (m *ShaderMaterial) Compile(vertexSource, fragmentSource string) error {
	if m.program.Valid() {
		return core.ErrAlreadyCompiled
	}
	gl := m.Context()

	vertexShader := gl.CreateShader(device.VERTEX_SHADER)
	gl.ShaderSource(vertexShader, vertexSource)
	gl.CompileShader(vertexShader)

	fragmentShader := gl.CreateShader(device.FRAGMENT_SHADER)
	gl.ShaderSource(fragmentShader, fragmentSource)
	gl.CompileShader(fragmentShader)

	m.program = gl.CreateProgram()
	gl.AttachShader(m.program, vertexShader)
	gl.AttachShader(m.program, fragmentShader)
	gl.LinkProgram(m.program)

	if gl.ProgramParameter(m.program, device.LINK_STATUS) == device.FALSE {
		return fmt.Errorf("%w: %s", core.ErrLinkFailed, gl.ProgramInfoLog(m.program))
	}
	return nil
}

func (m *ShaderMaterial) Compiled() bool {
	return m.program.Valid()
}

func (m *ShaderMaterial) Program() device.ProgramID {
	return m.program
}

// Activate makes the material program current. On an uncompiled material
// this unbinds the current program.
func (m *ShaderMaterial) Activate() {
	m.Context().UseProgram(m.program)
}

// AttribLocation returns -1 for an uncompiled material or an attribute the
// program does not use.
func (m *ShaderMaterial) AttribLocation(name string) int {
	if !m.Compiled() {
		return -1
	}
	if loc, ok := m.attribs[name]; ok {
		return loc
	}
	loc := m.Context().GetAttribLocation(m.program, name)
	m.attribs[name] = loc
	return loc
}

func (m *ShaderMaterial) UniformLocation(name string) (device.UniformID, error) {
	if !m.Compiled() {
		return device.InvalidUniform, fmt.Errorf("uniform %q: %w", name, core.ErrNotCompiled)
	}
	if loc, ok := m.uniforms[name]; ok {
		return loc, nil
	}
	loc := m.Context().GetUniformLocation(m.program, name)
	m.uniforms[name] = loc
	return loc, nil
}

func (m *ShaderMaterial) SetUniform1f(name string, x float32) error {
	loc, err := m.UniformLocation(name)
	if err != nil {
		return err
	}
	m.Context().Uniform1f(loc, x)
	return nil
}

func (m *ShaderMaterial) SetUniform1i(name string, x int) error {
	loc, err := m.UniformLocation(name)
	if err != nil {
		return err
	}
	m.Context().Uniform1i(loc, x)
	return nil
}

func (m *ShaderMaterial) SetUniform2f(name string, x, y float32) error {
	loc, err := m.UniformLocation(name)
	if err != nil {
		return err
	}
	m.Context().Uniform2f(loc, x, y)
	return nil
}

func (m *ShaderMaterial) SetUniform1fv(name string, values []float32) error {
	loc, err := m.UniformLocation(name)
	if err != nil {
		return err
	}
	m.Context().Uniform1fv(loc, device.NewView(values))
	return nil
}

// BindTexture points the sampler uniform at unit and binds tex there.
func (m *ShaderMaterial) BindTexture(unit int, uniformName string, tex *Texture) error {
	m.Activate()
	if err := m.SetUniform1i(uniformName, unit); err != nil {
		return err
	}
	tex.Activate(unit)
	return nil
}

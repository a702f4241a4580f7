package components

import (
	"github.com/spaghettifunk/resonance/engine/core"
	"github.com/spaghettifunk/resonance/engine/renderer/device"
)

// Mesh draws a geometry with a material.
type Mesh struct {
	Object3D

	geometry *BufferGeometry
	material *ShaderMaterial
}

func NewMesh(gl *device.Context, geometry *BufferGeometry, material *ShaderMaterial) *Mesh {
	return &Mesh{
		Object3D: NewObject3D(gl),
		geometry: geometry,
		material: material,
	}
}

func (m *Mesh) Geometry() *BufferGeometry { return m.geometry }
func (m *Mesh) Material() *ShaderMaterial { return m.material }

/**
 * @brief Points every attribute at its buffer, then issues one draw.
 * Attributes the program does not use (location < 0) are skipped. Indexed
 * geometry is drawn with drawElements, anything else with drawArrays.
 */
func (m *Mesh) Render() error {
	if !m.material.Compiled() {
		return core.ErrNotCompiled
	}
	gl := m.Context()

	for _, name := range m.geometry.AttributeNames() {
		attr, ok := m.geometry.Attribute(name)
		if !ok {
			continue
		}

		loc := m.material.AttribLocation(name)
		attr.SetLocation(loc)
		if loc < 0 {
			continue
		}

		buffer, _ := m.geometry.Buffer(name)
		gl.BindBuffer(device.ARRAY_BUFFER, buffer)
		gl.VertexAttribPointer(loc, attr.ItemSize, device.FLOAT, attr.Normalized, 0, 0)
		gl.EnableVertexAttribArray(loc)
	}

	m.material.Activate()

	if m.geometry.IndexBuffer().Valid() {
		gl.BindBuffer(device.ELEMENT_ARRAY_BUFFER, m.geometry.IndexBuffer())
		gl.DrawElements(device.TRIANGLES, m.geometry.IndexCount(), device.UNSIGNED_SHORT, 0)
		return nil
	}
	gl.DrawArrays(device.TRIANGLES, 0, m.geometry.VertexCount())
	return nil
}

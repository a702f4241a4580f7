package components

import (
	"github.com/spaghettifunk/resonance/engine/renderer/device"
)

/**
 * @brief Per-vertex data for one shader attribute. Data holds
 * ItemSize * vertexCount values.
 */
type BufferAttribute struct {
	/** @brief The values, itemSize per vertex. */
	Data []float32
	/** @brief Number of components per vertex, 3 for a vec3. */
	ItemSize int
	/** @brief Whether integer data is normalized when read by the shader. */
	Normalized bool

	location int
}

func NewBufferAttribute(data []float32, itemSize int, normalized bool) *BufferAttribute {
	return &BufferAttribute{
		Data:       data,
		ItemSize:   itemSize,
		Normalized: normalized,
		location:   -1,
	}
}

// Count is the number of vertices the attribute describes.
func (a *BufferAttribute) Count() int {
	if a.ItemSize <= 0 {
		return 0
	}
	return len(a.Data) / a.ItemSize
}

// Location is the resolved shader location, -1 until resolved.
func (a *BufferAttribute) Location() int {
	return a.location
}

func (a *BufferAttribute) SetLocation(loc int) {
	a.location = loc
}

// defaultVertexCount is drawn when a geometry has no position attribute.
const defaultVertexCount = 3

// BufferGeometry is a set of named attributes plus an optional index buffer.
// Attribute buffers are created lazily, on the first Buffer call for a name.
type BufferGeometry struct {
	Object3D

	names      []string
	attributes map[string]*BufferAttribute
	buffers    map[string]device.BufferID

	indexBuffer device.BufferID
	indexCount  int
}

func NewBufferGeometry(gl *device.Context) *BufferGeometry {
	return &BufferGeometry{
		Object3D:    NewObject3D(gl),
		attributes:  make(map[string]*BufferAttribute),
		buffers:     make(map[string]device.BufferID),
		indexBuffer: device.InvalidBuffer,
	}
}

// SetAttribute registers attr under name. Replacing an attribute keeps its
// position in the order and discards the buffer uploaded for the old data.
func (g *BufferGeometry) SetAttribute(name string, attr *BufferAttribute) {
	if _, ok := g.attributes[name]; !ok {
		g.names = append(g.names, name)
	}
	g.attributes[name] = attr
	delete(g.buffers, name)
}

func (g *BufferGeometry) Attribute(name string) (*BufferAttribute, bool) {
	attr, ok := g.attributes[name]
	return attr, ok
}

// AttributeNames lists attribute names in insertion order.
func (g *BufferGeometry) AttributeNames() []string {
	return append([]string(nil), g.names...)
}

/**
 * @brief Returns the device buffer holding the named attribute. The
 * buffer is created and filled on the first call and reused afterwards.
 * @return InvalidBuffer and false when no such attribute was set.
 */
func (g *BufferGeometry) Buffer(name string) (device.BufferID, bool) {
	attr, ok := g.attributes[name]
	if !ok {
		return device.InvalidBuffer, false
	}
	if buffer, ok := g.buffers[name]; ok {
		return buffer, true
	}

	gl := g.Context()
	buffer := gl.CreateBuffer()
	gl.BindBuffer(device.ARRAY_BUFFER, buffer)
	device.ContextBufferData(gl, device.ARRAY_BUFFER, attr.Data, device.STATIC_DRAW)

	g.buffers[name] = buffer
	return buffer, true
}

// SetIndexBuffer uploads 16 bit indices right away.
func (g *BufferGeometry) SetIndexBuffer(indices []uint16) {
	gl := g.Context()
	g.indexBuffer = gl.CreateBuffer()
	g.indexCount = len(indices)
	gl.BindBuffer(device.ELEMENT_ARRAY_BUFFER, g.indexBuffer)
	device.ContextBufferData(gl, device.ELEMENT_ARRAY_BUFFER, indices, device.STATIC_DRAW)
}

// IndexBuffer is InvalidBuffer for non-indexed geometry.
func (g *BufferGeometry) IndexBuffer() device.BufferID {
	return g.indexBuffer
}

func (g *BufferGeometry) IndexCount() int {
	return g.indexCount
}

// VertexCount is derived from the "position" attribute when there is one.
func (g *BufferGeometry) VertexCount() int {
	if position, ok := g.attributes["position"]; ok {
		return position.Count()
	}
	return defaultVertexCount
}

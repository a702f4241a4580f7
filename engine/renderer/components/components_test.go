package components

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/resonance/engine/core"
	"github.com/spaghettifunk/resonance/engine/renderer/device"
	"github.com/spaghettifunk/resonance/engine/renderer/metadata"
	"github.com/spaghettifunk/resonance/engine/renderer/trace"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	m.Run()
}

type images map[string]*metadata.ImageData

func (i images) Image(name string) (*metadata.ImageData, error) {
	if img, ok := i[name]; ok {
		return img, nil
	}
	return nil, fmt.Errorf("%q: %w", name, core.ErrImageNotFound)
}

func newContext(t *testing.T, opts trace.Options) (*device.Context, *trace.Recorder, *device.Proxy) {
	t.Helper()
	rec := trace.New(opts)
	proxy := device.NewProxy(rec, images{
		"circle.png": {Width: 2, Height: 1, Pixels: make([]uint8, 8)},
	})
	gl, err := device.NewContext(proxy, "canvas", "webgl")
	require.NoError(t, err)
	return gl, rec, proxy
}

func TestBufferIsUploadedOnce(t *testing.T) {
	gl, rec, _ := newContext(t, trace.DefaultOptions())
	g := NewBufferGeometry(gl)
	g.SetAttribute("position", NewBufferAttribute([]float32{0, 0, 1, 0, 0, 1}, 2, false))

	first, ok := g.Buffer("position")
	require.True(t, ok)
	second, ok := g.Buffer("position")
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, rec.Count("createBuffer"))
	assert.Equal(t, 1, rec.Count("bufferData"))

	missing, ok := g.Buffer("normal")
	assert.False(t, ok)
	assert.Equal(t, device.InvalidBuffer, missing)
	assert.Equal(t, 1, rec.Count("createBuffer"))
}

func TestSetAttributeReplacesUpload(t *testing.T) {
	gl, rec, _ := newContext(t, trace.DefaultOptions())
	g := NewBufferGeometry(gl)
	g.SetAttribute("color", NewBufferAttribute([]float32{1, 1, 1}, 3, false))
	g.SetAttribute("uv", NewBufferAttribute([]float32{0, 0}, 2, false))
	_, _ = g.Buffer("color")

	g.SetAttribute("color", NewBufferAttribute([]float32{0, 0, 0}, 3, false))
	_, _ = g.Buffer("color")

	assert.Equal(t, 2, rec.Count("bufferData"))
	assert.Equal(t, []string{"color", "uv"}, g.AttributeNames())
}

func TestVertexCount(t *testing.T) {
	gl, _, _ := newContext(t, trace.DefaultOptions())

	g := NewBufferGeometry(gl)
	assert.Equal(t, 3, g.VertexCount(), "no position attribute")

	g.SetAttribute("position", NewBufferAttribute(make([]float32, 8), 2, false))
	assert.Equal(t, 4, g.VertexCount())

	g.SetAttribute("position", NewBufferAttribute(make([]float32, 9), 3, false))
	assert.Equal(t, 3, g.VertexCount())
}

func TestSetIndexBuffer(t *testing.T) {
	gl, rec, _ := newContext(t, trace.DefaultOptions())
	g := NewBufferGeometry(gl)
	assert.Equal(t, device.InvalidBuffer, g.IndexBuffer())

	g.SetIndexBuffer([]uint16{0, 1, 2, 2, 1, 3})
	assert.True(t, g.IndexBuffer().Valid())
	assert.Equal(t, 6, g.IndexCount())

	call, ok := rec.Last("bufferData")
	require.True(t, ok)
	assert.Equal(t, device.ELEMENT_ARRAY_BUFFER, call.Args[1])
	assert.Equal(t, device.Uint16, call.Args[2].(device.View).Kind())
}

func TestCompileTwiceFails(t *testing.T) {
	gl, rec, _ := newContext(t, trace.DefaultOptions())
	m := NewShaderMaterial(gl)
	assert.Equal(t, -1, m.AttribLocation("position"))

	require.NoError(t, m.Compile("vs", "fs"))
	program := m.Program()

	assert.ErrorIs(t, m.Compile("vs", "fs"), core.ErrAlreadyCompiled)
	assert.Equal(t, program, m.Program())
	assert.Equal(t, 1, rec.Count("createProgram"))
	assert.Equal(t, 2, rec.Count("createShader"))
}

func TestCompileReportsLinkFailure(t *testing.T) {
	opts := trace.DefaultOptions()
	opts.LinkFailures = map[int]string{1: "missing main"}
	gl, _, _ := newContext(t, opts)
	m := NewShaderMaterial(gl)

	err := m.Compile("vs", "fs")
	require.ErrorIs(t, err, core.ErrLinkFailed)
	assert.Contains(t, err.Error(), "missing main")
	assert.True(t, m.Compiled())
}

func TestUniformsRequireCompile(t *testing.T) {
	gl, rec, _ := newContext(t, trace.DefaultOptions())
	m := NewShaderMaterial(gl)

	assert.ErrorIs(t, m.SetUniform1f("normalizedSecond", 0), core.ErrNotCompiled)
	assert.ErrorIs(t, m.SetUniform1fv("frequencies", []float32{0}), core.ErrNotCompiled)
	assert.Equal(t, 0, rec.Count("getUniformLocation"))

	require.NoError(t, m.Compile("vs", "fs"))
	require.NoError(t, m.SetUniform1f("normalizedSecond", 0.5))
	require.NoError(t, m.SetUniform1f("normalizedSecond", 0.75))
	require.NoError(t, m.SetUniform2f("screenSize", 640, 480))
	assert.Equal(t, 2, rec.Count("getUniformLocation"))
	assert.Equal(t, 2, rec.Count("uniform1f"))

	assert.Equal(t, m.AttribLocation("angle"), m.AttribLocation("angle"))
	assert.Equal(t, 1, rec.Count("getAttribLocation"))
}

func TestTextureLoad(t *testing.T) {
	gl, rec, proxy := newContext(t, trace.DefaultOptions())
	tex := NewTexture(gl)
	tex.SetParameters(TextureParameters{MinFilter: device.LINEAR, WrapS: device.CLAMP_TO_EDGE})

	require.NoError(t, tex.Load("circle.png"))
	assert.Equal(t, "circle.png", tex.Name())
	assert.Equal(t, 1, rec.Count("texImage2D"))
	assert.Equal(t, 2, rec.Count("texParameteri"))

	call, _ := rec.Last("texImage2D")
	assert.True(t, strings.HasPrefix(call.String(), "texImage2D(context#1, 0x0DE1, 0, 0x1908, 0x1908, 0x1401, image[2x1]#"), call.String())

	require.NoError(t, tex.Reload())
	assert.Equal(t, 2, rec.Count("texImage2D"))

	for _, s := range proxy.Stats() {
		if s.Category == "image" {
			assert.Equal(t, 0, s.Live, "staged images are released")
		}
	}

	assert.ErrorIs(t, NewTexture(gl).Load("nope.png"), core.ErrImageNotFound)
	assert.ErrorIs(t, NewTexture(gl).Reload(), core.ErrImageNotFound)
}

func TestTextureActivate(t *testing.T) {
	gl, rec, _ := newContext(t, trace.DefaultOptions())
	tex := NewTexture(gl)
	tex.Activate(2)

	call, ok := rec.Last("activeTexture")
	require.True(t, ok)
	assert.Equal(t, device.TEXTURE0+2, call.Args[1])
}

func TestMeshRenderIndexed(t *testing.T) {
	opts := trace.DefaultOptions()
	opts.AttribLocations = map[string]int{"unused": -1}
	gl, rec, _ := newContext(t, opts)

	g := NewBufferGeometry(gl)
	g.SetAttribute("offset", NewBufferAttribute(make([]float32, 8), 2, false))
	g.SetAttribute("unused", NewBufferAttribute(make([]float32, 4), 1, false))
	g.SetIndexBuffer([]uint16{0, 1, 2, 2, 1, 3})

	m := NewShaderMaterial(gl)
	require.NoError(t, m.Compile("vs", "fs"))
	mesh := NewMesh(gl, g, m)

	require.NoError(t, mesh.Render())
	require.NoError(t, mesh.Render())

	assert.Equal(t, 2, rec.Count("vertexAttribPointer"), "unused attribute is skipped")
	assert.Equal(t, 2, rec.Count("drawElements"))
	assert.Equal(t, 0, rec.Count("drawArrays"))
	// index buffer plus one attribute buffer, uploaded once
	assert.Equal(t, 2, rec.Count("bufferData"))

	attr, _ := g.Attribute("unused")
	assert.Equal(t, -1, attr.Location())

	call, _ := rec.Last("drawElements")
	assert.Equal(t, "drawElements(context#1, 0x0004, 6, 0x1403, 0)", call.String())
}

func TestMeshRenderArrays(t *testing.T) {
	gl, rec, _ := newContext(t, trace.DefaultOptions())
	g := NewBufferGeometry(gl)
	g.SetAttribute("position", NewBufferAttribute(make([]float32, 12), 3, false))
	m := NewShaderMaterial(gl)

	mesh := NewMesh(gl, g, m)
	assert.ErrorIs(t, mesh.Render(), core.ErrNotCompiled)

	require.NoError(t, m.Compile("vs", "fs"))
	require.NoError(t, mesh.Render())
	call, ok := rec.Last("drawArrays")
	require.True(t, ok)
	assert.Equal(t, "drawArrays(context#1, 0x0004, 0, 4)", call.String())
}

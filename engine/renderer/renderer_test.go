package renderer

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/resonance/engine/core"
	"github.com/spaghettifunk/resonance/engine/math"
	"github.com/spaghettifunk/resonance/engine/renderer/device"
	"github.com/spaghettifunk/resonance/engine/renderer/metadata"
	"github.com/spaghettifunk/resonance/engine/renderer/trace"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	m.Run()
}

type oneImage struct{}

func (oneImage) Image(name string) (*metadata.ImageData, error) {
	return &metadata.ImageData{Width: 1, Height: 1, Pixels: []uint8{255, 255, 255, 255}}, nil
}

func newRenderer(t *testing.T, config RendererConfig) (*Renderer, *trace.Recorder) {
	t.Helper()
	opts := trace.DefaultOptions()
	opts.Canvases = []string{"canvas"}
	rec := trace.New(opts)
	r, err := NewRenderer(device.NewProxy(rec, oneImage{}), config)
	require.NoError(t, err)
	return r, rec
}

func TestRenderFrameSequence(t *testing.T) {
	config := DefaultRendererConfig()
	config.Particles.Count = 8
	r, rec := newRenderer(t, config)
	rec.Reset()

	require.NoError(t, r.Update(16))
	require.NoError(t, r.Render())

	var names []string
	for _, c := range rec.Calls() {
		names = append(names, c.Name)
	}
	require.GreaterOrEqual(t, len(names), 5)
	assert.Equal(t, "uniform1f", names[0])
	assert.Equal(t, []string{"clearColor", "clear", "enable", "blendFunc"}, names[1:5])
	assert.Equal(t, "drawElements", names[len(names)-1])

	clear, _ := rec.Last("clear")
	assert.Equal(t, "clear(context#1, 0x4100)", clear.String())
	color, _ := rec.Last("clearColor")
	assert.Equal(t, "clearColor(context#1, 0, 0, 0, 1)", color.String())
	blend, _ := rec.Last("blendFunc")
	assert.Equal(t, "blendFunc(context#1, 0x0302, 0x0303)", blend.String())
}

func TestCustomClearColor(t *testing.T) {
	config := DefaultRendererConfig()
	config.ClearColor = math.Vec4{X: 0.392, Y: 0.584, Z: 0.929, W: 1}
	r, rec := newRenderer(t, config)

	require.NoError(t, r.Render())
	color, _ := rec.Last("clearColor")
	assert.Equal(t, "clearColor(context#1, 0.392, 0.584, 0.929, 1)", color.String())
}

func TestInvalidCanvas(t *testing.T) {
	opts := trace.DefaultOptions()
	opts.Canvases = []string{"canvas"}
	config := DefaultRendererConfig()
	config.CanvasID = "missing"

	_, err := NewRenderer(device.NewProxy(trace.New(opts), oneImage{}), config)
	assert.ErrorIs(t, err, core.ErrInvalidCanvas)
}

func TestResizeAndReload(t *testing.T) {
	r, rec := newRenderer(t, DefaultRendererConfig())

	require.NoError(t, r.Resize(800, 600))
	vp, ok := rec.Last("viewport")
	require.True(t, ok)
	assert.Equal(t, "viewport(context#1, 0, 0, 800, 600)", vp.String())
	assert.Equal(t, float32(800), r.Particles().ScreenSize().X)

	require.NoError(t, r.ReloadTexture())
	assert.Equal(t, 2, rec.Count("texImage2D"))
	assert.Len(t, r.FrequencyBuffer(), 128)
}

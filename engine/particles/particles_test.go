package particles

import (
	"fmt"
	"io"
	gomath "math"
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

func newSystem(t *testing.T, opts trace.Options, config Config) (*System, *trace.Recorder, error) {
	t.Helper()
	rec := trace.New(opts)
	proxy := device.NewProxy(rec, images{
		DEFAULT_TEXTURE_NAME: {Width: 1, Height: 1, Pixels: []uint8{255, 255, 255, 255}},
	})
	gl, err := device.NewContext(proxy, "canvas", "webgl")
	require.NoError(t, err)
	s, err := New(gl, config)
	return s, rec, err
}

func TestAttributesLayout(t *testing.T) {
	for _, n := range []int{1, 7, 2048} {
		a, err := NewAttributes(n)
		require.NoError(t, err)

		assert.Len(t, a.Indices, 6*n)
		assert.Len(t, a.SerialNumber, 4*n)
		assert.Len(t, a.Angle, 4*n)
		assert.Len(t, a.Offset, 8*n)
		assert.Len(t, a.TexCoord, 8*n)

		for k := 0; k < n; k++ {
			base := uint16(4 * k)
			assert.Equal(t, []uint16{base, base + 1, base + 2, base + 2, base + 1, base + 3}, a.Indices[6*k:6*k+6])

			want := 2 * gomath.Pi * float64(k) / float64(n)
			for i := 0; i < 4; i++ {
				assert.InDelta(t, want, float64(a.Angle[4*k+i]), 1e-5)
				assert.Equal(t, float32(k), a.SerialNumber[4*k+i])
			}
		}
		for _, idx := range a.Indices {
			assert.Less(t, int(idx), 4*n)
		}
	}
}

func TestAttributesQuadCorners(t *testing.T) {
	a, err := NewAttributes(2)
	require.NoError(t, err)
	assert.Equal(t, []float32{-1, 1, -1, -1, 1, 1, 1, -1}, a.Offset[8:16])
	assert.Equal(t, []float32{0, 0, 0, 1, 1, 0, 1, 1}, a.TexCoord[8:16])
}

func TestAttributesCountBounds(t *testing.T) {
	_, err := NewAttributes(0)
	assert.ErrorIs(t, err, ErrInvalidParticleCount)
	_, err = NewAttributes(MAX_PARTICLE_COUNT + 1)
	assert.ErrorIs(t, err, ErrInvalidParticleCount)

	a, err := NewAttributes(MAX_PARTICLE_COUNT)
	require.NoError(t, err)
	assert.Equal(t, uint16(65535), a.Indices[len(a.Indices)-1])
}

func TestVertexShaderBinCount(t *testing.T) {
	assert.Contains(t, VertexShader(64), "#define FREQ_COUNT    64\n")
	assert.NotContains(t, VertexShader(64), "%")
}

func TestNewSetsInitialState(t *testing.T) {
	s, rec, err := newSystem(t, trace.DefaultOptions(), DefaultConfig())
	require.NoError(t, err)

	assert.Len(t, s.FrequencyBuffer(), DEFAULT_FREQUENCY_BINS)
	assert.Equal(t, float32(640), s.ScreenSize().X)
	assert.Equal(t, float32(480), s.ScreenSize().Y)
	assert.Equal(t, 1, rec.Count("texImage2D"))
	assert.Equal(t, 1, rec.Count("bufferData"), "only the index buffer is uploaded eagerly")

	call, ok := rec.Last("uniform2f")
	require.True(t, ok)
	assert.Equal(t, "uniform2f(context#1, uniform#2(screenSize), 640, 480)", call.String())
	assert.Equal(t, "getContext", rec.Calls()[0].Name)
}

func TestUpdateNormalizesAndWraps(t *testing.T) {
	s, rec, err := newSystem(t, trace.DefaultOptions(), DefaultConfig())
	require.NoError(t, err)

	buf := s.FrequencyBuffer()
	buf[0], buf[1], buf[2] = 255, 0, 51
	require.NoError(t, s.Update(250))
	assert.Equal(t, float32(1), s.Frequencies()[0])
	assert.Equal(t, float32(0), s.Frequencies()[1])
	assert.InDelta(t, 0.2, s.Frequencies()[2], 1e-6)
	assert.InDelta(t, 0.25, s.NormalizedSecond(), 1e-6)

	require.NoError(t, s.Update(750))
	assert.Equal(t, float32(0), s.NormalizedSecond(), "exactly one second wraps to zero")

	require.NoError(t, s.Update(2600))
	assert.InDelta(t, 0.6, s.NormalizedSecond(), 1e-4)

	require.NoError(t, s.Update(-100))
	assert.InDelta(t, 0.6, s.NormalizedSecond(), 1e-4, "negative delta is ignored")

	assert.GreaterOrEqual(t, s.NormalizedSecond(), float32(0))
	assert.Less(t, s.NormalizedSecond(), float32(1))
	// initial value plus one per update
	assert.Equal(t, 5, rec.Count("uniform1f"))
}

func TestRenderIssuesOneIndexedDraw(t *testing.T) {
	config := DefaultConfig()
	config.Count = 16
	s, rec, err := newSystem(t, trace.DefaultOptions(), config)
	require.NoError(t, err)

	require.NoError(t, s.Update(16))
	require.NoError(t, s.Render())
	require.NoError(t, s.Render())

	assert.Equal(t, 2, rec.Count("drawElements"))
	call, _ := rec.Last("drawElements")
	assert.Equal(t, "drawElements(context#1, 0x0004, 96, 0x1403, 0)", call.String())
	// four attribute buffers on the first render, nothing afterwards
	assert.Equal(t, 5, rec.Count("bufferData"))
	assert.Equal(t, 2, rec.Count("uniform1fv"))

	fv, _ := rec.Last("uniform1fv")
	assert.Equal(t, device.Float32, fv.Args[2].(device.View).Kind())
	assert.Equal(t, DEFAULT_FREQUENCY_BINS, fv.Args[2].(device.View).Len())
}

func TestLinkFailureStrictAndLenient(t *testing.T) {
	opts := trace.DefaultOptions()
	opts.LinkFailures = map[int]string{1: "too many uniforms"}

	_, _, err := newSystem(t, opts, DefaultConfig())
	require.ErrorIs(t, err, core.ErrLinkFailed)

	lenient := DefaultConfig()
	lenient.StrictShaders = false
	s, rec, err := newSystem(t, opts, lenient)
	require.NoError(t, err)
	require.NoError(t, s.Render())
	assert.Equal(t, 1, rec.Count("drawElements"))
}

func TestMissingTextureIsNotFatal(t *testing.T) {
	config := DefaultConfig()
	config.TextureName = "absent.png"
	s, rec, err := newSystem(t, trace.DefaultOptions(), config)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Count("texImage2D"))
	assert.Equal(t, "absent.png", s.Texture().Name())
}

func TestResizeRepublishesScreenSize(t *testing.T) {
	s, rec, err := newSystem(t, trace.DefaultOptions(), DefaultConfig())
	require.NoError(t, err)

	require.NoError(t, s.Resize(1920, 1080))
	call, _ := rec.Last("uniform2f")
	assert.True(t, strings.HasSuffix(call.String(), ", 1920, 1080)"), call.String())
}

func TestPlacementMatchesShader(t *testing.T) {
	config := DefaultConfig()
	config.Count = 4
	config.FrequencyBins = 4
	s, _, err := newSystem(t, trace.DefaultOptions(), config)
	require.NoError(t, err)

	// silent spectrum at t=0: particles sit on a ring of half the short side
	p := s.Placement(0)
	radius := float32(480) * 0.95 * 0.5
	assert.InDelta(t, radius, p.Position.X, 1e-3)
	assert.InDelta(t, 0, p.Position.Y, 1e-3)
	assert.InDelta(t, radius/640, p.Clip.X, 1e-5)
	assert.Equal(t, float32(16), p.Size)
	assert.InDelta(t, 1, p.Color.X, 1e-4)

	s.FrequencyBuffer()[1] = 255
	require.NoError(t, s.Update(0))
	q := s.Placement(1)
	assert.Equal(t, float32(40), q.Size)
	// full amplitude pushes the particle out to the whole short side and
	// rotates it a further quarter turn
	assert.InDelta(t, float64(480*0.95), float64(q.Position.Length()), 1e-2)
	assert.InDelta(t, -480*0.95, q.Position.X, 1e-2)
}

package engine

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/resonance/engine/assets"
	"github.com/spaghettifunk/resonance/engine/audio"
	"github.com/spaghettifunk/resonance/engine/core"
	"github.com/spaghettifunk/resonance/engine/platform"
	"github.com/spaghettifunk/resonance/engine/renderer/trace"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

func testConfig() *ApplicationConfig {
	config := DefaultConfig()
	config.Particles.Count = 8
	config.Particles.FrequencyBins = 16
	return config
}

func newEngine(t *testing.T, config *ApplicationConfig, freq audio.FrequencySource, opts ...Option) (*Engine, *trace.Recorder) {
	t.Helper()
	rec := trace.New(trace.DefaultOptions())
	images := assets.MemoryImages{"circle.png": assets.Circle(8)}
	e, err := New(config, rec, images, freq, opts...)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	rec.Reset()
	return e, rec
}

type textAssets map[string]string

func (m textAssets) Text(name string) (string, error) {
	src, ok := m[name]
	if !ok {
		return "", errors.New("no such text asset")
	}
	return src, nil
}

func TestInitializeOnce(t *testing.T) {
	e, _ := newEngine(t, testConfig(), nil)
	assert.Equal(t, EngineStageInitialized, e.Stage())
	assert.ErrorIs(t, e.Initialize(), core.ErrAlreadyInitialized)
	assert.NotEmpty(t, e.SessionID().String())
}

func TestFrameBeforeInitialize(t *testing.T) {
	e, err := New(testConfig(), trace.New(trace.DefaultOptions()), nil, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, e.Frame(16), core.ErrNotInitialized)
	assert.ErrorIs(t, e.Run(context.Background(), platform.NewHeadless(1, 16)), core.ErrNotInitialized)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	config := testConfig()
	config.UpdatePolicy = "sometimes"
	_, err := New(config, trace.New(trace.DefaultOptions()), nil, nil)
	assert.Error(t, err)

	_, err = New(testConfig(), nil, nil, nil)
	assert.Error(t, err)
}

func TestInitializeInvalidCanvas(t *testing.T) {
	opts := trace.DefaultOptions()
	opts.Canvases = []string{"other"}
	e, err := New(testConfig(), trace.New(opts), nil, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, e.Initialize(), core.ErrInvalidCanvas)
	assert.Equal(t, EngineStageUninitialized, e.Stage())
}

func TestFrameRendersEveryFrame(t *testing.T) {
	e, rec := newEngine(t, testConfig(), audio.Silence{})

	for i := 0; i < 3; i++ {
		require.NoError(t, e.Frame(16))
	}
	assert.Equal(t, 3, rec.Count("drawElements"))
	assert.Equal(t, 3, rec.Count("clear"))
	assert.Equal(t, uint64(0), e.Updates(), "stale audio skips the update")
	assert.Equal(t, uint64(3), e.Metrics().TotalFrames())
}

func TestStaleAudioCarriesDelta(t *testing.T) {
	freq := audio.NewSynthetic()
	freq.Every = 3
	e, _ := newEngine(t, testConfig(), freq)
	particles := e.Renderer().Particles()

	require.NoError(t, e.Frame(100))
	assert.InDelta(t, 0.1, particles.NormalizedSecond(), 1e-6)

	require.NoError(t, e.Frame(100))
	require.NoError(t, e.Frame(100))
	assert.InDelta(t, 0.1, particles.NormalizedSecond(), 1e-6, "no update while stale")

	require.NoError(t, e.Frame(100))
	assert.InDelta(t, 0.4, particles.NormalizedSecond(), 1e-6)
	assert.Equal(t, uint64(2), e.Updates())
}

func TestEveryFramePolicy(t *testing.T) {
	config := testConfig()
	config.UpdatePolicy = UpdatePolicyEveryFrame
	e, rec := newEngine(t, config, audio.Silence{})

	require.NoError(t, e.Frame(250))
	require.NoError(t, e.Frame(250))
	assert.Equal(t, uint64(2), e.Updates())
	assert.InDelta(t, 0.5, e.Renderer().Particles().NormalizedSecond(), 1e-6)
	assert.Equal(t, 2, rec.Count("drawElements"))
}

func TestStaticAudioFillsFrequencies(t *testing.T) {
	e, _ := newEngine(t, testConfig(), audio.Static{255, 51})
	require.NoError(t, e.Frame(16))

	freq := e.Renderer().Particles().Frequencies()
	assert.InDelta(t, 1.0, freq[0], 1e-6)
	assert.InDelta(t, 0.2, freq[1], 1e-6)
	assert.Equal(t, float32(0), freq[2])
}

func TestResizeEvent(t *testing.T) {
	e, rec := newEngine(t, testConfig(), nil)

	ctx := core.EventContext{}
	ctx.Data.U32[0] = 800
	ctx.Data.U32[1] = 600
	e.Events().Post(core.EVENT_CODE_RESIZED, nil, ctx)
	assert.Equal(t, 0, rec.Count("viewport"), "delivered on the next frame")

	require.NoError(t, e.Frame(16))
	viewport, ok := rec.Last("viewport")
	require.True(t, ok)
	assert.Equal(t, "viewport(context#1, 0, 0, 800, 600)", viewport.String())
	assert.Equal(t, float32(800), e.Renderer().Particles().ScreenSize().X)
}

func TestAssetChangedReloadsTexture(t *testing.T) {
	e, rec := newEngine(t, testConfig(), nil)

	post := func(name string) {
		ctx := core.EventContext{}
		ctx.Data.Name = name
		e.Events().Post(core.EVENT_CODE_ASSET_CHANGED, nil, ctx)
	}

	post("other.png")
	require.NoError(t, e.Frame(16))
	assert.Equal(t, 0, rec.Count("texImage2D"))

	post("circle.png")
	require.NoError(t, e.Frame(16))
	assert.Equal(t, 1, rec.Count("texImage2D"))
}

func TestQuitStopsRun(t *testing.T) {
	e, rec := newEngine(t, testConfig(), nil)
	driver := platform.NewHeadless(0, 16)

	require.NoError(t, e.Frame(16))
	e.Events().Post(core.EVENT_CODE_APPLICATION_QUIT, nil, core.EventContext{})

	require.NoError(t, e.Run(context.Background(), driver))
	assert.Equal(t, 0, driver.FramesRun())
	assert.Equal(t, 1, rec.Count("drawElements"))
	assert.ErrorIs(t, e.Frame(16), platform.ErrStop)
}

func TestRunHeadless(t *testing.T) {
	e, rec := newEngine(t, testConfig(), audio.NewSynthetic())
	driver := platform.NewHeadless(5, 16)

	require.NoError(t, e.Run(context.Background(), driver))
	assert.Equal(t, 5, driver.FramesRun())
	assert.Equal(t, 5, rec.Count("drawElements"))
	assert.Equal(t, uint64(5), e.Metrics().TotalFrames())
	assert.Equal(t, EngineStageInitialized, e.Stage())
}

func TestRunCancelled(t *testing.T) {
	e, _ := newEngine(t, testConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, e.Run(ctx, platform.NewHeadless(0, 16)), context.Canceled)
}

func TestShutdown(t *testing.T) {
	e, _ := newEngine(t, testConfig(), nil)
	require.NoError(t, e.Shutdown())
	require.NoError(t, e.Shutdown())
	assert.Equal(t, EngineStageShutdown, e.Stage())
	assert.ErrorIs(t, e.Frame(16), core.ErrNotInitialized)
	assert.ErrorIs(t, e.Initialize(), core.ErrAlreadyInitialized)
}

func TestShaderOverrides(t *testing.T) {
	config := testConfig()
	config.Particles.FragmentShader = "shaders/flat.frag"

	text := textAssets{"shaders/flat.frag": "void main() {}"}
	rec := trace.New(trace.DefaultOptions())
	e, err := New(config, rec, nil, nil, WithTextSource(text))
	require.NoError(t, err)
	require.NoError(t, e.Initialize())

	var found bool
	for _, c := range rec.Calls() {
		if c.Name == "shaderSource" && strings.Contains(c.String(), `"void main() {}"`) {
			found = true
		}
	}
	assert.True(t, found)

	config.Particles.FragmentShader = "shaders/missing.frag"
	e, err = New(config, trace.New(trace.DefaultOptions()), nil, nil, WithTextSource(text))
	require.NoError(t, err)
	assert.Error(t, e.Initialize())
}

func TestSharedEventBus(t *testing.T) {
	bus := core.NewEventBus()
	e, _ := newEngine(t, testConfig(), nil, WithEventBus(bus))
	assert.Same(t, bus, e.Events())
}

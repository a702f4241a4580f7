package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/resonance/engine/audio"
	"github.com/spaghettifunk/resonance/engine/core"
	"github.com/spaghettifunk/resonance/engine/platform"
	"github.com/spaghettifunk/resonance/engine/renderer"
	"github.com/spaghettifunk/resonance/engine/renderer/device"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine has been shut down and cannot be used again
	EngineStageShutdown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShutdown:
		return "shutdown"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// TextSource resolves text assets, used for shader overrides.
type TextSource interface {
	Text(name string) (string, error)
}

type Option func(*Engine)

// WithEventBus makes the engine dispatch on bus, so collaborators created
// before the engine can post to it.
func WithEventBus(bus *core.EventBus) Option {
	return func(e *Engine) {
		e.bus = bus
	}
}

// WithTextSource sets where configured shader overrides are read from.
func WithTextSource(text TextSource) Option {
	return func(e *Engine) {
		e.text = text
	}
}

type Engine struct {
	currentStage Stage
	config       *ApplicationConfig
	sessionID    uuid.UUID

	host   device.Host
	images device.ImageSource
	audio  audio.FrequencySource
	text   TextSource

	bus      *core.EventBus
	proxy    *device.Proxy
	renderer *renderer.Renderer
	metrics  *core.FrameMetrics

	// delta accumulated over frames that skipped the update
	pendingDeltaMs float64
	updates        uint64
	quit           bool
}

func New(config *ApplicationConfig, host device.Host, images device.ImageSource, freq audio.FrequencySource, opts ...Option) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	if host == nil {
		return nil, fmt.Errorf("engine needs a graphics host")
	}
	if freq == nil {
		freq = audio.Silence{}
	}

	level, _ := core.ParseLogLevel(config.LogLevel)
	core.SetLogLevel(level)

	e := &Engine{
		currentStage: EngineStageUninitialized,
		config:       config,
		sessionID:    uuid.New(),
		host:         host,
		images:       images,
		audio:        freq,
		metrics:      core.NewFrameMetrics(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.bus == nil {
		e.bus = core.NewEventBus()
	}
	return e, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return core.ErrAlreadyInitialized
	}

	rendererConfig, err := e.config.RendererConfig(e.text)
	if err != nil {
		core.LogError(err.Error())
		return err
	}

	e.proxy = device.NewProxy(e.host, e.images)
	r, err := renderer.NewRenderer(e.proxy, rendererConfig)
	if err != nil {
		return err
	}
	e.renderer = r

	// register some events
	e.bus.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onQuit)
	e.bus.Register(core.EVENT_CODE_RESIZED, e, e.onResized)
	e.bus.Register(core.EVENT_CODE_ASSET_CHANGED, e, e.onAssetChanged)

	e.currentStage = EngineStageInitialized
	core.LogInfo("%s initialized, session %s", e.config.Name, e.sessionID)
	return nil
}

/**
 * @brief Runs one frame: delivers queued events, refreshes the spectrum,
 * runs the particle update when the policy allows it and renders.
 * @param deltaMs milliseconds since the previous frame.
 * @return platform.ErrStop once a quit event was handled.
 */
func (e *Engine) Frame(deltaMs float64) error {
	if e.currentStage != EngineStageInitialized && e.currentStage != EngineStageRunning {
		return core.ErrNotInitialized
	}

	e.bus.Drain()
	if e.quit {
		return platform.ErrStop
	}

	if deltaMs > 0 {
		e.pendingDeltaMs += deltaMs
	}

	fresh := e.audio.ByteFrequencyData(e.renderer.FrequencyBuffer())
	if fresh || e.config.UpdatePolicy == UpdatePolicyEveryFrame {
		if err := e.renderer.Update(float32(e.pendingDeltaMs)); err != nil {
			core.LogError("frame update failed: %s", err.Error())
			return err
		}
		e.pendingDeltaMs = 0
		e.updates++
	}

	if err := e.renderer.Render(); err != nil {
		return err
	}

	e.metrics.Update(deltaMs)
	return nil
}

// Run hands Frame to the driver and blocks until it returns.
func (e *Engine) Run(ctx context.Context, driver platform.Driver) error {
	if e.currentStage != EngineStageInitialized {
		if e.currentStage == EngineStageRunning {
			return fmt.Errorf("engine is already running")
		}
		return core.ErrNotInitialized
	}

	e.currentStage = EngineStageRunning
	err := driver.Run(ctx, e.Frame)
	if e.currentStage == EngineStageRunning {
		e.currentStage = EngineStageInitialized
	}

	core.LogInfo("ran %d frames, %d updates, %.2f ms average frame", e.metrics.TotalFrames(), e.updates, e.metrics.FrameTime())
	return err
}

// Events is the bus the engine dispatches on at the start of every frame.
func (e *Engine) Events() *core.EventBus {
	return e.bus
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutdown {
		return nil
	}
	if e.renderer != nil {
		e.bus.Unregister(core.EVENT_CODE_APPLICATION_QUIT, e)
		e.bus.Unregister(core.EVENT_CODE_RESIZED, e)
		e.bus.Unregister(core.EVENT_CODE_ASSET_CHANGED, e)
	}
	e.currentStage = EngineStageShutdown
	core.LogInfo("%s shut down", e.config.Name)
	return nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) SessionID() uuid.UUID {
	return e.sessionID
}

func (e *Engine) Config() *ApplicationConfig {
	return e.config
}

// Renderer is nil until Initialize.
func (e *Engine) Renderer() *renderer.Renderer {
	return e.renderer
}

// Proxy is nil until Initialize.
func (e *Engine) Proxy() *device.Proxy {
	return e.proxy
}

func (e *Engine) Metrics() *core.FrameMetrics {
	return e.metrics
}

// Updates is the number of frames that ran the particle update.
func (e *Engine) Updates() uint64 {
	return e.updates
}

func (e *Engine) onQuit(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
	core.LogInfo("quit requested")
	e.quit = true
	return true
}

func (e *Engine) onResized(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
	width, height := int(data.Data.U32[0]), int(data.Data.U32[1])
	if width == 0 || height == 0 {
		return false
	}
	if err := e.renderer.Resize(width, height); err != nil {
		core.LogError("resize to %dx%d failed: %s", width, height, err.Error())
	}
	return false
}

func (e *Engine) onAssetChanged(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
	texture := e.renderer.Particles().Texture()
	if data.Data.Name != texture.Name() {
		return false
	}
	if err := e.renderer.ReloadTexture(); err != nil {
		core.LogWarn("reloading %q failed: %s", data.Data.Name, err.Error())
		return false
	}
	core.LogInfo("reloaded texture %q", data.Data.Name)
	return false
}

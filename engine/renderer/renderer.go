package renderer

import (
	"github.com/spaghettifunk/resonance/engine/core"
	"github.com/spaghettifunk/resonance/engine/math"
	"github.com/spaghettifunk/resonance/engine/particles"
	"github.com/spaghettifunk/resonance/engine/renderer/device"
)

type RendererConfig struct {
	CanvasID    string
	ContextType string
	ClearColor  math.Vec4
	Particles   particles.Config
}

func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		CanvasID:    "canvas",
		ContextType: "webgl",
		ClearColor:  math.Vec4{X: 0, Y: 0, Z: 0, W: 1},
		Particles:   particles.DefaultConfig(),
	}
}

// Renderer owns the context and everything drawn on it.
type Renderer struct {
	gl         *device.Context
	particles  *particles.System
	clearColor math.Vec4
}

func NewRenderer(dev device.Device, config RendererConfig) (*Renderer, error) {
	gl, err := device.NewContext(dev, config.CanvasID, config.ContextType)
	if err != nil {
		return nil, err
	}

	system, err := particles.New(gl, config.Particles)
	if err != nil {
		core.LogError("failed to create the particle system: %s", err.Error())
		return nil, err
	}

	core.LogInfo("renderer ready on %s (%s), drawing buffer %dx%d",
		config.CanvasID, config.ContextType, gl.DrawingBufferWidth(), gl.DrawingBufferHeight())

	return &Renderer{
		gl:         gl,
		particles:  system,
		clearColor: config.ClearColor,
	}, nil
}

func (r *Renderer) Context() *device.Context {
	return r.gl
}

func (r *Renderer) Particles() *particles.System {
	return r.particles
}

// FrequencyBuffer is the spectrum the audio collaborator writes into.
func (r *Renderer) FrequencyBuffer() []uint8 {
	return r.particles.FrequencyBuffer()
}

func (r *Renderer) Update(deltaMs float32) error {
	return r.particles.Update(deltaMs)
}

// Render clears the frame, enables alpha blending and draws the particles.
func (r *Renderer) Render() error {
	gl := r.gl
	gl.ClearColor(r.clearColor.X, r.clearColor.Y, r.clearColor.Z, r.clearColor.W)
	gl.Clear(device.COLOR_BUFFER_BIT | device.DEPTH_BUFFER_BIT)

	gl.Enable(device.BLEND)
	gl.BlendFunc(device.SRC_ALPHA, device.ONE_MINUS_SRC_ALPHA)

	if err := r.particles.Render(); err != nil {
		core.LogError(err.Error())
		return err
	}
	return nil
}

func (r *Renderer) Resize(width, height int) error {
	r.gl.Viewport(0, 0, width, height)
	return r.particles.Resize(width, height)
}

// ReloadTexture uploads the particle image again, after it changed on disk.
func (r *Renderer) ReloadTexture() error {
	return r.particles.Texture().Reload()
}

package particles

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/spaghettifunk/resonance/engine/core"
	"github.com/spaghettifunk/resonance/engine/math"
	"github.com/spaghettifunk/resonance/engine/renderer/components"
	"github.com/spaghettifunk/resonance/engine/renderer/device"
)

const (
	DEFAULT_PARTICLE_COUNT = 2048
	DEFAULT_FREQUENCY_BINS = 128
	DEFAULT_TEXTURE_NAME   = "circle.png"

	// elapsed time wraps every second, the shader only sees [0, 1)
	msPerSecond float32 = 1000.0
)

// Config describes the particle system. Empty shader sources select the
// built-in shaders.
type Config struct {
	Count             int
	FrequencyBins     int
	TextureName       string
	TextureParameters components.TextureParameters
	VertexShader      string
	FragmentShader    string
	// StrictShaders turns a failed program link into a construction error.
	// Otherwise the failure is logged and rendering continues degraded.
	StrictShaders bool
}

func DefaultConfig() Config {
	return Config{
		Count:         DEFAULT_PARTICLE_COUNT,
		FrequencyBins: DEFAULT_FREQUENCY_BINS,
		TextureName:   DEFAULT_TEXTURE_NAME,
		StrictShaders: true,
	}
}

// System is the particle mesh plus the frequency and time state that drive
// its uniforms.
type System struct {
	config     Config
	attributes *Attributes

	geometry *components.BufferGeometry
	material *components.ShaderMaterial
	texture  *components.Texture
	mesh     *components.Mesh

	// filled in place by the audio collaborator
	frequencyBytes []uint8
	frequencies    []float32

	elapsedMs        float32
	normalizedSecond float32
	screenSize       math.Vec2
}

/**
 * @brief Builds the particle mesh on gl: compiles the material, sets the
 * initial uniforms, loads the texture and uploads all vertex data.
 */
func New(gl *device.Context, config Config) (*System, error) {
	if config.FrequencyBins < 1 {
		return nil, fmt.Errorf("frequency bins %d: must be positive", config.FrequencyBins)
	}
	attributes, err := NewAttributes(config.Count)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	s := &System{
		config:         config,
		attributes:     attributes,
		frequencyBytes: make([]uint8, config.FrequencyBins),
		frequencies:    make([]float32, config.FrequencyBins),
	}

	vertexSource, fragmentSource := config.VertexShader, config.FragmentShader
	if vertexSource == "" {
		vertexSource = VertexShader(config.FrequencyBins)
	}
	if fragmentSource == "" {
		fragmentSource = FragmentShader
	}

	s.material = components.NewShaderMaterial(gl)
	if err := s.material.Compile(vertexSource, fragmentSource); err != nil {
		if config.StrictShaders || !errors.Is(err, core.ErrLinkFailed) {
			core.LogError(err.Error())
			return nil, err
		}
		core.LogWarn("particles render degraded: %s", err.Error())
	}

	s.screenSize = math.NewVec2(float32(gl.DrawingBufferWidth()), float32(gl.DrawingBufferHeight()))

	s.material.Activate()
	for _, apply := range []func() error{
		func() error { return s.material.SetUniform1i("uSampler", 0) },
		func() error { return s.material.SetUniform2f("screenSize", s.screenSize.X, s.screenSize.Y) },
		func() error { return s.material.SetUniform1f("normalizedSecond", 0) },
	} {
		if err := apply(); err != nil {
			return nil, err
		}
	}

	s.texture = components.NewTexture(gl)
	s.texture.SetParameters(config.TextureParameters)
	if err := s.texture.Load(config.TextureName); err != nil {
		// particles still draw, only untextured, until the image shows up
		core.LogWarn("particle texture %q not loaded: %s", config.TextureName, err.Error())
	}

	s.geometry = components.NewBufferGeometry(gl)
	s.geometry.SetAttribute("serialNumber", components.NewBufferAttribute(attributes.SerialNumber, 1, false))
	s.geometry.SetAttribute("angle", components.NewBufferAttribute(attributes.Angle, 1, false))
	s.geometry.SetAttribute("offset", components.NewBufferAttribute(attributes.Offset, 2, false))
	s.geometry.SetAttribute("texCoord", components.NewBufferAttribute(attributes.TexCoord, 2, false))
	s.geometry.SetIndexBuffer(attributes.Indices)

	s.mesh = components.NewMesh(gl, s.geometry, s.material)

	core.LogInfo("particle system ready: %d particles, %d frequency bins", config.Count, config.FrequencyBins)
	return s, nil
}

// FrequencyBuffer is the byte spectrum read on every Update. Callers fill it
// in place, its length is the configured bin count.
func (s *System) FrequencyBuffer() []uint8 {
	return s.frequencyBytes
}

// Frequencies is the normalized spectrum from the last Update.
func (s *System) Frequencies() []float32 {
	return s.frequencies
}

func (s *System) NormalizedSecond() float32 {
	return s.normalizedSecond
}

func (s *System) Attributes() *Attributes {
	return s.attributes
}

func (s *System) Texture() *components.Texture {
	return s.texture
}

func (s *System) Mesh() *components.Mesh {
	return s.mesh
}

// Update normalizes the spectrum and advances the one second animation
// cycle by deltaMs. Negative deltas are ignored.
func (s *System) Update(deltaMs float32) error {
	for i, f := range s.frequencyBytes {
		s.frequencies[i] = float32(f) / 255.0
	}

	if deltaMs > 0 {
		s.elapsedMs += deltaMs
		if s.elapsedMs >= msPerSecond {
			s.elapsedMs = math32.Mod(s.elapsedMs, msPerSecond)
		}
	}

	s.normalizedSecond = s.elapsedMs / msPerSecond
	return s.material.SetUniform1f("normalizedSecond", s.normalizedSecond)
}

func (s *System) Render() error {
	if err := s.material.BindTexture(0, "uSampler", s.texture); err != nil {
		return err
	}
	if err := s.material.SetUniform1fv("frequencies", s.frequencies); err != nil {
		return err
	}
	return s.mesh.Render()
}

// Resize publishes the new drawing buffer size to the shader.
func (s *System) Resize(width, height int) error {
	s.screenSize = math.NewVec2(float32(width), float32(height))
	s.material.Activate()
	return s.material.SetUniform2f("screenSize", s.screenSize.X, s.screenSize.Y)
}

func (s *System) ScreenSize() math.Vec2 {
	return s.screenSize
}

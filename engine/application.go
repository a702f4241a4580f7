package engine

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/resonance/engine/core"
	"github.com/spaghettifunk/resonance/engine/math"
	"github.com/spaghettifunk/resonance/engine/particles"
	"github.com/spaghettifunk/resonance/engine/renderer"
	"github.com/spaghettifunk/resonance/engine/renderer/components"
	"github.com/spaghettifunk/resonance/engine/renderer/device"
)

// UpdatePolicy decides which frames run the particle update.
type UpdatePolicy string

const (
	// Update only on frames where the audio collaborator reported new data.
	UpdatePolicyFreshAudio UpdatePolicy = "fresh-audio"
	// Update on every frame, also when the spectrum has not changed.
	UpdatePolicyEveryFrame UpdatePolicy = "every-frame"
)

type RendererSettings struct {
	// RGBA, every channel in [0, 1].
	ClearColor [4]float32 `toml:"clear_color"`
}

type ParticleSettings struct {
	Count         int    `toml:"count"`
	FrequencyBins int    `toml:"frequency_bins"`
	Texture       string `toml:"texture"`
	// "linear", "nearest" or empty to keep the device defaults.
	TextureFilter string `toml:"texture_filter"`
	// Asset names of shader overrides. Empty selects the built-in shaders.
	VertexShader   string `toml:"vertex_shader"`
	FragmentShader string `toml:"fragment_shader"`
	StrictShaders  bool   `toml:"strict_shaders"`
}

type ApplicationConfig struct {
	// The application name used in logs and trace headers.
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
	// Id of the canvas element the context is created on.
	CanvasID    string `toml:"canvas_id"`
	ContextType string `toml:"context_type"`
	AssetsDir   string `toml:"assets_dir"`
	// Images larger than this are scaled down on load. 0 keeps them as is.
	MaxImageSize int          `toml:"max_image_size"`
	UpdatePolicy UpdatePolicy `toml:"update_policy"`

	Renderer  RendererSettings `toml:"renderer"`
	Particles ParticleSettings `toml:"particles"`
}

func DefaultConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:         "Resonance",
		LogLevel:     "info",
		CanvasID:     "canvas",
		ContextType:  "webgl",
		AssetsDir:    "assets",
		UpdatePolicy: UpdatePolicyFreshAudio,
		Renderer: RendererSettings{
			ClearColor: [4]float32{0, 0, 0, 1},
		},
		Particles: ParticleSettings{
			Count:         particles.DEFAULT_PARTICLE_COUNT,
			FrequencyBins: particles.DEFAULT_FREQUENCY_BINS,
			Texture:       particles.DEFAULT_TEXTURE_NAME,
			StrictShaders: true,
		},
	}
}

// ParseConfig reads a toml document on top of DefaultConfig and validates
// the result.
func ParseConfig(data []byte) (*ApplicationConfig, error) {
	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadConfig reads the toml file at path. A leading ~ in the path or in
// assets_dir is expanded to the home directory.
func LoadConfig(path string) (*ApplicationConfig, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, err
	}
	config, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expanded, err)
	}
	if config.AssetsDir, err = homedir.Expand(config.AssetsDir); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *ApplicationConfig) Validate() error {
	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.CanvasID == "" {
		return fmt.Errorf("canvas_id must not be empty")
	}
	if c.ContextType == "" {
		return fmt.Errorf("context_type must not be empty")
	}
	switch c.UpdatePolicy {
	case UpdatePolicyFreshAudio, UpdatePolicyEveryFrame:
	default:
		return fmt.Errorf("unknown update_policy %q", c.UpdatePolicy)
	}
	if c.MaxImageSize < 0 {
		return fmt.Errorf("max_image_size %d must not be negative", c.MaxImageSize)
	}
	for i, v := range c.Renderer.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("renderer.clear_color[%d] = %g, must be in [0, 1]", i, v)
		}
	}

	p := c.Particles
	if p.Count < 1 || p.Count > particles.MAX_PARTICLE_COUNT {
		return fmt.Errorf("particles.count %d: %w", p.Count, particles.ErrInvalidParticleCount)
	}
	if p.FrequencyBins < 1 {
		return fmt.Errorf("particles.frequency_bins %d must be positive", p.FrequencyBins)
	}
	if _, err := textureParameters(p.TextureFilter); err != nil {
		return err
	}
	return nil
}

// RendererConfig converts the settings into a renderer configuration.
// Shader overrides are fetched by name from text, which may be nil when no
// override is configured.
func (c *ApplicationConfig) RendererConfig(text TextSource) (renderer.RendererConfig, error) {
	config := renderer.DefaultRendererConfig()
	config.CanvasID = c.CanvasID
	config.ContextType = c.ContextType
	cc := c.Renderer.ClearColor
	config.ClearColor = math.Vec4{X: cc[0], Y: cc[1], Z: cc[2], W: cc[3]}

	p := c.Particles
	params, err := textureParameters(p.TextureFilter)
	if err != nil {
		return config, err
	}
	config.Particles = particles.Config{
		Count:             p.Count,
		FrequencyBins:     p.FrequencyBins,
		TextureName:       p.Texture,
		TextureParameters: params,
		StrictShaders:     p.StrictShaders,
	}

	for _, override := range []struct {
		name   string
		target *string
	}{
		{p.VertexShader, &config.Particles.VertexShader},
		{p.FragmentShader, &config.Particles.FragmentShader},
	} {
		if override.name == "" {
			continue
		}
		if text == nil {
			return config, fmt.Errorf("shader %q configured without an asset source", override.name)
		}
		src, err := text.Text(override.name)
		if err != nil {
			return config, fmt.Errorf("failed to load shader %q: %w", override.name, err)
		}
		*override.target = src
	}
	return config, nil
}

func textureParameters(filter string) (components.TextureParameters, error) {
	switch filter {
	case "":
		return components.TextureParameters{}, nil
	case "linear":
		return components.TextureParameters{
			MinFilter: device.LINEAR,
			MagFilter: device.LINEAR,
			WrapS:     device.CLAMP_TO_EDGE,
			WrapT:     device.CLAMP_TO_EDGE,
		}, nil
	case "nearest":
		return components.TextureParameters{
			MinFilter: device.NEAREST,
			MagFilter: device.NEAREST,
			WrapS:     device.CLAMP_TO_EDGE,
			WrapT:     device.CLAMP_TO_EDGE,
		}, nil
	}
	return components.TextureParameters{}, fmt.Errorf("unknown particles.texture_filter %q", filter)
}

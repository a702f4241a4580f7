package particles

import (
	"github.com/chewxy/math32"

	"github.com/spaghettifunk/resonance/engine/math"
)

// Placement is where the vertex shader puts a particle for the current
// uniforms.
type Placement struct {
	// Centre in pixels, relative to the middle of the screen.
	Position math.Vec2
	// Centre in clip space.
	Clip math.Vec2
	// Quad edge length in pixels.
	Size  float32
	Color math.Vec3
}

// Placement evaluates the vertex shader on the CPU for particle k.
func (s *System) Placement(k int) Placement {
	bins := float32(s.config.FrequencyBins)
	serial := float32(k)

	hue := serial * (math.K_PI_2 / bins)
	color := math.HSVToRGB(math.Vec3{X: hue, Y: 1, Z: 1})

	index := int(math.Mod(serial, bins))
	frequency := s.frequencies[index]
	size := baseParticleSize + particleSizeRange*frequency

	minSize := math32.Min(s.screenSize.X, s.screenSize.Y) * ringFill
	radius := minSize * (0.5 + frequency*0.5)

	globalOffset := s.normalizedSecond * math.DegToRad(globalSpinDegrees)
	angleOffset := frequency * math.DegToRad(frequencySpinDegrees)
	angle := s.attributes.Angle[k*VERTICES_PER_PARTICLE] + angleOffset - globalOffset

	position := math.NewVec2FromPolar(radius, angle)
	clip := math.Vec2{}
	if s.screenSize.X > 0 && s.screenSize.Y > 0 {
		clip = position.Div(s.screenSize)
	}

	return Placement{
		Position: position,
		Clip:     clip,
		Size:     size,
		Color:    color,
	}
}

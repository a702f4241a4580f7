package particles

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/resonance/engine/math"
)

const (
	VERTICES_PER_PARTICLE = 4
	INDICES_PER_PARTICLE  = 6
	// Index buffers hold uint16, so every vertex must be addressable by one.
	MAX_PARTICLE_COUNT = 65536 / VERTICES_PER_PARTICLE
)

// Untyped so the angle is computed in float64 and rounded once.
const twoPi = 2 * 3.14159265358979323846

var ErrInvalidParticleCount = errors.New("invalid particle count")

// Quad corners in vertex order: top left, bottom left, top right, bottom right.
var (
	quadOffsets   = [VERTICES_PER_PARTICLE]math.Vec2{{X: -1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: 1}, {X: 1, Y: -1}}
	quadTexCoords = [VERTICES_PER_PARTICLE]math.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	quadIndices   = [INDICES_PER_PARTICLE]uint16{0, 1, 2, 2, 1, 3}
)

/**
 * @brief Vertex data for N screen facing quads. Generated once, never
 * modified afterwards. Parallel arrays, one entry (or two for the vec2
 * attributes) per vertex.
 */
type Attributes struct {
	count int

	SerialNumber []float32
	Angle        []float32
	Offset       []float32
	TexCoord     []float32
	Indices      []uint16
}

func NewAttributes(count int) (*Attributes, error) {
	if count < 1 || count > MAX_PARTICLE_COUNT {
		return nil, fmt.Errorf("%d not in [1, %d]: %w", count, MAX_PARTICLE_COUNT, ErrInvalidParticleCount)
	}

	vertexCount := count * VERTICES_PER_PARTICLE
	a := &Attributes{
		count:        count,
		SerialNumber: make([]float32, vertexCount),
		Angle:        make([]float32, vertexCount),
		Offset:       make([]float32, vertexCount*2),
		TexCoord:     make([]float32, vertexCount*2),
		Indices:      make([]uint16, count*INDICES_PER_PARTICLE),
	}
	for k := 0; k < count; k++ {
		a.generate(k)
	}
	return a, nil
}

func (a *Attributes) generate(k int) {
	base := k * VERTICES_PER_PARTICLE

	// shared by all four corners
	angle := float32(float64(k) * twoPi / float64(a.count))
	for i := 0; i < VERTICES_PER_PARTICLE; i++ {
		a.Angle[base+i] = angle
		a.SerialNumber[base+i] = float32(k)

		a.Offset[(base+i)*2+0] = quadOffsets[i].X
		a.Offset[(base+i)*2+1] = quadOffsets[i].Y
		a.TexCoord[(base+i)*2+0] = quadTexCoords[i].X
		a.TexCoord[(base+i)*2+1] = quadTexCoords[i].Y
	}

	for i, idx := range quadIndices {
		a.Indices[k*INDICES_PER_PARTICLE+i] = uint16(base) + idx
	}
}

// Count is the number of particles.
func (a *Attributes) Count() int {
	return a.count
}

// VertexCount is four per particle.
func (a *Attributes) VertexCount() int {
	return a.count * VERTICES_PER_PARTICLE
}

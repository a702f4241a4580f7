package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 10, Clamp(42, 0, 10))
	assert.Equal(t, float32(0.5), Clamp(float32(0.5), 0, 1))
}

func TestHSVToRGBPrimaries(t *testing.T) {
	cases := []struct {
		hue  float32
		want Vec3
	}{
		{0, Vec3{1, 0, 0}},
		{1.0 / 3.0, Vec3{0, 1, 0}},
		{2.0 / 3.0, Vec3{0, 0, 1}},
		{1, Vec3{1, 0, 0}},
	}
	for _, c := range cases {
		got := HSVToRGB(Vec3{c.hue, 1, 1})
		assert.InDelta(t, c.want.X, got.X, 1e-4, "hue %v red", c.hue)
		assert.InDelta(t, c.want.Y, got.Y, 1e-4, "hue %v green", c.hue)
		assert.InDelta(t, c.want.Z, got.Z, 1e-4, "hue %v blue", c.hue)
	}

	grey := HSVToRGB(Vec3{0.4, 0, 0.5})
	assert.InDelta(t, 0.5, grey.X, 1e-6)
	assert.InDelta(t, 0.5, grey.Y, 1e-6)
	assert.InDelta(t, 0.5, grey.Z, 1e-6)
}

func TestModAndFract(t *testing.T) {
	assert.InDelta(t, 2.0, Mod(130, 128), 1e-6)
	assert.InDelta(t, 127.0, Mod(-1, 128), 1e-6)
	assert.InDelta(t, 0.25, Fract(3.25), 1e-6)
	assert.InDelta(t, 0.75, Fract(-0.25), 1e-6)
}

func TestVec2Polar(t *testing.T) {
	v := NewVec2FromPolar(2, K_PI/2)
	assert.True(t, v.Compare(Vec2{0, 2}, 1e-5), "%v", v)
	assert.InDelta(t, 2.0, v.Length(), 1e-5)
	assert.InDelta(t, 90.0, RadToDeg(DegToRad(90)), 1e-4)
}

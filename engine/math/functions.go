package math

import (
	"github.com/chewxy/math32"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief An approximate representation of PI multiplied by 2. */
	K_PI_2 float32 = 2.0 * K_PI
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float32 = 180.0 / K_PI
	/** @brief The multiplier to convert milliseconds to seconds. */
	K_MS_TO_SEC_MULTIPLIER float32 = 0.001
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
)

func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG_MULTIPLIER
}

/**
 * @brief Fractional part of x, GLSL style (x - floor(x)), always in [0, 1).
 */
func Fract(x float32) float32 {
	return x - math32.Floor(x)
}

/**
 * @brief GLSL mod: x - y * floor(x/y). The result takes the sign of y.
 */
func Mod(x, y float32) float32 {
	return x - y*math32.Floor(x/y)
}

/**
 * @brief Converts a hue/saturation/value triple to RGB. The hue wraps every
 * 1.0, matching the hsv2rgb used by the particle vertex shader.
 */
func HSVToRGB(c Vec3) Vec3 {
	k := Vec4{1.0, 2.0 / 3.0, 1.0 / 3.0, 3.0}
	channel := func(offset float32) float32 {
		p := math32.Abs(Fract(c.X+offset)*6.0 - k.W)
		return c.Z * mix(k.X, Clamp(p-k.X, 0.0, 1.0), c.Y)
	}
	return Vec3{
		X: channel(k.X),
		Y: channel(k.Y),
		Z: channel(k.Z),
	}
}

func mix(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// Vector 2
// ------------------------------------------

func NewVec2(x, y float32) Vec2 {
	return Vec2{
		X: x,
		Y: y,
	}
}

/**
 * @brief Creates a 2-component vector of length radius rotated by angle radians.
 */
func NewVec2FromPolar(radius, angle float32) Vec2 {
	return Vec2{radius * math32.Cos(angle), radius * math32.Sin(angle)}
}

/**
 *  Adds other to v and returns a copy of the result.
 */
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

/**
 *  Multiplies v by other and returns a copy of the result.
 */
func (v Vec2) Mul(other Vec2) Vec2 {
	return Vec2{v.X * other.X, v.Y * other.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

/**
 * Divides v by other and returns a copy of the result.
 */
func (v Vec2) Div(other Vec2) Vec2 {
	return Vec2{v.X / other.X, v.Y / other.Y}
}

/**
 * @brief Returns the length of the provided vector.
 */
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 */
func (v Vec2) Compare(other Vec2, tolerance float32) bool {
	if math32.Abs(v.X-other.X) > tolerance {
		return false
	}
	if math32.Abs(v.Y-other.Y) > tolerance {
		return false
	}
	return true
}

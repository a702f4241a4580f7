package particles

import "fmt"

// Every particle is placed on a ring that breathes with the frequency bin it
// reads. Hue walks the spectrum by serial number. FREQ_COUNT is filled in by
// VertexShader.
const vertexShaderTemplate = `
precision highp float;

#define PI            3.14159265359
#define TWO_PI        PI * 2.0
#define TO_RAD(x)     (x) * (TWO_PI / 360.0)

#define FREQ_COUNT    %d
#define FREQ_COUNT_F  float(FREQ_COUNT)

uniform vec2 screenSize;
uniform float normalizedSecond;
uniform float frequencies[FREQ_COUNT];

attribute float serialNumber;
attribute float angle;
attribute vec2 offset;
attribute vec2 texCoord;

varying vec3 vColor;
varying highp vec2 vTexCoord;

vec3 hsv2rgb(vec3 c)
{
    vec4 K = vec4(1.0, 2.0 / 3.0, 1.0 / 3.0, 3.0);
    vec3 p = abs(fract(c.xxx + K.xyz) * 6.0 - K.www);
    return c.z * mix(K.xxx, clamp(p - K.xxx, 0.0, 1.0), c.y);
}

void main()
{
    vec3 hsv = vec3(serialNumber * (TWO_PI / FREQ_COUNT_F), 1.0, 1.0);
    vColor = hsv2rgb(hsv);

    float index = mod(serialNumber, FREQ_COUNT_F);
    float frequency = frequencies[int(index)];
    float particleSize = 16.0 + 24.0 * frequency;

    float minSize = min(screenSize.x, screenSize.y) * 0.95;
    vec2 radius = vec2(minSize * (0.5 + frequency * 0.5));

    float globalOffset = normalizedSecond * TO_RAD(22.5);
    float angleOffset = frequency * TO_RAD(90.0);
    float angle2 = angle + angleOffset - globalOffset;

    vec2 position = radius * vec2(cos(angle2), sin(angle2));
    vec2 particleRadius = vec2(particleSize * 0.5);
    vec2 delta = particleRadius * offset;

    vTexCoord = texCoord;
    gl_Position = vec4((position + delta) / screenSize, 0.0, 1.0);
}
`

const FragmentShader = `
precision highp float;

uniform sampler2D uSampler;

varying vec3 vColor;
varying highp vec2 vTexCoord;

void main() {
    vec4 color = texture2D(uSampler, vTexCoord);
    gl_FragColor = color * vec4(vColor, 1.0);
}
`

// VertexShader returns the particle vertex shader for the given number of
// frequency bins.
func VertexShader(frequencyBins int) string {
	return fmt.Sprintf(vertexShaderTemplate, frequencyBins)
}

// Shader tuning shared with the CPU preview.
const (
	baseParticleSize     = 16.0
	particleSizeRange    = 24.0
	ringFill             = 0.95
	globalSpinDegrees    = 22.5
	frequencySpinDegrees = 90.0
)

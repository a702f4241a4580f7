package device

// Enum carries WebGL constant values unchanged so a call through the proxy
// is identical to the same call on a native WebGLRenderingContext.
type Enum uint32

/* ClearBufferMask */
const (
	DEPTH_BUFFER_BIT Enum = 0x00000100
	COLOR_BUFFER_BIT Enum = 0x00004000
)

/* BeginMode */
const (
	TRIANGLES      Enum = 0x0004
	TRIANGLE_STRIP Enum = 0x0005
)

/* BlendingFactorDest, EnableCap */
const (
	SRC_ALPHA           Enum = 0x0302
	ONE_MINUS_SRC_ALPHA Enum = 0x0303
	BLEND               Enum = 0x0BE2
)

/* Buffer Objects */
const (
	ARRAY_BUFFER         Enum = 0x8892
	ELEMENT_ARRAY_BUFFER Enum = 0x8893
	STATIC_DRAW          Enum = 0x88E4
	DYNAMIC_DRAW         Enum = 0x88E8
)

/* DataType */
const (
	UNSIGNED_BYTE  Enum = 0x1401
	UNSIGNED_SHORT Enum = 0x1403
	FLOAT          Enum = 0x1406
)

/* PixelFormat */
const (
	RGBA Enum = 0x1908
)

/* Shaders */
const (
	FRAGMENT_SHADER              Enum = 0x8B30
	VERTEX_SHADER                Enum = 0x8B31
	MAX_VERTEX_UNIFORM_VECTORS   Enum = 0x8DFB
	MAX_FRAGMENT_UNIFORM_VECTORS Enum = 0x8DFD
	COMPILE_STATUS               Enum = 0x8B81
	LINK_STATUS                  Enum = 0x8B82
)

/* Textures */
const (
	NEAREST            Enum = 0x2600
	LINEAR             Enum = 0x2601
	TEXTURE_MAG_FILTER Enum = 0x2800
	TEXTURE_MIN_FILTER Enum = 0x2801
	TEXTURE_WRAP_S     Enum = 0x2802
	TEXTURE_WRAP_T     Enum = 0x2803
	TEXTURE_2D         Enum = 0x0DE1
	TEXTURE0           Enum = 0x84C0
	CLAMP_TO_EDGE      Enum = 0x812F
	REPEAT             Enum = 0x2901
)

// Boolean results of *Parameter queries.
const (
	FALSE = 0
	TRUE  = 1
)

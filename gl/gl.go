// SPDX-License-Identifier: Unlicense OR MIT

// Package gl declares the subset of the OpenGL binding model used by the
// render package: handle types, enumerants and the Functions entry point
// surface that the window/context layer resolves once at startup.
package gl

type (
	Enum uint
)

// Handle types. The zero value is the null object for every type.
type (
	Buffer  struct{ V uint }
	Program struct{ V uint }
	Shader  struct{ V uint }
	Texture struct{ V uint }
	Uniform struct{ V int }
	Attrib  struct{ V int }
)

func (b Buffer) Valid() bool  { return b.V != 0 }
func (p Program) Valid() bool { return p.V != 0 }
func (s Shader) Valid() bool  { return s.V != 0 }
func (t Texture) Valid() bool { return t.V != 0 }

// Uniform and attribute locations use -1 as "not found", matching the
// underlying API.
func (u Uniform) Valid() bool { return u.V >= 0 }
func (a Attrib) Valid() bool  { return a.V >= 0 }

// NoUniform is the "not found" location. Useful for cache initialization.
var NoUniform = Uniform{V: -1}

// NoAttrib is the "not found" attribute location.
var NoAttrib = Attrib{V: -1}

const (
	ALL_ATTRIB_BITS                  = 0xffffffff
	ALPHA_TEST                       = 0xbc0
	ARRAY_BUFFER                     = 0x8892
	BLEND                            = 0xbe2
	CLAMP_TO_EDGE                    = 0x812f
	CLIENT_ALL_ATTRIB_BITS           = 0xffffffff
	COLOR_ARRAY                      = 0x8076
	COLOR_BUFFER_BIT                 = 0x4000
	COMPILE_STATUS                   = 0x8b81
	CULL_FACE                        = 0xb44
	CURRENT_PROGRAM                  = 0x8b8d
	DEPTH_TEST                       = 0xb71
	DST_ALPHA                        = 0x304
	DST_COLOR                        = 0x306
	DYNAMIC_DRAW                     = 0x88e8
	EXTENSIONS                       = 0x1f03
	FALSE                            = 0
	FLOAT                            = 0x1406
	FRAGMENT_SHADER                  = 0x8b30
	FRAMEBUFFER_SRGB                 = 0x8db9
	FUNC_ADD                         = 0x8006
	FUNC_REVERSE_SUBTRACT            = 0x800b
	FUNC_SUBTRACT                    = 0x800a
	GEOMETRY_SHADER                  = 0x8dd9
	LIGHTING                         = 0xb50
	LINEAR                           = 0x2601
	LINES                            = 0x1
	LINE_STRIP                       = 0x3
	LINK_STATUS                      = 0x8b82
	MAX                              = 0x8008
	MAX_COMBINED_TEXTURE_IMAGE_UNITS = 0x8b4d
	MAX_TEXTURE_SIZE                 = 0xd33
	MIN                              = 0x8007
	MODELVIEW                        = 0x1700
	NEAREST                          = 0x2600
	NO_ERROR                         = 0x0
	ONE                              = 0x1
	ONE_MINUS_DST_ALPHA              = 0x305
	ONE_MINUS_DST_COLOR              = 0x307
	ONE_MINUS_SRC_ALPHA              = 0x303
	ONE_MINUS_SRC_COLOR              = 0x301
	POINTS                           = 0x0
	PROJECTION                       = 0x1701
	QUADS                            = 0x7
	REPEAT                           = 0x2901
	RGBA                             = 0x1908
	SRC_ALPHA                        = 0x302
	SRC_COLOR                        = 0x300
	STATIC_DRAW                      = 0x88e4
	STREAM_DRAW                      = 0x88e0
	TEXTURE                          = 0x1702
	TEXTURE0                         = 0x84c0
	TEXTURE_2D                       = 0xde1
	TEXTURE_COORD_ARRAY              = 0x8078
	TEXTURE_MAG_FILTER               = 0x2800
	TEXTURE_MIN_FILTER               = 0x2801
	TEXTURE_WRAP_S                   = 0x2802
	TEXTURE_WRAP_T                   = 0x2803
	TRIANGLES                        = 0x4
	TRIANGLE_FAN                     = 0x6
	TRIANGLE_STRIP                   = 0x5
	TRUE                             = 1
	UNSIGNED_BYTE                    = 0x1401
	VERSION                          = 0x1f02
	VERTEX_ARRAY                     = 0x8074
	VERTEX_SHADER                    = 0x8b31
	ZERO                             = 0x0
)

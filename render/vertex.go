// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"image/color"
	"unsafe"

	"github.com/gfx-go/render2d/f32"
)

// Vertex is one point of a primitive: a position in scene coordinates, a
// modulating color and a texture coordinate in pixels. The field order is
// the wire layout handed to the GL pointer calls; do not reorder.
type Vertex struct {
	Position  f32.Point
	Color     color.NRGBA
	TexCoords f32.Point
}

const (
	vertexStride    = int(unsafe.Sizeof(Vertex{}))
	vertexPosOff    = 0
	vertexColorOff  = 8
	vertexTexOff    = 12
)

// vertexBytes returns the raw byte view of verts for client-array uploads.
func vertexBytes(verts []Vertex) []byte {
	if len(verts) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&verts[0])), len(verts)*vertexStride)
}

// PrimitiveType describes how a vertex stream is assembled into geometry.
type PrimitiveType uint8

const (
	Points PrimitiveType = iota
	Lines
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
	// Quads is a desktop-only primitive; constrained contexts refuse it.
	Quads
)

func (p PrimitiveType) String() string {
	switch p {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case LineStrip:
		return "line strip"
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle strip"
	case TriangleFan:
		return "triangle fan"
	case Quads:
		return "quads"
	default:
		return "unknown"
	}
}

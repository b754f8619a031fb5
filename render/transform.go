// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"github.com/chewxy/math32"

	"github.com/gfx-go/render2d/f32"
)

// Transform is a 2D affine transform. It is stored as a full column-major
// 4x4 matrix so it can be handed to the GL matrix stack or a mat4 uniform
// without conversion. Transforms compare with ==, which the state cache
// relies on.
type Transform struct {
	m [16]float32
}

// Identity is the identity transform.
var Identity = NewTransform(
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
)

// NewTransform builds a transform from the 3x3 row-major components
//
//	a00 a01 a02
//	a10 a11 a12
//	a20 a21 a22
func NewTransform(a00, a01, a02, a10, a11, a12, a20, a21, a22 float32) Transform {
	return Transform{m: [16]float32{
		a00, a10, 0, a20,
		a01, a11, 0, a21,
		0, 0, 1, 0,
		a02, a12, 0, a22,
	}}
}

// Translation returns a translation by (x, y).
func Translation(x, y float32) Transform {
	return NewTransform(
		1, 0, x,
		0, 1, y,
		0, 0, 1,
	)
}

// Rotation returns a rotation by angle degrees around the origin.
func Rotation(angle float32) Transform {
	rad := angle * math32.Pi / 180
	cos := math32.Cos(rad)
	sin := math32.Sin(rad)
	return NewTransform(
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1,
	)
}

// Scaling returns a scale by (sx, sy) around the origin.
func Scaling(sx, sy float32) Transform {
	return NewTransform(
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	)
}

// Matrix returns the column-major 4x4 matrix, ready for the GL API.
func (t *Transform) Matrix() *[16]float32 {
	return &t.m
}

// TransformPoint applies t to p.
func (t Transform) TransformPoint(p f32.Point) f32.Point {
	return f32.Point{
		X: t.m[0]*p.X + t.m[4]*p.Y + t.m[12],
		Y: t.m[1]*p.X + t.m[5]*p.Y + t.m[13],
	}
}

// Combine returns t * o, applying o first.
func (t Transform) Combine(o Transform) Transform {
	a, b := &t.m, &o.m
	return NewTransform(
		a[0]*b[0]+a[4]*b[1]+a[12]*b[3], a[0]*b[4]+a[4]*b[5]+a[12]*b[7], a[0]*b[12]+a[4]*b[13]+a[12]*b[15],
		a[1]*b[0]+a[5]*b[1]+a[13]*b[3], a[1]*b[4]+a[5]*b[5]+a[13]*b[7], a[1]*b[12]+a[5]*b[13]+a[13]*b[15],
		a[3]*b[0]+a[7]*b[1]+a[15]*b[3], a[3]*b[4]+a[7]*b[5]+a[15]*b[7], a[3]*b[12]+a[7]*b[13]+a[15]*b[15],
	)
}

// Inverse returns the inverse of t, or Identity if t is not invertible.
func (t Transform) Inverse() Transform {
	m := &t.m
	det := m[0]*(m[15]*m[5]-m[7]*m[13]) -
		m[1]*(m[15]*m[4]-m[7]*m[12]) +
		m[3]*(m[13]*m[4]-m[5]*m[12])
	if det == 0 {
		return Identity
	}
	return NewTransform(
		(m[15]*m[5]-m[7]*m[13])/det, -(m[15]*m[4]-m[7]*m[12])/det, (m[13]*m[4]-m[5]*m[12])/det,
		-(m[15]*m[1]-m[3]*m[13])/det, (m[15]*m[0]-m[3]*m[12])/det, -(m[13]*m[0]-m[1]*m[12])/det,
		(m[7]*m[1]-m[3]*m[5])/det, -(m[7]*m[0]-m[3]*m[4])/det, (m[5]*m[0]-m[1]*m[4])/det,
	)
}

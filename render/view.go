// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"github.com/chewxy/math32"

	"github.com/gfx-go/render2d/f32"
)

// View defines the 2D camera of a render target: a rotated rectangle of the
// scene projected into a fractional viewport of the target. The projection
// transform and its inverse are computed lazily and cached until a mutating
// call invalidates them.
type View struct {
	center   f32.Point
	size     f32.Point
	rotation float32
	// viewport is expressed as fractions of the target size, so a view is
	// independent of the target it is applied to.
	viewport f32.Rectangle

	transform           Transform
	transformUpdated    bool
	invTransform        Transform
	invTransformUpdated bool
}

// NewView returns a view of the rectangle rect with a full-target viewport.
func NewView(rect f32.Rectangle) View {
	v := View{viewport: f32.Rect(0, 0, 1, 1)}
	v.Reset(rect)
	return v
}

// Reset makes the view show rect, with no rotation.
func (v *View) Reset(rect f32.Rectangle) {
	v.center = f32.Pt(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)
	v.size = rect.Size()
	v.rotation = 0
	v.invalidate()
}

func (v *View) invalidate() {
	v.transformUpdated = false
	v.invTransformUpdated = false
}

func (v *View) SetCenter(c f32.Point) {
	v.center = c
	v.invalidate()
}

func (v *View) SetSize(s f32.Point) {
	v.size = s
	v.invalidate()
}

// SetRotation sets the view rotation in degrees.
func (v *View) SetRotation(angle float32) {
	v.rotation = math32.Mod(angle, 360)
	if v.rotation < 0 {
		v.rotation += 360
	}
	v.invalidate()
}

// SetViewport sets the fraction of the target the view is mapped to.
func (v *View) SetViewport(vp f32.Rectangle) {
	v.viewport = vp
}

func (v *View) Center() f32.Point      { return v.center }
func (v *View) Size() f32.Point        { return v.size }
func (v *View) Rotation() float32      { return v.rotation }
func (v *View) Viewport() f32.Rectangle { return v.viewport }

// Move offsets the view center.
func (v *View) Move(offset f32.Point) {
	v.SetCenter(v.center.Add(offset))
}

// Rotate adds angle degrees to the view rotation.
func (v *View) Rotate(angle float32) {
	v.SetRotation(v.rotation + angle)
}

// Zoom scales the visible area; factors greater than 1 zoom out.
func (v *View) Zoom(factor float32) {
	v.SetSize(v.size.Mul(factor))
}

// Transform returns the projection transform of the view, mapping scene
// coordinates to normalized device coordinates.
func (v *View) Transform() Transform {
	if !v.transformUpdated {
		rad := v.rotation * math32.Pi / 180
		cos := math32.Cos(rad)
		sin := math32.Sin(rad)
		tx := -v.center.X*cos - v.center.Y*sin + v.center.X
		ty := v.center.X*sin - v.center.Y*cos + v.center.Y

		// Projection components.
		a := 2 / v.size.X
		b := -2 / v.size.Y
		c := -a * v.center.X
		d := -b * v.center.Y

		v.transform = NewTransform(
			a*cos, a*sin, a*tx+c,
			-b*sin, b*cos, b*ty+d,
			0, 0, 1,
		)
		v.transformUpdated = true
	}
	return v.transform
}

// InverseTransform returns the inverse of Transform.
func (v *View) InverseTransform() Transform {
	if !v.invTransformUpdated {
		v.invTransform = v.Transform().Inverse()
		v.invTransformUpdated = true
	}
	return v.invTransform
}

// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gfx-go/render2d/gl"
)

// Texture wraps a driver texture object. Besides the driver handle it
// carries its own process-unique identity: the state cache compares textures
// by identity, never by handle, because the driver recycles handles as soon
// as a texture is deleted and a cache keyed on handles would treat a brand
// new texture as already bound.
type Texture struct {
	ctx    Context
	handle gl.Texture
	id     uint64

	// size is the logical size; actualSize is the allocated storage, padded
	// up to a power of two when the context lacks NPOT support.
	size       image.Point
	actualSize image.Point
	// flipped marks storage that is stored upside down relative to the
	// target convention (render-to-texture attachments typically are).
	flipped bool
	// attachment marks a texture that is also a render target. Attachments
	// are rebound unconditionally on draw so writes from other contexts
	// become visible.
	attachment bool

	smooth   bool
	repeated bool
}

// NewTexture creates a texture of the given logical size.
func NewTexture(ctx Context, width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid texture size %dx%d", width, height)
	}
	caps := ctx.Caps()
	actual := image.Pt(width, height)
	if !caps.TextureNPOT {
		actual = image.Pt(nextPow2(width), nextPow2(height))
	}
	if m := caps.MaxTextureSize; actual.X > m || actual.Y > m {
		return nil, fmt.Errorf("render: texture size %dx%d exceeds maximum %d", width, height, m)
	}
	f := ctx.Functions()
	handle := f.CreateTexture()
	if !handle.Valid() {
		return nil, errors.New("render: texture creation failed")
	}
	t := &Texture{
		ctx:        ctx,
		handle:     handle,
		id:         nextID(),
		size:       image.Pt(width, height),
		actualSize: actual,
	}
	f.BindTexture(gl.TEXTURE_2D, handle)
	f.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, actual.X, actual.Y, gl.RGBA, gl.UNSIGNED_BYTE)
	t.applyParams()
	glCheck(f, "glTexImage2D")
	return t, nil
}

func (t *Texture) applyParams() {
	f := t.ctx.Functions()
	filter := gl.NEAREST
	if t.smooth {
		filter = gl.LINEAR
	}
	wrap := gl.CLAMP_TO_EDGE
	if t.repeated {
		wrap = gl.REPEAT
	}
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
}

// Update uploads img at offset (x, y). Pixels are converted to RGBA as
// needed.
func (t *Texture) Update(img image.Image, x, y int) error {
	if t == nil || !t.handle.Valid() {
		return errors.New("render: update of invalid texture")
	}
	b := img.Bounds()
	if x < 0 || y < 0 || x+b.Dx() > t.size.X || y+b.Dy() > t.size.Y {
		return fmt.Errorf("render: update region %dx%d+%d+%d outside texture %dx%d",
			b.Dx(), b.Dy(), x, y, t.size.X, t.size.Y)
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() {
		converted := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Draw(converted, converted.Bounds(), img, b.Min, xdraw.Src)
		rgba = converted
	}
	f := t.ctx.Functions()
	f.BindTexture(gl.TEXTURE_2D, t.handle)
	f.TexSubImage2D(gl.TEXTURE_2D, 0, x, y, b.Dx(), b.Dy(), gl.RGBA, gl.UNSIGNED_BYTE, rgba.Pix)
	glCheck(f, "glTexSubImage2D")
	return nil
}

// Size returns the logical size in pixels.
func (t *Texture) Size() image.Point {
	return t.size
}

// SetSmooth enables linear filtering.
func (t *Texture) SetSmooth(smooth bool) {
	if t.smooth == smooth {
		return
	}
	t.smooth = smooth
	f := t.ctx.Functions()
	f.BindTexture(gl.TEXTURE_2D, t.handle)
	t.applyParams()
}

// SetRepeated enables wrap-around sampling.
func (t *Texture) SetRepeated(repeated bool) {
	if t.repeated == repeated {
		return
	}
	t.repeated = repeated
	f := t.ctx.Functions()
	f.BindTexture(gl.TEXTURE_2D, t.handle)
	t.applyParams()
}

// SetAttachment marks t as a render-to-texture attachment. Reserved for
// render-texture implementations layered on top of this package; attachments
// get unconditional rebind semantics in the draw path.
func (t *Texture) SetAttachment(attachment bool) {
	t.attachment = attachment
}

// SetFlipped marks the storage as vertically flipped relative to the target
// convention.
func (t *Texture) SetFlipped(flipped bool) {
	t.flipped = flipped
}

// NativeHandle exposes the driver handle for interop with external GL code.
func (t *Texture) NativeHandle() gl.Texture {
	return t.handle
}

// Release deletes the driver object. The identity is retired with it; no
// future texture will ever report the same identity, even if the driver
// recycles the handle.
func (t *Texture) Release() {
	if t.handle.Valid() {
		t.ctx.Functions().DeleteTexture(t.handle)
		t.handle = gl.Texture{}
	}
}

// cacheID returns the identity used by the state cache, 0 for nil.
func (t *Texture) cacheID() uint64 {
	if t == nil {
		return 0
	}
	return t.id
}

// pixelMatrix returns the texture coordinate transform that maps pixel
// coordinates to the allocated storage, inverting V when the storage is
// flipped.
func (t *Texture) pixelMatrix() [16]float32 {
	m := [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	m[0] = 1 / float32(t.actualSize.X)
	m[5] = 1 / float32(t.actualSize.Y)
	if t.flipped {
		m[5] = -m[5]
		m[13] = float32(t.size.Y) / float32(t.actualSize.Y)
	}
	return m
}

// npotFactor returns the ratio of logical to allocated size per axis.
func (t *Texture) npotFactor() (x, y float32) {
	if t.actualSize.X == 0 || t.actualSize.Y == 0 {
		return 1, 1
	}
	return float32(t.size.X) / float32(t.actualSize.X),
		float32(t.size.Y) / float32(t.actualSize.Y)
}

func nextPow2(v int) int {
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}

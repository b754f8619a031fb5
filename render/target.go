// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"errors"
	"image"
	"image/color"

	"github.com/gfx-go/render2d/f32"
	"github.com/gfx-go/render2d/gl"
)

// ErrQuadsUnsupported is reported when a quads draw is attempted on a
// context without quad primitives.
var ErrQuadsUnsupported = errors.New("render: quad primitives not supported on this context")

// vertexCacheSize is the cutoff below which vertices are pre-transformed on
// the CPU into a persistent cache, letting consecutive small draws share the
// identity modelview matrix and the same pointer setup.
const vertexCacheSize = 52

// statesCache is the target's mirror of the driver state it manages. enable
// reports whether the mirror is trusted; it is dropped whenever another
// target claims the context, and rebuilt lazily from the next draw.
type statesCache struct {
	enable    bool
	statesSet bool

	viewChanged   bool
	lastBlendMode BlendMode
	// lastTextureID is a texture identity, never a driver handle. Handles
	// get recycled; identities do not.
	lastTextureID uint64

	useVertexCache   bool
	texCoordsEnabled bool

	// Attribute plumbing of the constrained pipeline.
	program   gl.Program
	posAttrib gl.Attrib
	colAttrib gl.Attrib
	texAttrib gl.Attrib

	vertexCache [vertexCacheSize]Vertex
}

// Target renders 2D geometry into a surface through one GL context. All draw
// state (view, transform, blend mode, texture, shader) is diffed against a
// cache so repeated draws with similar states issue a minimal stream of
// driver calls.
//
// A Target is not safe for concurrent use. Multiple targets may share one
// context; the process-wide tracking detects the switches and resyncs.
type Target struct {
	ctx     Context
	surface Surface
	pl      pipeline
	id      uint64

	defaultView View
	view        View
	cache       statesCache
}

// NewTarget wraps surface, drawing through ctx. The initial view covers the
// surface one texel per pixel.
func NewTarget(ctx Context, surface Surface) *Target {
	w, h := surface.Size()
	view := NewView(f32.Rect(0, 0, float32(w), float32(h)))
	t := &Target{
		ctx:         ctx,
		surface:     surface,
		id:          nextID(),
		defaultView: view,
		view:        view,
	}
	if ctx.Caps().ES {
		t.pl = constrainedPL
	} else {
		t.pl = fixedPL
	}
	return t
}

// Size returns the surface size in pixels.
func (t *Target) Size() (width, height int) {
	return t.surface.Size()
}

// SetActive claims or releases the target's context for the calling thread
// and reports success. Drawing claims implicitly; SetActive exists for
// callers mixing their own GL code with this layer.
func (t *Target) SetActive(active bool) bool {
	if active {
		if !t.ctx.MakeCurrent(true) {
			return false
		}
		switch tryClaim(t.ctx.ActiveID(), t.id) {
		case claimedFirst:
			// First claim in this context: nothing of ours is set up yet.
			t.cache.statesSet = false
			t.cache.enable = false
		case claimedSwitch:
			// Another target drew here since we did; the mirror is stale.
			t.cache.enable = false
		case alreadyActive:
		}
		return true
	}
	releaseContext(t.ctx.ActiveID())
	t.cache.enable = false
	return t.ctx.MakeCurrent(false)
}

// active is the cheap pre-draw check; a true result skips the claim path.
func (t *Target) active() bool {
	return isActive(t.ctx.ActiveID(), t.id)
}

// Release forgets the target's context claim. Call it before destroying the
// target if the context lives on.
func (t *Target) Release() {
	contexts.Lock()
	defer contexts.Unlock()
	for ctxID, owner := range contexts.active {
		if owner == t.id {
			delete(contexts.active, ctxID)
		}
	}
}

// Clear fills the whole surface with one color, ignoring the view.
func (t *Target) Clear(c color.NRGBA) {
	if !t.active() && !t.SetActive(true) {
		return
	}
	f := t.ctx.Functions()
	// Unbind the texture: some drivers refuse to clear while a texture that
	// is also the draw surface is bound.
	f.BindTexture(gl.TEXTURE_2D, gl.Texture{})
	t.cache.lastTextureID = 0
	f.ClearColor(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
	f.Clear(gl.COLOR_BUFFER_BIT)
	glCheck(f, "glClear")
}

// SetView replaces the camera. It takes effect on the next draw.
func (t *Target) SetView(v View) {
	t.view = v
	t.cache.viewChanged = true
}

// View returns the current camera.
func (t *Target) View() View {
	return t.view
}

// DefaultView returns the view the target was created with.
func (t *Target) DefaultView() View {
	return t.defaultView
}

// Viewport returns the pixel rectangle of v applied to this target.
func (t *Target) Viewport(v View) image.Rectangle {
	w, h := t.surface.Size()
	width, height := float32(w), float32(h)
	vp := v.Viewport()
	left := int(0.5 + width*vp.Min.X)
	top := int(0.5 + height*vp.Min.Y)
	return image.Rect(left, top,
		left+int(0.5+width*vp.Dx()),
		top+int(0.5+height*vp.Dy()))
}

// MapPixelToCoords converts a surface pixel to scene coordinates under the
// current view.
func (t *Target) MapPixelToCoords(p image.Point) f32.Point {
	return t.MapPixelToCoordsView(p, t.view)
}

// MapPixelToCoordsView converts a surface pixel to scene coordinates under
// an explicit view.
func (t *Target) MapPixelToCoordsView(p image.Point, v View) f32.Point {
	vp := t.Viewport(v)
	normalized := f32.Pt(
		-1+2*(float32(p.X)-float32(vp.Min.X))/float32(vp.Dx()),
		1-2*(float32(p.Y)-float32(vp.Min.Y))/float32(vp.Dy()),
	)
	return v.InverseTransform().TransformPoint(normalized)
}

// MapCoordsToPixel converts scene coordinates to a surface pixel under the
// current view.
func (t *Target) MapCoordsToPixel(p f32.Point) image.Point {
	return t.MapCoordsToPixelView(p, t.view)
}

// MapCoordsToPixelView converts scene coordinates to a surface pixel under
// an explicit view.
func (t *Target) MapCoordsToPixelView(p f32.Point, v View) image.Point {
	normalized := v.Transform().TransformPoint(p)
	vp := t.Viewport(v)
	return image.Pt(
		int((normalized.X+1)/2*float32(vp.Dx()))+vp.Min.X,
		int((-normalized.Y+1)/2*float32(vp.Dy()))+vp.Min.Y,
	)
}

// DrawVertices draws a vertex array with the given states.
func (t *Target) DrawVertices(verts []Vertex, primitive PrimitiveType, states States) error {
	if len(verts) == 0 {
		return nil
	}
	if primitive == Quads && !t.pl.quadsSupported() {
		warnOnce("quads", "quad primitives not supported on this context, draw skipped")
		return ErrQuadsUnsupported
	}
	if !t.active() && !t.SetActive(true) {
		return errors.New("render: failed to activate target context")
	}

	// Small draws are pre-transformed on the CPU into the persistent cache;
	// consecutive small draws then share the identity modelview and pointer
	// setup.
	useVertexCache := len(verts) <= vertexCacheSize
	data := verts
	if useVertexCache {
		for i := range verts {
			v := &t.cache.vertexCache[i]
			v.Position = states.Transform.TransformPoint(verts[i].Position)
			v.Color = verts[i].Color
			v.TexCoords = verts[i].TexCoords
		}
		data = t.cache.vertexCache[:len(verts)]
	}

	if err := t.pl.setupDraw(t, useVertexCache, states); err != nil {
		return err
	}
	t.pl.setupPointers(t, states, useVertexCache, vertexBytes(data))
	t.drawPrimitives(primitive, 0, len(verts))
	t.pl.cleanupDraw(t, states)

	t.cache.useVertexCache = useVertexCache
	return nil
}

// DrawBuffer draws count vertices of a vertex buffer starting at first.
// first and count outside the buffer are clamped.
func (t *Target) DrawBuffer(b *VertexBuffer, first, count int, states States) error {
	if b == nil || !b.handle.Valid() || b.VertexCount() == 0 {
		return nil
	}
	if first >= b.VertexCount() {
		return nil
	}
	if first < 0 {
		first = 0
	}
	if count < 0 || first+count > b.VertexCount() {
		count = b.VertexCount() - first
	}
	if b.Primitive() == Quads && !t.pl.quadsSupported() {
		warnOnce("quads", "quad primitives not supported on this context, draw skipped")
		return ErrQuadsUnsupported
	}
	if !t.active() && !t.SetActive(true) {
		return errors.New("render: failed to activate target context")
	}

	if err := t.pl.setupDraw(t, false, states); err != nil {
		return err
	}
	f := t.ctx.Functions()
	f.BindBuffer(gl.ARRAY_BUFFER, b.handle)
	t.pl.setupBufferPointers(t, states)
	t.drawPrimitives(b.Primitive(), first, count)
	f.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{})
	t.pl.cleanupDraw(t, states)

	// Buffer pointers replaced the cache array pointers.
	t.cache.useVertexCache = false
	return nil
}

// PushGLStates saves the caller's driver state so foreign GL code wrapped in
// Push/Pop can run between draws without corrupting either side. The target
// state is reset after the save.
func (t *Target) PushGLStates() {
	if !t.active() && !t.SetActive(true) {
		return
	}
	// Surface any error the caller's own GL code left behind before we start
	// touching state.
	glCheck(t.ctx.Functions(), "caller GL state")
	t.pl.pushStates(t)
	t.ResetGLStates()
}

// PopGLStates restores the driver state saved by the matching PushGLStates.
func (t *Target) PopGLStates() {
	if !t.active() && !t.SetActive(true) {
		return
	}
	t.pl.popStates(t)
}

// ResetGLStates rebuilds the baseline driver state this layer depends on.
// Call it after running foreign GL code without Push/Pop protection.
func (t *Target) ResetGLStates() {
	if !t.active() && !t.SetActive(true) {
		return
	}
	t.pl.resetStates(t)
}

// applyCurrentView applies viewport and projection for the fixed pipeline.
func (t *Target) applyCurrentView() {
	t.applyCurrentViewport()
	f := t.ctx.Functions()
	f.MatrixMode(gl.PROJECTION)
	proj := t.view.Transform()
	f.LoadMatrixf(proj.Matrix())
	f.MatrixMode(gl.MODELVIEW)
}

// applyCurrentViewport applies the pixel viewport of the current view. GL
// viewports are measured from the bottom of the surface, this layer from the
// top, hence the flip.
func (t *Target) applyCurrentViewport() {
	vp := t.Viewport(t.view)
	_, h := t.surface.Size()
	top := h - vp.Max.Y
	t.ctx.Functions().Viewport(vp.Min.X, top, vp.Dx(), vp.Dy())
	t.cache.viewChanged = false
}

func (t *Target) applyBlendMode(mode BlendMode) {
	f := t.ctx.Functions()
	caps := t.ctx.Caps()
	if caps.BlendFuncSeparate {
		f.BlendFuncSeparate(
			factorToGL(mode.ColorSrcFactor), factorToGL(mode.ColorDstFactor),
			factorToGL(mode.AlphaSrcFactor), factorToGL(mode.AlphaDstFactor))
	} else {
		f.BlendFunc(factorToGL(mode.ColorSrcFactor), factorToGL(mode.ColorDstFactor))
	}
	eqRGB := equationToGL(mode.ColorEquation, caps)
	eqAlpha := equationToGL(mode.AlphaEquation, caps)
	switch {
	case caps.BlendEquationSeparate:
		f.BlendEquationSeparate(eqRGB, eqAlpha)
	case caps.BlendMinMax || caps.BlendSubtract:
		f.BlendEquation(eqRGB)
	default:
		// glBlendEquation does not exist without either extension; additive
		// is all such a context can do and equationToGL has already warned.
	}
	glCheck(f, "blend mode")
	t.cache.lastBlendMode = mode
}

func (t *Target) drawPrimitives(primitive PrimitiveType, first, count int) {
	f := t.ctx.Functions()
	f.DrawArrays(primitiveToGL(primitive), first, count)
	glCheck(f, "glDrawArrays")
}

func primitiveToGL(p PrimitiveType) gl.Enum {
	switch p {
	case Points:
		return gl.POINTS
	case Lines:
		return gl.LINES
	case LineStrip:
		return gl.LINE_STRIP
	case TriangleStrip:
		return gl.TRIANGLE_STRIP
	case TriangleFan:
		return gl.TRIANGLE_FAN
	case Quads:
		return gl.QUADS
	default:
		return gl.TRIANGLES
	}
}

func factorToGL(factor BlendFactor) gl.Enum {
	switch factor {
	case BlendZero:
		return gl.ZERO
	case BlendOne:
		return gl.ONE
	case BlendSrcColor:
		return gl.SRC_COLOR
	case BlendOneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case BlendDstColor:
		return gl.DST_COLOR
	case BlendOneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case BlendSrcAlpha:
		return gl.SRC_ALPHA
	case BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case BlendDstAlpha:
		return gl.DST_ALPHA
	case BlendOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	default:
		warnOnce("blend-factor", "unknown blend factor, falling back to one", "factor", uint8(factor))
		return gl.ONE
	}
}

// equationToGL maps a blend equation to its GL constant, degrading to plain
// addition when the context lacks the extension behind it. The degradation
// is warned about once per process.
func equationToGL(eq BlendEquation, caps gl.Caps) gl.Enum {
	switch eq {
	case BlendEqAdd:
		return gl.FUNC_ADD
	case BlendEqSubtract:
		if caps.BlendSubtract {
			return gl.FUNC_SUBTRACT
		}
	case BlendEqReverseSubtract:
		if caps.BlendSubtract {
			return gl.FUNC_REVERSE_SUBTRACT
		}
	case BlendEqMin:
		if caps.BlendMinMax {
			return gl.MIN
		}
	case BlendEqMax:
		if caps.BlendMinMax {
			return gl.MAX
		}
	}
	warnOnce("blend-equation",
		"blend equation not supported by this context, falling back to add")
	return gl.FUNC_ADD
}

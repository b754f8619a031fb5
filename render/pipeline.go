// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"github.com/gfx-go/render2d/gl"
)

// pipeline is the backend strategy of a target. The fixed variant drives the
// legacy matrix stack and client arrays of a desktop context; the constrained
// variant covers shader-only contexts, where matrices travel as uniforms on a
// program chosen per draw.
//
// Both variants share the target's state cache; setupDraw is expected to skip
// redundant driver calls when t.cache.enable reports the cache as valid.
type pipeline interface {
	resetStates(t *Target)
	pushStates(t *Target)
	popStates(t *Target)
	setupDraw(t *Target, useVertexCache bool, states States) error
	setupPointers(t *Target, states States, useVertexCache bool, data []byte)
	setupBufferPointers(t *Target, states States)
	cleanupDraw(t *Target, states States)
	quadsSupported() bool
}

var (
	fixedPL       fixedPipeline
	constrainedPL constrainedPipeline
)

// fixedPipeline drives a context with the legacy fixed-function state.
type fixedPipeline struct{}

func (fixedPipeline) quadsSupported() bool { return true }

func (fixedPipeline) resetStates(t *Target) {
	f := t.ctx.Functions()
	caps := t.ctx.Caps()

	f.Disable(gl.CULL_FACE)
	f.Disable(gl.LIGHTING)
	f.Disable(gl.DEPTH_TEST)
	f.Disable(gl.ALPHA_TEST)
	f.Enable(gl.TEXTURE_2D)
	f.Enable(gl.BLEND)
	f.MatrixMode(gl.MODELVIEW)
	f.EnableClientState(gl.VERTEX_ARRAY)
	f.EnableClientState(gl.COLOR_ARRAY)
	f.EnableClientState(gl.TEXTURE_COORD_ARRAY)
	if caps.FramebufferSRGB {
		if t.surface.SRGB() {
			f.Enable(gl.FRAMEBUFFER_SRGB)
		} else {
			f.Disable(gl.FRAMEBUFFER_SRGB)
		}
	}
	// Foreign GL code may have left another texture unit active; every bind
	// below assumes unit 0.
	if caps.Multitexture {
		f.ActiveTexture(gl.TEXTURE0)
		f.ClientActiveTexture(gl.TEXTURE0)
	}
	glCheck(f, "reset states")
	t.cache.statesSet = true

	t.applyBlendMode(BlendAlpha)
	fixedPL.applyTexture(t, nil)
	if caps.ShaderObjects {
		f.UseProgram(gl.Program{})
	}
	if caps.VertexBufferObject {
		f.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{})
	}

	t.cache.texCoordsEnabled = true
	t.cache.useVertexCache = false

	// Re-apply the view so the projection matrix matches the freshly reset
	// matrix stack.
	t.SetView(t.view)
	t.cache.enable = true
}

func (fixedPipeline) pushStates(t *Target) {
	f := t.ctx.Functions()
	f.PushClientAttrib(gl.CLIENT_ALL_ATTRIB_BITS)
	f.PushAttrib(gl.ALL_ATTRIB_BITS)
	f.MatrixMode(gl.MODELVIEW)
	f.PushMatrix()
	f.MatrixMode(gl.PROJECTION)
	f.PushMatrix()
	f.MatrixMode(gl.TEXTURE)
	f.PushMatrix()
	glCheck(f, "push states")
}

func (fixedPipeline) popStates(t *Target) {
	f := t.ctx.Functions()
	f.MatrixMode(gl.PROJECTION)
	f.PopMatrix()
	f.MatrixMode(gl.MODELVIEW)
	f.PopMatrix()
	f.MatrixMode(gl.TEXTURE)
	f.PopMatrix()
	f.PopClientAttrib()
	f.PopAttrib()
	glCheck(f, "pop states")
}

func (p fixedPipeline) setupDraw(t *Target, useVertexCache bool, states States) error {
	if !t.cache.enable && !t.cache.statesSet {
		t.ResetGLStates()
	}

	if !t.cache.enable || t.cache.viewChanged {
		t.applyCurrentView()
	}

	if useVertexCache {
		// Vertices were pre-transformed on the CPU; the modelview matrix must
		// be identity, but only needs loading when entering cache mode.
		if !t.cache.enable || !t.cache.useVertexCache {
			p.applyTransform(t, Identity)
		}
	} else {
		p.applyTransform(t, states.Transform)
	}

	if !t.cache.enable || states.BlendMode != t.cache.lastBlendMode {
		t.applyBlendMode(states.BlendMode)
	}

	if states.Texture != nil && states.Texture.attachment {
		// Attachment textures are render targets of their own; rebind
		// unconditionally so writes from other contexts become visible.
		p.applyTexture(t, states.Texture)
	} else if !t.cache.enable || states.Texture.cacheID() != t.cache.lastTextureID {
		p.applyTexture(t, states.Texture)
	}

	if states.Shader != nil {
		states.Shader.bind()
	}
	return nil
}

func (fixedPipeline) applyTransform(t *Target, tf Transform) {
	f := t.ctx.Functions()
	f.MatrixMode(gl.MODELVIEW)
	f.LoadMatrixf(tf.Matrix())
}

func (fixedPipeline) applyTexture(t *Target, tex *Texture) {
	f := t.ctx.Functions()
	f.MatrixMode(gl.TEXTURE)
	if tex != nil && tex.handle.Valid() {
		f.BindTexture(gl.TEXTURE_2D, tex.handle)
		m := tex.pixelMatrix()
		f.LoadMatrixf(&m)
	} else {
		f.BindTexture(gl.TEXTURE_2D, gl.Texture{})
		f.LoadIdentity()
	}
	f.MatrixMode(gl.MODELVIEW)
	t.cache.lastTextureID = tex.cacheID()
}

func (fixedPipeline) setupPointers(t *Target, states States, useVertexCache bool, data []byte) {
	f := t.ctx.Functions()

	texCoords := states.Texture != nil || states.Shader != nil
	if !t.cache.enable || texCoords != t.cache.texCoordsEnabled {
		if texCoords {
			f.EnableClientState(gl.TEXTURE_COORD_ARRAY)
		} else {
			f.DisableClientState(gl.TEXTURE_COORD_ARRAY)
		}
	}

	// In cache mode the pointers target the persistent cache array, so they
	// survive from draw to draw and only need re-specifying on entry.
	if !t.cache.enable || !useVertexCache || !t.cache.useVertexCache ||
		texCoords != t.cache.texCoordsEnabled {
		f.VertexPointer(2, gl.FLOAT, vertexStride, data[vertexPosOff:])
		f.ColorPointer(4, gl.UNSIGNED_BYTE, vertexStride, data[vertexColorOff:])
		if texCoords {
			f.TexCoordPointer(2, gl.FLOAT, vertexStride, data[vertexTexOff:])
		}
	}
	t.cache.texCoordsEnabled = texCoords
}

func (fixedPipeline) setupBufferPointers(t *Target, states States) {
	f := t.ctx.Functions()
	f.EnableClientState(gl.TEXTURE_COORD_ARRAY)
	f.VertexPointerOffset(2, gl.FLOAT, vertexStride, vertexPosOff)
	f.ColorPointerOffset(4, gl.UNSIGNED_BYTE, vertexStride, vertexColorOff)
	f.TexCoordPointerOffset(2, gl.FLOAT, vertexStride, vertexTexOff)
	t.cache.texCoordsEnabled = true
}

func (p fixedPipeline) cleanupDraw(t *Target, states States) {
	f := t.ctx.Functions()
	if states.Shader != nil {
		f.UseProgram(gl.Program{})
	}
	if states.Texture != nil && states.Texture.attachment {
		p.applyTexture(t, nil)
	}
	t.cache.enable = true
}

// constrainedPipeline drives a shader-only context. There is no matrix stack
// and no client arrays: every draw runs a program, either the caller's or a
// built-in default, with matrices as uniforms and vertex data as generic
// attributes.
type constrainedPipeline struct{}

func (constrainedPipeline) quadsSupported() bool { return false }

func (constrainedPipeline) resetStates(t *Target) {
	f := t.ctx.Functions()
	caps := t.ctx.Caps()

	f.Disable(gl.CULL_FACE)
	f.Disable(gl.DEPTH_TEST)
	f.Enable(gl.BLEND)
	if caps.FramebufferSRGB {
		if t.surface.SRGB() {
			f.Enable(gl.FRAMEBUFFER_SRGB)
		} else {
			f.Disable(gl.FRAMEBUFFER_SRGB)
		}
	}
	f.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{})
	f.ActiveTexture(gl.TEXTURE0)
	glCheck(f, "reset states")
	t.cache.statesSet = true

	t.applyBlendMode(BlendAlpha)
	f.BindTexture(gl.TEXTURE_2D, gl.Texture{})
	t.cache.lastTextureID = 0

	// Force a program rebind and attribute re-resolve on the next draw.
	t.cache.program = gl.Program{}
	t.cache.useVertexCache = false

	t.SetView(t.view)
	t.cache.enable = true
}

// pushStates has no attribute stack to push to; popStates instead schedules a
// full state reset so the next draw rebuilds everything this layer needs.
func (constrainedPipeline) pushStates(t *Target) {}

func (constrainedPipeline) popStates(t *Target) {
	t.cache.enable = false
	t.cache.statesSet = false
}

func (p constrainedPipeline) setupDraw(t *Target, useVertexCache bool, states States) error {
	if !t.cache.enable && !t.cache.statesSet {
		t.ResetGLStates()
	}
	f := t.ctx.Functions()

	sh := states.Shader
	if sh == nil {
		set, err := defaultShadersFor(t.ctx)
		if err != nil {
			return err
		}
		if states.Texture != nil {
			sh = set.textured
		} else {
			sh = set.plain
		}
	}
	sh.bind()
	if sh.prog != t.cache.program {
		t.cache.program = sh.prog
		t.cache.posAttrib = f.GetAttribLocation(sh.prog, "position")
		t.cache.colAttrib = f.GetAttribLocation(sh.prog, "color")
		t.cache.texAttrib = f.GetAttribLocation(sh.prog, "texCoord")
	}

	if !t.cache.enable || t.cache.viewChanged {
		t.applyCurrentViewport()
	}
	// Matrix uniforms live per program, so they are uploaded every draw
	// rather than diffed; the uploads are small next to a program rebind.
	proj := t.view.Transform()
	if loc := sh.uniform("u_projection"); loc.Valid() {
		f.UniformMatrix4fv(loc, proj.Matrix()[:])
	}
	mv := states.Transform
	if useVertexCache {
		mv = Identity
	}
	if loc := sh.uniform("u_modelview"); loc.Valid() {
		f.UniformMatrix4fv(loc, mv.Matrix()[:])
	}

	if !t.cache.enable || states.BlendMode != t.cache.lastBlendMode {
		t.applyBlendMode(states.BlendMode)
	}

	tex := states.Texture
	if tex != nil {
		if tex.attachment || !t.cache.enable || tex.cacheID() != t.cache.lastTextureID {
			f.ActiveTexture(gl.TEXTURE0)
			f.BindTexture(gl.TEXTURE_2D, tex.handle)
			t.cache.lastTextureID = tex.cacheID()
		}
		if loc := sh.uniform("u_texMatrix"); loc.Valid() {
			m := tex.pixelMatrix()
			f.UniformMatrix4fv(loc, m[:])
		}
		if loc := sh.uniform("u_npotFactor"); loc.Valid() {
			fx, fy := tex.npotFactor()
			f.Uniform2f(loc, fx, fy)
		}
	} else if !t.cache.enable || t.cache.lastTextureID != 0 {
		f.BindTexture(gl.TEXTURE_2D, gl.Texture{})
		t.cache.lastTextureID = 0
	}
	return nil
}

func (p constrainedPipeline) setupPointers(t *Target, states States, useVertexCache bool, data []byte) {
	f := t.ctx.Functions()
	if a := t.cache.posAttrib; a.Valid() {
		f.EnableVertexAttribArray(a)
		f.VertexAttribPointer(a, 2, gl.FLOAT, false, vertexStride, data[vertexPosOff:])
	}
	if a := t.cache.colAttrib; a.Valid() {
		f.EnableVertexAttribArray(a)
		f.VertexAttribPointer(a, 4, gl.UNSIGNED_BYTE, true, vertexStride, data[vertexColorOff:])
	}
	if a := t.cache.texAttrib; a.Valid() {
		f.EnableVertexAttribArray(a)
		f.VertexAttribPointer(a, 2, gl.FLOAT, false, vertexStride, data[vertexTexOff:])
	}
}

func (constrainedPipeline) setupBufferPointers(t *Target, states States) {
	f := t.ctx.Functions()
	if a := t.cache.posAttrib; a.Valid() {
		f.EnableVertexAttribArray(a)
		f.VertexAttribPointerOffset(a, 2, gl.FLOAT, false, vertexStride, vertexPosOff)
	}
	if a := t.cache.colAttrib; a.Valid() {
		f.EnableVertexAttribArray(a)
		f.VertexAttribPointerOffset(a, 4, gl.UNSIGNED_BYTE, true, vertexStride, vertexColorOff)
	}
	if a := t.cache.texAttrib; a.Valid() {
		f.EnableVertexAttribArray(a)
		f.VertexAttribPointerOffset(a, 2, gl.FLOAT, false, vertexStride, vertexTexOff)
	}
}

func (constrainedPipeline) cleanupDraw(t *Target, states States) {
	f := t.ctx.Functions()
	if states.Texture != nil && states.Texture.attachment {
		f.BindTexture(gl.TEXTURE_2D, gl.Texture{})
		t.cache.lastTextureID = 0
	}
	t.cache.enable = true
}

// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"fmt"
	"sync/atomic"

	"github.com/gfx-go/render2d/gl"
)

// fakeFuncs is a recording gl.Functions. Every call bumps a per-name counter
// so tests can assert how many driver calls a code path issued. Handles are
// allocated from one counter; deleted texture handles go on a free list and
// are reused first, mimicking driver handle recycling.
type fakeFuncs struct {
	calls          map[string]int
	uniformQueries map[string]int

	nextHandle   uint
	freeTextures []uint

	currentProgram uint
	boundTexture   uint
	boundBuffer    uint

	compileFail bool
	linkFail    bool
	infoLog     string

	missingUniforms map[string]bool
	uniformLocs     map[string]int
	attribLocs      map[string]int

	lastDrawMode  gl.Enum
	lastDrawFirst int
	lastDrawCount int
	lastMatrix    [16]float32
	lastViewport  [4]int
}

func newFakeFuncs() *fakeFuncs {
	return &fakeFuncs{
		calls:           make(map[string]int),
		uniformQueries:  make(map[string]int),
		missingUniforms: make(map[string]bool),
		uniformLocs:     make(map[string]int),
		attribLocs:      map[string]int{"position": 0, "color": 1, "texCoord": 2},
	}
}

func (f *fakeFuncs) count(name string) { f.calls[name]++ }

func (f *fakeFuncs) Enable(cap gl.Enum)        { f.count("Enable") }
func (f *fakeFuncs) Disable(cap gl.Enum)       { f.count("Disable") }
func (f *fakeFuncs) GetError() gl.Enum         { f.count("GetError"); return gl.NO_ERROR }
func (f *fakeFuncs) Flush()                    { f.count("Flush") }

func (f *fakeFuncs) GetInteger(pname gl.Enum) int {
	f.count("GetInteger")
	switch pname {
	case gl.CURRENT_PROGRAM:
		return int(f.currentProgram)
	case gl.MAX_TEXTURE_SIZE:
		return 4096
	case gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS:
		return 32
	}
	return 0
}

func (f *fakeFuncs) GetString(pname gl.Enum) string {
	f.count("GetString")
	if pname == gl.VERSION {
		return "2.1"
	}
	return ""
}

func (f *fakeFuncs) Viewport(x, y, width, height int) {
	f.count("Viewport")
	f.lastViewport = [4]int{x, y, width, height}
}
func (f *fakeFuncs) ClearColor(red, green, blue, alpha float32)   { f.count("ClearColor") }
func (f *fakeFuncs) Clear(mask gl.Enum)                           { f.count("Clear") }

func (f *fakeFuncs) BlendFunc(sfactor, dfactor gl.Enum) { f.count("BlendFunc") }
func (f *fakeFuncs) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha gl.Enum) {
	f.count("BlendFuncSeparate")
}
func (f *fakeFuncs) BlendEquation(mode gl.Enum) { f.count("BlendEquation") }
func (f *fakeFuncs) BlendEquationSeparate(modeRGB, modeAlpha gl.Enum) {
	f.count("BlendEquationSeparate")
}

func (f *fakeFuncs) ActiveTexture(unit gl.Enum)       { f.count("ActiveTexture") }
func (f *fakeFuncs) ClientActiveTexture(unit gl.Enum) { f.count("ClientActiveTexture") }

func (f *fakeFuncs) CreateTexture() gl.Texture {
	f.count("CreateTexture")
	if n := len(f.freeTextures); n > 0 {
		h := f.freeTextures[n-1]
		f.freeTextures = f.freeTextures[:n-1]
		return gl.Texture{V: h}
	}
	f.nextHandle++
	return gl.Texture{V: f.nextHandle}
}

func (f *fakeFuncs) DeleteTexture(t gl.Texture) {
	f.count("DeleteTexture")
	f.freeTextures = append(f.freeTextures, t.V)
}

func (f *fakeFuncs) BindTexture(target gl.Enum, t gl.Texture) {
	f.count("BindTexture")
	f.boundTexture = t.V
}

func (f *fakeFuncs) TexParameteri(target, pname gl.Enum, param int) { f.count("TexParameteri") }
func (f *fakeFuncs) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum) {
	f.count("TexImage2D")
}
func (f *fakeFuncs) TexSubImage2D(target gl.Enum, level, x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.count("TexSubImage2D")
}

func (f *fakeFuncs) MatrixMode(mode gl.Enum)         { f.count("MatrixMode") }
func (f *fakeFuncs) LoadIdentity()                   { f.count("LoadIdentity") }
func (f *fakeFuncs) LoadMatrixf(m *[16]float32) {
	f.count("LoadMatrixf")
	f.lastMatrix = *m
}
func (f *fakeFuncs) PushMatrix()                     { f.count("PushMatrix") }
func (f *fakeFuncs) PopMatrix()                      { f.count("PopMatrix") }
func (f *fakeFuncs) PushAttrib(mask gl.Enum)         { f.count("PushAttrib") }
func (f *fakeFuncs) PopAttrib()                      { f.count("PopAttrib") }
func (f *fakeFuncs) PushClientAttrib(mask gl.Enum)   { f.count("PushClientAttrib") }
func (f *fakeFuncs) PopClientAttrib()                { f.count("PopClientAttrib") }

func (f *fakeFuncs) EnableClientState(array gl.Enum)  { f.count("EnableClientState") }
func (f *fakeFuncs) DisableClientState(array gl.Enum) { f.count("DisableClientState") }
func (f *fakeFuncs) VertexPointer(size int, ty gl.Enum, stride int, data []byte) {
	f.count("VertexPointer")
}
func (f *fakeFuncs) VertexPointerOffset(size int, ty gl.Enum, stride, offset int) {
	f.count("VertexPointerOffset")
}
func (f *fakeFuncs) ColorPointer(size int, ty gl.Enum, stride int, data []byte) {
	f.count("ColorPointer")
}
func (f *fakeFuncs) ColorPointerOffset(size int, ty gl.Enum, stride, offset int) {
	f.count("ColorPointerOffset")
}
func (f *fakeFuncs) TexCoordPointer(size int, ty gl.Enum, stride int, data []byte) {
	f.count("TexCoordPointer")
}
func (f *fakeFuncs) TexCoordPointerOffset(size int, ty gl.Enum, stride, offset int) {
	f.count("TexCoordPointerOffset")
}

func (f *fakeFuncs) EnableVertexAttribArray(a gl.Attrib)  { f.count("EnableVertexAttribArray") }
func (f *fakeFuncs) DisableVertexAttribArray(a gl.Attrib) { f.count("DisableVertexAttribArray") }
func (f *fakeFuncs) VertexAttribPointer(a gl.Attrib, size int, ty gl.Enum, normalized bool, stride int, data []byte) {
	f.count("VertexAttribPointer")
}
func (f *fakeFuncs) VertexAttribPointerOffset(a gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	f.count("VertexAttribPointerOffset")
}

func (f *fakeFuncs) GetAttribLocation(p gl.Program, name string) gl.Attrib {
	f.count("GetAttribLocation")
	if loc, ok := f.attribLocs[name]; ok {
		return gl.Attrib{V: loc}
	}
	return gl.NoAttrib
}

func (f *fakeFuncs) CreateBuffer() gl.Buffer {
	f.count("CreateBuffer")
	f.nextHandle++
	return gl.Buffer{V: f.nextHandle}
}
func (f *fakeFuncs) DeleteBuffer(b gl.Buffer) { f.count("DeleteBuffer") }
func (f *fakeFuncs) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.count("BindBuffer")
	f.boundBuffer = b.V
}
func (f *fakeFuncs) BufferData(target gl.Enum, size int, usage gl.Enum) { f.count("BufferData") }
func (f *fakeFuncs) BufferSubData(target gl.Enum, offset int, data []byte) {
	f.count("BufferSubData")
}

func (f *fakeFuncs) CreateProgram() gl.Program {
	f.count("CreateProgram")
	f.nextHandle++
	return gl.Program{V: f.nextHandle}
}
func (f *fakeFuncs) DeleteProgram(p gl.Program)           { f.count("DeleteProgram") }
func (f *fakeFuncs) AttachShader(p gl.Program, s gl.Shader) { f.count("AttachShader") }
func (f *fakeFuncs) LinkProgram(p gl.Program)             { f.count("LinkProgram") }

func (f *fakeFuncs) GetProgrami(p gl.Program, pname gl.Enum) int {
	f.count("GetProgrami")
	if pname == gl.LINK_STATUS && f.linkFail {
		return gl.FALSE
	}
	return gl.TRUE
}

func (f *fakeFuncs) GetProgramInfoLog(p gl.Program) string {
	f.count("GetProgramInfoLog")
	return f.infoLog
}

func (f *fakeFuncs) UseProgram(p gl.Program) {
	f.count("UseProgram")
	f.currentProgram = p.V
}

func (f *fakeFuncs) CreateShader(ty gl.Enum) gl.Shader {
	f.count("CreateShader")
	f.nextHandle++
	return gl.Shader{V: f.nextHandle}
}
func (f *fakeFuncs) ShaderSource(s gl.Shader, src string) { f.count("ShaderSource") }
func (f *fakeFuncs) CompileShader(s gl.Shader)            { f.count("CompileShader") }

func (f *fakeFuncs) GetShaderi(s gl.Shader, pname gl.Enum) int {
	f.count("GetShaderi")
	if pname == gl.COMPILE_STATUS && f.compileFail {
		return gl.FALSE
	}
	return gl.TRUE
}

func (f *fakeFuncs) GetShaderInfoLog(s gl.Shader) string {
	f.count("GetShaderInfoLog")
	return f.infoLog
}

func (f *fakeFuncs) DeleteShader(s gl.Shader) { f.count("DeleteShader") }

func (f *fakeFuncs) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	f.count("GetUniformLocation")
	f.uniformQueries[name]++
	if f.missingUniforms[name] {
		return gl.NoUniform
	}
	key := fmt.Sprintf("%d:%s", p.V, name)
	loc, ok := f.uniformLocs[key]
	if !ok {
		loc = len(f.uniformLocs)
		f.uniformLocs[key] = loc
	}
	return gl.Uniform{V: loc}
}

func (f *fakeFuncs) Uniform1f(dst gl.Uniform, v float32)                 { f.count("Uniform1f") }
func (f *fakeFuncs) Uniform2f(dst gl.Uniform, v0, v1 float32)            { f.count("Uniform2f") }
func (f *fakeFuncs) Uniform3f(dst gl.Uniform, v0, v1, v2 float32)        { f.count("Uniform3f") }
func (f *fakeFuncs) Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32)    { f.count("Uniform4f") }
func (f *fakeFuncs) Uniform1i(dst gl.Uniform, v int)                     { f.count("Uniform1i") }
func (f *fakeFuncs) Uniform2i(dst gl.Uniform, v0, v1 int)                { f.count("Uniform2i") }
func (f *fakeFuncs) Uniform3i(dst gl.Uniform, v0, v1, v2 int)            { f.count("Uniform3i") }
func (f *fakeFuncs) Uniform4i(dst gl.Uniform, v0, v1, v2, v3 int)        { f.count("Uniform4i") }
func (f *fakeFuncs) Uniform1fv(dst gl.Uniform, v []float32)              { f.count("Uniform1fv") }
func (f *fakeFuncs) Uniform2fv(dst gl.Uniform, v []float32)              { f.count("Uniform2fv") }
func (f *fakeFuncs) Uniform3fv(dst gl.Uniform, v []float32)              { f.count("Uniform3fv") }
func (f *fakeFuncs) Uniform4fv(dst gl.Uniform, v []float32)              { f.count("Uniform4fv") }
func (f *fakeFuncs) UniformMatrix3fv(dst gl.Uniform, v []float32)        { f.count("UniformMatrix3fv") }
func (f *fakeFuncs) UniformMatrix4fv(dst gl.Uniform, v []float32)        { f.count("UniformMatrix4fv") }

func (f *fakeFuncs) DrawArrays(mode gl.Enum, first, count int) {
	f.count("DrawArrays")
	f.lastDrawMode, f.lastDrawFirst, f.lastDrawCount = mode, first, count
}

var fakeContextIDs atomic.Uint64

// fakeContext hands out a fresh context identity per instance; targets
// sharing one fakeContext share one context as far as the claim tracking is
// concerned.
type fakeContext struct {
	id    uint64
	funcs *fakeFuncs
	caps  gl.Caps
}

func newFakeContext(funcs *fakeFuncs, caps gl.Caps) *fakeContext {
	return &fakeContext{
		id:    fakeContextIDs.Add(1),
		funcs: funcs,
		caps:  caps,
	}
}

func (c *fakeContext) ActiveID() uint64            { return c.id }
func (c *fakeContext) Functions() gl.Functions     { return c.funcs }
func (c *fakeContext) Caps() gl.Caps               { return c.caps }
func (c *fakeContext) MakeCurrent(active bool) bool { return true }

func desktopCaps() gl.Caps {
	return gl.Caps{
		Version:               [2]int{2, 1},
		Multitexture:          true,
		ShaderObjects:         true,
		BlendFuncSeparate:     true,
		BlendEquationSeparate: true,
		BlendMinMax:           true,
		BlendSubtract:         true,
		VertexBufferObject:    true,
		TextureNPOT:           true,
		MaxTextureSize:        4096,
		MaxTextureUnits:       32,
	}
}

func esCaps() gl.Caps {
	c := desktopCaps()
	c.Version = [2]int{3, 0}
	c.ES = true
	return c
}

type fakeSurface struct {
	w, h int
	srgb bool
}

func (s fakeSurface) Size() (int, int) { return s.w, s.h }
func (s fakeSurface) SRGB() bool       { return s.srgb }

// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"errors"
	"fmt"

	"gioui.org/shader"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/gfx-go/render2d/gl"
)

// Shader wraps a linked program together with its uniform plumbing: a name to
// location cache, the texture table bound before each draw and the special
// current-texture slot resolved at draw time.
type Shader struct {
	ctx  Context
	prog gl.Program
	id   uint64

	// currentTexture is the sampler that receives whatever texture the draw
	// states carry, resolved when the shader is bound rather than when the
	// uniform is set.
	currentTexture gl.Uniform
	// textures maps sampler locations to the textures bound before a draw.
	textures map[int]*Texture
	// uniforms caches locations by name, misses included, so a mistyped
	// uniform name costs one driver query and one warning, not one per frame.
	uniforms map[string]gl.Uniform
}

// ShadersAvailable reports whether the context can run shader programs.
func ShadersAvailable(ctx Context) bool {
	return ctx.Caps().ShaderObjects
}

// GeometryAvailable reports whether the context can run geometry shaders.
func GeometryAvailable(ctx Context) bool {
	return ctx.Caps().GeometryShader
}

// NewShader compiles and links the given sources. geomSrc may be empty; the
// other two stages are required.
func NewShader(ctx Context, vertSrc, geomSrc, fragSrc string) (*Shader, error) {
	if vertSrc == "" || fragSrc == "" {
		return nil, errors.New("render: vertex and fragment sources are required")
	}
	if !ShadersAvailable(ctx) {
		return nil, errors.New("render: shaders not available on this context")
	}
	prog, err := gl.CreateProgram(ctx.Functions(), ctx.Caps(), vertSrc, geomSrc, fragSrc)
	if err != nil {
		Logger().Error("shader program creation failed", "err", err)
		return nil, err
	}
	return &Shader{
		ctx:            ctx,
		prog:           prog,
		id:             nextID(),
		currentTexture: gl.NoUniform,
		textures:       make(map[int]*Texture),
		uniforms:       make(map[string]gl.Uniform),
	}, nil
}

// NewShaderFromSources builds a shader from pre-translated sources, picking
// the GLSL dialect matching the context.
func NewShaderFromSources(ctx Context, vert, frag shader.Sources) (*Shader, error) {
	if ctx.Caps().ES {
		if vert.GLSL100ES == "" || frag.GLSL100ES == "" {
			return nil, fmt.Errorf("render: sources %q, %q carry no GLSL 100 ES dialect", vert.Name, frag.Name)
		}
		return NewShader(ctx, vert.GLSL100ES, "", frag.GLSL100ES)
	}
	if vert.GLSL150 == "" || frag.GLSL150 == "" {
		return nil, fmt.Errorf("render: sources %q, %q carry no GLSL 150 dialect", vert.Name, frag.Name)
	}
	return NewShader(ctx, vert.GLSL150, "", frag.GLSL150)
}

// uniformBinder saves the program current at construction, switches to the
// shader's program and restores the saved one on restore. Setting a uniform
// mid-frame must not disturb whatever program the draw path has bound.
type uniformBinder struct {
	f     gl.Functions
	saved gl.Program
	prog  gl.Program
}

func (s *Shader) binder() uniformBinder {
	f := s.ctx.Functions()
	b := uniformBinder{
		f:     f,
		saved: gl.Program{V: uint(f.GetInteger(gl.CURRENT_PROGRAM))},
		prog:  s.prog,
	}
	if b.saved != b.prog {
		f.UseProgram(b.prog)
	}
	return b
}

func (b uniformBinder) restore() {
	if b.saved != b.prog {
		b.f.UseProgram(b.saved)
	}
}

// uniform resolves name to a location through the cache. Unknown names are
// cached as misses and warned about once.
func (s *Shader) uniform(name string) gl.Uniform {
	if loc, ok := s.uniforms[name]; ok {
		return loc
	}
	loc := s.ctx.Functions().GetUniformLocation(s.prog, name)
	s.uniforms[name] = loc
	if !loc.Valid() {
		warnOnce("uniform:"+name, "uniform not found in shader", "name", name)
	}
	return loc
}

// SetFloat sets a float uniform.
func (s *Shader) SetFloat(name string, v float32) {
	if loc := s.uniform(name); loc.Valid() {
		b := s.binder()
		b.f.Uniform1f(loc, v)
		b.restore()
	}
}

// SetVec2 sets a vec2 uniform.
func (s *Shader) SetVec2(name string, x, y float32) {
	if loc := s.uniform(name); loc.Valid() {
		b := s.binder()
		b.f.Uniform2f(loc, x, y)
		b.restore()
	}
}

// SetVec3 sets a vec3 uniform.
func (s *Shader) SetVec3(name string, x, y, z float32) {
	if loc := s.uniform(name); loc.Valid() {
		b := s.binder()
		b.f.Uniform3f(loc, x, y, z)
		b.restore()
	}
}

// SetVec4 sets a vec4 uniform.
func (s *Shader) SetVec4(name string, x, y, z, w float32) {
	if loc := s.uniform(name); loc.Valid() {
		b := s.binder()
		b.f.Uniform4f(loc, x, y, z, w)
		b.restore()
	}
}

// SetInt sets an int uniform.
func (s *Shader) SetInt(name string, v int) {
	if loc := s.uniform(name); loc.Valid() {
		b := s.binder()
		b.f.Uniform1i(loc, v)
		b.restore()
	}
}

// SetBool sets a bool uniform.
func (s *Shader) SetBool(name string, v bool) {
	n := 0
	if v {
		n = 1
	}
	s.SetInt(name, n)
}

// SetMat3 sets a mat3 uniform from a column-major 3x3 matrix.
func (s *Shader) SetMat3(name string, m [9]float32) {
	if loc := s.uniform(name); loc.Valid() {
		b := s.binder()
		b.f.UniformMatrix3fv(loc, m[:])
		b.restore()
	}
}

// SetMat4 sets a mat4 uniform from a column-major 4x4 matrix.
func (s *Shader) SetMat4(name string, m [16]float32) {
	if loc := s.uniform(name); loc.Valid() {
		b := s.binder()
		b.f.UniformMatrix4fv(loc, m[:])
		b.restore()
	}
}

// SetTransform sets a mat4 uniform from a transform.
func (s *Shader) SetTransform(name string, t Transform) {
	s.SetMat4(name, *t.Matrix())
}

// SetFloatArray sets a float[] uniform.
func (s *Shader) SetFloatArray(name string, v []float32) {
	if loc := s.uniform(name); loc.Valid() {
		b := s.binder()
		b.f.Uniform1fv(loc, v)
		b.restore()
	}
}

// SetVec2Array sets a vec2[] uniform from interleaved components.
func (s *Shader) SetVec2Array(name string, v []float32) {
	if loc := s.uniform(name); loc.Valid() {
		b := s.binder()
		b.f.Uniform2fv(loc, v)
		b.restore()
	}
}

// SetVec4Array sets a vec4[] uniform from interleaved components.
func (s *Shader) SetVec4Array(name string, v []float32) {
	if loc := s.uniform(name); loc.Valid() {
		b := s.binder()
		b.f.Uniform4fv(loc, v)
		b.restore()
	}
}

// SetTexture associates t with the named sampler. The binding happens when
// the shader is bound for a draw; setting the same name again replaces the
// previous texture. The number of distinct samplers is limited by the
// context's combined texture unit count; one unit stays reserved for the
// current texture.
func (s *Shader) SetTexture(name string, t *Texture) error {
	loc := s.uniform(name)
	if !loc.Valid() {
		return fmt.Errorf("render: sampler %q not found in shader", name)
	}
	if _, exists := s.textures[loc.V]; !exists {
		if len(s.textures)+1 >= s.ctx.Caps().MaxTextureUnits {
			return fmt.Errorf("render: all %d texture units are in use", s.ctx.Caps().MaxTextureUnits)
		}
	}
	s.textures[loc.V] = t
	return nil
}

// SetCurrentTexture makes the named sampler receive the texture carried by
// the draw states. It resolves at draw time, so one shader works with any
// texture.
func (s *Shader) SetCurrentTexture(name string) error {
	loc := s.uniform(name)
	if !loc.Valid() {
		return fmt.Errorf("render: sampler %q not found in shader", name)
	}
	s.currentTexture = loc
	return nil
}

// bind makes the shader's program current and binds its texture table.
// Sampler locations are walked in sorted order so unit assignment is stable
// from draw to draw. Unit 0 is left to the current texture.
func (s *Shader) bind() {
	f := s.ctx.Functions()
	f.UseProgram(s.prog)
	locs := maps.Keys(s.textures)
	slices.Sort(locs)
	for i, loc := range locs {
		unit := i + 1
		f.Uniform1i(gl.Uniform{V: loc}, unit)
		f.ActiveTexture(gl.TEXTURE0 + gl.Enum(unit))
		f.BindTexture(gl.TEXTURE_2D, s.textures[loc].handle)
	}
	f.ActiveTexture(gl.TEXTURE0)
	if s.currentTexture.Valid() {
		f.Uniform1i(s.currentTexture, 0)
	}
}

// hasCurrentTexture reports whether a current-texture sampler was declared.
func (s *Shader) hasCurrentTexture() bool {
	return s.currentTexture.Valid()
}

// NativeHandle exposes the program handle for interop with external GL code.
func (s *Shader) NativeHandle() gl.Program {
	return s.prog
}

// Release deletes the program.
func (s *Shader) Release() {
	if s.prog.Valid() {
		s.ctx.Functions().DeleteProgram(s.prog)
		s.prog = gl.Program{}
	}
	s.textures = nil
	s.uniforms = nil
	s.currentTexture = gl.NoUniform
}

// cacheID returns the identity used by the state cache, 0 for nil.
func (s *Shader) cacheID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

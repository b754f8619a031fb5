// SPDX-License-Identifier: Unlicense OR MIT

package gl

// Functions is the raw entry point surface of one GL context. The
// window/context layer resolves the function pointers once at process start
// and exposes them through this interface; the render package issues every
// call through it so that state transitions can be observed and tested.
//
// Pointer-style calls come in two shapes: the []byte form sources vertex data
// from client memory, the offset form from the currently bound array buffer.
type Functions interface {
	// State toggles and queries.
	Enable(cap Enum)
	Disable(cap Enum)
	GetError() Enum
	GetInteger(pname Enum) int
	GetString(pname Enum) string
	Flush()

	// Framebuffer output.
	Viewport(x, y, width, height int)
	ClearColor(red, green, blue, alpha float32)
	Clear(mask Enum)

	// Blending.
	BlendFunc(sfactor, dfactor Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum)
	BlendEquation(mode Enum)
	BlendEquationSeparate(modeRGB, modeAlpha Enum)

	// Textures.
	ActiveTexture(unit Enum)
	ClientActiveTexture(unit Enum)
	CreateTexture() Texture
	DeleteTexture(t Texture)
	BindTexture(target Enum, t Texture)
	TexParameteri(target, pname Enum, param int)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum)
	TexSubImage2D(target Enum, level, x, y, width, height int, format, ty Enum, data []byte)

	// Legacy matrix stack (fixed pipeline only).
	MatrixMode(mode Enum)
	LoadIdentity()
	LoadMatrixf(m *[16]float32)
	PushMatrix()
	PopMatrix()
	PushAttrib(mask Enum)
	PopAttrib()
	PushClientAttrib(mask Enum)
	PopClientAttrib()

	// Client vertex arrays (fixed pipeline only).
	EnableClientState(array Enum)
	DisableClientState(array Enum)
	VertexPointer(size int, ty Enum, stride int, data []byte)
	VertexPointerOffset(size int, ty Enum, stride, offset int)
	ColorPointer(size int, ty Enum, stride int, data []byte)
	ColorPointerOffset(size int, ty Enum, stride, offset int)
	TexCoordPointer(size int, ty Enum, stride int, data []byte)
	TexCoordPointerOffset(size int, ty Enum, stride, offset int)

	// Generic vertex attributes (constrained pipeline only).
	EnableVertexAttribArray(a Attrib)
	DisableVertexAttribArray(a Attrib)
	VertexAttribPointer(a Attrib, size int, ty Enum, normalized bool, stride int, data []byte)
	VertexAttribPointerOffset(a Attrib, size int, ty Enum, normalized bool, stride, offset int)
	GetAttribLocation(p Program, name string) Attrib

	// Buffers.
	CreateBuffer() Buffer
	DeleteBuffer(b Buffer)
	BindBuffer(target Enum, b Buffer)
	BufferData(target Enum, size int, usage Enum)
	BufferSubData(target Enum, offset int, data []byte)

	// Programs and shaders.
	CreateProgram() Program
	DeleteProgram(p Program)
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	UseProgram(p Program)
	CreateShader(ty Enum) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	// Uniforms.
	GetUniformLocation(p Program, name string) Uniform
	Uniform1f(dst Uniform, v float32)
	Uniform2f(dst Uniform, v0, v1 float32)
	Uniform3f(dst Uniform, v0, v1, v2 float32)
	Uniform4f(dst Uniform, v0, v1, v2, v3 float32)
	Uniform1i(dst Uniform, v int)
	Uniform2i(dst Uniform, v0, v1 int)
	Uniform3i(dst Uniform, v0, v1, v2 int)
	Uniform4i(dst Uniform, v0, v1, v2, v3 int)
	Uniform1fv(dst Uniform, v []float32)
	Uniform2fv(dst Uniform, v []float32)
	Uniform3fv(dst Uniform, v []float32)
	Uniform4fv(dst Uniform, v []float32)
	UniformMatrix3fv(dst Uniform, v []float32)
	UniformMatrix4fv(dst Uniform, v []float32)

	// Draws.
	DrawArrays(mode Enum, first, count int)
}

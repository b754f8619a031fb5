// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGeometryUnsupported is reported when a geometry stage is requested on a
// context without geometry shader support.
var ErrGeometryUnsupported = errors.New("gl: geometry shaders not supported by this context")

// CreateProgram compiles the non-empty stages, links them and returns the
// program handle. A stage compile failure or a link failure aborts the whole
// operation, deletes every partially created object and returns the driver's
// diagnostic log. Stage objects are deleted right after a successful attach;
// they are no longer needed once the program links.
//
// After a successful link a full Flush is issued so the program is visible in
// every context sharing the same resource namespace.
func CreateProgram(f Functions, caps Caps, vertSrc, geomSrc, fragSrc string) (Program, error) {
	if geomSrc != "" && !caps.GeometryShader {
		return Program{}, ErrGeometryUnsupported
	}
	prog := f.CreateProgram()
	if !prog.Valid() {
		return Program{}, errors.New("gl: glCreateProgram failed")
	}
	stages := []struct {
		typ  Enum
		name string
		src  string
	}{
		{VERTEX_SHADER, "vertex", vertSrc},
		{GEOMETRY_SHADER, "geometry", geomSrc},
		{FRAGMENT_SHADER, "fragment", fragSrc},
	}
	for _, stage := range stages {
		if stage.src == "" {
			continue
		}
		sh, err := createShader(f, stage.typ, stage.src)
		if err != nil {
			f.DeleteProgram(prog)
			return Program{}, fmt.Errorf("%s shader: %w", stage.name, err)
		}
		f.AttachShader(prog, sh)
		f.DeleteShader(sh)
	}
	f.LinkProgram(prog)
	if f.GetProgrami(prog, LINK_STATUS) == FALSE {
		log := f.GetProgramInfoLog(prog)
		f.DeleteProgram(prog)
		return Program{}, fmt.Errorf("gl: program link failed: %s", strings.TrimSpace(log))
	}
	f.Flush()
	return prog, nil
}

func createShader(f Functions, typ Enum, src string) (Shader, error) {
	sh := f.CreateShader(typ)
	if !sh.Valid() {
		return Shader{}, errors.New("gl: glCreateShader failed")
	}
	f.ShaderSource(sh, src)
	f.CompileShader(sh)
	if f.GetShaderi(sh, COMPILE_STATUS) == FALSE {
		log := f.GetShaderInfoLog(sh)
		f.DeleteShader(sh)
		return Shader{}, fmt.Errorf("compilation failed: %s", strings.TrimSpace(log))
	}
	return sh, nil
}

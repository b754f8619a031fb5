// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"fmt"
	"strings"
)

// Caps describes what the context behind a Functions surface can do. The
// window/context layer fills it once, right after the entry points are
// resolved.
type Caps struct {
	// Version is the major/minor context version.
	Version [2]int
	// ES marks a constrained, shader-mandatory context.
	ES bool

	Multitexture          bool
	ShaderObjects         bool
	GeometryShader        bool
	BlendFuncSeparate     bool
	BlendEquationSeparate bool
	BlendMinMax           bool
	BlendSubtract         bool
	FramebufferObject     bool
	FramebufferSRGB       bool
	VertexBufferObject    bool
	// TextureNPOT reports full non-power-of-two texture support. Without it
	// texture storage is padded up to the next power of two.
	TextureNPOT bool

	MaxTextureSize  int
	MaxTextureUnits int
}

// ParseVersion parses a GL_VERSION string into a major/minor pair, reporting
// whether the context is an ES one.
func ParseVersion(glVer string) (ver [2]int, es bool, err error) {
	if _, err := fmt.Sscanf(glVer, "OpenGL ES %d.%d", &ver[0], &ver[1]); err == nil {
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "WebGL %d.%d", &ver[0], &ver[1]); err == nil {
		// WebGL major version v corresponds to OpenGL ES version v + 1.
		ver[0]++
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "%d.%d", &ver[0], &ver[1]); err == nil {
		return ver, false, nil
	}
	return ver, false, fmt.Errorf("gl: failed to parse GL version %q", glVer)
}

// QueryCaps probes f for version, extensions and limits. Extensions beyond
// the core version unlock the separate blend calls and min/max equations.
func QueryCaps(f Functions) (Caps, error) {
	ver, es, err := ParseVersion(f.GetString(VERSION))
	if err != nil {
		return Caps{}, err
	}
	exts := strings.Split(f.GetString(EXTENSIONS), " ")
	c := Caps{
		Version:         ver,
		ES:              es,
		MaxTextureSize:  f.GetInteger(MAX_TEXTURE_SIZE),
		MaxTextureUnits: f.GetInteger(MAX_COMBINED_TEXTURE_IMAGE_UNITS),
	}
	if es {
		c.Multitexture = true
		c.ShaderObjects = true
		c.BlendFuncSeparate = true
		c.BlendEquationSeparate = true
		c.BlendSubtract = true
		c.BlendMinMax = ver[0] >= 3 || hasExtension(exts, "GL_EXT_blend_minmax")
		c.FramebufferObject = true
		c.FramebufferSRGB = ver[0] >= 3
		c.VertexBufferObject = true
		c.TextureNPOT = ver[0] >= 3 || hasExtension(exts, "GL_OES_texture_npot")
		return c, nil
	}
	gl20 := ver[0] >= 2
	c.Multitexture = gl20 || hasExtension(exts, "GL_ARB_multitexture")
	c.ShaderObjects = gl20 || (hasExtension(exts, "GL_ARB_shader_objects") &&
		hasExtension(exts, "GL_ARB_vertex_shader") &&
		hasExtension(exts, "GL_ARB_fragment_shader"))
	c.GeometryShader = ver[0] > 3 || (ver[0] == 3 && ver[1] >= 2) ||
		hasExtension(exts, "GL_ARB_geometry_shader4")
	c.BlendFuncSeparate = gl20 || hasExtension(exts, "GL_EXT_blend_func_separate")
	c.BlendEquationSeparate = gl20 || hasExtension(exts, "GL_EXT_blend_equation_separate")
	c.BlendMinMax = gl20 || hasExtension(exts, "GL_EXT_blend_minmax")
	c.BlendSubtract = gl20 || hasExtension(exts, "GL_EXT_blend_subtract")
	c.FramebufferObject = ver[0] >= 3 || hasExtension(exts, "GL_EXT_framebuffer_object")
	c.FramebufferSRGB = ver[0] >= 3 || hasExtension(exts, "GL_EXT_framebuffer_sRGB")
	c.VertexBufferObject = gl20 || hasExtension(exts, "GL_ARB_vertex_buffer_object")
	c.TextureNPOT = gl20 || hasExtension(exts, "GL_ARB_texture_non_power_of_two")
	return c, nil
}

func hasExtension(exts []string, ext string) bool {
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

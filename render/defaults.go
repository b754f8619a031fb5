// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"sync"

	"gioui.org/shader"
)

// Built-in programs for contexts without a fixed-function pipeline. Two
// variants: one modulating a texture sample by the vertex color, one passing
// the vertex color through. Texture coordinates arrive in pixels and are
// mapped into storage space by u_texMatrix; u_npotFactor compensates for
// power-of-two padding when sampling with repeat wrapping.
var (
	defaultVertexShader = shader.Sources{
		Name: "render2d-default-vert",
		GLSL100ES: `
uniform mat4 u_modelview;
uniform mat4 u_projection;
uniform mat4 u_texMatrix;

attribute vec2 position;
attribute vec4 color;
attribute vec2 texCoord;

varying vec4 v_color;
varying vec2 v_texCoord;

void main() {
    gl_Position = u_projection * u_modelview * vec4(position, 0.0, 1.0);
    v_color = color;
    v_texCoord = (u_texMatrix * vec4(texCoord, 0.0, 1.0)).xy;
}
`,
		GLSL150: `
#version 150

uniform mat4 u_modelview;
uniform mat4 u_projection;
uniform mat4 u_texMatrix;

in vec2 position;
in vec4 color;
in vec2 texCoord;

out vec4 v_color;
out vec2 v_texCoord;

void main() {
    gl_Position = u_projection * u_modelview * vec4(position, 0.0, 1.0);
    v_color = color;
    v_texCoord = (u_texMatrix * vec4(texCoord, 0.0, 1.0)).xy;
}
`,
	}

	defaultFragmentShader = shader.Sources{
		Name: "render2d-default-frag",
		GLSL100ES: `
precision mediump float;

varying vec4 v_color;
varying vec2 v_texCoord;

void main() {
    gl_FragColor = v_color;
}
`,
		GLSL150: `
#version 150

in vec4 v_color;
in vec2 v_texCoord;

out vec4 fragColor;

void main() {
    fragColor = v_color;
}
`,
	}

	defaultTexturedFragmentShader = shader.Sources{
		Name: "render2d-default-textured-frag",
		GLSL100ES: `
precision mediump float;

uniform sampler2D u_sampler;
uniform vec2 u_npotFactor;

varying vec4 v_color;
varying vec2 v_texCoord;

void main() {
    gl_FragColor = v_color * texture2D(u_sampler, v_texCoord * u_npotFactor);
}
`,
		GLSL150: `
#version 150

uniform sampler2D u_sampler;
uniform vec2 u_npotFactor;

in vec4 v_color;
in vec2 v_texCoord;

out vec4 fragColor;

void main() {
    fragColor = v_color * texture(u_sampler, v_texCoord * u_npotFactor);
}
`,
	}
)

// defaultShaderSet is the pair of built-in programs for one context.
type defaultShaderSet struct {
	plain    *Shader
	textured *Shader
}

// Built-in programs are per context: handles are not shared across contexts
// unless the window layer set up sharing, so each context identity gets its
// own compiled set, created on first draw.
var defaultPrograms = struct {
	sync.Mutex
	byContext map[uint64]*defaultShaderSet
}{
	byContext: make(map[uint64]*defaultShaderSet),
}

func defaultShadersFor(ctx Context) (*defaultShaderSet, error) {
	id := ctx.ActiveID()
	defaultPrograms.Lock()
	defer defaultPrograms.Unlock()
	if set, ok := defaultPrograms.byContext[id]; ok {
		return set, nil
	}
	plain, err := NewShaderFromSources(ctx, defaultVertexShader, defaultFragmentShader)
	if err != nil {
		return nil, err
	}
	textured, err := NewShaderFromSources(ctx, defaultVertexShader, defaultTexturedFragmentShader)
	if err != nil {
		plain.Release()
		return nil, err
	}
	if err := textured.SetCurrentTexture("u_sampler"); err != nil {
		plain.Release()
		textured.Release()
		return nil, err
	}
	set := &defaultShaderSet{plain: plain, textured: textured}
	defaultPrograms.byContext[id] = set
	return set, nil
}

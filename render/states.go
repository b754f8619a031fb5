// SPDX-License-Identifier: Unlicense OR MIT

package render

// States bundles everything a draw depends on besides the vertices
// themselves. The zero value is not useful; start from DefaultStates.
type States struct {
	BlendMode BlendMode
	Transform Transform
	Texture   *Texture
	Shader    *Shader
}

// DefaultStates is alpha blending, no transform, no texture, no shader.
func DefaultStates() States {
	return States{
		BlendMode: BlendAlpha,
		Transform: Identity,
	}
}

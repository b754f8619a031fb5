// SPDX-License-Identifier: Unlicense OR MIT

package render

// BlendFactor selects a source or destination blending factor.
type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendDstColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
)

// BlendEquation selects how the factored source and destination combine.
type BlendEquation uint8

const (
	BlendEqAdd BlendEquation = iota
	BlendEqSubtract
	BlendEqReverseSubtract
	BlendEqMin
	BlendEqMax
)

// BlendMode describes blending for the color and alpha channels separately.
// BlendMode values are compared by structural equality in the state cache;
// any of the six fields changing triggers a new blend call.
type BlendMode struct {
	ColorSrcFactor BlendFactor
	ColorDstFactor BlendFactor
	ColorEquation  BlendEquation
	AlphaSrcFactor BlendFactor
	AlphaDstFactor BlendFactor
	AlphaEquation  BlendEquation
}

// NewBlendMode builds a mode using the same factors and equation for both
// channels.
func NewBlendMode(src, dst BlendFactor, eq BlendEquation) BlendMode {
	return BlendMode{
		ColorSrcFactor: src, ColorDstFactor: dst, ColorEquation: eq,
		AlphaSrcFactor: src, AlphaDstFactor: dst, AlphaEquation: eq,
	}
}

// Commonly used blend modes.
var (
	// BlendAlpha is the default: source over destination weighted by the
	// source alpha, with alpha accumulated un-multiplied.
	BlendAlpha = BlendMode{
		ColorSrcFactor: BlendSrcAlpha, ColorDstFactor: BlendOneMinusSrcAlpha, ColorEquation: BlendEqAdd,
		AlphaSrcFactor: BlendOne, AlphaDstFactor: BlendOneMinusSrcAlpha, AlphaEquation: BlendEqAdd,
	}
	BlendAdd = BlendMode{
		ColorSrcFactor: BlendSrcAlpha, ColorDstFactor: BlendOne, ColorEquation: BlendEqAdd,
		AlphaSrcFactor: BlendOne, AlphaDstFactor: BlendOne, AlphaEquation: BlendEqAdd,
	}
	BlendMultiply = NewBlendMode(BlendDstColor, BlendZero, BlendEqAdd)
	BlendMin      = NewBlendMode(BlendOne, BlendOne, BlendEqMin)
	BlendMax      = NewBlendMode(BlendOne, BlendOne, BlendEqMax)
	BlendNone     = NewBlendMode(BlendOne, BlendZero, BlendEqAdd)
)

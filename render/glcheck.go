// SPDX-License-Identifier: Unlicense OR MIT

//go:build !gldebug

package render

import "github.com/gfx-go/render2d/gl"

// glCheck polls the driver error state after a call this layer made. In
// release builds it compiles to nothing; build with -tags gldebug to enable.
func glCheck(f gl.Functions, call string) {}

// SPDX-License-Identifier: Unlicense OR MIT

package render

import "github.com/gfx-go/render2d/gl"

// Context is the window/context layer's view of one GPU context. The render
// package never creates contexts; it is handed a Context at target creation
// and issues every GL call through it.
//
// ActiveID returns the stable identity of the context current on the calling
// thread, not a raw driver handle. Identities must never be reused by the
// implementing layer; they key the process-wide context-to-target tracking.
type Context interface {
	ActiveID() uint64
	Functions() gl.Functions
	Caps() gl.Caps
	// MakeCurrent makes a context current (or releases it) for the calling
	// thread and reports success.
	MakeCurrent(active bool) bool
}

// Surface is the drawable a Target renders into: a window's default
// framebuffer or an off-screen attachment. Size is in device pixels.
type Surface interface {
	Size() (width, height int)
	// SRGB reports whether the surface expects sRGB-encoded output.
	SRGB() bool
}

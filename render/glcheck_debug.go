// SPDX-License-Identifier: Unlicense OR MIT

//go:build gldebug

package render

import (
	"fmt"
	"runtime"

	"github.com/gfx-go/render2d/gl"
)

// glCheck polls the driver error state after a call this layer made and
// reports it with call-site context. Only built with -tags gldebug; the poll
// forces a driver round-trip and is far too slow for release builds.
func glCheck(f gl.Functions, call string) {
	if errCode := f.GetError(); errCode != gl.NO_ERROR {
		_, file, line, _ := runtime.Caller(1)
		Logger().Error("driver reported an error",
			"call", call,
			"error", fmt.Sprintf("%#x", uint(errCode)),
			"site", fmt.Sprintf("%s:%d", file, line),
		)
	}
}

// SPDX-License-Identifier: Unlicense OR MIT

package render

import "sync/atomic"

// lastID is the process-wide identity allocator shared by render targets and
// textures. Identities start at 1 and are never reused, even after the owning
// resource is destroyed; zero always means "none". This is what makes caching
// by identity safe where caching by driver handle is not: the driver recycles
// handles, this counter does not.
var lastID atomic.Uint64

func nextID() uint64 {
	return lastID.Add(1)
}

// SPDX-License-Identifier: Unlicense OR MIT

package render

import "sync"

// claimResult reports what tryClaim changed.
type claimResult uint8

const (
	// claimedFirst: no target had initialized state in the context yet. The
	// claimer must push the full baseline GL state before drawing.
	claimedFirst claimResult = iota
	// claimedSwitch: another target owned the context's cached state. The
	// claimer's fast-path cache is stale and must be resynced.
	claimedSwitch
	// alreadyActive: the claimer already owns the context. No-op.
	alreadyActive
)

// contexts maps an active-context identity to the identity of the render
// target whose state is currently cached in that context. One process-wide
// mutex guards it; claims are rare next to per-vertex work, so contention is
// a non-issue.
var contexts = struct {
	sync.Mutex
	active map[uint64]uint64
}{
	active: make(map[uint64]uint64),
}

func tryClaim(contextID, targetID uint64) claimResult {
	contexts.Lock()
	defer contexts.Unlock()
	owner, ok := contexts.active[contextID]
	switch {
	case !ok:
		contexts.active[contextID] = targetID
		return claimedFirst
	case owner != targetID:
		contexts.active[contextID] = targetID
		return claimedSwitch
	default:
		return alreadyActive
	}
}

// isActive is the cheap pre-check used before every draw; when it reports
// true the claim path is skipped entirely.
func isActive(contextID, targetID uint64) bool {
	contexts.Lock()
	defer contexts.Unlock()
	owner, ok := contexts.active[contextID]
	return ok && owner == targetID
}

func releaseContext(contextID uint64) {
	contexts.Lock()
	defer contexts.Unlock()
	delete(contexts.active, contextID)
}

package gamepad

import "sync/atomic"

// noHold marks the idle state. Event ids start at 1.
const noHold = 0

// holdRegistry stores the id of the event currently holding a direction.
// Only the dispatcher writes it; everything outside the package reads it
// through Dispatcher.Held and Gamepad.IsHolding.
type holdRegistry struct {
	id atomic.Uint64
}

func (h *holdRegistry) isHeld(id uint64) bool {
	return id != noHold && h.id.Load() == id
}

func (h *holdRegistry) held() (uint64, bool) {
	id := h.id.Load()
	return id, id != noHold
}

// tryHold claims the registry for id if nothing is held.
func (h *holdRegistry) tryHold(id uint64) bool {
	return h.id.CompareAndSwap(noHold, id)
}

func (h *holdRegistry) release() {
	h.id.Store(noHold)
}

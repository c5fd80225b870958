package leadmerge

import "sync"

// CompleteHook is called after an operation has published its outputs.
type CompleteHook func(summary *Summary)

// hooks manages completion callbacks.
type hooks struct {
	mu         sync.RWMutex
	onComplete []CompleteHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnComplete registers a callback for finished operations
func (h *hooks) OnComplete(fn CompleteHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onComplete = append(h.onComplete, fn)
}

// triggerComplete runs every completion callback in registration order
func (h *hooks) triggerComplete(summary *Summary) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onComplete {
		hook(summary)
	}
}

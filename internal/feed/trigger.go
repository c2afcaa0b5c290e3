package feed

import "sync"

// Trigger turns visibility reports for a sentinel element into LoadMore
// invocations. It fires the callback exactly once per not-visible →
// visible transition — debounced by edge detection, not by timers — and
// never again after Stop.
//
// The callback runs on the reporting goroutine, outside the trigger's
// lock, so it may call back into the trigger or the session freely.
type Trigger struct {
	mu      sync.Mutex
	visible bool
	stopped bool
	fire    func()
}

// NewTrigger creates a trigger bound to fire, typically a session's
// LoadMore wrapped with its context.
func NewTrigger(fire func()) *Trigger {
	return &Trigger{fire: fire}
}

// Observe reports the sentinel's current visibility. Only a rising edge
// fires; repeated "visible" reports while the sentinel stays on screen
// are ignored.
func (t *Trigger) Observe(visible bool) {
	t.mu.Lock()
	rising := visible && !t.visible && !t.stopped
	t.visible = visible
	f := t.fire
	t.mu.Unlock()

	if rising && f != nil {
		f()
	}
}

// Stop detaches the trigger. Subsequent Observe calls are no-ops.
func (t *Trigger) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.fire = nil
	t.mu.Unlock()
}

//go:build unix

package fork

import (
	"sync"
	"sync/atomic"
)

// Tracker detects forks of the current process. The zero value is ready
// to use; detection starts at the first EnsureRegistered call.
type Tracker struct {
	registered atomic.Bool
	probe      atomic.Pointer[probe]
	epoch      atomic.Uint64
	mu         sync.Mutex
}

// EnsureRegistered arms the fork probe exactly once.
func (t *Tracker) EnsureRegistered() {
	if t.registered.Load() || !t.registered.CompareAndSwap(false, true) {
		return
	}
	t.probe.Store(armProbe())
}

// CurrentEpoch checks the probe and returns the epoch, counting a fork
// first if one happened since the last check.
func (t *Tracker) CurrentEpoch() uint64 {
	if p := t.probe.Load(); p != nil && p.forked() {
		t.observe(p)
	}
	return t.epoch.Load()
}

// Mechanism names the detection method in use.
func (t *Tracker) Mechanism() string {
	p := t.probe.Load()
	switch {
	case p == nil:
		return "unregistered"
	case p.sentinel != nil:
		return "wipeonfork"
	default:
		return "pid"
	}
}

func (t *Tracker) observe(p *probe) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Another caller may have counted this fork already.
	if !p.forked() {
		return
	}
	t.epoch.Add(1)
	p.rearm()
}

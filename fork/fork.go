// Package fork maintains a process-wide fork epoch: a counter incremented
// once for every process fork observed, so that generators can tell their
// state was inherited from a parent process and must be reseeded.
//
// The process tracker is returned by Process. On Linux a fork is detected
// through a page marked MADV_WIPEONFORK, which the kernel zeroes in the
// child; other Unix systems compare the current PID against the one seen
// when the detector was armed. Platforms without fork (Windows, wasm,
// plan9) get a tracker whose epoch is always 0.
//
// Epochs are compared with Stale, which tolerates wraparound as long as
// fewer than 2^63 forks go unobserved by a given generator.
package fork

import "sync/atomic"

// Provider reports the current fork epoch.
type Provider interface {
	// CurrentEpoch returns the number of forks observed so far.
	CurrentEpoch() uint64

	// EnsureRegistered installs fork detection. It is idempotent and
	// safe to call concurrently.
	EnsureRegistered()
}

var process Tracker

// Process returns the tracker shared by the whole process.
func Process() *Tracker {
	return &process
}

// Stale reports whether an epoch cached by a generator is behind current.
func Stale(cached, current uint64) bool {
	return int64(cached-current) < 0
}

// Counter is a Provider advanced by hand, for callers that receive fork
// notifications some other way, and for tests.
type Counter struct {
	epoch atomic.Uint64
}

// CurrentEpoch returns the counter value.
func (c *Counter) CurrentEpoch() uint64 {
	return c.epoch.Load()
}

// EnsureRegistered does nothing.
func (c *Counter) EnsureRegistered() {}

// Bump records one fork and returns the new epoch.
func (c *Counter) Bump() uint64 {
	return c.epoch.Add(1)
}

var (
	_ Provider = (*Tracker)(nil)
	_ Provider = (*Counter)(nil)
)

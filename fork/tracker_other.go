//go:build !unix

package fork

// Tracker is the stand-in for platforms without fork. Its epoch is always 0,
// so only periodic reseeding applies there.
type Tracker struct{}

// EnsureRegistered does nothing.
func (t *Tracker) EnsureRegistered() {}

// CurrentEpoch always returns 0.
func (t *Tracker) CurrentEpoch() uint64 { return 0 }

// Mechanism names the detection method in use.
func (t *Tracker) Mechanism() string { return "none" }

package reseed

import "log/slog"

// Stats counts what an Rng has done since it was created or cloned.
type Stats struct {
	Blocks          uint64 // blocks generated by the inner core
	Bytes           uint64 // bytes in those blocks
	PeriodicReseeds uint64 // slow paths taken because the threshold was reached
	ForkReseeds     uint64 // slow paths taken because the process forked
	FailedReseeds   uint64 // automatic reseeds whose source failed
	ManualReseeds   uint64 // successful calls to Reseed
}

// AutomaticReseeds returns the number of slow paths taken, failed or not.
func (s Stats) AutomaticReseeds() uint64 {
	return s.PeriodicReseeds + s.ForkReseeds
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("blocks", s.Blocks),
		slog.Uint64("bytes", s.Bytes),
		slog.Uint64("periodic_reseeds", s.PeriodicReseeds),
		slog.Uint64("fork_reseeds", s.ForkReseeds),
		slog.Uint64("failed_reseeds", s.FailedReseeds),
		slog.Uint64("manual_reseeds", s.ManualReseeds),
	)
}

func (s *Stats) record(results []uint32) {
	s.Blocks++
	s.Bytes += uint64(len(results)) * 4
}

package reseed

import (
	"log/slog"
	"math"

	"github.com/opd-ai/go-reseed/fork"
	"github.com/opd-ai/go-reseed/rngcore"
)

// reseedingCore decides, for every block, whether the inner core must be
// replaced before it is asked for output.
type reseedingCore struct {
	inner  rngcore.BlockCore
	source rngcore.Source

	// threshold is fixed at construction; math.MaxInt64 disables periodic reseeding.
	threshold        int64
	bytesUntilReseed int64
	forkEpoch        uint64

	forks  fork.Provider
	logger *slog.Logger
	stats  Stats
}

func newReseedingCore(inner rngcore.BlockCore, threshold uint64, src rngcore.Source, forks fork.Provider, logger *slog.Logger) reseedingCore {
	forks.EnsureRegistered()

	t := clampThreshold(threshold)
	return reseedingCore{
		inner:            inner,
		source:           src,
		threshold:        t,
		bytesUntilReseed: t,
		forks:            forks,
		logger:           logger,
	}
}

// clampThreshold maps 0 (disabled) and anything beyond the countdown's
// range to math.MaxInt64. Producing that many bytes takes centuries.
func clampThreshold(threshold uint64) int64 {
	if threshold == 0 || threshold > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(threshold)
}

// generate fills results with one block, reseeding first when the byte
// budget is spent or the process forked since the last reseed.
func (c *reseedingCore) generate(results []uint32) {
	global := c.forks.CurrentEpoch()
	if c.bytesUntilReseed <= 0 || fork.Stale(c.forkEpoch, global) {
		c.reseedAndGenerate(results, global)
		return
	}

	c.bytesUntilReseed -= blockBytes(results)
	c.inner.Generate(results)
	c.stats.record(results)
}

// reseed replaces the inner core with one derived from the source. On
// failure nothing is modified.
func (c *reseedingCore) reseed() error {
	next, err := c.inner.Derive(c.source)
	if err != nil {
		return err
	}
	c.inner = next
	c.bytesUntilReseed = c.threshold
	return nil
}

// reseedAndGenerate is the slow path. A failed reseed is logged and the
// old core keeps producing output; the epoch and countdown still advance
// so the same trigger is not retried on every block.
func (c *reseedingCore) reseedAndGenerate(results []uint32, global uint64) {
	if fork.Stale(c.forkEpoch, global) {
		c.stats.ForkReseeds++
		c.logger.Info("fork detected, reseeding", slog.Uint64("epoch", global))
	} else {
		c.stats.PeriodicReseeds++
		c.logger.Debug("reseeding after threshold", slog.Int64("threshold", c.threshold))
	}

	if err := c.reseed(); err != nil {
		c.stats.FailedReseeds++
		c.logger.Warn("reseeding failed, continuing with current generator", slog.Any("err", err))
	}
	c.forkEpoch = global

	c.bytesUntilReseed = c.threshold - blockBytes(results)
	c.inner.Generate(results)
	c.stats.record(results)
}

// clone copies everything except the countdown, which is zeroed so the
// copy reseeds before its first block.
func (c *reseedingCore) clone() reseedingCore {
	return reseedingCore{
		inner:            c.inner.Clone(),
		source:           c.source.Clone(),
		threshold:        c.threshold,
		bytesUntilReseed: 0,
		forkEpoch:        c.forkEpoch,
		forks:            c.forks,
		logger:           c.logger,
	}
}

func blockBytes(results []uint32) int64 {
	return int64(len(results)) * 4
}

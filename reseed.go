// Package reseed wraps a block-based pseudorandom generator and decides
// when it should be reseeded.
//
// An Rng replaces its inner generator core with one freshly derived from a
// reseed source when:
//
//   - Reseed is called;
//   - it was produced by Clone and is about to generate its first block;
//   - the process forked since the last reseed (detected via package fork);
//   - the configured number of bytes has been generated.
//
// Reseeding after a fixed amount of output is never strictly required for a
// sound generator; it limits the damage of a future weakness in the core.
// A threshold of 0 disables it, leaving only fork-triggered reseeds.
//
// Automatic reseeds never fail from the caller's point of view: if the
// source cannot supply a seed the failure is logged and generation
// continues from the current core. Reseed reports errors.
//
// Example usage:
//
//	core, err := chacha.FromSource(source.OS{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rng := reseed.New(core, 1<<20, source.OS{})
//
//	var key [32]byte
//	rng.FillBytes(key[:])
//
// An Rng is not safe for concurrent use; guard it with a mutex or give each
// goroutine its own Clone.
package reseed

import (
	"log/slog"

	"github.com/opd-ai/go-reseed/fork"
	"github.com/opd-ai/go-reseed/internal"
	"github.com/opd-ai/go-reseed/rngcore"
)

// Option configures an Rng.
type Option func(*options)

type options struct {
	forks  fork.Provider
	logger *slog.Logger
}

// WithForkProvider replaces the process fork tracker, e.g. with a
// *fork.Counter driven by the caller.
func WithForkProvider(p fork.Provider) Option {
	return func(o *options) {
		o.forks = p
	}
}

// WithLogger sets the logger that receives reseed diagnostics.
// The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Rng is a reseeding generator exposing a word and byte stream over the
// blocks of its inner core.
type Rng struct {
	core    reseedingCore
	results []uint32
	index   int // next unread word in results; len(results) when empty
}

// New wraps inner. thresholdBytes is the amount of output after which the
// core is reseeded from src; 0 disables periodic reseeding. The Rng takes
// ownership of inner and src.
func New(inner rngcore.BlockCore, thresholdBytes uint64, src rngcore.Source, opts ...Option) *Rng {
	if inner == nil {
		panic("reseed: nil generator core")
	}
	if src == nil {
		panic("reseed: nil reseed source")
	}

	o := options{
		forks:  fork.Process(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	words := inner.BlockWords()
	if words < 2 {
		panic("reseed: generator core blocks must hold at least two words")
	}
	return &Rng{
		core:    newReseedingCore(inner, thresholdBytes, src, o.forks, o.logger),
		results: make([]uint32, words),
		index:   words,
	}
}

// Reseed derives a new core from the reseed source right away. On success
// the byte countdown restarts and words buffered from the old core are
// discarded. On failure the Rng is unchanged and the error is returned.
func (r *Rng) Reseed() error {
	if err := r.core.reseed(); err != nil {
		return err
	}
	r.core.stats.ManualReseeds++
	r.index = len(r.results)
	return nil
}

// Clone returns an independent Rng that reseeds before producing any
// output, so its stream diverges from the receiver's immediately.
func (r *Rng) Clone() *Rng {
	return &Rng{
		core:    r.core.clone(),
		results: make([]uint32, len(r.results)),
		index:   len(r.results),
	}
}

// Uint32 returns the next 32 pseudorandom bits.
func (r *Rng) Uint32() uint32 {
	if r.index >= len(r.results) {
		r.refill(0)
	}
	v := r.results[r.index]
	r.index++
	return v
}

// Uint64 returns the next 64 pseudorandom bits, low word first. With it an
// Rng satisfies math/rand/v2.Source.
func (r *Rng) Uint64() uint64 {
	n := len(r.results)
	switch {
	case r.index < n-1:
		lo, hi := r.results[r.index], r.results[r.index+1]
		r.index += 2
		return uint64(hi)<<32 | uint64(lo)
	case r.index >= n:
		r.refill(2)
		return uint64(r.results[1])<<32 | uint64(r.results[0])
	default:
		lo := r.results[n-1]
		r.refill(1)
		return uint64(r.results[0])<<32 | uint64(lo)
	}
}

// FillBytes fills dst with pseudorandom bytes. It never fails, even when an
// automatic reseed during the call could not obtain a seed.
func (r *Rng) FillBytes(dst []byte) {
	for pos := 0; pos < len(dst); {
		if r.index >= len(r.results) {
			r.refill(0)
		}
		words, filled := internal.FillFromWords(dst[pos:], r.results[r.index:])
		r.index += words
		pos += filled
	}
}

// Read fills p and returns len(p). It is the fallible form of FillBytes;
// only an explicit reseed can fail, so automatic reseed failures never
// surface here and the error is always nil.
func (r *Rng) Read(p []byte) (int, error) {
	r.FillBytes(p)
	return len(p), nil
}

// Threshold returns the effective reseed threshold in bytes
// (math.MaxInt64 when periodic reseeding is disabled).
func (r *Rng) Threshold() uint64 {
	return uint64(r.core.threshold)
}

// Stats returns the generation and reseed counters.
func (r *Rng) Stats() Stats {
	return r.core.stats
}

// LogValue implements slog.LogValuer. Only scheduling state is included,
// never generator state.
func (r *Rng) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("threshold", r.core.threshold),
		slog.Int64("bytes_until_reseed", r.core.bytesUntilReseed),
		slog.Uint64("fork_epoch", r.core.forkEpoch),
		slog.Int("buffered_words", len(r.results)-r.index),
	)
}

func (r *Rng) refill(index int) {
	r.core.generate(r.results)
	r.index = index
}

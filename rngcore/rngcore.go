// Package rngcore defines the capabilities a reseeding generator is built
// from: a block generator core that can be derived from seed material, and a
// source that supplies that seed material.
//
// A BlockCore produces pseudorandom output in fixed-size blocks of 32-bit
// words. It knows nothing about buffering or about when it should be
// replaced; both concerns belong to the caller. A Source is any io.Reader of
// seed bytes that can also be duplicated when the generator owning it is
// cloned.
package rngcore

import (
	"errors"
	"fmt"
	"io"
)

// BlockCore is a pseudorandom generator producing fixed-size blocks.
type BlockCore interface {
	// BlockWords returns the number of 32-bit words produced by one call
	// to Generate. It must be constant for the lifetime of the core.
	BlockWords() int

	// Generate fills dst with the next block. len(dst) must equal BlockWords().
	Generate(dst []uint32)

	// Derive builds a fresh core of the same kind, with the same
	// BlockWords, seeded from seed. The receiver is neither modified nor
	// consulted, so a zero value works as a prototype.
	// Errors are of type *SeedError.
	Derive(seed io.Reader) (BlockCore, error)

	// Clone returns an independent copy that will produce the same
	// output as the receiver from this point on.
	Clone() BlockCore
}

// Source supplies seed material for deriving new cores.
type Source interface {
	io.Reader

	// Clone returns an independent copy of the source. Stateless sources
	// may return themselves.
	Clone() Source
}

// ErrShortSeed is reported when a source ends before a full seed was read.
var ErrShortSeed = errors.New("rngcore: source ended before a full seed was read")

// SeedError describes a failure to read seed material for a core.
type SeedError struct {
	Core string // name of the core being seeded
	Want int    // seed length in bytes
	Got  int    // bytes read before the failure
	Err  error
}

func (e *SeedError) Error() string {
	return fmt.Sprintf("rngcore: seeding %s: read %d of %d bytes: %v", e.Core, e.Got, e.Want, e.Err)
}

func (e *SeedError) Unwrap() error {
	return e.Err
}

// ReadSeed fills seed completely from src. Any failure, including a source
// that ends early, is returned as a *SeedError naming core.
func ReadSeed(src io.Reader, seed []byte, core string) error {
	if src == nil {
		return &SeedError{Core: core, Want: len(seed), Err: errors.New("rngcore: nil source")}
	}
	n, err := io.ReadFull(src, seed)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = ErrShortSeed
	}
	return &SeedError{Core: core, Want: len(seed), Got: n, Err: err}
}

// Package mock provides deterministic sources for testing reseeding
// generators.
package mock

import (
	"encoding/binary"
	"errors"

	"github.com/opd-ai/go-reseed/rngcore"
)

// StepSource yields the 64-bit sequence initial, initial+inc,
// initial+2*inc, ... (wrapping) as little-endian bytes. With inc 0 every
// seed it supplies is identical.
type StepSource struct {
	v   uint64
	inc uint64
}

// NewStep creates a StepSource.
func NewStep(initial, inc uint64) *StepSource {
	return &StepSource{v: initial, inc: inc}
}

// Uint64 returns the next value in the sequence.
func (s *StepSource) Uint64() uint64 {
	v := s.v
	s.v += s.inc
	return v
}

// Read fills p with successive values. A trailing partial chunk consumes a
// whole value. It never fails.
func (s *StepSource) Read(p []byte) (int, error) {
	var tmp [8]byte
	for off := 0; off < len(p); off += 8 {
		binary.LittleEndian.PutUint64(tmp[:], s.Uint64())
		copy(p[off:], tmp[:])
	}
	return len(p), nil
}

// Clone returns a copy at the same point in the sequence.
func (s *StepSource) Clone() rngcore.Source {
	cp := *s
	return &cp
}

// ErrUnavailable is the default error returned by FailingSource.
var ErrUnavailable = errors.New("mock: source unavailable")

// FailingSource fails every read.
type FailingSource struct {
	Err   error // returned by Read; ErrUnavailable when nil
	Reads int   // number of Read calls observed
}

// Read records the call and returns the configured error.
func (s *FailingSource) Read([]byte) (int, error) {
	s.Reads++
	if s.Err == nil {
		return 0, ErrUnavailable
	}
	return 0, s.Err
}

// Clone returns a copy with the same error and a fresh read count.
func (s *FailingSource) Clone() rngcore.Source {
	return &FailingSource{Err: s.Err}
}

// Package blake2 implements a generator core built on keyed Blake2b-512.
//
// Block n of the output is Blake2b-512(key, n) with n encoded as a 64-bit
// little-endian counter, giving 64 bytes (16 words) per Generate call.
package blake2

import (
	"io"

	"github.com/opd-ai/go-reseed/internal"
	"github.com/opd-ai/go-reseed/rngcore"
)

const (
	// BlockWords is the number of 32-bit words produced per Generate call.
	BlockWords = 16

	// SeedSize is the number of seed bytes Derive reads (the Blake2b key).
	SeedSize = internal.Blake2bKeySize
)

// Core is a Blake2b counter-mode generator. It is not safe for concurrent use.
type Core struct {
	prf     *internal.Blake2bPRF
	counter uint64
}

// New creates a core keyed with seed.
func New(seed [SeedSize]byte) *Core {
	prf, err := internal.NewBlake2bPRF(seed[:])
	if err != nil {
		// A 64-byte key is always valid for Blake2b-512.
		panic("blake2: " + err.Error())
	}
	return &Core{prf: prf}
}

// FromSource reads a 64-byte key from src and creates a core.
func FromSource(src io.Reader) (*Core, error) {
	var seed [SeedSize]byte
	defer clear(seed[:])
	if err := rngcore.ReadSeed(src, seed[:], "blake2b"); err != nil {
		return nil, err
	}
	return New(seed), nil
}

// BlockWords returns BlockWords.
func (c *Core) BlockWords() int { return BlockWords }

// Generate fills dst with the next 16 words.
func (c *Core) Generate(dst []uint32) {
	if len(dst) != BlockWords {
		panic("blake2: Generate called with wrong block length")
	}
	out := c.prf.Block(c.counter)
	c.counter++
	internal.LoadWords(dst, out[:])
}

// Derive reads a new key from src.
func (c *Core) Derive(src io.Reader) (rngcore.BlockCore, error) {
	core, err := FromSource(src)
	if err != nil {
		return nil, err
	}
	return core, nil
}

// Clone returns a core at the same counter position.
func (c *Core) Clone() rngcore.BlockCore {
	return &Core{prf: c.prf.Clone(), counter: c.counter}
}

// Package aesctr implements an AES-256 counter-mode generator core.
//
// Derive reads a 32-byte key followed by a 16-byte initial counter block.
// Each Generate call emits four AES blocks (64 bytes, 16 words).
package aesctr

import (
	"crypto/aes"
	"io"

	"github.com/opd-ai/go-reseed/internal"
	"github.com/opd-ai/go-reseed/rngcore"
)

const (
	// BlockWords is the number of 32-bit words produced per Generate call.
	BlockWords = 16

	// KeySize is the AES-256 key length.
	KeySize = 32

	// SeedSize is the number of seed bytes Derive reads: key then counter block.
	SeedSize = KeySize + aes.BlockSize

	aesBlocksPerCall = BlockWords * 4 / aes.BlockSize
)

// Core is an AES-CTR block generator. It is not safe for concurrent use.
type Core struct {
	seed   [SeedSize]byte
	ctr    *internal.AESCTR
	blocks uint64
	buf    [BlockWords * 4]byte
}

// New creates a core from a key and initial counter block packed into seed.
func New(seed [SeedSize]byte) *Core {
	ctr, err := internal.NewAESCTR(seed[:KeySize], seed[KeySize:])
	if err != nil {
		// KeySize is a valid AES key length.
		panic("aesctr: " + err.Error())
	}
	return &Core{seed: seed, ctr: ctr}
}

// FromSource reads a seed from src and creates a core.
func FromSource(src io.Reader) (*Core, error) {
	var seed [SeedSize]byte
	defer clear(seed[:])
	if err := rngcore.ReadSeed(src, seed[:], "aes-ctr"); err != nil {
		return nil, err
	}
	return New(seed), nil
}

// BlockWords returns BlockWords.
func (c *Core) BlockWords() int { return BlockWords }

// Generate fills dst with the next 16 keystream words.
func (c *Core) Generate(dst []uint32) {
	if len(dst) != BlockWords {
		panic("aesctr: Generate called with wrong block length")
	}
	c.ctr.KeyStream(c.buf[:], c.blocks)
	c.blocks += aesBlocksPerCall
	internal.LoadWords(dst, c.buf[:])
}

// Derive reads a new key and counter block from src.
func (c *Core) Derive(src io.Reader) (rngcore.BlockCore, error) {
	core, err := FromSource(src)
	if err != nil {
		return nil, err
	}
	return core, nil
}

// Clone returns a core positioned at the same keystream block.
func (c *Core) Clone() rngcore.BlockCore {
	cp := New(c.seed)
	cp.blocks = c.blocks
	return cp
}

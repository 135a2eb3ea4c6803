// Package chacha implements a ChaCha20 keystream generator core.
//
// Each call to Generate emits four ChaCha20 blocks (256 bytes, 64 words).
// The core is seeded with a 32-byte key; the nonce starts at zero and is
// advanced whenever the 32-bit block counter would overflow, so the
// keystream never repeats for a given key.
package chacha

import (
	"encoding/binary"
	"io"

	"golang.org/x/crypto/chacha20"

	"github.com/opd-ai/go-reseed/internal"
	"github.com/opd-ai/go-reseed/rngcore"
)

const (
	// BlockWords is the number of 32-bit words produced per Generate call.
	BlockWords = 64

	// SeedSize is the number of seed bytes Derive reads.
	SeedSize = chacha20.KeySize

	chachaBlockSize = 64
	blocksPerCall   = BlockWords * 4 / chachaBlockSize
	counterSpan     = 1 << 32
)

// Core is a ChaCha20 block generator. It is not safe for concurrent use.
type Core struct {
	key    [chacha20.KeySize]byte
	nonce  [chacha20.NonceSize]byte
	stream *chacha20.Cipher
	blocks uint64 // ChaCha blocks consumed under the current nonce
	buf    [BlockWords * 4]byte
}

// New creates a core from a 32-byte seed.
func New(seed [SeedSize]byte) *Core {
	c := &Core{key: seed}
	c.stream = c.newStream(0)
	return c
}

// FromSource reads a seed from src and creates a core.
func FromSource(src io.Reader) (*Core, error) {
	var seed [SeedSize]byte
	defer clear(seed[:])
	if err := rngcore.ReadSeed(src, seed[:], "chacha20"); err != nil {
		return nil, err
	}
	return New(seed), nil
}

// BlockWords returns BlockWords.
func (c *Core) BlockWords() int { return BlockWords }

// Generate fills dst with the next 64 keystream words.
func (c *Core) Generate(dst []uint32) {
	if len(dst) != BlockWords {
		panic("chacha: Generate called with wrong block length")
	}

	clear(c.buf[:])
	c.stream.XORKeyStream(c.buf[:], c.buf[:])
	internal.LoadWords(dst, c.buf[:])

	c.blocks += blocksPerCall
	if c.blocks == counterSpan {
		c.advanceNonce()
	}
}

// Derive reads a new seed from src.
func (c *Core) Derive(src io.Reader) (rngcore.BlockCore, error) {
	core, err := FromSource(src)
	if err != nil {
		return nil, err
	}
	return core, nil
}

// Clone returns a core positioned at the same point in the keystream.
func (c *Core) Clone() rngcore.BlockCore {
	cp := &Core{key: c.key, nonce: c.nonce, blocks: c.blocks}
	cp.stream = cp.newStream(uint32(c.blocks))
	return cp
}

func (c *Core) newStream(counter uint32) *chacha20.Cipher {
	s, err := chacha20.NewUnauthenticatedCipher(c.key[:], c.nonce[:])
	if err != nil {
		// Key and nonce sizes are fixed by the array types.
		panic("chacha: " + err.Error())
	}
	if counter != 0 {
		s.SetCounter(counter)
	}
	return s
}

// advanceNonce treats the nonce as a 96-bit little-endian integer and
// increments it, restarting the block counter at zero.
func (c *Core) advanceNonce() {
	lo := binary.LittleEndian.Uint64(c.nonce[:8])
	hi := binary.LittleEndian.Uint32(c.nonce[8:])
	lo++
	if lo == 0 {
		hi++
	}
	binary.LittleEndian.PutUint64(c.nonce[:8], lo)
	binary.LittleEndian.PutUint32(c.nonce[8:], hi)

	c.blocks = 0
	c.stream = c.newStream(0)
}

// Package internal provides the primitives shared by the generator cores.
// It wraps golang.org/x/crypto and crypto/* packages.
package internal

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Blake2bKeySize is the largest key accepted by keyed Blake2b.
const Blake2bKeySize = 64

// Blake2bPRF is keyed Blake2b-512 evaluated over a 64-bit block index.
type Blake2bPRF struct {
	key    []byte
	hasher hash.Hash
}

// NewBlake2bPRF creates a PRF keyed with key (1 to 64 bytes).
func NewBlake2bPRF(key []byte) (*Blake2bPRF, error) {
	hasher, err := blake2b.New512(key)
	if err != nil {
		return nil, err
	}
	return &Blake2bPRF{
		key:    append([]byte(nil), key...),
		hasher: hasher,
	}, nil
}

// Block returns the 64-byte output for block index n.
func (p *Blake2bPRF) Block(n uint64) [blake2b.Size]byte {
	var ctr [8]byte
	binary.LittleEndian.PutUint64(ctr[:], n)

	p.hasher.Reset()
	p.hasher.Write(ctr[:])

	var out [blake2b.Size]byte
	p.hasher.Sum(out[:0])
	return out
}

// Clone returns a PRF with the same key and no shared state.
func (p *Blake2bPRF) Clone() *Blake2bPRF {
	c, err := NewBlake2bPRF(p.key)
	if err != nil {
		// The key was accepted once already.
		panic("internal: blake2b rejected a previously valid key: " + err.Error())
	}
	return c
}

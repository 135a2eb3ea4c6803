package internal

import (
	"crypto/aes"
	"crypto/cipher"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlake2bPRF(t *testing.T) {
	key := []byte("blake2b prf test key")
	p, err := NewBlake2bPRF(key)
	require.NoError(t, err)

	b0 := p.Block(0)
	b1 := p.Block(1)
	assert.NotEqual(t, b0, b1, "distinct counters should give distinct blocks")
	assert.Equal(t, b0, p.Block(0), "PRF must be deterministic")

	c := p.Clone()
	assert.Equal(t, b1, c.Block(1))

	other, err := NewBlake2bPRF([]byte("another key"))
	require.NoError(t, err)
	assert.NotEqual(t, b0, other.Block(0))
}

func TestBlake2bPRFKeyTooLong(t *testing.T) {
	_, err := NewBlake2bPRF(make([]byte, Blake2bKeySize+1))
	assert.Error(t, err)
}

func TestAESCTRMatchesCipherCTR(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	// Counter low half close to wrapping so the carry path is exercised.
	iv := []byte{0, 0, 0, 0, 0, 0, 0, 1, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe}

	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	want := make([]byte, 8*aes.BlockSize)
	cipher.NewCTR(block, iv).XORKeyStream(want, want)

	a, err := NewAESCTR(key, iv)
	require.NoError(t, err)

	got := make([]byte, len(want))
	a.KeyStream(got, 0)
	assert.Equal(t, want, got)

	// Positioning directly at block 3 matches the sequential stream.
	tail := make([]byte, 5*aes.BlockSize)
	a.KeyStream(tail, 3)
	assert.Equal(t, want[3*aes.BlockSize:], tail)
}

func TestAESCTRBadKey(t *testing.T) {
	_, err := NewAESCTR(make([]byte, 7), make([]byte, aes.BlockSize))
	assert.Error(t, err)
}

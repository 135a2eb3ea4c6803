package internal

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"math/bits"
)

// AESCTR produces an AES counter-mode keystream that can be positioned at
// any block index without replaying the blocks before it.
type AESCTR struct {
	block cipher.Block
	iv    [aes.BlockSize]byte
}

// NewAESCTR creates a keystream for key (16, 24 or 32 bytes) and a 16-byte
// initial counter block.
func NewAESCTR(key, iv []byte) (*AESCTR, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != aes.BlockSize {
		panic("internal: AES-CTR iv must be 16 bytes")
	}
	a := &AESCTR{block: block}
	copy(a.iv[:], iv)
	return a, nil
}

// KeyStream writes the keystream starting at block index n into dst.
// len(dst) must be a multiple of 16.
func (a *AESCTR) KeyStream(dst []byte, n uint64) {
	if len(dst)%aes.BlockSize != 0 {
		panic("internal: keystream output not full blocks")
	}

	hi := binary.BigEndian.Uint64(a.iv[:8])
	lo := binary.BigEndian.Uint64(a.iv[8:])

	var ctr [aes.BlockSize]byte
	for off := 0; off < len(dst); off += aes.BlockSize {
		l, carry := bits.Add64(lo, n, 0)
		binary.BigEndian.PutUint64(ctr[:8], hi+carry)
		binary.BigEndian.PutUint64(ctr[8:], l)
		a.block.Encrypt(dst[off:off+aes.BlockSize], ctr[:])
		n++
	}
}

package internal

import "encoding/binary"

// LoadWords decodes little-endian 32-bit words from src into dst.
// src must hold at least 4*len(dst) bytes.
func LoadWords(dst []uint32, src []byte) {
	_ = src[4*len(dst)-1]
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint32(src[4*i:])
	}
}

// FillFromWords copies the little-endian bytes of src into dst until either
// runs out. A word that is only partly copied counts as consumed; its
// remaining bytes are dropped.
func FillFromWords(dst []byte, src []uint32) (words, filled int) {
	filled = len(src) * 4
	if len(dst) < filled {
		filled = len(dst)
	}

	full := filled / 4
	for i := 0; i < full; i++ {
		binary.LittleEndian.PutUint32(dst[4*i:], src[i])
	}

	words = full
	if rem := filled % 4; rem != 0 {
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], src[full])
		copy(dst[4*full:filled], tmp[:rem])
		words++
	}
	return words, filled
}

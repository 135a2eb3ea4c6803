//go:build !linux

package source

import "crypto/rand"

func readEntropy(p []byte) (int, error) {
	return rand.Read(p)
}

//go:build linux

package source

import (
	"crypto/rand"
	"errors"

	"golang.org/x/sys/unix"
)

// readEntropy uses getrandom(2), which blocks only until the kernel pool
// is initialised. Kernels without the syscall fall back to crypto/rand.
func readEntropy(p []byte) (int, error) {
	read := 0
	for read < len(p) {
		n, err := unix.Getrandom(p[read:], 0)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.ENOSYS):
			m, err := rand.Read(p[read:])
			return read + m, err
		case err != nil:
			return read, err
		}
		read += n
	}
	return read, nil
}

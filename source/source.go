// Package source provides the operating-system entropy source used to
// reseed generator cores.
package source

import (
	"fmt"

	"github.com/opd-ai/go-reseed/rngcore"
)

// OS reads seed material from the operating system's CSPRNG. It carries no
// state, so copies and clones are interchangeable and it is safe for
// concurrent use.
type OS struct{}

var _ rngcore.Source = OS{}

// Read fills p with entropy from the kernel. It returns len(p) or an error.
func (OS) Read(p []byte) (int, error) {
	n, err := readEntropy(p)
	if err != nil {
		return n, fmt.Errorf("source: os entropy: %w", err)
	}
	return n, nil
}

// Clone returns the receiver.
func (s OS) Clone() rngcore.Source {
	return s
}

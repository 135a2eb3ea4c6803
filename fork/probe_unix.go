//go:build unix

package fork

import (
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// probe notices that the process is no longer the one that armed it.
type probe struct {
	sentinel *uint32 // wipe-on-fork word, nil when unsupported
	pid      atomic.Int64
}

func armProbe() *probe {
	p := &probe{sentinel: wipeOnForkSentinel()}
	p.rearm()
	return p
}

func (p *probe) forked() bool {
	if p.sentinel != nil {
		return atomic.LoadUint32(p.sentinel) == 0
	}
	return int64(unix.Getpid()) != p.pid.Load()
}

func (p *probe) rearm() {
	if p.sentinel != nil {
		atomic.StoreUint32(p.sentinel, 1)
	}
	p.pid.Store(int64(unix.Getpid()))
}

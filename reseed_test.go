package reseed

import (
	"encoding/binary"
	"io"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-reseed/chacha"
	"github.com/opd-ai/go-reseed/fork"
	"github.com/opd-ai/go-reseed/mock"
	"github.com/opd-ai/go-reseed/rngcore"
)

// seqCore emits consecutive integers, which makes buffer boundaries visible.
type seqCore struct {
	next  uint32
	words int
}

func (c *seqCore) BlockWords() int { return c.words }

func (c *seqCore) Generate(dst []uint32) {
	for i := range dst {
		dst[i] = c.next
		c.next++
	}
}

func (c *seqCore) Derive(src io.Reader) (rngcore.BlockCore, error) {
	var seed [4]byte
	if err := rngcore.ReadSeed(src, seed[:], "seq"); err != nil {
		return nil, err
	}
	return &seqCore{next: binary.LittleEndian.Uint32(seed[:]), words: c.words}, nil
}

func (c *seqCore) Clone() rngcore.BlockCore {
	cp := *c
	return &cp
}

func newSeqRng(words int) *Rng {
	rng, _ := newTestRng(&seqCore{words: words}, 0, mock.NewStep(1<<20, 1<<20))
	return rng
}

func TestUint32Sequence(t *testing.T) {
	rng := newSeqRng(4)
	for want := uint32(0); want < 20; want++ {
		require.Equal(t, want, rng.Uint32())
	}
	assert.Equal(t, uint64(5), rng.Stats().Blocks)
}

func TestUint64(t *testing.T) {
	tests := []struct {
		name    string
		skip    int // Uint32 calls before Uint64
		want    uint64
		blocks  uint64
		nextU32 uint32
	}{
		{"empty buffer", 0, 1<<32 | 0, 1, 2},
		{"aligned in block", 2, 3<<32 | 2, 1, 4},
		{"last word of block", 3, 4<<32 | 3, 2, 5},
		{"block exhausted", 4, 5<<32 | 4, 2, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := newSeqRng(4)
			for i := 0; i < tt.skip; i++ {
				rng.Uint32()
			}
			assert.Equal(t, tt.want, rng.Uint64())
			assert.Equal(t, tt.blocks, rng.Stats().Blocks)
			assert.Equal(t, tt.nextU32, rng.Uint32())
		})
	}
}

func TestUint64TwoWordBlocks(t *testing.T) {
	rng := newSeqRng(2)
	assert.Equal(t, uint64(1<<32|0), rng.Uint64())
	assert.Equal(t, uint64(3<<32|2), rng.Uint64())
	assert.Equal(t, uint32(4), rng.Uint32())
	assert.Equal(t, uint64(6<<32|5), rng.Uint64())
}

func TestFillBytes(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		nextU32 uint32
	}{
		{"zero", 0, 0},
		{"partial word", 3, 1},
		{"one word", 4, 1},
		{"word and a half", 6, 2},
		{"exactly one block", 16, 4},
		{"across blocks", 37, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := newSeqRng(4)
			buf := make([]byte, tt.size)
			rng.FillBytes(buf)

			for i := 0; i < tt.size; i++ {
				word := uint32(i / 4)
				want := byte(word >> (8 * (i % 4)))
				require.Equal(t, want, buf[i], "byte %d", i)
			}
			assert.Equal(t, tt.nextU32, rng.Uint32())
		})
	}
}

func TestFillBytesMatchesWords(t *testing.T) {
	a, _ := newTestRng(chacha.New([chacha.SeedSize]byte{5}), 0, mock.NewStep(0, 1))
	b, _ := newTestRng(chacha.New([chacha.SeedSize]byte{5}), 0, mock.NewStep(0, 1))

	buf := make([]byte, 4*1000)
	a.FillBytes(buf)
	for i := 0; i < 1000; i++ {
		require.Equal(t, b.Uint32(), binary.LittleEndian.Uint32(buf[4*i:]))
	}
}

func TestRead(t *testing.T) {
	rng := newSeqRng(4)
	buf := make([]byte, 100)
	n, err := rng.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 100, n)

	n, err = io.ReadFull(rng, buf)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
}

func TestReadIgnoresAutomaticReseedFailure(t *testing.T) {
	src := &mock.FailingSource{}
	forks := &fork.Counter{}
	rng := New(chacha.New([chacha.SeedSize]byte{}), 1, src,
		WithForkProvider(forks), WithLogger(quietLogger()))
	forks.Bump()

	buf := make([]byte, 4096)
	n, err := rng.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Positive(t, rng.Stats().FailedReseeds)
}

func TestMathRandSource(t *testing.T) {
	rng, _ := newTestRng(chacha.New([chacha.SeedSize]byte{}), 0, mock.NewStep(0, 1))
	r := rand.New(rng)
	for i := 0; i < 1000; i++ {
		v := r.IntN(6)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 6)
	}
}

func TestReseedDropsBuffer(t *testing.T) {
	rng, _ := newTestRng(&seqCore{words: 4}, 0, mock.NewStep(100, 1))
	assert.Equal(t, uint32(0), rng.Uint32())

	require.NoError(t, rng.Reseed())
	assert.Equal(t, uint32(100), rng.Uint32(), "first word after Reseed comes from the new core")
}

func TestNewPanics(t *testing.T) {
	src := mock.NewStep(0, 0)
	assert.Panics(t, func() { New(nil, 0, src) })
	assert.Panics(t, func() { New(&seqCore{words: 4}, 0, nil) })
	assert.Panics(t, func() { New(&seqCore{words: 1}, 0, src) })
}

func TestNewUsesProcessTracker(t *testing.T) {
	rng := New(&seqCore{words: 4}, 0, mock.NewStep(0, 1), WithLogger(quietLogger()))
	assert.Same(t, fork.Process(), rng.core.forks)
	assert.NotEqual(t, "unregistered", fork.Process().Mechanism())
}

func TestLogValue(t *testing.T) {
	rng, _ := newTestRng(&seqCore{words: 4}, 64, mock.NewStep(0, 1))
	rng.Uint32()

	attrs := map[string]string{}
	for _, a := range rng.LogValue().Group() {
		attrs[a.Key] = a.Value.String()
	}
	assert.Equal(t, map[string]string{
		"threshold":          "64",
		"bytes_until_reseed": "48",
		"fork_epoch":         "0",
		"buffered_words":     "3",
	}, attrs)
}

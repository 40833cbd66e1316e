package heap

import (
	"os"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/scrubkit/internal/format"
	"github.com/joshuapare/scrubkit/locate"
)

// testBackend is an underlying allocator whose blocks are ordinary Go slices.
// Fresh blocks are filled with 0xaa so tests can tell scrubbed memory from
// memory that was never touched, and released blocks go on a reuse list so
// tests can observe what a later allocation finds in recycled memory.
type testBackend struct {
	all      map[uintptr][]byte
	freeList [][]byte
	freed    []uintptr
	failNext bool
}

func newTestBackend() *testBackend {
	return &testBackend{all: make(map[uintptr][]byte)}
}

func (b *testBackend) alloc(size uintptr) unsafe.Pointer {
	if b.failNext {
		b.failNext = false
		return nil
	}
	for i, buf := range b.freeList {
		if uintptr(len(buf)) >= size {
			b.freeList = append(b.freeList[:i], b.freeList[i+1:]...)
			return unsafe.Pointer(&buf[0])
		}
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0xaa
	}
	b.all[uintptr(unsafe.Pointer(&buf[0]))] = buf
	return unsafe.Pointer(&buf[0])
}

func (b *testBackend) free(p unsafe.Pointer, size uintptr) {
	k := uintptr(p)
	b.freed = append(b.freed, k)
	if buf, ok := b.all[k]; ok {
		b.freeList = append(b.freeList, buf)
	}
}

// block returns the full backing slice that starts at addr.
func (b *testBackend) block(addr uintptr) []byte {
	return b.all[addr]
}

func newTestShim(t *testing.T) (*Shim, *testBackend) {
	t.Helper()
	tb := newTestBackend()
	loc := locate.New()
	loc.Register(locate.Provider{Name: "test", Alloc: tb.alloc, Free: tb.free})
	t.Setenv(locate.BackendEnv, "test")
	require.NoError(t, loc.Ensure())
	return New(loc), tb
}

func payloadBytes(p unsafe.Pointer, n uintptr) []byte {
	return unsafe.Slice((*byte)(p), n)
}

func fill(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

func TestAllocWritesRecord(t *testing.T) {
	s, _ := newTestShim(t)

	p := s.Alloc(16)
	require.NotNil(t, p)

	rec := format.RecordOf(p)
	assert.Equal(t, uintptr(p)-format.RecordSize, rec.Block,
		"record must sit at the block start")
	assert.Equal(t, uintptr(16), rec.Requested)
	assert.Equal(t, uintptr(16)+format.RecordSize, rec.Allocated)
}

func TestAllocZeroSize(t *testing.T) {
	s, tb := newTestShim(t)

	p := s.Alloc(0)
	require.NotNil(t, p, "size zero must still yield a releasable pointer")
	assert.Equal(t, uintptr(0), s.RequestedSize(p))

	s.Free(p)
	assert.Len(t, tb.freed, 1)
}

func TestAllocFailurePropagates(t *testing.T) {
	s, tb := newTestShim(t)

	tb.failNext = true
	assert.Nil(t, s.Alloc(16))
}

func TestFreeScrubsWholeBlock(t *testing.T) {
	s, tb := newTestShim(t)

	p := s.Alloc(16)
	require.NotNil(t, p)
	fill(payloadBytes(p, 16), 0x5a)

	block := format.RecordOf(p).Block
	s.Free(p)

	require.Equal(t, []uintptr{block}, tb.freed)
	assert.True(t, allZero(tb.block(block)),
		"record and payload must both be zero after release")
}

func TestFreeNil(t *testing.T) {
	s, tb := newTestShim(t)
	s.Free(nil)
	assert.Empty(t, tb.freed)
}

func TestCallocZeroFills(t *testing.T) {
	s, _ := newTestShim(t)

	p := s.Calloc(4, 8)
	require.NotNil(t, p)
	assert.True(t, allZero(payloadBytes(p, 32)),
		"backend hands out dirty memory; Calloc must clear it")
	assert.Equal(t, uintptr(32), s.RequestedSize(p))
}

func TestReallocPreservesPrefixAndScrubsOld(t *testing.T) {
	s, tb := newTestShim(t)

	p := s.Alloc(16)
	require.NotNil(t, p)
	pb := payloadBytes(p, 16)
	for i := range pb {
		pb[i] = byte(i + 1)
	}
	oldBlock := format.RecordOf(p).Block

	q := s.Realloc(p, 32)
	require.NotNil(t, q)

	got := payloadBytes(q, 16)
	for i := range got {
		assert.Equal(t, byte(i+1), got[i], "prefix byte %d", i)
	}
	assert.Equal(t, []uintptr{oldBlock}, tb.freed)
	assert.True(t, allZero(tb.block(oldBlock)), "old block must be scrubbed")

	s.Free(q)
}

func TestReallocShrinkPreservesPrefix(t *testing.T) {
	s, _ := newTestShim(t)

	p := s.Alloc(16)
	fill(payloadBytes(p, 16), 0x7e)

	q := s.Realloc(p, 8)
	require.NotNil(t, q)
	assert.Equal(t, uintptr(8), s.RequestedSize(q))
	for _, b := range payloadBytes(q, 8) {
		assert.Equal(t, byte(0x7e), b)
	}
}

func TestReallocNilActsAsAlloc(t *testing.T) {
	s, _ := newTestShim(t)

	p := s.Realloc(nil, 32)
	require.NotNil(t, p)
	assert.Equal(t, uintptr(32), s.RequestedSize(p))
}

func TestReallocFailureLeavesOldIntact(t *testing.T) {
	s, tb := newTestShim(t)

	p := s.Alloc(16)
	fill(payloadBytes(p, 16), 0x42)

	tb.failNext = true
	assert.Nil(t, s.Realloc(p, 64))

	assert.Empty(t, tb.freed, "old block must not be released on failure")
	for _, b := range payloadBytes(p, 16) {
		assert.Equal(t, byte(0x42), b, "old payload must stay untouched")
	}
}

func TestAllocAlignedAlignment(t *testing.T) {
	s, tb := newTestShim(t)

	for alignment := uintptr(1); alignment <= 4096; alignment <<= 1 {
		p, err := s.AllocAligned(alignment, 24)
		require.NoError(t, err, "alignment %d", alignment)
		require.Zero(t, uintptr(p)%alignment, "alignment %d", alignment)

		rec := format.RecordOf(p)
		assert.GreaterOrEqual(t, uintptr(p)-format.RecordSize, rec.Block,
			"record must fit between block start and payload")
		assert.GreaterOrEqual(t, rec.Allocated, rec.Requested+format.RecordSize)

		block := rec.Block
		span := uintptr(p) - block + 24
		s.Free(p)
		assert.True(t, allZero(tb.block(block)[:span]),
			"alignment %d: padding, record and payload must be scrubbed", alignment)
	}
}

func TestAllocAlignedLargerThanPage(t *testing.T) {
	s, _ := newTestShim(t)

	p, err := s.AllocAligned(16384, 8)
	require.NoError(t, err)
	assert.Zero(t, uintptr(p)%16384)
	s.Free(p)
}

func TestAllocAlignedZeroAlignment(t *testing.T) {
	s, _ := newTestShim(t)

	p, err := s.AllocAligned(0, 16)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrInvalidAlignment)
}

func TestAllocAlignedBackendFailure(t *testing.T) {
	s, tb := newTestShim(t)

	tb.failNext = true
	p, err := s.AllocAligned(64, 16)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrNoMemory)
}

func TestMemalign(t *testing.T) {
	s, _ := newTestShim(t)

	p := s.Memalign(128, 16)
	require.NotNil(t, p)
	assert.Zero(t, uintptr(p)%128)
	s.Free(p)

	assert.Nil(t, s.Memalign(0, 16), "zero boundary fails with a nil result")
}

func TestValloc(t *testing.T) {
	s, _ := newTestShim(t)

	p := s.Valloc(100)
	require.NotNil(t, p)
	assert.Zero(t, uintptr(p)%uintptr(os.Getpagesize()))
	s.Free(p)
}

// TestRecycledBlockIsZero walks the attack this shim exists to stop: data
// written before a release must not be visible to whoever gets the block
// next.
func TestRecycledBlockIsZero(t *testing.T) {
	s, _ := newTestShim(t)

	p := s.Alloc(16)
	fill(payloadBytes(p, 16), 0xee)
	first := uintptr(p)
	s.Free(p)

	q := s.Alloc(16)
	require.Equal(t, first, uintptr(q), "backend reuses the released block")
	assert.True(t, allZero(payloadBytes(q, 16)),
		"recycled payload must read back all-zero before any write")
}

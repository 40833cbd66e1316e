package heap

import (
	"os"
	"unsafe"

	"github.com/joshuapare/scrubkit/internal/format"
	"github.com/joshuapare/scrubkit/internal/wipe"
	"github.com/joshuapare/scrubkit/locate"
)

// Shim is a scrubbing wrapper over the allocator resolved through loc.
type Shim struct {
	loc *locate.Table
}

// New returns a Shim delegating to loc.
func New(loc *locate.Table) *Shim {
	return &Shim{loc: loc}
}

// std is the process-wide shim behind the package-level functions.
var std = New(locate.Default)

// Alloc obtains size usable bytes and returns the payload pointer, or nil
// when the underlying allocator fails. size zero yields a valid, releasable
// pointer with a zero-length payload.
func (s *Shim) Alloc(size uintptr) unsafe.Pointer {
	total := size + format.RecordSize
	block := s.loc.Alloc(total)
	if block == nil {
		debugf("alloc failed", "size", size)
		return nil
	}
	rec := (*format.Record)(block)
	stampRecord(rec)
	rec.Block = uintptr(block)
	rec.Requested = size
	rec.Allocated = total
	return format.PayloadOf(block)
}

// Calloc obtains count*size bytes and zero-fills exactly the requested
// region. Overflow of count*size is the caller's responsibility, matching
// the wrapped contract.
func (s *Shim) Calloc(count, size uintptr) unsafe.Pointer {
	total := count * size
	p := s.Alloc(total)
	if p != nil {
		wipe.Pointer(p, total)
	}
	return p
}

// Realloc moves p to a block of the given size, preserving the first
// min(oldSize, size) bytes. A nil p behaves as Alloc. The old block is
// scrubbed and released only after the new allocation succeeds; on failure
// the old block remains valid and untouched.
func (s *Shim) Realloc(p unsafe.Pointer, size uintptr) unsafe.Pointer {
	if p == nil {
		return s.Alloc(size)
	}
	fresh := s.Alloc(size)
	if fresh == nil {
		return nil
	}
	n := min(size, format.RecordOf(p).Requested)
	if n > 0 {
		copy(unsafe.Slice((*byte)(fresh), n), unsafe.Slice((*byte)(p), n))
	}
	s.Free(p)
	return fresh
}

// AllocAligned obtains size bytes at an address that is a multiple of
// alignment, with a complete record immediately before the payload. The
// request carries enough slack that the aligned payload fits wherever the
// backend places the block, so the alignment guarantee holds for every
// non-zero alignment.
func (s *Shim) AllocAligned(alignment, size uintptr) (unsafe.Pointer, error) {
	if alignment == 0 {
		return nil, ErrInvalidAlignment
	}
	total := size + format.RecordSize + alignment
	block := s.loc.Alloc(total)
	if block == nil {
		debugf("aligned alloc failed", "alignment", alignment, "size", size)
		return nil, ErrNoMemory
	}
	pad := format.AlignUp(uintptr(block)+format.RecordSize, alignment) - uintptr(block)
	payload := unsafe.Add(block, pad)
	rec := format.RecordOf(payload)
	stampRecord(rec)
	rec.Block = uintptr(block)
	rec.Requested = size
	rec.Allocated = total
	return payload, nil
}

// Memalign is the legacy spelling of AllocAligned with a malloc-style
// result: nil on any failure, including a zero boundary.
func (s *Shim) Memalign(boundary, size uintptr) unsafe.Pointer {
	p, err := s.AllocAligned(boundary, size)
	if err != nil {
		return nil
	}
	return p
}

// Valloc allocates size bytes aligned to the system page size.
func (s *Shim) Valloc(size uintptr) unsafe.Pointer {
	return s.Memalign(uintptr(os.Getpagesize()), size)
}

// Free scrubs and releases the allocation at p. The scrub covers the byte
// span from the owning block's start through the end of the requested
// payload, so both the record and the caller's data are gone before the
// backend sees the block again. nil and bootstrap-arena pointers are no-ops.
func (s *Shim) Free(p unsafe.Pointer) {
	if p == nil || s.loc.FromArena(p) {
		return
	}
	rec := format.RecordOf(p)
	if !checkRecord(rec) {
		// Scrubbing through a corrupt or foreign header could destroy
		// memory the shim does not own. Abandon the release and leak.
		return
	}
	block := unsafe.Pointer(rec.Block)
	allocated := rec.Allocated
	span := uintptr(p) - rec.Block + rec.Requested
	wipe.Pointer(block, span)
	s.loc.Free(block, allocated)
}

// RequestedSize reports the size originally requested for p. p must be a
// live pointer produced by this shim.
func (s *Shim) RequestedSize(p unsafe.Pointer) uintptr {
	return format.RecordOf(p).Requested
}

// Alloc allocates from the process-wide shim.
func Alloc(size uintptr) unsafe.Pointer { return std.Alloc(size) }

// Calloc allocates zero-initialized memory from the process-wide shim.
func Calloc(count, size uintptr) unsafe.Pointer { return std.Calloc(count, size) }

// Realloc resizes an allocation from the process-wide shim.
func Realloc(p unsafe.Pointer, size uintptr) unsafe.Pointer { return std.Realloc(p, size) }

// AllocAligned allocates aligned memory from the process-wide shim.
func AllocAligned(alignment, size uintptr) (unsafe.Pointer, error) {
	return std.AllocAligned(alignment, size)
}

// Memalign is the legacy aligned-allocation spelling on the process-wide shim.
func Memalign(boundary, size uintptr) unsafe.Pointer { return std.Memalign(boundary, size) }

// Valloc allocates page-aligned memory from the process-wide shim.
func Valloc(size uintptr) unsafe.Pointer { return std.Valloc(size) }

// Free scrubs and releases an allocation made through the process-wide shim.
func Free(p unsafe.Pointer) { std.Free(p) }

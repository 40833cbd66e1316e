// Package heap wraps an underlying allocator so that every released block is
// zero-filled before it leaves the caller's control.
//
// # Overview
//
// The shim adds no allocation strategy of its own: no free lists, no
// coalescing, no reuse policy. Real work is delegated to the backend resolved
// by package locate, and the shim contributes exactly two things on top:
//
//   - a fixed-layout record embedded immediately before every payload,
//     carrying the owning block address and both the requested and the
//     allocated size
//   - a guarantee that Free scrubs the whole span, from the owning block's
//     start through the end of the requested payload, before the block goes
//     back to the backend
//
// The point is that sensitive data cannot linger in released heap blocks
// where a dangling pointer or a lucky reallocation would expose it.
//
// # Operations
//
//	p := heap.Alloc(64)            // record + 64 usable bytes
//	p = heap.Realloc(p, 128)       // grow; the old block is scrubbed
//	q := heap.Calloc(4, 32)        // zero-initialized
//	r, err := heap.AllocAligned(256, 64)
//	heap.Free(p)                   // scrub, then release
//
// Memalign and Valloc are legacy spellings over AllocAligned.
//
// # Alignment
//
// AllocAligned sizes its request so that an aligned payload with a complete
// record before it fits wherever the backend places the block. The payload
// address is a multiple of the alignment for every non-zero alignment,
// including ones larger than a page.
//
// # Checked builds
//
// With the scrubdebug build tag, every record is stamped with a validity
// cookie that Free verifies. On a mismatch the release is abandoned: the
// block is neither scrubbed nor returned, trading a leak for not corrupting
// memory the shim does not own. Diagnostics go to standard error. Without the
// tag both the stamp and the check compile to nothing.
//
// # Concurrency
//
// Operations on distinct pointers are independent. The usual allocator rules
// apply otherwise: freeing a block while another goroutine still uses it is
// a caller bug, not something the shim defends against.
package heap

// Package format defines the fixed layout of the allocation record that
// precedes every payload handed out by the allocator shim. The goal is to keep
// the layout arithmetic in one place so higher-level packages never do ad hoc
// pointer subtraction to recover metadata.
package format

import "unsafe"

// Cookie is the validity tag stamped into every record by checked builds and
// verified again at release time. A mismatch means the pointer was not
// produced by the shim or the header was overwritten.
const Cookie uint32 = 0x12345678

// Record is the per-allocation header stored immediately before the payload
// pointer returned to the caller.
//
// Memory layout (one record per live allocation):
//
//	block ──► ┌──────────────┐
//	          │ Record       │
//	          ├──────────────┤
//	payload─► │ caller bytes │
//	          └──────────────┘
//
// For aligned allocations alignment padding sits between the block start and
// the record, but the record is always at payload-RecordSize.
type Record struct {
	// Cookie holds the validity tag in checked builds, zero otherwise.
	Cookie uint32
	_      uint32

	// Block is the address actually obtained from the underlying allocator.
	// It may differ from the payload address by more than RecordSize when
	// alignment padding was inserted.
	Block uintptr

	// Requested is the size in bytes the caller asked for.
	Requested uintptr

	// Allocated is the total size obtained from the underlying allocator,
	// always at least Requested+RecordSize.
	Allocated uintptr
}

// RecordSize is the number of bytes occupied by a Record. All fields are
// word-sized after the padded cookie, so the value is a multiple of 8 on
// 64-bit platforms.
const RecordSize = unsafe.Sizeof(Record{})

// RecordOf returns the record stored immediately before payload. The caller
// must guarantee payload was produced by the shim.
func RecordOf(payload unsafe.Pointer) *Record {
	return (*Record)(unsafe.Add(payload, -int(RecordSize)))
}

// PayloadOf returns the payload address for a block whose record sits at the
// block start (the unaligned allocation layout).
func PayloadOf(block unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(block, RecordSize)
}

// Package wipe zero-fills memory in a way the compiler cannot elide. The
// allocator and transfer shims depend on the scrub actually happening, so a
// plain loop that dead-store elimination could remove is not acceptable.
package wipe

import "unsafe"

//go:linkname memclrNoHeapPointers runtime.memclrNoHeapPointers
//go:noescape
func memclrNoHeapPointers(ptr unsafe.Pointer, n uintptr)

// Bytes zero-fills b. Safe on empty and nil slices.
func Bytes(b []byte) {
	if len(b) == 0 {
		return
	}
	memclrNoHeapPointers(unsafe.Pointer(&b[0]), uintptr(len(b)))
}

// Pointer zero-fills n bytes starting at p. No-op when p is nil or n is zero.
// The region must not contain Go heap pointers the collector still tracks.
func Pointer(p unsafe.Pointer, n uintptr) {
	if p == nil || n == 0 {
		return
	}
	memclrNoHeapPointers(p, n)
}

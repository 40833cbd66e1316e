package locate

import (
	"sync/atomic"
	"unsafe"

	"github.com/joshuapare/scrubkit/internal/format"
)

// arenaSize is the hard capacity of the bootstrap scratch region. It only
// needs to cover the internal allocations the resolution step itself makes,
// so it is deliberately small; overflow is the signal that a request is real
// application demand.
const arenaSize = 1024

// arena is a bump-only allocator over a fixed region. Nothing taken from it
// is ever returned; the region lives for the whole process.
type arena struct {
	used  atomic.Uintptr
	space [arenaSize]byte
}

// take carves size bytes off the arena, or returns nil when the remaining
// capacity cannot hold the request. Returned pointers are 8-byte aligned.
func (a *arena) take(size uintptr) unsafe.Pointer {
	need := format.AlignUp(size, 8)
	if need == 0 {
		need = 8
	}
	for {
		used := a.used.Load()
		if used+need > arenaSize {
			return nil
		}
		if a.used.CompareAndSwap(used, used+need) {
			return unsafe.Pointer(&a.space[used])
		}
	}
}

// contains reports whether p points into the arena region.
func (a *arena) contains(p unsafe.Pointer) bool {
	base := uintptr(unsafe.Pointer(&a.space[0]))
	v := uintptr(p)
	return v >= base && v < base+arenaSize
}

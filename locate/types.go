package locate

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// AllocFunc obtains a raw block of at least size bytes from the underlying
// allocator. A nil return signals failure.
type AllocFunc func(size uintptr) unsafe.Pointer

// FreeFunc returns a block obtained from the matching AllocFunc. size must be
// the size originally passed to AllocFunc.
type FreeFunc func(p unsafe.Pointer, size uintptr)

// WriteFunc writes p to fd and reports the byte count.
type WriteFunc func(fd int, p []byte) (int, error)

// SendtoFunc sends p on a socket. A nil destination sends on a connected
// socket, matching send(2) semantics.
type SendtoFunc func(fd int, p []byte, flags int, to unix.Sockaddr) error

// SendmsgFunc sends a scatter-gather message and reports the byte count.
type SendmsgFunc func(fd int, bufs [][]byte, oob []byte, to unix.Sockaddr, flags int) (int, error)

// WritevFunc writes a scatter-gather list to fd and reports the byte count.
type WritevFunc func(fd int, bufs [][]byte) (int, error)

// Provider bundles the real implementations behind one backend name.
// Alloc must hand out page-aligned blocks; the aligned-allocation path in
// heap relies on that.
type Provider struct {
	Name string

	Alloc AllocFunc
	Free  FreeFunc

	Write   WriteFunc
	Sendto  SendtoFunc
	Sendmsg SendmsgFunc
	Writev  WritevFunc
}

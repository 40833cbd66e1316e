package locate

import (
	"unsafe"

	"github.com/awnumar/memcall"
	"golang.org/x/sys/unix"
)

func init() {
	Default.Register(memcallProvider())
	Default.Register(mmapProvider())
}

// withUnixTransfer fills in the raw transfer primitives shared by every
// built-in provider.
func withUnixTransfer(p Provider) Provider {
	p.Write = unix.Write
	p.Sendto = unix.Sendto
	p.Sendmsg = unix.SendmsgBuffers
	p.Writev = unix.Writev
	return p
}

// memcallProvider is the default backend: page-backed allocations outside the
// Go heap, so released blocks never linger in runtime-managed spans.
func memcallProvider() Provider {
	return withUnixTransfer(Provider{
		Name: "memcall",
		Alloc: func(size uintptr) unsafe.Pointer {
			b, err := memcall.Alloc(int(size))
			if err != nil {
				return nil
			}
			return unsafe.Pointer(&b[0])
		},
		Free: func(p unsafe.Pointer, size uintptr) {
			// Rebuild the slice memcall handed out; it re-derives the
			// full page span from it.
			_ = memcall.Free(unsafe.Slice((*byte)(p), int(size)))
		},
	})
}

// mmapProvider maps anonymous private pages directly. Useful where memcall's
// extra setup is unwanted; selected with SCRUBKIT_BACKEND=mmap.
func mmapProvider() Provider {
	return withUnixTransfer(Provider{
		Name: "mmap",
		Alloc: func(size uintptr) unsafe.Pointer {
			b, err := unix.Mmap(-1, 0, int(size),
				unix.PROT_READ|unix.PROT_WRITE,
				unix.MAP_PRIVATE|unix.MAP_ANON)
			if err != nil {
				return nil
			}
			return unsafe.Pointer(&b[0])
		},
		Free: func(p unsafe.Pointer, size uintptr) {
			_ = unix.Munmap(unsafe.Slice((*byte)(p), int(size)))
		},
	})
}

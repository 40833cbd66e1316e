// scrubcheck exercises the allocator and transfer shims against the real
// resolved backend and verifies the observable guarantees on this system.
// Exit status is non-zero when any check fails.
//
// Usage:
//
//	scrubcheck [--backend name]
package main

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/joshuapare/scrubkit/heap"
	"github.com/joshuapare/scrubkit/locate"
	"github.com/joshuapare/scrubkit/transfer"
)

var failed int

func checkf(ok bool, name string) {
	if ok {
		fmt.Printf("ok   %s\n", name)
		return
	}
	failed++
	fmt.Printf("FAIL %s\n", name)
}

func payload(p unsafe.Pointer, n int) []byte {
	return unsafe.Slice((*byte)(p), n)
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

func checkHeap() {
	p := heap.Alloc(64)
	checkf(p != nil, "alloc returns a usable pointer")
	if p == nil {
		return
	}
	pb := payload(p, 64)
	for i := range pb {
		pb[i] = byte(i + 1)
	}

	q := heap.Realloc(p, 128)
	checkf(q != nil, "realloc grows the allocation")
	if q != nil {
		ok := true
		for i, b := range payload(q, 64) {
			ok = ok && b == byte(i+1)
		}
		checkf(ok, "realloc preserves the old prefix")
		heap.Free(q)
	}

	c := heap.Calloc(16, 8)
	checkf(c != nil && allZero(payload(c, 128)), "calloc hands out zeroed memory")
	heap.Free(c)

	a, err := heap.AllocAligned(256, 32)
	checkf(err == nil && uintptr(a)%256 == 0, "aligned payload is a multiple of 256")
	heap.Free(a)

	v := heap.Valloc(32)
	checkf(v != nil && uintptr(v)%uintptr(os.Getpagesize()) == 0, "valloc is page-aligned")
	heap.Free(v)

	z := heap.Alloc(0)
	checkf(z != nil, "zero-size alloc is releasable")
	heap.Free(z)
}

func checkTransfer() {
	r, w, err := os.Pipe()
	if err != nil {
		checkf(false, "pipe setup")
		return
	}
	defer r.Close()
	defer w.Close()

	buf := []byte("sensitive payload")
	n, werr := transfer.Write(int(w.Fd()), buf)
	checkf(werr == nil && n == 17, "write forwards the byte count")
	checkf(allZero(buf), "source buffer is zero after write")

	got := make([]byte, n)
	if _, rerr := r.Read(got); rerr == nil {
		checkf(string(got) == "sensitive payload", "data arrived intact before the scrub")
	} else {
		checkf(false, "pipe read")
	}
}

func main() {
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		if args[i] == "--backend" && i+1 < len(args) {
			os.Setenv(locate.BackendEnv, args[i+1])
			i++
		}
	}

	checkHeap()
	checkTransfer()

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "scrubcheck: %d check(s) failed\n", failed)
		os.Exit(1)
	}
	fmt.Println("scrubcheck: all checks passed")
}

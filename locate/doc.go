// Package locate resolves the real, unwrapped implementations that the
// allocator and transfer shims delegate to.
//
// # Overview
//
// The shims in heap and transfer add a scrubbing guarantee on top of an
// underlying allocator and the raw transfer primitives; they never manage
// memory or move bytes themselves. This package owns the binding to that
// underlying implementation: a named Provider registry, a one-shot resolution
// step, and a bootstrap path that keeps allocation usable while resolution is
// still in flight.
//
// # Resolution
//
// Resolution happens exactly once per Table (once per process for Default).
// The backend is chosen by the SCRUBKIT_BACKEND environment variable, read at
// resolution time; an empty value selects the memcall provider. Resolution
// moves through three states:
//
//	unresolved → resolving → resolved
//
// The transition into resolving is a compare-and-swap, so exactly one caller
// performs the lookup. Resolved is terminal: a later Ensure call is a no-op
// that returns immediately, reporting the original outcome.
//
// # Bootstrap window
//
// Code running inside the resolution step may itself need memory before a
// provider is bound. Those requests are served from a small, fixed-capacity
// scratch arena that only ever grows and is never freed. The arena capacity
// is a hard limit, not a heuristic: a request that does not fit is taken as
// real application demand and forces resolution; if resolution fails the
// request fails explicitly rather than silently succeeding.
//
// # Failure
//
// When the configured backend is unknown, every subsequent operation
// degrades to its native failure signal: Alloc returns nil, Free becomes a
// no-op, and Funcs returns an error wrapping ErrUnresolved. Nothing panics
// and nothing pretends to have succeeded.
//
// # Providers
//
// Two providers register themselves for the Default table:
//
//   - "memcall": page-backed off-heap allocation via github.com/awnumar/memcall
//   - "mmap": anonymous private mappings via golang.org/x/sys/unix
//
// Both bundle the raw unix write/sendto/sendmsg/writev primitives for the
// transfer shim. Blocks handed out by either provider are page-aligned.
// Tests register recording providers through the same Register call.
package locate

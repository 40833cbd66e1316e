package locate

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"
)

const (
	// BackendEnv names the environment variable that selects the backend
	// provider. It is read once, when resolution runs.
	BackendEnv = "SCRUBKIT_BACKEND"

	// DefaultBackend is used when BackendEnv is unset or empty.
	DefaultBackend = "memcall"
)

// Resolution states. Resolved is terminal for the life of the Table.
const (
	stateUnresolved int32 = iota
	stateResolving
	stateResolved
)

// Table holds the resolved implementation bundle for one process-wide shim
// instance. The zero value is not usable; call New.
//
// Register calls must happen before the first Ensure/Alloc; the provider map
// is not synchronized because registration is an init-time concern.
type Table struct {
	state atomic.Int32

	// err and funcs are written by the single resolution winner before the
	// state is stored as resolved, so readers that observe stateResolved
	// see consistent values.
	err   error
	funcs Provider

	providers map[string]Provider
	arena     arena
}

// New returns an empty Table with no providers registered.
func New() *Table {
	return &Table{providers: make(map[string]Provider)}
}

// Default is the process-wide table backing the package-level shims in heap
// and transfer. Built-in providers register themselves here at init.
var Default = New()

// Register adds a provider under its name, replacing any previous
// registration. Must not be called after resolution has started.
func (t *Table) Register(p Provider) {
	t.providers[p.Name] = p
}

// Ensure resolves the underlying implementation if that has not happened
// yet. It is idempotent: once resolution has run, Ensure returns immediately
// with the original outcome. A reentrant call that observes resolution in
// progress returns ErrResolving; allocation in that window is served by the
// bootstrap arena.
func (t *Table) Ensure() error {
	switch t.state.Load() {
	case stateResolved:
		return t.err
	case stateResolving:
		return ErrResolving
	}
	return t.resolve()
}

// resolve performs the one-shot lookup. Exactly one caller wins the CAS and
// binds the provider; everyone else observes resolving or resolved.
func (t *Table) resolve() error {
	if !t.state.CompareAndSwap(stateUnresolved, stateResolving) {
		if t.state.Load() == stateResolved {
			return t.err
		}
		return ErrResolving
	}

	name := os.Getenv(BackendEnv)
	if name == "" {
		name = DefaultBackend
	}
	if p, ok := t.providers[name]; ok {
		t.funcs = p
	} else {
		t.err = fmt.Errorf("%w: unknown backend %q", ErrUnresolved, name)
	}

	t.state.Store(stateResolved)
	return t.err
}

// Alloc obtains a raw block from the resolved provider. Before resolution
// completes the request is served from the bootstrap arena; a request the
// arena cannot hold is treated as real demand and forces resolution. Returns
// nil when no implementation is available.
func (t *Table) Alloc(size uintptr) unsafe.Pointer {
	if t.state.Load() == stateResolved {
		if t.err != nil {
			return nil
		}
		return t.funcs.Alloc(size)
	}
	if p := t.arena.take(size); p != nil {
		return p
	}
	if err := t.Ensure(); err != nil {
		return nil
	}
	return t.funcs.Alloc(size)
}

// Free hands a block back to the resolved provider. Arena blocks are
// bump-allocated and never released, so they are ignored; so is everything
// else while no implementation is available (a leak beats a crash).
func (t *Table) Free(p unsafe.Pointer, size uintptr) {
	if p == nil || t.arena.contains(p) {
		return
	}
	if t.Ensure() != nil {
		return
	}
	t.funcs.Free(p, size)
}

// FromArena reports whether p points into the bootstrap scratch arena.
func (t *Table) FromArena(p unsafe.Pointer) bool {
	return t.arena.contains(p)
}

// Funcs returns the resolved provider bundle, forcing resolution first.
func (t *Table) Funcs() (Provider, error) {
	if err := t.Ensure(); err != nil {
		return Provider{}, err
	}
	return t.funcs, nil
}

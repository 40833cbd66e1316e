package heap

import "errors"

var (
	// ErrInvalidAlignment indicates an aligned allocation with alignment zero.
	ErrInvalidAlignment = errors.New("heap: alignment must be non-zero")

	// ErrNoMemory indicates the underlying allocator failed or is unavailable.
	ErrNoMemory = errors.New("heap: underlying allocation failed")
)

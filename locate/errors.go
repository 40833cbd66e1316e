package locate

import "errors"

var (
	// ErrUnresolved indicates no underlying implementation is available:
	// resolution ran and failed, and the operation must fail rather than
	// silently succeed with unmanaged memory.
	ErrUnresolved = errors.New("locate: resolution not available")

	// ErrResolving indicates a reentrant call observed resolution in
	// progress. Allocation falls back to the bootstrap arena in this window.
	ErrResolving = errors.New("locate: resolution in progress")
)

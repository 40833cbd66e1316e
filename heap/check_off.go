//go:build !scrubdebug

package heap

import "github.com/joshuapare/scrubkit/internal/format"

// No-op hooks for normal builds. The scrubdebug build tag swaps in cookie
// stamping, release-time validation, and stderr diagnostics.

func stampRecord(*format.Record) {}

func checkRecord(*format.Record) bool { return true }

func debugf(string, ...any) {}

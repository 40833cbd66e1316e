package format

// Alignment utilities for record placement. Aligned allocations need the
// payload address rounded to the caller's boundary while keeping a full
// record immediately before it.

// AlignUp returns n rounded up to the next multiple of align. align must be
// non-zero but is not required to be a power of two; the arithmetic is
// ceil-multiply rather than masking so arbitrary alignments behave correctly.
//
// Example:
//
//	AlignUp(0, 8)   = 0
//	AlignUp(1, 8)   = 8
//	AlignUp(9, 8)   = 16
//	AlignUp(33, 24) = 48
func AlignUp(n, align uintptr) uintptr {
	return ((n + align - 1) / align) * align
}

package types

import "unsafe"

const (
	// PointerLength is the number of bytes taken by a native pointer.
	PointerLength = unsafe.Sizeof(uintptr(0))

	// MaxSize is the largest value of the address-size integer.
	MaxSize = ^uintptr(0)

	// NotFound is returned by search operations when nothing matches.
	NotFound = MaxSize

	// ReplacementCodePoint is substituted for invalid Unicode input.
	ReplacementCodePoint rune = 0xFFFD
)

type (
	// Opaque is the opaque pointer type carried across the ABI.
	Opaque = unsafe.Pointer

	// Size is the address-size unsigned integer.
	Size = uintptr
)

// Bool is the boolean enum laid out as a C int.
type Bool int32

const (
	// False is the false value.
	False Bool = iota

	// True is the true value.
	True
)

// BoolOf converts go bool to Bool.
func BoolOf(v bool) Bool {
	if v {
		return True
	}
	return False
}

// Go converts Bool to go bool. Any nonzero value is true.
func (b Bool) Go() bool {
	return b != False
}

// Range is the half-open index range [Start, End).
type Range struct {
	Start uintptr
	End   uintptr
}

// NewRange creates new range.
func NewRange(start, end uintptr) Range {
	return Range{Start: start, End: end}
}

// Len returns number of indexes covered by the range.
func (r Range) Len() uintptr {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Valid reports whether start <= end <= length.
func (r Range) Valid(length uintptr) bool {
	return r.Start <= r.End && r.End <= length
}

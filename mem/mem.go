package mem

import (
	"bytes"
	"unsafe"

	"github.com/outofforest/photon"
)

// Ptr is the pointer to a value whose size is known at runtime.
type Ptr struct {
	raw  unsafe.Pointer
	size uintptr
}

// New creates sized pointer.
func New(raw unsafe.Pointer, size uintptr) Ptr {
	return Ptr{raw: raw, size: size}
}

// To creates sized pointer to go value.
func To[T any](v *T) Ptr {
	return Ptr{raw: unsafe.Pointer(v), size: unsafe.Sizeof(*v)}
}

// As projects the pointee to type T. Nil is returned if sizes differ or pointer is nil.
func As[T any](p Ptr) *T {
	var v T
	if p.raw == nil || p.size != unsafe.Sizeof(v) {
		return nil
	}
	return (*T)(p.raw)
}

// Raw returns the address.
func (p Ptr) Raw() unsafe.Pointer {
	return p.raw
}

// Size returns the size of one element.
func (p Ptr) Size() uintptr {
	return p.size
}

// IsNil reports whether address is nil.
func (p Ptr) IsNil() bool {
	return p.raw == nil
}

// Bytes returns bytes of the pointee.
func (p Ptr) Bytes() []byte {
	return Bytes(p.raw, p.size)
}

// Bytes returns byte slice located at raw.
func Bytes(raw unsafe.Pointer, n uintptr) []byte {
	if raw == nil || n == 0 {
		return nil
	}
	return photon.SliceFromPointer[byte](raw, int(n))
}

// BytesOf returns bytes of go value.
func BytesOf[T comparable](v *T) []byte {
	return photon.NewFromValue(v).B
}

// Copy copies n bytes from src to dst. Regions may overlap.
func Copy(dst, src unsafe.Pointer, n uintptr) {
	if n == 0 || dst == src {
		return
	}
	copy(Bytes(dst, n), Bytes(src, n))
}

// Zero sets n bytes at p to zero.
func Zero(p unsafe.Pointer, n uintptr) {
	clear(Bytes(p, n))
}

// Equal compares n bytes at a and b.
func Equal(a, b unsafe.Pointer, n uintptr) bool {
	if n == 0 || a == b {
		return true
	}
	return bytes.Equal(Bytes(a, n), Bytes(b, n))
}

// Swap exchanges n bytes between non-overlapping regions a and b.
func Swap(a, b unsafe.Pointer, n uintptr) {
	if n == 0 || a == b {
		return
	}
	ab := Bytes(a, n)
	bb := Bytes(b, n)
	for i := range ab {
		ab[i], bb[i] = bb[i], ab[i]
	}
}

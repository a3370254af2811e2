package vec

import (
	"math/bits"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/outofforest/corestd/alloc"
	"github.com/outofforest/corestd/mem"
	"github.com/outofforest/corestd/slice"
	"github.com/outofforest/corestd/types"
)

var (
	// ErrOutOfRange is returned when index is beyond the used part of vec.
	ErrOutOfRange = errors.New("index out of range")

	// ErrSizeMismatch is returned when element sizes differ.
	ErrSizeMismatch = errors.New("element size mismatch")

	// ErrCapacity is returned when requested capacity is not greater than the current one.
	ErrCapacity = errors.New("capacity must grow")

	// ErrEmpty is returned when operation requires elements.
	ErrEmpty = errors.New("vec is empty")

	// ErrOverflow is returned when byte size does not fit the address-size integer.
	ErrOverflow = errors.New("size overflow")
)

// Vec is the owning growable buffer. Storage count is the capacity.
type Vec struct {
	len     uintptr
	storage slice.Slice
}

// New creates vec with capacity of one element.
func New(elemSize uintptr) (Vec, error) {
	return WithCapacity(elemSize, 1)
}

// WithCapacity creates vec with capacity slots.
func WithCapacity(elemSize, capacity uintptr) (Vec, error) {
	size, err := byteSize(elemSize, capacity)
	if err != nil {
		return Vec{storage: slice.New(0, elemSize, nil)}, err
	}
	if size == 0 {
		// Nothing to hold, buffer is allocated on first growth.
		return Vec{storage: slice.New(capacity, elemSize, nil)}, nil
	}
	raw := alloc.Default().Allocate(size)
	if raw == nil {
		return Vec{storage: slice.New(0, elemSize, nil)}, errors.WithStack(alloc.ErrOutOfMemory)
	}
	return Vec{storage: slice.New(capacity, elemSize, raw)}, nil
}

// FromExisting adopts storage allocated by the default allocator. Storage length is taken as capacity.
func FromExisting(length uintptr, storage slice.Slice) (Vec, error) {
	if length > storage.Len() {
		return Vec{}, errors.Wrapf(ErrOutOfRange, "length %d exceeds capacity %d", length, storage.Len())
	}
	return Vec{len: length, storage: storage}, nil
}

// Len returns number of used elements.
func (v *Vec) Len() uintptr {
	return v.len
}

// Cap returns number of allocated element slots.
func (v *Vec) Cap() uintptr {
	return v.storage.Len()
}

// ElemSize returns size of one element.
func (v *Vec) ElemSize() uintptr {
	return v.storage.ElemSize()
}

// IsEmpty reports whether vec has no elements.
func (v *Vec) IsEmpty() bool {
	return v.len == 0
}

// Raw returns address of the buffer.
func (v *Vec) Raw() unsafe.Pointer {
	return v.storage.Raw()
}

// AsSlice returns view of used elements. The view is valid until vec is modified.
func (v *Vec) AsSlice() slice.Slice {
	return slice.New(v.len, v.storage.ElemSize(), v.storage.Raw())
}

// Bytes returns go bytes backed by the used part of the buffer, valid until vec is modified.
func (v *Vec) Bytes() []byte {
	return v.AsSlice().AsBytes()
}

// Get returns address of index-th element or nil.
func (v *Vec) Get(index uintptr) unsafe.Pointer {
	return v.AsSlice().Get(index)
}

// First returns address of the first element or nil.
func (v *Vec) First() unsafe.Pointer {
	return v.AsSlice().First()
}

// Last returns address of the last element or nil.
func (v *Vec) Last() unsafe.Pointer {
	return v.AsSlice().Last()
}

// Push appends element, growing capacity 1.5 times if vec is full.
func (v *Vec) Push(elem unsafe.Pointer) error {
	if v.len == v.Cap() {
		if err := v.Reserve(grow(v.Cap())); err != nil {
			return err
		}
	}
	mem.Copy(v.at(v.len), elem, v.ElemSize())
	v.len++
	return nil
}

// Pop removes the last element and returns its address. Content stays intact until the next modification.
// Nil is returned if vec is empty.
func (v *Vec) Pop() unsafe.Pointer {
	if v.len == 0 {
		return nil
	}
	v.len--
	return v.at(v.len)
}

// Insert puts element at index shifting the tail up.
func (v *Vec) Insert(elem unsafe.Pointer, index uintptr) error {
	switch {
	case index == v.len:
		return v.Push(elem)
	case index > v.len:
		return errors.Wrapf(ErrOutOfRange, "index %d, length %d", index, v.len)
	}

	if v.len == v.Cap() {
		if err := v.Reserve(v.Cap() + 1); err != nil {
			return err
		}
	}
	elemSize := v.ElemSize()
	mem.Copy(v.at(index+1), v.at(index), (v.len-index)*elemSize)
	mem.Copy(v.at(index), elem, elemSize)
	v.len++
	return nil
}

// Remove deletes element at index shifting the tail down.
func (v *Vec) Remove(index uintptr) error {
	if index >= v.len {
		return errors.Wrapf(ErrOutOfRange, "index %d, length %d", index, v.len)
	}
	mem.Copy(v.at(index), v.at(index+1), (v.len-index-1)*v.ElemSize())
	v.len--
	return nil
}

// Extend appends all elements of s. Vec is left unchanged on failure.
func (v *Vec) Extend(s slice.Slice) error {
	if s.ElemSize() != v.ElemSize() {
		return errors.Wrapf(ErrSizeMismatch, "vec element size %d, slice element size %d", v.ElemSize(),
			s.ElemSize())
	}
	if s.Len() == 0 {
		return nil
	}
	required, carry := bits.Add(uint(v.len), uint(s.Len()), 0)
	if carry != 0 {
		return errors.WithStack(ErrOverflow)
	}
	src := s.Raw()
	if uintptr(required) > v.Cap() {
		// Source might be a view of this vec, so it has to be located again after reallocation.
		offset, owned := v.offsetOf(src)
		if err := v.Reserve(uintptr(required)); err != nil {
			return err
		}
		if owned {
			src = unsafe.Add(v.Raw(), offset)
		}
	}
	mem.Copy(v.at(v.len), src, s.ByteLen())
	v.len = uintptr(required)
	return nil
}

// Resize sets the number of used elements. New elements are zeroed.
func (v *Vec) Resize(length uintptr) error {
	if length <= v.len {
		v.len = length
		return nil
	}
	if length > v.Cap() {
		if err := v.Reserve(length); err != nil {
			return err
		}
	}
	mem.Zero(v.at(v.len), (length-v.len)*v.ElemSize())
	v.len = length
	return nil
}

// Reserve reallocates buffer to hold capacity elements. Capacity must be greater than the current one.
func (v *Vec) Reserve(capacity uintptr) error {
	if capacity <= v.Cap() {
		return errors.Wrapf(ErrCapacity, "requested %d, current %d", capacity, v.Cap())
	}
	return v.reallocate(capacity)
}

// Shrink reallocates buffer to fit used elements exactly. Empty vec can't be shrunk, use Free instead.
func (v *Vec) Shrink() error {
	if v.len == 0 {
		return errors.WithStack(ErrEmpty)
	}
	if v.len == v.Cap() {
		return nil
	}
	return v.reallocate(v.len)
}

// Clear removes all elements keeping the buffer.
func (v *Vec) Clear() {
	v.len = 0
}

// Clone creates deep copy of vec with capacity equal to its length, at least one.
func (v *Vec) Clone() (Vec, error) {
	c, err := WithCapacity(v.ElemSize(), max(v.len, 1))
	if err != nil {
		return c, err
	}
	if err := c.Extend(v.AsSlice()); err != nil {
		_ = c.Free()
		return Vec{}, err
	}
	return c, nil
}

// Free deallocates the buffer.
func (v *Vec) Free() error {
	if raw := v.storage.Raw(); raw != nil {
		if err := alloc.Default().Deallocate(&raw, v.Cap()*v.ElemSize()); err != nil {
			return err
		}
	}
	v.len = 0
	v.storage = slice.New(0, v.ElemSize(), nil)
	return nil
}

func (v *Vec) reallocate(capacity uintptr) error {
	elemSize := v.ElemSize()
	newSize, err := byteSize(elemSize, capacity)
	if err != nil {
		return err
	}

	raw := v.storage.Raw()
	switch {
	case raw == nil && newSize == 0:
	case raw == nil:
		raw = alloc.Default().Allocate(newSize)
		if raw == nil {
			return errors.WithStack(alloc.ErrOutOfMemory)
		}
	default:
		if err := alloc.Default().Reallocate(&raw, v.Cap()*elemSize, newSize); err != nil {
			return err
		}
	}
	v.storage = slice.New(capacity, elemSize, raw)
	return nil
}

func (v *Vec) offsetOf(p unsafe.Pointer) (uintptr, bool) {
	origin := uintptr(v.storage.Raw())
	if origin == 0 || uintptr(p) < origin || uintptr(p) >= origin+v.Cap()*v.ElemSize() {
		return 0, false
	}
	return uintptr(p) - origin, true
}

func (v *Vec) at(index uintptr) unsafe.Pointer {
	return unsafe.Add(v.storage.Raw(), index*v.ElemSize())
}

// grow returns ceil(1.5 * capacity), at least capacity + 1.
func grow(capacity uintptr) uintptr {
	hi, lo := bits.Mul(uint(capacity), 3)
	if hi != 0 {
		return types.MaxSize
	}
	next := uintptr((lo + 1) / 2)
	if lo == ^uint(0) {
		next = uintptr(lo/2 + 1)
	}
	return max(next, capacity+1)
}

func byteSize(elemSize, count uintptr) (uintptr, error) {
	hi, lo := bits.Mul(uint(elemSize), uint(count))
	if hi != 0 {
		return 0, errors.Wrapf(ErrOverflow, "%d elements of size %d", count, elemSize)
	}
	return uintptr(lo), nil
}

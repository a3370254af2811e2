package slice

import (
	"unsafe"

	"github.com/cespare/xxhash"
	"github.com/zeebo/blake3"

	"github.com/outofforest/corestd/mem"
	"github.com/outofforest/corestd/types"
)

// Slice is the non-owning view over count contiguous elements.
type Slice struct {
	count uintptr
	ptr   mem.Ptr
}

// New creates slice. No checks are done.
func New(count, elemSize uintptr, raw unsafe.Pointer) Slice {
	return Slice{count: count, ptr: mem.New(raw, elemSize)}
}

// Of creates slice viewing elements of go slice. Go slice must outlive the view.
func Of[T any](s []T) Slice {
	var v T
	return New(uintptr(len(s)), unsafe.Sizeof(v), unsafe.Pointer(unsafe.SliceData(s)))
}

// Bytes creates byte slice viewing b.
func Bytes(b []byte) Slice {
	return Of(b)
}

// Len returns number of elements.
func (s Slice) Len() uintptr {
	return s.count
}

// ElemSize returns size of one element.
func (s Slice) ElemSize() uintptr {
	return s.ptr.Size()
}

// Raw returns address of the first element.
func (s Slice) Raw() unsafe.Pointer {
	return s.ptr.Raw()
}

// Ptr returns element descriptor.
func (s Slice) Ptr() mem.Ptr {
	return s.ptr
}

// ByteLen returns number of bytes covered by the slice.
func (s Slice) ByteLen() uintptr {
	return s.count * s.ptr.Size()
}

// IsEmpty reports whether slice has no elements.
func (s Slice) IsEmpty() bool {
	return s.count == 0
}

// AsBytes returns go byte slice backed by the viewed memory.
func (s Slice) AsBytes() []byte {
	return mem.Bytes(s.ptr.Raw(), s.ByteLen())
}

// Get returns address of index-th element or nil if index is out of range.
func (s Slice) Get(index uintptr) unsafe.Pointer {
	if index >= s.count {
		return nil
	}
	return s.at(index)
}

// First returns address of the first element or nil if slice is empty.
func (s Slice) First() unsafe.Pointer {
	return s.Get(0)
}

// Last returns address of the last element or nil if slice is empty.
func (s Slice) Last() unsafe.Pointer {
	if s.count == 0 {
		return nil
	}
	return s.at(s.count - 1)
}

// Subslice returns view of elements in the range. Empty slice is returned if range is invalid.
func (s Slice) Subslice(r types.Range) Slice {
	if !r.Valid(s.count) {
		return New(0, s.ptr.Size(), nil)
	}
	return New(r.Len(), s.ptr.Size(), s.at(r.Start))
}

// All iterates over elements.
func (s Slice) All() func(func(uintptr, unsafe.Pointer) bool) {
	return func(yield func(uintptr, unsafe.Pointer) bool) {
		for i := range s.count {
			if !yield(i, s.at(i)) {
				return
			}
		}
	}
}

// Compare reports whether both slices have the same number of elements and the same bytes.
func (s Slice) Compare(other Slice) bool {
	if s.count != other.count || s.ByteLen() != other.ByteLen() {
		return false
	}
	return mem.Equal(s.ptr.Raw(), other.ptr.Raw(), s.ByteLen())
}

// Contains reports whether element exists in the slice.
func (s Slice) Contains(elem unsafe.Pointer) bool {
	return s.FindFirst(elem) != types.NotFound
}

// CountOf returns number of elements equal to elem.
func (s Slice) CountOf(elem unsafe.Pointer) uintptr {
	var count uintptr
	for i := range s.count {
		if s.equalAt(i, elem) {
			count++
		}
	}
	return count
}

// FindFirst returns index of the first element equal to elem or types.NotFound.
func (s Slice) FindFirst(elem unsafe.Pointer) uintptr {
	for i := range s.count {
		if s.equalAt(i, elem) {
			return i
		}
	}
	return types.NotFound
}

// FindLast returns index of the last element equal to elem or types.NotFound.
func (s Slice) FindLast(elem unsafe.Pointer) uintptr {
	for i := s.count; i > 0; i-- {
		if s.equalAt(i-1, elem) {
			return i - 1
		}
	}
	return types.NotFound
}

// StartsWith reports whether slice begins with the elements of pattern.
func (s Slice) StartsWith(pattern Slice) bool {
	if s.ptr.Size() != pattern.ptr.Size() || pattern.count > s.count {
		return false
	}
	return mem.Equal(s.ptr.Raw(), pattern.ptr.Raw(), pattern.ByteLen())
}

// EndsWith reports whether slice ends with the elements of pattern.
func (s Slice) EndsWith(pattern Slice) bool {
	if s.ptr.Size() != pattern.ptr.Size() || pattern.count > s.count {
		return false
	}
	if pattern.count == 0 {
		return true
	}
	return mem.Equal(s.at(s.count-pattern.count), pattern.ptr.Raw(), pattern.ByteLen())
}

// Fill copies elem into every slot.
func (s Slice) Fill(elem unsafe.Pointer) {
	for i := range s.count {
		mem.Copy(s.at(i), elem, s.ptr.Size())
	}
}

// FillRange copies elem into slots covered by the range. Nothing is done if range does not fit the slice.
func (s Slice) FillRange(elem unsafe.Pointer, r types.Range) {
	if !r.Valid(s.count) {
		return
	}
	for i := r.Start; i < r.End; i++ {
		mem.Copy(s.at(i), elem, s.ptr.Size())
	}
}

// Swap exchanges elements i and j. Nothing is done if any index is out of range.
func (s Slice) Swap(i, j uintptr) {
	if i >= s.count || j >= s.count || i == j {
		return
	}
	mem.Swap(s.at(i), s.at(j), s.ptr.Size())
}

// Reverse reverses order of elements.
func (s Slice) Reverse() {
	s.reverse(0, s.count)
}

// ShiftLeft rotates elements left by x mod count positions.
func (s Slice) ShiftLeft(x uintptr) {
	if s.count < 2 {
		return
	}
	s.rotate(x % s.count)
}

// ShiftRight rotates elements right by x mod count positions.
func (s Slice) ShiftRight(x uintptr) {
	if s.count < 2 {
		return
	}
	if x %= s.count; x != 0 {
		s.rotate(s.count - x)
	}
}

// CopyFrom copies bytes of src into s. Nothing is done if byte lengths differ. Regions must not overlap.
func (s Slice) CopyFrom(src Slice) {
	if s.ByteLen() != src.ByteLen() {
		return
	}
	mem.Copy(s.ptr.Raw(), src.ptr.Raw(), s.ByteLen())
}

// SwapWith exchanges bytes of both slices. Nothing is done if byte lengths differ.
func (s Slice) SwapWith(other Slice) {
	if s.ByteLen() != other.ByteLen() {
		return
	}
	mem.Swap(s.ptr.Raw(), other.ptr.Raw(), s.ByteLen())
}

// Move copies bytes of src into s and zeroes src. Nothing is done if byte lengths differ.
func (s Slice) Move(src Slice) {
	if s.ByteLen() != src.ByteLen() {
		return
	}
	mem.Copy(s.ptr.Raw(), src.ptr.Raw(), s.ByteLen())
	mem.Zero(src.ptr.Raw(), src.ByteLen())
}

// Hash returns 64-bit hash of the viewed bytes.
func (s Slice) Hash() uint64 {
	return xxhash.Sum64(s.AsBytes())
}

// Digest returns cryptographic digest of the viewed bytes.
func (s Slice) Digest() [32]byte {
	return blake3.Sum256(s.AsBytes())
}

func (s Slice) at(index uintptr) unsafe.Pointer {
	return unsafe.Add(s.ptr.Raw(), index*s.ptr.Size())
}

func (s Slice) equalAt(index uintptr, elem unsafe.Pointer) bool {
	return mem.Equal(s.at(index), elem, s.ptr.Size())
}

// rotate moves element k to the front using three reversals.
func (s Slice) rotate(k uintptr) {
	if k == 0 {
		return
	}
	s.reverse(0, k)
	s.reverse(k, s.count)
	s.reverse(0, s.count)
}

func (s Slice) reverse(from, to uintptr) {
	for to > from+1 {
		to--
		mem.Swap(s.at(from), s.at(to), s.ptr.Size())
		from++
	}
}

package heap

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/outofforest/corestd/alloc"
	"github.com/outofforest/corestd/mem"
)

// Heap is the owning box of a single value allocated by the default allocator.
type Heap struct {
	ptr mem.Ptr
}

// New allocates p.Size() bytes and copies the pointee there. If allocation fails returned cell has nil
// address but keeps the requested size.
func New(p mem.Ptr) (Heap, error) {
	raw := alloc.Default().Allocate(p.Size())
	if raw == nil {
		return Heap{ptr: mem.New(nil, p.Size())}, errors.WithStack(alloc.ErrOutOfMemory)
	}
	if !p.IsNil() {
		mem.Copy(raw, p.Raw(), p.Size())
	}
	return Heap{ptr: mem.New(raw, p.Size())}, nil
}

// Of boxes go value.
func Of[T any](v *T) (Heap, error) {
	return New(mem.To(v))
}

// As returns typed pointer to the boxed value or nil if size of T differs from the cell size.
func As[T any](h Heap) *T {
	return mem.As[T](h.ptr)
}

// Raw returns address of the value.
func (h Heap) Raw() unsafe.Pointer {
	return h.ptr.Raw()
}

// Size returns size of the value.
func (h Heap) Size() uintptr {
	return h.ptr.Size()
}

// Ptr returns sized pointer to the value.
func (h Heap) Ptr() mem.Ptr {
	return h.ptr
}

// IsNil reports whether cell holds no memory.
func (h Heap) IsNil() bool {
	return h.ptr.IsNil()
}

// Clone allocates new cell holding copy of the value.
func (h Heap) Clone() (Heap, error) {
	return New(h.ptr)
}

// Free deallocates the value. Freeing nil cell does nothing.
func (h *Heap) Free() error {
	raw := h.ptr.Raw()
	if raw == nil {
		return nil
	}
	if err := alloc.Default().Deallocate(&raw, h.ptr.Size()); err != nil {
		return err
	}
	h.ptr = mem.New(nil, h.ptr.Size())
	return nil
}

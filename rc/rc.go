package rc

import (
	"unsafe"

	"github.com/outofforest/corestd/heap"
	"github.com/outofforest/corestd/mem"
)

// state is shared by all the handles of the same value.
type state struct {
	refcount uintptr
	payload  heap.Heap
}

// Rc is the handle of reference-counted value. It is not safe for concurrent use, see Arc.
type Rc struct {
	cell heap.Heap
}

// New boxes the pointee with reference count of 1.
func New(p mem.Ptr) (Rc, error) {
	cell, err := newState(p)
	return Rc{cell: cell}, err
}

// Share increments reference count and returns new handle to the same value.
func (r Rc) Share() Rc {
	r.state().refcount++
	return Rc{cell: r.cell}
}

// Get returns the address of the value. It dangles once the last handle is freed.
func (r Rc) Get() unsafe.Pointer {
	if r.cell.IsNil() {
		return nil
	}
	return r.state().payload.Raw()
}

// Size returns size of the value.
func (r Rc) Size() uintptr {
	if r.cell.IsNil() {
		return 0
	}
	return r.state().payload.Size()
}

// Count returns number of live handles.
func (r Rc) Count() uintptr {
	if r.cell.IsNil() {
		return 0
	}
	return r.state().refcount
}

// PtrEq reports whether both handles refer to the same value.
func (r Rc) PtrEq(other Rc) bool {
	return r.cell.Raw() == other.cell.Raw()
}

// IsNil reports whether handle refers to nothing.
func (r Rc) IsNil() bool {
	return r.cell.IsNil()
}

// Free releases the handle. The value is deallocated when the last handle is freed.
func (r *Rc) Free() error {
	if r.cell.IsNil() {
		return nil
	}
	s := r.state()
	s.refcount--
	if err := release(&r.cell, s.refcount == 0); err != nil {
		// Handle stays live, so does its reference.
		s.refcount++
		return err
	}
	return nil
}

func (r Rc) state() *state {
	return (*state)(r.cell.Raw())
}

func newState(p mem.Ptr) (heap.Heap, error) {
	payload, err := heap.New(p)
	if err != nil {
		return heap.Heap{}, err
	}
	s := state{refcount: 1, payload: payload}
	cell, err := heap.Of(&s)
	if err != nil {
		_ = payload.Free()
		return heap.Heap{}, err
	}
	return cell, nil
}

// release frees the payload and then the state if last is true. Handle's cell is detached in any case.
func release(cell *heap.Heap, last bool) error {
	if !last {
		*cell = heap.Heap{}
		return nil
	}
	s := (*state)(cell.Raw())
	if err := s.payload.Free(); err != nil {
		return err
	}
	if err := cell.Free(); err != nil {
		return err
	}
	*cell = heap.Heap{}
	return nil
}

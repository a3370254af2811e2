package rc

import (
	"sync/atomic"
	"unsafe"

	"github.com/outofforest/corestd/heap"
	"github.com/outofforest/corestd/mem"
)

// Arc is the handle of reference-counted value which may be shared and freed from many goroutines.
// A single handle must still be used by one goroutine at a time.
type Arc struct {
	cell heap.Heap
}

// NewArc boxes the pointee with reference count of 1.
func NewArc(p mem.Ptr) (Arc, error) {
	cell, err := newState(p)
	return Arc{cell: cell}, err
}

// Share increments reference count and returns new handle to the same value.
func (a Arc) Share() Arc {
	atomic.AddUintptr(&a.state().refcount, 1)
	return Arc{cell: a.cell}
}

// Get returns the address of the value. It dangles once the last handle is freed.
func (a Arc) Get() unsafe.Pointer {
	if a.cell.IsNil() {
		return nil
	}
	return a.state().payload.Raw()
}

// Size returns size of the value.
func (a Arc) Size() uintptr {
	if a.cell.IsNil() {
		return 0
	}
	return a.state().payload.Size()
}

// Count returns number of live handles. The value may be outdated once returned.
func (a Arc) Count() uintptr {
	if a.cell.IsNil() {
		return 0
	}
	return atomic.LoadUintptr(&a.state().refcount)
}

// PtrEq reports whether both handles refer to the same value.
func (a Arc) PtrEq(other Arc) bool {
	return a.cell.Raw() == other.cell.Raw()
}

// IsNil reports whether handle refers to nothing.
func (a Arc) IsNil() bool {
	return a.cell.IsNil()
}

// Free releases the handle. The value is deallocated when the last handle is freed.
func (a *Arc) Free() error {
	if a.cell.IsNil() {
		return nil
	}
	s := a.state()
	if err := release(&a.cell, atomic.AddUintptr(&s.refcount, ^uintptr(0)) == 0); err != nil {
		// Handle stays live, so does its reference.
		atomic.AddUintptr(&s.refcount, 1)
		return err
	}
	return nil
}

func (a Arc) state() *state {
	return (*state)(a.cell.Raw())
}

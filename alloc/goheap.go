package alloc

import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"
)

// NewGoHeap creates allocator serving memory from the go heap.
func NewGoHeap() *GoHeap {
	return &GoHeap{
		blocks: map[unsafe.Pointer][]byte{},
	}
}

// GoHeap is the allocator keeping blocks allocated on the go heap alive until they are deallocated.
// Addresses produced by it must never be handed to C code.
type GoHeap struct {
	mu     sync.Mutex
	blocks map[unsafe.Pointer][]byte
}

// Allocate allocates memory.
func (h *GoHeap) Allocate(size uintptr) unsafe.Pointer {
	return allocate(h, size)
}

// AllocateZeroed allocates zeroed memory.
func (h *GoHeap) AllocateZeroed(size uintptr) unsafe.Pointer {
	return allocateZeroed(h, size)
}

// Reallocate resizes memory region.
func (h *GoHeap) Reallocate(p *unsafe.Pointer, oldSize, newSize uintptr) error {
	return reallocate(h, p, oldSize, newSize)
}

// Deallocate deallocates memory.
func (h *GoHeap) Deallocate(p *unsafe.Pointer, size uintptr) error {
	return deallocate(h, p, size)
}

func (h *GoHeap) malloc(size uintptr) unsafe.Pointer {
	// Go zeroes memory anyway.
	return h.calloc(size)
}

func (h *GoHeap) calloc(size uintptr) unsafe.Pointer {
	if size > uintptr(maxInt) {
		return nil
	}
	b := make([]byte, size)
	p := unsafe.Pointer(unsafe.SliceData(b))

	h.mu.Lock()
	defer h.mu.Unlock()

	h.blocks[p] = b
	return p
}

func (h *GoHeap) realloc(p unsafe.Pointer, oldSize, newSize uintptr) unsafe.Pointer {
	h.mu.Lock()
	b, exists := h.blocks[p]
	h.mu.Unlock()

	if !exists || uintptr(len(b)) != oldSize {
		return nil
	}

	np := h.calloc(newSize)
	if np == nil {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	copy(h.blocks[np], b)
	delete(h.blocks, p)
	return np
}

func (h *GoHeap) free(p unsafe.Pointer, size uintptr) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, exists := h.blocks[p]
	if !exists {
		return errors.WithStack(ErrInvalidAddress)
	}
	if uintptr(len(b)) != size {
		return errors.Wrapf(ErrInvalidAddress, "block size is %d, %d requested", len(b), size)
	}
	delete(h.blocks, p)
	return nil
}

const maxInt = int(^uint(0) >> 1)

//go:build cgo && !windows

package alloc

/*
#include <stdlib.h>

// C.malloc is wrapped by cgo to crash on failure, these report nil instead.
static void *core_malloc(size_t n) { return malloc(n); }
static void *core_calloc(size_t n) { return calloc(1, n); }
static void *core_realloc(void *p, size_t n) { return realloc(p, n); }
static void core_free(void *p) { free(p); }
*/
import "C"

import (
	"unsafe"
)

func newSystem() Allocator {
	return &CHeap{}
}

// CHeap is the allocator backed by the C library's general-purpose heap.
type CHeap struct{}

// Allocate allocates memory.
func (h *CHeap) Allocate(size uintptr) unsafe.Pointer {
	return allocate(h, size)
}

// AllocateZeroed allocates zeroed memory.
func (h *CHeap) AllocateZeroed(size uintptr) unsafe.Pointer {
	return allocateZeroed(h, size)
}

// Reallocate resizes memory region.
func (h *CHeap) Reallocate(p *unsafe.Pointer, oldSize, newSize uintptr) error {
	return reallocate(h, p, oldSize, newSize)
}

// Deallocate deallocates memory.
func (h *CHeap) Deallocate(p *unsafe.Pointer, size uintptr) error {
	return deallocate(h, p, size)
}

func (h *CHeap) malloc(size uintptr) unsafe.Pointer {
	return C.core_malloc(C.size_t(size))
}

func (h *CHeap) calloc(size uintptr) unsafe.Pointer {
	return C.core_calloc(C.size_t(size))
}

func (h *CHeap) realloc(p unsafe.Pointer, _, newSize uintptr) unsafe.Pointer {
	return C.core_realloc(p, C.size_t(newSize))
}

func (h *CHeap) free(p unsafe.Pointer, _ uintptr) error {
	C.core_free(p)
	return nil
}

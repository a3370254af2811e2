package main

/*
#include "core.h"

static inline void *core_call_allocate(const core_allocator *a, size_t size) {
	return a->allocate(a->ctx, size);
}

static inline void *core_call_allocate_zeroed(const core_allocator *a, size_t size) {
	return a->allocate_zeroed(a->ctx, size);
}

static inline core_error core_call_reallocate(const core_allocator *a, void **p, size_t old_size, size_t new_size) {
	return a->reallocate(a->ctx, p, old_size, new_size);
}

static inline core_error core_call_deallocate(const core_allocator *a, void **p, size_t size) {
	return a->deallocate(a->ctx, p, size);
}

static inline int core_allocator_complete(const core_allocator *a) {
	return a->allocate != NULL && a->allocate_zeroed != NULL && a->reallocate != NULL && a->deallocate != NULL;
}
*/
import "C"

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/outofforest/corestd/alloc"
	"github.com/outofforest/corestd/types"
)

func newForeignAllocator(vtable *C.core_allocator) (*foreignAllocator, error) {
	if vtable == nil || C.core_allocator_complete(vtable) == 0 {
		return nil, errors.New("allocator vtable is incomplete")
	}
	return &foreignAllocator{vtable: *vtable}, nil
}

// foreignAllocator forwards calls to the allocator implemented in C.
type foreignAllocator struct {
	vtable C.core_allocator
}

// Allocate allocates memory.
func (a *foreignAllocator) Allocate(size uintptr) unsafe.Pointer {
	return C.core_call_allocate(&a.vtable, C.size_t(size))
}

// AllocateZeroed allocates zeroed memory.
func (a *foreignAllocator) AllocateZeroed(size uintptr) unsafe.Pointer {
	return C.core_call_allocate_zeroed(&a.vtable, C.size_t(size))
}

// Reallocate resizes memory region.
func (a *foreignAllocator) Reallocate(p *unsafe.Pointer, oldSize, newSize uintptr) error {
	result := types.ErrorCode(C.core_call_reallocate(&a.vtable, p, C.size_t(oldSize), C.size_t(newSize)))
	if result.Failed() {
		return errors.Wrapf(alloc.ErrOutOfMemory, "reallocation from %d to %d bytes: %s", oldSize, newSize,
			types.Err(result))
	}
	return nil
}

// Deallocate deallocates memory.
func (a *foreignAllocator) Deallocate(p *unsafe.Pointer, size uintptr) error {
	if err := types.Err(types.ErrorCode(C.core_call_deallocate(&a.vtable, p, C.size_t(size)))); err != nil {
		return err
	}
	*p = nil
	return nil
}

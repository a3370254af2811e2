package alloc

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
)

var (
	// ErrOutOfMemory is returned when allocator is not able to provide requested memory.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrInvalidAddress is returned when address passed to the allocator was not produced by it.
	ErrInvalidAddress = errors.New("invalid address")
)

// Allocator manages untyped byte regions.
type Allocator interface {
	// Allocate returns uninitialized region of size bytes or nil.
	Allocate(size uintptr) unsafe.Pointer

	// AllocateZeroed returns zeroed region of size bytes or nil.
	AllocateZeroed(size uintptr) unsafe.Pointer

	// Reallocate resizes region preserving first min(oldSize, newSize) bytes. On success *p is set to the
	// new region. On failure *p is left unchanged.
	Reallocate(p *unsafe.Pointer, oldSize, newSize uintptr) error

	// Deallocate releases the region and sets *p to nil.
	Deallocate(p *unsafe.Pointer, size uintptr) error
}

var (
	systemOnce sync.Once
	system     Allocator
	current    atomic.Pointer[Allocator]
)

// System returns allocator backed by the platform heap.
func System() Allocator {
	systemOnce.Do(func() {
		system = newSystem()
	})
	return system
}

// Default returns process-wide allocator used by containers.
func Default() Allocator {
	if a := current.Load(); a != nil {
		return *a
	}
	return System()
}

// Use replaces the process-wide allocator. Returned function restores the previous one.
// Containers must be freed with the allocator which created them, so this is meant to be called before
// any container exists.
func Use(a Allocator) func() {
	previous := current.Swap(&a)
	return func() {
		current.Store(previous)
	}
}

// ZeroSized returns the sentinel address returned for zero-byte allocations.
func ZeroSized() unsafe.Pointer {
	return zeroSized
}

// backend is the minimal set of primitives provided by heap implementations.
type backend interface {
	malloc(size uintptr) unsafe.Pointer
	calloc(size uintptr) unsafe.Pointer
	// realloc returns nil on failure leaving the old region intact.
	realloc(p unsafe.Pointer, oldSize, newSize uintptr) unsafe.Pointer
	free(p unsafe.Pointer, size uintptr) error
}

func allocate(b backend, size uintptr) unsafe.Pointer {
	if size == 0 {
		return zeroSized
	}
	return b.malloc(size)
}

func allocateZeroed(b backend, size uintptr) unsafe.Pointer {
	if size == 0 {
		return zeroSized
	}
	return b.calloc(size)
}

func reallocate(b backend, p *unsafe.Pointer, oldSize, newSize uintptr) error {
	if *p == nil {
		return errors.WithStack(ErrInvalidAddress)
	}
	if *p == zeroSized || oldSize == 0 {
		if *p != zeroSized || oldSize != 0 {
			return errors.WithStack(ErrInvalidAddress)
		}
		np := allocate(b, newSize)
		if np == nil {
			return errors.WithStack(ErrOutOfMemory)
		}
		*p = np
		return nil
	}
	if newSize == 0 {
		if err := b.free(*p, oldSize); err != nil {
			return err
		}
		*p = zeroSized
		return nil
	}

	np := b.realloc(*p, oldSize, newSize)
	if np == nil {
		return errors.WithStack(ErrOutOfMemory)
	}
	*p = np
	return nil
}

func deallocate(b backend, p *unsafe.Pointer, size uintptr) error {
	if *p == nil {
		return errors.WithStack(ErrInvalidAddress)
	}
	if *p == zeroSized || size == 0 {
		if *p != zeroSized || size != 0 {
			return errors.WithStack(ErrInvalidAddress)
		}
		*p = nil
		return nil
	}
	if err := b.free(*p, size); err != nil {
		return err
	}
	*p = nil
	return nil
}

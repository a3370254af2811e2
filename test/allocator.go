package test

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/outofforest/corestd/alloc"
)

// AllocatorConfig stores configuration of allocator.
type AllocatorConfig struct {
	// FailAfter is the number of successful allocations after which allocator starts failing.
	// Zero means allocator never fails on its own.
	FailAfter uint64
}

// NewAllocator creates memory allocator used in tests.
func NewAllocator(config AllocatorConfig) *Allocator {
	return &Allocator{
		Tracker: alloc.NewTracker(alloc.NewGoHeap()),
		config:  config,
	}
}

// Allocator is the allocator implementation used in tests. It tracks every block and may be switched to
// the failing mode to exercise error paths.
type Allocator struct {
	*alloc.Tracker

	config AllocatorConfig

	mu        sync.Mutex
	succeeded uint64
	failing   bool
}

// Allocate allocates memory.
func (a *Allocator) Allocate(size uintptr) unsafe.Pointer {
	if !a.admit() {
		return nil
	}
	return a.Tracker.Allocate(size)
}

// AllocateZeroed allocates zeroed memory.
func (a *Allocator) AllocateZeroed(size uintptr) unsafe.Pointer {
	if !a.admit() {
		return nil
	}
	return a.Tracker.AllocateZeroed(size)
}

// Reallocate resizes memory region.
func (a *Allocator) Reallocate(p *unsafe.Pointer, oldSize, newSize uintptr) error {
	if !a.admit() {
		return errors.WithStack(alloc.ErrOutOfMemory)
	}
	return a.Tracker.Reallocate(p, oldSize, newSize)
}

// Fail makes every following allocation fail until Recover is called.
func (a *Allocator) Fail() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.failing = true
}

// Recover disables failing mode and resets the failure budget.
func (a *Allocator) Recover() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.failing = false
	a.succeeded = 0
	a.config.FailAfter = 0
}

// FailAfter makes allocator fail after n more successful allocations.
func (a *Allocator) FailAfter(n uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.succeeded = 0
	a.config.FailAfter = n
	if n == 0 {
		a.failing = true
	}
}

func (a *Allocator) admit() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.failing {
		return false
	}
	if a.config.FailAfter > 0 && a.succeeded >= a.config.FailAfter {
		a.failing = true
		return false
	}
	a.succeeded++
	return true
}

// UseAllocator installs new test allocator as the default one for the duration of the test. At the end of
// the test it verifies that all the blocks have been deallocated.
func UseAllocator(t *testing.T) *Allocator {
	a := NewAllocator(AllocatorConfig{})
	restore := alloc.Use(a)
	t.Cleanup(func() {
		restore()
		require.Zero(t, a.Live(), "memory leak detected")
	})
	return a
}

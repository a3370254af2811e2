//go:build windows

package alloc

import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

const heapZeroMemory = 0x00000008

var (
	kernel32           = windows.NewLazySystemDLL("kernel32.dll")
	procGetProcessHeap = kernel32.NewProc("GetProcessHeap")
	procHeapAlloc      = kernel32.NewProc("HeapAlloc")
	procHeapReAlloc    = kernel32.NewProc("HeapReAlloc")
	procHeapFree       = kernel32.NewProc("HeapFree")
)

func newSystem() Allocator {
	return &ProcessHeap{}
}

// ProcessHeap is the allocator backed by the windows process heap.
type ProcessHeap struct {
	once   sync.Once
	handle uintptr
}

// Allocate allocates memory.
func (h *ProcessHeap) Allocate(size uintptr) unsafe.Pointer {
	return allocate(h, size)
}

// AllocateZeroed allocates zeroed memory.
func (h *ProcessHeap) AllocateZeroed(size uintptr) unsafe.Pointer {
	return allocateZeroed(h, size)
}

// Reallocate resizes memory region.
func (h *ProcessHeap) Reallocate(p *unsafe.Pointer, oldSize, newSize uintptr) error {
	return reallocate(h, p, oldSize, newSize)
}

// Deallocate deallocates memory.
func (h *ProcessHeap) Deallocate(p *unsafe.Pointer, size uintptr) error {
	return deallocate(h, p, size)
}

func (h *ProcessHeap) heap() uintptr {
	h.once.Do(func() {
		h.handle, _, _ = procGetProcessHeap.Call()
	})
	return h.handle
}

func (h *ProcessHeap) malloc(size uintptr) unsafe.Pointer {
	return h.alloc(0, size)
}

func (h *ProcessHeap) calloc(size uintptr) unsafe.Pointer {
	return h.alloc(heapZeroMemory, size)
}

func (h *ProcessHeap) alloc(flags, size uintptr) unsafe.Pointer {
	heap := h.heap()
	if heap == 0 {
		return nil
	}
	r, _, _ := procHeapAlloc.Call(heap, flags, size)
	return unsafe.Pointer(r) //nolint:govet
}

func (h *ProcessHeap) realloc(p unsafe.Pointer, _, newSize uintptr) unsafe.Pointer {
	r, _, _ := procHeapReAlloc.Call(h.heap(), 0, uintptr(p), newSize)
	return unsafe.Pointer(r) //nolint:govet
}

func (h *ProcessHeap) free(p unsafe.Pointer, _ uintptr) error {
	r, _, err := procHeapFree.Call(h.heap(), 0, uintptr(p))
	if r == 0 {
		return errors.Wrapf(err, "HeapFree failed")
	}
	return nil
}

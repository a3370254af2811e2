//go:build unix

package alloc

import (
	"math/bits"
	"os"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
)

const minClassSize = 16

// Config stores configuration of the page heap.
type Config struct {
	// SpanSize is the size of region mapped at once to serve small allocations.
	SpanSize uint64

	// MaxSmallSize is the largest request served from spans. Larger requests are mapped directly.
	MaxSmallSize uint64

	// UseHugePages maps spans using huge pages. SpanSize must be a multiple of the huge page size then.
	UseHugePages bool
}

// DefaultConfig is the configuration used by the system allocator when the C heap is not available.
var DefaultConfig = Config{
	SpanSize:     1 << 20,
	MaxSmallSize: 1 << 15,
}

// NewPageHeap creates allocator serving small requests from size-classed free lists carved out of mapped
// spans and mapping larger requests directly.
func NewPageHeap(config Config) (*PageHeap, error) {
	pageSize := uint64(os.Getpagesize())
	switch {
	case config.MaxSmallSize < minClassSize:
		return nil, errors.Errorf("max small size %d is lower than %d", config.MaxSmallSize, minClassSize)
	case config.MaxSmallSize&(config.MaxSmallSize-1) != 0:
		return nil, errors.Errorf("max small size %d is not a power of two", config.MaxSmallSize)
	case config.SpanSize < config.MaxSmallSize:
		return nil, errors.Errorf("span size %d is lower than max small size %d", config.SpanSize,
			config.MaxSmallSize)
	case config.SpanSize%pageSize != 0:
		return nil, errors.Errorf("span size %d is not a multiple of page size %d", config.SpanSize, pageSize)
	}

	return &PageHeap{
		config:    config,
		pageSize:  uintptr(pageSize),
		freeLists: make([]unsafe.Pointer, classIndex(uintptr(config.MaxSmallSize))+1),
	}, nil
}

// PageHeap is the allocator working directly on memory mapped from the operating system.
type PageHeap struct {
	config   Config
	pageSize uintptr

	mu        sync.Mutex
	freeLists []unsafe.Pointer
	spans     []span
}

type span struct {
	origin unsafe.Pointer
	size   uintptr
}

// Allocate allocates memory.
func (h *PageHeap) Allocate(size uintptr) unsafe.Pointer {
	return allocate(h, size)
}

// AllocateZeroed allocates zeroed memory.
func (h *PageHeap) AllocateZeroed(size uintptr) unsafe.Pointer {
	return allocateZeroed(h, size)
}

// Reallocate resizes memory region.
func (h *PageHeap) Reallocate(p *unsafe.Pointer, oldSize, newSize uintptr) error {
	return reallocate(h, p, oldSize, newSize)
}

// Deallocate deallocates memory.
func (h *PageHeap) Deallocate(p *unsafe.Pointer, size uintptr) error {
	return deallocate(h, p, size)
}

// Release unmaps all the spans. Blocks allocated from spans become invalid. Large blocks stay owned by
// their holders.
func (h *PageHeap) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	for _, s := range h.spans {
		if uErr := unmapMemory(s.origin, s.size, h.config.UseHugePages); uErr != nil && err == nil {
			err = uErr
		}
	}
	h.spans = nil
	clear(h.freeLists)
	return err
}

func (h *PageHeap) malloc(size uintptr) unsafe.Pointer {
	if size > uintptr(h.config.MaxSmallSize) {
		p, err := mapMemory(roundUp(size, h.pageSize), false)
		if err != nil {
			return nil
		}
		return p
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	class := classIndex(size)
	if h.freeLists[class] == nil && !h.refill(class) {
		return nil
	}
	p := h.freeLists[class]
	h.freeLists[class] = *(*unsafe.Pointer)(p)
	return p
}

func (h *PageHeap) calloc(size uintptr) unsafe.Pointer {
	p := h.malloc(size)
	if p != nil && size <= uintptr(h.config.MaxSmallSize) {
		// Slots are recycled, mapped memory is zeroed by the kernel.
		clear(unsafe.Slice((*byte)(p), classSize(classIndex(size))))
	}
	return p
}

func (h *PageHeap) realloc(p unsafe.Pointer, oldSize, newSize uintptr) unsafe.Pointer {
	maxSmall := uintptr(h.config.MaxSmallSize)
	switch {
	case oldSize <= maxSmall && newSize <= maxSmall && classIndex(oldSize) == classIndex(newSize):
		return p
	case oldSize > maxSmall && newSize > maxSmall && roundUp(oldSize, h.pageSize) == roundUp(newSize, h.pageSize):
		return p
	}

	np := h.malloc(newSize)
	if np == nil {
		return nil
	}
	copy(unsafe.Slice((*byte)(np), min(oldSize, newSize)), unsafe.Slice((*byte)(p), min(oldSize, newSize)))
	if err := h.free(p, oldSize); err != nil {
		// Old region is intact, so the new one is released and failure is reported.
		_ = h.free(np, newSize)
		return nil
	}
	return np
}

func (h *PageHeap) free(p unsafe.Pointer, size uintptr) error {
	if size > uintptr(h.config.MaxSmallSize) {
		return unmapMemory(p, roundUp(size, h.pageSize), false)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	class := classIndex(size)
	*(*unsafe.Pointer)(p) = h.freeLists[class]
	h.freeLists[class] = p
	return nil
}

// refill maps new span and splits it into slots of the class.
func (h *PageHeap) refill(class int) bool {
	spanSize := uintptr(h.config.SpanSize)
	origin, err := mapMemory(spanSize, h.config.UseHugePages)
	if err != nil {
		return false
	}
	h.spans = append(h.spans, span{origin: origin, size: spanSize})

	slotSize := classSize(class)
	var head unsafe.Pointer
	for offset := (spanSize/slotSize - 1) * slotSize; ; offset -= slotSize {
		slot := unsafe.Add(origin, offset)
		*(*unsafe.Pointer)(slot) = head
		head = slot
		if offset == 0 {
			break
		}
	}
	h.freeLists[class] = head
	return true
}

func classIndex(size uintptr) int {
	if size <= minClassSize {
		return 0
	}
	return bits.Len(uint(size-1)) - bits.Len(minClassSize-1)
}

func classSize(class int) uintptr {
	return minClassSize << class
}

package alloc

import (
	"context"
	"sort"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/outofforest/logger"
)

// Stats stores counters collected by the tracker.
type Stats struct {
	Allocations   uint64
	Reallocations uint64
	Deallocations uint64
	Failures      uint64
	LiveBlocks    uint64
	LiveBytes     uint64
}

// NewTracker creates allocator recording every operation executed on the parent.
func NewTracker(parent Allocator) *Tracker {
	return &Tracker{
		parent: parent,
		live:   map[unsafe.Pointer]uintptr{},
		zero:   map[unsafe.Pointer]uint64{},
	}
}

// Tracker wraps allocator and tracks live blocks.
type Tracker struct {
	parent Allocator

	mu    sync.Mutex
	live  map[unsafe.Pointer]uintptr
	zero  map[unsafe.Pointer]uint64
	stats Stats
}

// Allocate allocates memory.
func (t *Tracker) Allocate(size uintptr) unsafe.Pointer {
	return t.record(t.parent.Allocate(size), size)
}

// AllocateZeroed allocates zeroed memory.
func (t *Tracker) AllocateZeroed(size uintptr) unsafe.Pointer {
	return t.record(t.parent.AllocateZeroed(size), size)
}

// Reallocate resizes memory region.
func (t *Tracker) Reallocate(p *unsafe.Pointer, oldSize, newSize uintptr) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.verify(*p, oldSize); err != nil {
		t.stats.Failures++
		return err
	}

	old := *p
	if err := t.parent.Reallocate(p, oldSize, newSize); err != nil {
		t.stats.Failures++
		return err
	}

	t.forget(old, oldSize)
	t.remember(*p, newSize)
	t.stats.Reallocations++
	return nil
}

// Deallocate deallocates memory.
func (t *Tracker) Deallocate(p *unsafe.Pointer, size uintptr) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.verify(*p, size); err != nil {
		t.stats.Failures++
		return err
	}

	old := *p
	if err := t.parent.Deallocate(p, size); err != nil {
		t.stats.Failures++
		return err
	}

	t.forget(old, size)
	t.stats.Deallocations++
	return nil
}

// Stats returns collected counters.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.stats
}

// Live returns number of blocks not deallocated yet.
func (t *Tracker) Live() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.stats.LiveBlocks
}

// Report logs the counters and every live block.
func (t *Tracker) Report(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	log := logger.Get(ctx)
	log.Info("Allocator report",
		zap.Uint64("allocations", t.stats.Allocations),
		zap.Uint64("reallocations", t.stats.Reallocations),
		zap.Uint64("deallocations", t.stats.Deallocations),
		zap.Uint64("failures", t.stats.Failures),
		zap.Uint64("liveBlocks", t.stats.LiveBlocks),
		zap.Uint64("liveBytes", t.stats.LiveBytes),
	)

	addresses := lo.Keys(t.live)
	sort.Slice(addresses, func(i, j int) bool {
		return uintptr(addresses[i]) < uintptr(addresses[j])
	})
	for _, p := range addresses {
		log.Warn("Live block", zap.Uintptr("address", uintptr(p)), zap.Uintptr("size", t.live[p]))
	}
	for p, count := range t.zero {
		log.Warn("Live zero-sized blocks", zap.Uintptr("address", uintptr(p)), zap.Uint64("count", count))
	}
}

func (t *Tracker) record(p unsafe.Pointer, size uintptr) unsafe.Pointer {
	t.mu.Lock()
	defer t.mu.Unlock()

	if p == nil {
		t.stats.Failures++
		return nil
	}
	t.remember(p, size)
	t.stats.Allocations++
	return p
}

func (t *Tracker) verify(p unsafe.Pointer, size uintptr) error {
	if size == 0 {
		if t.zero[p] == 0 {
			return errors.Wrapf(ErrInvalidAddress, "zero-sized block %#x is not live", uintptr(p))
		}
		return nil
	}

	liveSize, exists := t.live[p]
	if !exists {
		return errors.Wrapf(ErrInvalidAddress, "block %#x is not live", uintptr(p))
	}
	if liveSize != size {
		return errors.Wrapf(ErrInvalidAddress, "block %#x has size %d, %d passed", uintptr(p), liveSize, size)
	}
	return nil
}

func (t *Tracker) remember(p unsafe.Pointer, size uintptr) {
	t.stats.LiveBlocks++
	t.stats.LiveBytes += uint64(size)
	if size == 0 {
		t.zero[p]++
		return
	}
	t.live[p] = size
}

func (t *Tracker) forget(p unsafe.Pointer, size uintptr) {
	t.stats.LiveBlocks--
	t.stats.LiveBytes -= uint64(size)
	if size == 0 {
		if t.zero[p]--; t.zero[p] == 0 {
			delete(t.zero, p)
		}
		return
	}
	delete(t.live, p)
}

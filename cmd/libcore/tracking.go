package main

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/outofforest/corestd/alloc"
	"github.com/outofforest/logger"
)

// allocators keeps allocators installed through the C interface.
type allocators struct {
	mu             sync.Mutex
	restoreCustom  func()
	tracker        *alloc.Tracker
	restoreTracker func()
}

// install replaces the default allocator. Nil restores the system one.
func (a *allocators) install(custom alloc.Allocator) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tracker != nil {
		return errors.New("allocator can't be replaced while tracking is enabled")
	}
	if a.restoreCustom != nil {
		a.restoreCustom()
		a.restoreCustom = nil
	}
	if custom != nil {
		a.restoreCustom = alloc.Use(custom)
	}
	return nil
}

// track wraps the default allocator with tracker or removes the tracker.
func (a *allocators) track(enable bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch {
	case enable && a.tracker != nil:
		return errors.New("tracking is already enabled")
	case !enable && a.tracker == nil:
		return errors.New("tracking is not enabled")
	case enable:
		a.tracker = alloc.NewTracker(alloc.Default())
		a.restoreTracker = alloc.Use(a.tracker)
	default:
		if live := a.tracker.Live(); live > 0 {
			return errors.Errorf("tracker can't be removed, %d blocks are still live", live)
		}
		a.restoreTracker()
		a.tracker = nil
		a.restoreTracker = nil
	}
	return nil
}

// report logs the state of the tracker.
func (a *allocators) report(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tracker == nil {
		logger.Get(ctx).Warn("Allocator tracking is disabled", zap.Bool("tracking", false))
		return errors.New("tracking is not enabled")
	}
	a.tracker.Report(ctx)
	return nil
}

func newLogContext() context.Context {
	return logger.WithLogger(context.Background(), logger.New(logger.DefaultConfig))
}

//go:build !cgo && !unix && !windows

package alloc

func newSystem() Allocator {
	return NewGoHeap()
}

//go:build !cgo && unix

package alloc

import "github.com/samber/lo"

func newSystem() Allocator {
	return lo.Must(NewPageHeap(DefaultConfig))
}

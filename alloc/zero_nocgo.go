//go:build !cgo

package alloc

import "unsafe"

var zeroBlock uint64

var zeroSized = unsafe.Pointer(&zeroBlock)

//go:build cgo

package alloc

/*
char core_zero_block[8];
*/
import "C"

import "unsafe"

// zeroSized lives in C memory so it may be handed to C callers.
var zeroSized = unsafe.Pointer(&C.core_zero_block[0])

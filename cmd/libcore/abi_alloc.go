package main

/*
#include <stdlib.h>
#include "core.h"
*/
import "C"

import (
	"unsafe"

	"github.com/outofforest/corestd/alloc"
	"github.com/outofforest/corestd/types"
)

var installed allocators

func code(err error) C.core_error {
	return C.core_error(types.Code(err))
}

func cbool(v bool) C.core_bool {
	return C.core_bool(types.BoolOf(v))
}

//export core_set_allocator
func core_set_allocator(vtable *C.core_allocator) C.core_error {
	if vtable == nil {
		return code(installed.install(nil))
	}
	a, err := newForeignAllocator(vtable)
	if err != nil {
		return code(err)
	}
	return code(installed.install(a))
}

//export core_allocate
func core_allocate(size C.size_t) unsafe.Pointer {
	return alloc.Default().Allocate(uintptr(size))
}

//export core_allocate_zeroed
func core_allocate_zeroed(size C.size_t) unsafe.Pointer {
	return alloc.Default().AllocateZeroed(uintptr(size))
}

//export core_reallocate
func core_reallocate(p *unsafe.Pointer, oldSize, newSize C.size_t) C.core_error {
	return code(alloc.Default().Reallocate(p, uintptr(oldSize), uintptr(newSize)))
}

//export core_deallocate
func core_deallocate(p *unsafe.Pointer, size C.size_t) C.core_error {
	return code(alloc.Default().Deallocate(p, uintptr(size)))
}

//export core_alloc_tracking
func core_alloc_tracking(enable C.core_bool) C.core_error {
	return code(installed.track(types.Bool(enable).Go()))
}

//export core_alloc_report
func core_alloc_report() C.core_error {
	return code(installed.report(newLogContext()))
}

//export core_abort
func core_abort() {
	C.abort()
}

//export core_native_endianness
func core_native_endianness() C.core_endianness {
	return C.core_endianness(types.NativeEndianness())
}

//export core_current_arch
func core_current_arch() C.core_arch {
	return C.core_arch(types.CurrentArch())
}

//export core_current_os
func core_current_os() C.core_os {
	return C.core_os(types.CurrentOS())
}

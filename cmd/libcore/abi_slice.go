package main

/*
#include "core.h"
*/
import "C"

import (
	"unsafe"

	"github.com/outofforest/corestd/mem"
	"github.com/outofforest/corestd/slice"
	"github.com/outofforest/corestd/types"
)

func goSlice(s *C.core_slice) *slice.Slice {
	return ref[slice.Slice](s)
}

func goRange(r C.core_range) types.Range {
	return types.NewRange(uintptr(r.start), uintptr(r.end))
}

//export core_sized_ptr_new
func core_sized_ptr_new(raw unsafe.Pointer, size C.size_t) C.core_sized_ptr {
	return as[C.core_sized_ptr](mem.New(raw, uintptr(size)))
}

//export core_range_new
func core_range_new(start, end C.size_t) C.core_range {
	return C.core_range{start: start, end: end}
}

//export core_slice_new
func core_slice_new(count, elemSize C.size_t, raw unsafe.Pointer) C.core_slice {
	return as[C.core_slice](slice.New(uintptr(count), uintptr(elemSize), raw))
}

//export core_slice_get
func core_slice_get(s *C.core_slice, index C.size_t) unsafe.Pointer {
	return goSlice(s).Get(uintptr(index))
}

//export core_slice_first
func core_slice_first(s *C.core_slice) unsafe.Pointer {
	return goSlice(s).First()
}

//export core_slice_last
func core_slice_last(s *C.core_slice) unsafe.Pointer {
	return goSlice(s).Last()
}

//export core_slice_subslice
func core_slice_subslice(s *C.core_slice, r C.core_range) C.core_slice {
	return as[C.core_slice](goSlice(s).Subslice(goRange(r)))
}

//export core_slice_compare
func core_slice_compare(a, b *C.core_slice) C.core_bool {
	return cbool(goSlice(a).Compare(*goSlice(b)))
}

//export core_slice_contains
func core_slice_contains(s *C.core_slice, elem unsafe.Pointer) C.core_bool {
	return cbool(goSlice(s).Contains(elem))
}

//export core_slice_count_of
func core_slice_count_of(s *C.core_slice, elem unsafe.Pointer) C.size_t {
	return C.size_t(goSlice(s).CountOf(elem))
}

//export core_slice_find_first
func core_slice_find_first(s *C.core_slice, elem unsafe.Pointer) C.size_t {
	return C.size_t(goSlice(s).FindFirst(elem))
}

//export core_slice_find_last
func core_slice_find_last(s *C.core_slice, elem unsafe.Pointer) C.size_t {
	return C.size_t(goSlice(s).FindLast(elem))
}

//export core_slice_starts_with
func core_slice_starts_with(s, pattern *C.core_slice) C.core_bool {
	return cbool(goSlice(s).StartsWith(*goSlice(pattern)))
}

//export core_slice_ends_with
func core_slice_ends_with(s, pattern *C.core_slice) C.core_bool {
	return cbool(goSlice(s).EndsWith(*goSlice(pattern)))
}

//export core_slice_fill
func core_slice_fill(s *C.core_slice, elem unsafe.Pointer) {
	goSlice(s).Fill(elem)
}

//export core_slice_fill_range
func core_slice_fill_range(s *C.core_slice, elem unsafe.Pointer, r C.core_range) {
	goSlice(s).FillRange(elem, goRange(r))
}

//export core_slice_swap
func core_slice_swap(s *C.core_slice, i, j C.size_t) {
	goSlice(s).Swap(uintptr(i), uintptr(j))
}

//export core_slice_reverse
func core_slice_reverse(s *C.core_slice) {
	goSlice(s).Reverse()
}

//export core_slice_shift_left
func core_slice_shift_left(s *C.core_slice, x C.size_t) {
	goSlice(s).ShiftLeft(uintptr(x))
}

//export core_slice_shift_right
func core_slice_shift_right(s *C.core_slice, x C.size_t) {
	goSlice(s).ShiftRight(uintptr(x))
}

//export core_slice_copy_from
func core_slice_copy_from(dst, src *C.core_slice) {
	goSlice(dst).CopyFrom(*goSlice(src))
}

//export core_slice_swap_with
func core_slice_swap_with(a, b *C.core_slice) {
	goSlice(a).SwapWith(*goSlice(b))
}

//export core_slice_move
func core_slice_move(dst, src *C.core_slice) {
	goSlice(dst).Move(*goSlice(src))
}

//export core_slice_hash
func core_slice_hash(s *C.core_slice) C.uint64_t {
	return C.uint64_t(goSlice(s).Hash())
}

//export core_slice_digest
func core_slice_digest(s *C.core_slice, out *C.uint8_t) {
	digest := goSlice(s).Digest()
	copy(mem.Bytes(unsafe.Pointer(out), uintptr(len(digest))), mem.BytesOf(&digest))
}

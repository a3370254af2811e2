package main

/*
#include "core.h"
*/
import "C"

import (
	"unsafe"

	"github.com/outofforest/corestd/heap"
	"github.com/outofforest/corestd/mem"
	"github.com/outofforest/corestd/rc"
)

func goHeap(h *C.core_heap) *heap.Heap {
	return ref[heap.Heap](h)
}

func goPtr(p *C.core_sized_ptr) mem.Ptr {
	return *ref[mem.Ptr](p)
}

//export core_heap_new
func core_heap_new(p *C.core_sized_ptr) C.core_heap {
	h, _ := heap.New(goPtr(p))
	return as[C.core_heap](h)
}

//export core_heap_clone
func core_heap_clone(h *C.core_heap) C.core_heap {
	c, _ := goHeap(h).Clone()
	return as[C.core_heap](c)
}

//export core_heap_free
func core_heap_free(h *C.core_heap) C.core_error {
	return code(goHeap(h).Free())
}

//export core_rc_new
func core_rc_new(p *C.core_sized_ptr) C.core_rc {
	r, _ := rc.New(goPtr(p))
	return as[C.core_rc](r)
}

//export core_rc_share
func core_rc_share(r *C.core_rc) C.core_rc {
	return as[C.core_rc](ref[rc.Rc](r).Share())
}

//export core_rc_get
func core_rc_get(r *C.core_rc) unsafe.Pointer {
	return ref[rc.Rc](r).Get()
}

//export core_rc_count
func core_rc_count(r *C.core_rc) C.size_t {
	return C.size_t(ref[rc.Rc](r).Count())
}

//export core_rc_ptr_eq
func core_rc_ptr_eq(a, b *C.core_rc) C.core_bool {
	return cbool(ref[rc.Rc](a).PtrEq(*ref[rc.Rc](b)))
}

//export core_rc_free
func core_rc_free(r *C.core_rc) C.core_error {
	return code(ref[rc.Rc](r).Free())
}

//export core_arc_new
func core_arc_new(p *C.core_sized_ptr) C.core_arc {
	a, _ := rc.NewArc(goPtr(p))
	return as[C.core_arc](a)
}

//export core_arc_share
func core_arc_share(a *C.core_arc) C.core_arc {
	return as[C.core_arc](ref[rc.Arc](a).Share())
}

//export core_arc_get
func core_arc_get(a *C.core_arc) unsafe.Pointer {
	return ref[rc.Arc](a).Get()
}

//export core_arc_count
func core_arc_count(a *C.core_arc) C.size_t {
	return C.size_t(ref[rc.Arc](a).Count())
}

//export core_arc_free
func core_arc_free(a *C.core_arc) C.core_error {
	return code(ref[rc.Arc](a).Free())
}

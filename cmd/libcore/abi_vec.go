package main

/*
#include "core.h"
*/
import "C"

import (
	"unsafe"

	"github.com/outofforest/corestd/vec"
)

func goVec(v *C.core_vec) *vec.Vec {
	return ref[vec.Vec](v)
}

//export core_vec_new
func core_vec_new(elemSize C.size_t) C.core_vec {
	v, _ := vec.New(uintptr(elemSize))
	return as[C.core_vec](v)
}

//export core_vec_with_capacity
func core_vec_with_capacity(elemSize, capacity C.size_t) C.core_vec {
	v, _ := vec.WithCapacity(uintptr(elemSize), uintptr(capacity))
	return as[C.core_vec](v)
}

//export core_vec_from_existing
func core_vec_from_existing(length C.size_t, storage *C.core_slice, out *C.core_vec) C.core_error {
	v, err := vec.FromExisting(uintptr(length), *goSlice(storage))
	if err != nil {
		return code(err)
	}
	*goVec(out) = v
	return code(nil)
}

//export core_vec_len
func core_vec_len(v *C.core_vec) C.size_t {
	return C.size_t(goVec(v).Len())
}

//export core_vec_capacity
func core_vec_capacity(v *C.core_vec) C.size_t {
	return C.size_t(goVec(v).Cap())
}

//export core_vec_as_slice
func core_vec_as_slice(v *C.core_vec) C.core_slice {
	return as[C.core_slice](goVec(v).AsSlice())
}

//export core_vec_get
func core_vec_get(v *C.core_vec, index C.size_t) unsafe.Pointer {
	return goVec(v).Get(uintptr(index))
}

//export core_vec_first
func core_vec_first(v *C.core_vec) unsafe.Pointer {
	return goVec(v).First()
}

//export core_vec_last
func core_vec_last(v *C.core_vec) unsafe.Pointer {
	return goVec(v).Last()
}

//export core_vec_push
func core_vec_push(v *C.core_vec, elem unsafe.Pointer) C.core_error {
	return code(goVec(v).Push(elem))
}

//export core_vec_pop
func core_vec_pop(v *C.core_vec) unsafe.Pointer {
	return goVec(v).Pop()
}

//export core_vec_insert
func core_vec_insert(v *C.core_vec, elem unsafe.Pointer, index C.size_t) C.core_error {
	return code(goVec(v).Insert(elem, uintptr(index)))
}

//export core_vec_remove
func core_vec_remove(v *C.core_vec, index C.size_t) C.core_error {
	return code(goVec(v).Remove(uintptr(index)))
}

//export core_vec_extend
func core_vec_extend(v *C.core_vec, s *C.core_slice) C.core_error {
	return code(goVec(v).Extend(*goSlice(s)))
}

//export core_vec_resize
func core_vec_resize(v *C.core_vec, length C.size_t) C.core_error {
	return code(goVec(v).Resize(uintptr(length)))
}

//export core_vec_reserve
func core_vec_reserve(v *C.core_vec, capacity C.size_t) C.core_error {
	return code(goVec(v).Reserve(uintptr(capacity)))
}

//export core_vec_shrink
func core_vec_shrink(v *C.core_vec) C.core_error {
	return code(goVec(v).Shrink())
}

//export core_vec_clear
func core_vec_clear(v *C.core_vec) {
	goVec(v).Clear()
}

//export core_vec_clone
func core_vec_clone(v *C.core_vec, out *C.core_vec) C.core_error {
	c, err := goVec(v).Clone()
	if err != nil {
		return code(err)
	}
	*goVec(out) = c
	return code(nil)
}

//export core_vec_free
func core_vec_free(v *C.core_vec) C.core_error {
	return code(goVec(v).Free())
}

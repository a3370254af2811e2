package main

/*
#include "core.h"
*/
import "C"

import (
	"unsafe"

	"github.com/outofforest/corestd/cstr"
	"github.com/outofforest/corestd/str"
)

func goString(s *C.core_string) *str.String {
	return ref[str.String](s)
}

func goView(v *C.core_str) str.View {
	return *ref[str.View](v)
}

func cString(s str.String, _ error) C.core_string {
	return as[C.core_string](s)
}

func setErr(errOut *C.core_error, err error) {
	if errOut != nil {
		*errOut = code(err)
	}
}

//export core_string_new
func core_string_new() C.core_string {
	return cString(str.New())
}

//export core_string_with_capacity
func core_string_with_capacity(capacity C.size_t) C.core_string {
	return cString(str.WithCapacity(uintptr(capacity)))
}

//export core_string_from_str
func core_string_from_str(v *C.core_str) C.core_string {
	return cString(str.FromView(goView(v)))
}

//export core_string_from_i8
func core_string_from_i8(n C.int8_t) C.core_string {
	return cString(str.FromInt(int8(n)))
}

//export core_string_from_i16
func core_string_from_i16(n C.int16_t) C.core_string {
	return cString(str.FromInt(int16(n)))
}

//export core_string_from_i32
func core_string_from_i32(n C.int32_t) C.core_string {
	return cString(str.FromInt(int32(n)))
}

//export core_string_from_i64
func core_string_from_i64(n C.int64_t) C.core_string {
	return cString(str.FromInt(int64(n)))
}

//export core_string_from_u8
func core_string_from_u8(n C.uint8_t) C.core_string {
	return cString(str.FromUint(uint8(n)))
}

//export core_string_from_u16
func core_string_from_u16(n C.uint16_t) C.core_string {
	return cString(str.FromUint(uint16(n)))
}

//export core_string_from_u32
func core_string_from_u32(n C.uint32_t) C.core_string {
	return cString(str.FromUint(uint32(n)))
}

//export core_string_from_u64
func core_string_from_u64(n C.uint64_t) C.core_string {
	return cString(str.FromUint(uint64(n)))
}

//export core_string_from_f32
func core_string_from_f32(n C.float) C.core_string {
	return cString(str.FromFloat(float32(n)))
}

//export core_string_from_f64
func core_string_from_f64(n C.double) C.core_string {
	return cString(str.FromFloat(float64(n)))
}

//export core_string_push
func core_string_push(s *C.core_string, codePoint C.uint32_t) C.core_error {
	return code(goString(s).Push(rune(codePoint)))
}

//export core_string_pop
func core_string_pop(s *C.core_string) C.uint32_t {
	r, _ := goString(s).Pop()
	return C.uint32_t(r)
}

//export core_string_extend
func core_string_extend(s *C.core_string, codePoints *C.core_slice) C.core_error {
	return code(goString(s).Extend(*goSlice(codePoints)))
}

//export core_string_push_str
func core_string_push_str(s *C.core_string, v *C.core_str) C.core_error {
	return code(goString(s).PushStr(goView(v)))
}

//export core_string_len
func core_string_len(s *C.core_string) C.size_t {
	return C.size_t(goString(s).Len())
}

//export core_string_byte_len
func core_string_byte_len(s *C.core_string) C.size_t {
	return C.size_t(goString(s).ByteLen())
}

//export core_string_as_slice
func core_string_as_slice(s *C.core_string) C.core_slice {
	return as[C.core_slice](goString(s).AsSlice())
}

//export core_string_as_str
func core_string_as_str(s *C.core_string) C.core_str {
	return as[C.core_str](goString(s).AsView())
}

//export core_string_to_uppercase
func core_string_to_uppercase(s *C.core_string) {
	goString(s).ToUpper()
}

//export core_string_to_lowercase
func core_string_to_lowercase(s *C.core_string) {
	goString(s).ToLower()
}

//export core_string_clear
func core_string_clear(s *C.core_string) {
	goString(s).Clear()
}

//export core_string_clone
func core_string_clone(s *C.core_string) C.core_string {
	return cString(goString(s).Clone())
}

//export core_string_free
func core_string_free(s *C.core_string) C.core_error {
	return code(goString(s).Free())
}

//export core_str_from_cstring
func core_str_from_cstring(raw *C.char) C.core_str {
	return as[C.core_str](str.FromCString(unsafe.Pointer(raw)))
}

//export core_str_from_cstring_with_null
func core_str_from_cstring_with_null(raw *C.char) C.core_str {
	return as[C.core_str](str.FromCStringWithNull(unsafe.Pointer(raw)))
}

//export core_str_from_bytes
func core_str_from_bytes(s *C.core_slice) C.core_str {
	return as[C.core_str](str.FromBytes(*goSlice(s)))
}

//export core_str_len
func core_str_len(v *C.core_str) C.size_t {
	return C.size_t(goView(v).Len())
}

//export core_str_byte_len
func core_str_byte_len(v *C.core_str) C.size_t {
	return C.size_t(goView(v).ByteLen())
}

//export core_str_get
func core_str_get(v *C.core_str, r C.core_range) C.core_str {
	return as[C.core_str](goView(v).Get(goRange(r)))
}

//export core_str_is_ascii
func core_str_is_ascii(v *C.core_str) C.core_bool {
	return cbool(goView(v).IsASCII())
}

//export core_str_compare
func core_str_compare(a, b *C.core_str) C.core_bool {
	return cbool(goView(a).Compare(goView(b)))
}

//export core_str_contains
func core_str_contains(v, pattern *C.core_str) C.core_bool {
	return cbool(goView(v).Contains(goView(pattern)))
}

//export core_str_starts_with
func core_str_starts_with(v, pattern *C.core_str) C.core_bool {
	return cbool(goView(v).StartsWith(goView(pattern)))
}

//export core_str_ends_with
func core_str_ends_with(v, pattern *C.core_str) C.core_bool {
	return cbool(goView(v).EndsWith(goView(pattern)))
}

//export core_str_find
func core_str_find(v, pattern *C.core_str) C.size_t {
	return C.size_t(goView(v).Find(goView(pattern)))
}

//export core_str_find_last
func core_str_find_last(v, pattern *C.core_str) C.size_t {
	return C.size_t(goView(v).FindLast(goView(pattern)))
}

//export core_str_to_uppercase
func core_str_to_uppercase(v *C.core_str) {
	goView(v).ToUppercase()
}

//export core_str_to_lowercase
func core_str_to_lowercase(v *C.core_str) {
	goView(v).ToLowercase()
}

//export core_str_trim
func core_str_trim(v *C.core_str) C.core_str {
	return as[C.core_str](goView(v).Trim())
}

//export core_str_hash
func core_str_hash(v *C.core_str) C.uint64_t {
	return C.uint64_t(goView(v).Hash())
}

//export core_str_to_i8
func core_str_to_i8(v *C.core_str, errOut *C.core_error) C.int8_t {
	n, err := str.ParseInt[int8](goView(v))
	setErr(errOut, err)
	return C.int8_t(n)
}

//export core_str_to_i16
func core_str_to_i16(v *C.core_str, errOut *C.core_error) C.int16_t {
	n, err := str.ParseInt[int16](goView(v))
	setErr(errOut, err)
	return C.int16_t(n)
}

//export core_str_to_i32
func core_str_to_i32(v *C.core_str, errOut *C.core_error) C.int32_t {
	n, err := str.ParseInt[int32](goView(v))
	setErr(errOut, err)
	return C.int32_t(n)
}

//export core_str_to_i64
func core_str_to_i64(v *C.core_str, errOut *C.core_error) C.int64_t {
	n, err := str.ParseInt[int64](goView(v))
	setErr(errOut, err)
	return C.int64_t(n)
}

//export core_str_to_u8
func core_str_to_u8(v *C.core_str, errOut *C.core_error) C.uint8_t {
	n, err := str.ParseUint[uint8](goView(v))
	setErr(errOut, err)
	return C.uint8_t(n)
}

//export core_str_to_u16
func core_str_to_u16(v *C.core_str, errOut *C.core_error) C.uint16_t {
	n, err := str.ParseUint[uint16](goView(v))
	setErr(errOut, err)
	return C.uint16_t(n)
}

//export core_str_to_u32
func core_str_to_u32(v *C.core_str, errOut *C.core_error) C.uint32_t {
	n, err := str.ParseUint[uint32](goView(v))
	setErr(errOut, err)
	return C.uint32_t(n)
}

//export core_str_to_u64
func core_str_to_u64(v *C.core_str, errOut *C.core_error) C.uint64_t {
	n, err := str.ParseUint[uint64](goView(v))
	setErr(errOut, err)
	return C.uint64_t(n)
}

//export core_str_to_f32
func core_str_to_f32(v *C.core_str, errOut *C.core_error) C.float {
	n, err := str.ParseFloat[float32](goView(v))
	setErr(errOut, err)
	return C.float(n)
}

//export core_str_to_f64
func core_str_to_f64(v *C.core_str, errOut *C.core_error) C.double {
	n, err := str.ParseFloat[float64](goView(v))
	setErr(errOut, err)
	return C.double(n)
}

//export core_cstring_length
func core_cstring_length(raw *C.char) C.size_t {
	return C.size_t(cstr.Length(unsafe.Pointer(raw)))
}

//export core_cstring_compare
func core_cstring_compare(a, b *C.char) C.core_bool {
	return cbool(cstr.Compare(unsafe.Pointer(a), unsafe.Pointer(b)))
}

//go:build cgo

package main

import (
	"testing"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/outofforest/corestd/slice"
)

// outArg reinterprets p as the out-parameter type of f.
func outArg[In, Out any](_ func(In, Out), p unsafe.Pointer) Out {
	return *(*Out)(unsafe.Pointer(&p))
}

func useCountingAllocator(t *testing.T) {
	require.Zero(t, core_set_allocator(countingAllocator()))
	t.Cleanup(func() {
		failCounting(false)
		require.Zero(t, core_set_allocator(nil))
		require.Zero(t, countingLive(), "memory leak detected")
	})
}

func TestSetAllocator(t *testing.T) {
	requireT := require.New(t)

	requireT.NotZero(core_set_allocator(incompleteAllocator()))
	requireT.Zero(core_set_allocator(countingAllocator()))
	requireT.Zero(core_set_allocator(nil))
}

func TestForeignAllocateDeallocate(t *testing.T) {
	useCountingAllocator(t)
	requireT := require.New(t)

	p := core_allocate(16)
	requireT.NotNil(p)
	requireT.Equal(1, countingLive())
	requireT.Zero(core_deallocate(&p, 16))
	requireT.Nil(p)
	requireT.Zero(countingLive())

	// Foreign allocator reports the error, handle is left as is.
	requireT.NotZero(core_deallocate(&p, 16))

	p = core_allocate_zeroed(8)
	requireT.NotNil(p)
	requireT.Equal(uint64(0), *(*uint64)(p))
	requireT.Zero(core_deallocate(&p, 8))

	failCounting(true)
	requireT.Nil(core_allocate(8))
	requireT.Nil(core_allocate_zeroed(8))
	failCounting(false)
}

func TestForeignVec(t *testing.T) {
	useCountingAllocator(t)
	requireT := require.New(t)

	v := core_vec_new(4)
	for _, e := range []uint32{10, 20, 30} {
		requireT.Zero(core_vec_push(&v, unsafe.Pointer(&e)))
	}
	requireT.EqualValues(3, core_vec_len(&v))
	requireT.Equal(1, countingLive())

	requireT.EqualValues(30, *(*uint32)(core_vec_pop(&v)))
	requireT.EqualValues(2, core_vec_len(&v))
	requireT.EqualValues(20, *(*uint32)(core_vec_last(&v)))

	failCounting(true)
	e := uint32(40)
	requireT.Zero(core_vec_push(&v, unsafe.Pointer(&e)))
	requireT.NotZero(core_vec_push(&v, unsafe.Pointer(&e)))
	requireT.EqualValues(3, core_vec_len(&v))
	failCounting(false)

	requireT.Zero(core_vec_free(&v))
	requireT.Zero(core_vec_len(&v))
	requireT.Zero(countingLive())
}

func TestForeignZeroCapacity(t *testing.T) {
	useCountingAllocator(t)
	requireT := require.New(t)

	v := core_vec_with_capacity(4, 0)
	requireT.Nil(goVec(&v).Raw())
	requireT.Zero(countingLive())
	requireT.Zero(core_vec_free(&v))

	s := core_string_with_capacity(0)
	requireT.Nil(goString(&s).Raw())
	requireT.Zero(countingLive())
	requireT.Zero(core_string_push(&s, 'a'))
	requireT.Equal(1, countingLive())
	requireT.Zero(core_string_free(&s))
}

func TestForeignRc(t *testing.T) {
	useCountingAllocator(t)
	requireT := require.New(t)

	value := uint64(7)
	p := core_sized_ptr_new(unsafe.Pointer(&value), 8)
	r1 := core_rc_new(&p)
	requireT.Equal(2, countingLive())

	r2 := core_rc_share(&r1)
	r3 := core_rc_share(&r2)
	requireT.EqualValues(3, core_rc_count(&r3))

	requireT.Zero(core_rc_free(&r1))
	requireT.Zero(core_rc_free(&r2))
	requireT.Nil(core_rc_get(&r1))
	requireT.EqualValues(1, core_rc_count(&r3))
	requireT.EqualValues(7, *(*uint64)(core_rc_get(&r3)))
	requireT.Equal(2, countingLive())

	requireT.Zero(core_rc_free(&r3))
	requireT.Nil(core_rc_get(&r3))
	requireT.Zero(countingLive())

	failCounting(true)
	r := core_rc_new(&p)
	requireT.Nil(core_rc_get(&r))
	failCounting(false)
}

func TestForeignString(t *testing.T) {
	useCountingAllocator(t)
	requireT := require.New(t)

	s := core_string_new()
	requireT.Zero(core_string_push(&s, 0xE9))
	requireT.EqualValues(2, core_string_byte_len(&s))
	requireT.EqualValues(1, core_string_len(&s))
	requireT.NotZero(core_string_push(&s, 0xD800))

	requireT.EqualValues(0xE9, core_string_pop(&s))
	requireT.Zero(core_string_byte_len(&s))
	requireT.Zero(core_string_free(&s))
}

func TestStrToI64ErrorOut(t *testing.T) {
	requireT := require.New(t)

	b := []byte("42xyz-7")
	all := core_slice_new(7, 1, unsafe.Pointer(&b[0]))
	number := core_slice_subslice(&all, core_range_new(0, 2))
	garbage := core_slice_subslice(&all, core_range_new(2, 5))
	negative := core_slice_subslice(&all, core_range_new(5, 7))

	errOut := code(errors.New("unset"))
	v := core_str_from_bytes(&number)
	requireT.EqualValues(42, core_str_to_i64(&v, &errOut))
	requireT.Zero(errOut)

	v = core_str_from_bytes(&garbage)
	requireT.Zero(core_str_to_i64(&v, &errOut))
	requireT.NotZero(errOut)

	v = core_str_from_bytes(&negative)
	requireT.EqualValues(-7, core_str_to_i64(&v, nil))
}

func TestSliceDigest(t *testing.T) {
	requireT := require.New(t)

	b := []byte("digest me")
	s := core_slice_new(9, 1, unsafe.Pointer(&b[0]))

	var digest [32]byte
	core_slice_digest(&s, outArg(core_slice_digest, unsafe.Pointer(&digest[0])))
	requireT.Equal(slice.Bytes(b).Digest(), digest)
}

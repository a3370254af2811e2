package vec

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/corestd/alloc"
	"github.com/outofforest/corestd/slice"
	"github.com/outofforest/corestd/test"
	"github.com/outofforest/corestd/types"
)

func ptr[T any](v T) unsafe.Pointer {
	return unsafe.Pointer(&v)
}

func newVec(t *testing.T, elemSize uintptr) *Vec {
	v, err := New(elemSize)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, v.Free())
	})
	return &v
}

func values[T any](v *Vec) []T {
	result := make([]T, 0, v.Len())
	for _, p := range v.AsSlice().All() {
		result = append(result, *(*T)(p))
	}
	return result
}

func TestLayout(t *testing.T) {
	requireT := require.New(t)

	requireT.Equal(4*types.PointerLength, unsafe.Sizeof(Vec{}))
	requireT.Zero(unsafe.Offsetof(Vec{}.len))
	requireT.Equal(types.PointerLength, unsafe.Offsetof(Vec{}.storage))
}

func TestPushPop(t *testing.T) {
	test.UseAllocator(t)
	requireT := require.New(t)

	v := newVec(t, 4)
	requireT.NoError(v.Push(ptr[uint32](10)))
	requireT.NoError(v.Push(ptr[uint32](20)))
	requireT.NoError(v.Push(ptr[uint32](30)))

	requireT.EqualValues(3, v.Len())
	requireT.GreaterOrEqual(v.Cap(), uintptr(3))
	requireT.EqualValues(30, *(*uint32)(v.Last()))

	p := v.Pop()
	requireT.NotNil(p)
	requireT.EqualValues(30, *(*uint32)(p))
	requireT.EqualValues(2, v.Len())
	requireT.Equal([]uint32{10, 20}, values[uint32](v))
}

func TestPopEmpty(t *testing.T) {
	test.UseAllocator(t)
	requireT := require.New(t)

	v := newVec(t, 8)
	requireT.Nil(v.Pop())
	requireT.Nil(v.First())
	requireT.Nil(v.Last())
	requireT.Nil(v.Get(0))
	requireT.True(v.IsEmpty())
}

func TestGrowth(t *testing.T) {
	test.UseAllocator(t)
	requireT := require.New(t)

	v := newVec(t, 1)
	requireT.EqualValues(1, v.Cap())

	capacities := []uintptr{}
	for i := range 3 {
		requireT.NoError(v.Push(ptr(byte(i))))
		capacities = append(capacities, v.Cap())
	}
	requireT.Equal([]uintptr{1, 2, 3}, capacities)
	requireT.EqualValues(3, v.Len())

	for i := 3; i < 10; i++ {
		requireT.NoError(v.Push(ptr(byte(i))))
		capacities = append(capacities, v.Cap())
	}
	requireT.Equal([]uintptr{1, 2, 3, 5, 5, 8, 8, 8, 12, 12}, capacities)
	requireT.Equal([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, values[byte](v))
}

func TestGrow(t *testing.T) {
	requireT := require.New(t)

	requireT.EqualValues(1, grow(0))
	requireT.EqualValues(2, grow(1))
	requireT.EqualValues(3, grow(2))
	requireT.EqualValues(5, grow(3))
	requireT.EqualValues(6, grow(4))
	requireT.Equal(types.MaxSize, grow(types.MaxSize/2))
}

func TestPushRoundTrip(t *testing.T) {
	test.UseAllocator(t)
	requireT := require.New(t)

	v := newVec(t, 8)
	for i := range uint64(20) {
		requireT.NoError(v.Push(ptr(i * 3)))
	}
	before := append([]byte{}, v.AsSlice().AsBytes()...)

	requireT.NoError(v.Push(ptr[uint64](77)))
	requireT.EqualValues(77, *(*uint64)(v.Last()))
	v.Pop()

	requireT.EqualValues(20, v.Len())
	requireT.Equal(before, v.AsSlice().AsBytes())
}

func TestWithCapacity(t *testing.T) {
	test.UseAllocator(t)
	requireT := require.New(t)

	v, err := WithCapacity(2, 10)
	requireT.NoError(err)
	requireT.EqualValues(10, v.Cap())
	requireT.Zero(v.Len())
	requireT.EqualValues(2, v.ElemSize())
	requireT.NoError(v.Free())

	empty, err := WithCapacity(2, 0)
	requireT.NoError(err)
	requireT.Zero(empty.Cap())
	requireT.NoError(empty.Push(ptr[uint16](5)))
	requireT.EqualValues(1, empty.Cap())
	requireT.NoError(empty.Free())
}

// strictAllocator refuses zero-byte requests.
type strictAllocator struct {
	*test.Allocator
}

func (a strictAllocator) Allocate(size uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	return a.Allocator.Allocate(size)
}

func TestZeroByteBuffer(t *testing.T) {
	a := test.UseAllocator(t)
	t.Cleanup(alloc.Use(strictAllocator{Allocator: a}))
	requireT := require.New(t)

	empty, err := WithCapacity(4, 0)
	requireT.NoError(err)
	requireT.Nil(empty.Raw())
	requireT.Zero(empty.Cap())
	requireT.NoError(empty.Push(ptr[uint32](8)))
	requireT.Equal([]uint32{8}, values[uint32](&empty))
	requireT.NoError(empty.Free())

	unit, err := New(0)
	requireT.NoError(err)
	requireT.Nil(unit.Raw())
	requireT.EqualValues(1, unit.Cap())
	requireT.NoError(unit.Push(nil))
	requireT.NoError(unit.Push(nil))
	requireT.EqualValues(2, unit.Len())
	requireT.Nil(unit.Raw())
	requireT.NoError(unit.Free())
	requireT.Zero(unit.Len())
	requireT.Zero(unit.Cap())

	// Only the buffer of the non-empty element type is ever allocated.
	requireT.EqualValues(1, a.Stats().Allocations)
	requireT.Zero(a.Live())
}

func TestAllocationFailure(t *testing.T) {
	a := test.UseAllocator(t)
	requireT := require.New(t)

	a.Fail()
	v, err := New(4)
	requireT.ErrorIs(err, alloc.ErrOutOfMemory)
	requireT.Nil(v.Raw())
	requireT.NoError(v.Free())

	a.Recover()
	v, err = New(4)
	requireT.NoError(err)
	requireT.NoError(v.Push(ptr[uint32](1)))

	a.Fail()
	requireT.ErrorIs(v.Push(ptr[uint32](2)), alloc.ErrOutOfMemory)
	requireT.EqualValues(1, v.Len())
	requireT.EqualValues(1, v.Cap())
	requireT.Equal([]uint32{1}, values[uint32](&v))

	a.Recover()
	requireT.NoError(v.Free())
}

func TestInsertRemove(t *testing.T) {
	test.UseAllocator(t)
	requireT := require.New(t)

	v := newVec(t, 2)
	requireT.NoError(v.Insert(ptr[uint16](1), 0))
	requireT.NoError(v.Insert(ptr[uint16](3), 1))
	requireT.NoError(v.Insert(ptr[uint16](2), 1))
	requireT.NoError(v.Insert(ptr[uint16](0), 0))
	requireT.Equal([]uint16{0, 1, 2, 3}, values[uint16](v))

	requireT.ErrorIs(v.Insert(ptr[uint16](9), 5), ErrOutOfRange)

	requireT.NoError(v.Remove(1))
	requireT.Equal([]uint16{0, 2, 3}, values[uint16](v))
	requireT.NoError(v.Remove(2))
	requireT.Equal([]uint16{0, 2}, values[uint16](v))
	requireT.ErrorIs(v.Remove(2), ErrOutOfRange)
	requireT.NoError(v.Remove(0))
	requireT.NoError(v.Remove(0))
	requireT.True(v.IsEmpty())
}

func TestInsertGrowsByOne(t *testing.T) {
	test.UseAllocator(t)
	requireT := require.New(t)

	v := newVec(t, 4)
	requireT.NoError(v.Push(ptr[uint32](1)))
	requireT.NoError(v.Push(ptr[uint32](2)))
	requireT.NoError(v.Push(ptr[uint32](3)))
	requireT.EqualValues(3, v.Cap())

	requireT.NoError(v.Insert(ptr[uint32](0), 0))
	requireT.EqualValues(4, v.Cap())
	requireT.Equal([]uint32{0, 1, 2, 3}, values[uint32](v))
}

func TestExtend(t *testing.T) {
	a := test.UseAllocator(t)
	requireT := require.New(t)

	v := newVec(t, 4)
	requireT.NoError(v.Extend(slice.Of([]uint32{1, 2, 3})))
	requireT.NoError(v.Extend(slice.Of([]uint32{})))
	requireT.Equal([]uint32{1, 2, 3}, values[uint32](v))
	requireT.EqualValues(3, v.Cap())

	requireT.ErrorIs(v.Extend(slice.Of([]uint16{1})), ErrSizeMismatch)

	a.Fail()
	requireT.ErrorIs(v.Extend(slice.Of([]uint32{4, 5})), alloc.ErrOutOfMemory)
	requireT.Equal([]uint32{1, 2, 3}, values[uint32](v))
	requireT.EqualValues(3, v.Cap())
	a.Recover()

	// Extending with own elements survives reallocation.
	requireT.NoError(v.Extend(v.AsSlice()))
	requireT.Equal([]uint32{1, 2, 3, 1, 2, 3}, values[uint32](v))
}

func TestResize(t *testing.T) {
	test.UseAllocator(t)
	requireT := require.New(t)

	v := newVec(t, 1)
	requireT.NoError(v.Push(ptr[byte](7)))
	requireT.NoError(v.Push(ptr[byte](8)))
	v.Pop()

	requireT.NoError(v.Resize(4))
	requireT.Equal([]byte{7, 0, 0, 0}, values[byte](v))

	requireT.NoError(v.Resize(1))
	requireT.Equal([]byte{7}, values[byte](v))
	requireT.EqualValues(4, v.Cap())
}

func TestReserveShrinkClear(t *testing.T) {
	test.UseAllocator(t)
	requireT := require.New(t)

	v := newVec(t, 8)
	requireT.ErrorIs(v.Reserve(1), ErrCapacity)
	requireT.NoError(v.Reserve(16))
	requireT.EqualValues(16, v.Cap())

	requireT.ErrorIs(v.Shrink(), ErrEmpty)

	requireT.NoError(v.Push(ptr[uint64](1)))
	requireT.NoError(v.Push(ptr[uint64](2)))
	requireT.NoError(v.Shrink())
	requireT.EqualValues(2, v.Cap())
	requireT.NoError(v.Shrink())
	requireT.Equal([]uint64{1, 2}, values[uint64](v))

	v.Clear()
	requireT.Zero(v.Len())
	requireT.EqualValues(2, v.Cap())
}

func TestFromExisting(t *testing.T) {
	test.UseAllocator(t)
	requireT := require.New(t)

	raw := alloc.Default().Allocate(3 * 4)
	requireT.NotNil(raw)
	storage := slice.New(3, 4, raw)
	storage.Fill(ptr[uint32](6))

	_, err := FromExisting(4, storage)
	requireT.ErrorIs(err, ErrOutOfRange)

	v, err := FromExisting(2, storage)
	requireT.NoError(err)
	requireT.EqualValues(2, v.Len())
	requireT.EqualValues(3, v.Cap())
	requireT.Equal([]uint32{6, 6}, values[uint32](&v))

	requireT.NoError(v.Push(ptr[uint32](1)))
	requireT.NoError(v.Push(ptr[uint32](2)))
	requireT.Equal([]uint32{6, 6, 1, 2}, values[uint32](&v))
	requireT.NoError(v.Free())
}

func TestClone(t *testing.T) {
	test.UseAllocator(t)
	requireT := require.New(t)

	v := newVec(t, 2)
	requireT.NoError(v.Extend(slice.Of([]uint16{1, 2, 3})))

	c, err := v.Clone()
	requireT.NoError(err)
	requireT.NotEqual(v.Raw(), c.Raw())
	requireT.Equal(values[uint16](v), values[uint16](&c))
	requireT.NoError(c.Free())
}

func TestFree(t *testing.T) {
	a := test.UseAllocator(t)
	requireT := require.New(t)

	v, err := New(4)
	requireT.NoError(err)
	requireT.NoError(v.Push(ptr[uint32](1)))
	requireT.NoError(v.Push(ptr[uint32](2)))
	requireT.EqualValues(1, a.Live())

	requireT.NoError(v.Free())
	requireT.Nil(v.Raw())
	requireT.Zero(v.Len())
	requireT.Zero(v.Cap())
	requireT.Zero(a.Live())
	requireT.NoError(v.Free())
}

func TestAllocatorPairing(t *testing.T) {
	a := test.UseAllocator(t)
	requireT := require.New(t)

	vecs := make([]Vec, 0, 5)
	for i := range 5 {
		v, err := New(8)
		requireT.NoError(err)
		for j := range uint64(i * 10) {
			requireT.NoError(v.Push(ptr(j)))
		}
		vecs = append(vecs, v)
	}

	stats := a.Stats()
	requireT.EqualValues(5, stats.LiveBlocks)
	requireT.Equal(stats.Allocations, stats.Deallocations+stats.LiveBlocks)

	for i := range vecs {
		requireT.NoError(vecs[i].Free())
	}
	stats = a.Stats()
	requireT.Equal(stats.Allocations, stats.Deallocations)
}

func TestSliceDoesNotFreeVec(t *testing.T) {
	test.UseAllocator(t)
	requireT := require.New(t)

	v := newVec(t, 1)
	requireT.NoError(v.Push(ptr[byte](5)))
	func() {
		s := v.AsSlice()
		requireT.EqualValues(1, s.Len())
	}()
	requireT.EqualValues(5, *(*byte)(v.First()))
	requireT.NoError(v.Push(ptr[byte](6)))
}

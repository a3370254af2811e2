package str

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/corestd/slice"
	"github.com/outofforest/corestd/types"
)

func view(s string) View {
	return ViewOf([]byte(s))
}

func cs(s string) unsafe.Pointer {
	b := append([]byte(s), 0)
	return unsafe.Pointer(&b[0])
}

func TestParseInt(t *testing.T) {
	requireT := require.New(t)

	n, err := ParseInt[int64](view("42"))
	requireT.NoError(err)
	requireT.EqualValues(42, n)

	n, err = ParseInt[int64](view("xyz"))
	requireT.ErrorIs(err, ErrInvalidNumber)
	requireT.Zero(n)

	n8, err := ParseInt[int8](view("-128"))
	requireT.NoError(err)
	requireT.EqualValues(-128, n8)

	n8, err = ParseInt[int8](view("128"))
	requireT.ErrorIs(err, ErrInvalidNumber)
	requireT.Zero(n8)

	_, err = ParseInt[int32](view(""))
	requireT.ErrorIs(err, ErrInvalidNumber)
	_, err = ParseInt[int32](view("1.5"))
	requireT.ErrorIs(err, ErrInvalidNumber)
}

func TestParseUint(t *testing.T) {
	requireT := require.New(t)

	n, err := ParseUint[uint64](view("18446744073709551615"))
	requireT.NoError(err)
	requireT.EqualValues(uint64(math.MaxUint64), n)

	u8, err := ParseUint[uint8](view("256"))
	requireT.ErrorIs(err, ErrInvalidNumber)
	requireT.Zero(u8)

	u16, err := ParseUint[uint16](view("-1"))
	requireT.ErrorIs(err, ErrInvalidNumber)
	requireT.Zero(u16)
}

func TestParseFloat(t *testing.T) {
	requireT := require.New(t)

	f, err := ParseFloat[float64](view("2.5"))
	requireT.NoError(err)
	requireT.Equal(2.5, f)

	f32, err := ParseFloat[float32](view("0.1"))
	requireT.NoError(err)
	requireT.Equal(float32(0.1), f32)

	f, err = ParseFloat[float64](view("abc"))
	requireT.ErrorIs(err, ErrInvalidNumber)
	requireT.Zero(f)

	f, err = ParseFloat[float64](view("-1.25e2"))
	requireT.NoError(err)
	requireT.Equal(-125.0, f)

	f, err = ParseFloat[float64](view(".5"))
	requireT.NoError(err)
	requireT.Equal(0.5, f)

	for _, input := range []string{
		"0x1p4", "0x10p0", "-0X1p-2", "+0x1", "inf", "-Inf", "infinity", "NaN", "1_000.5", "", "+", " 1",
	} {
		f, err = ParseFloat[float64](view(input))
		requireT.ErrorIs(err, ErrInvalidNumber, input)
		requireT.Zero(f, input)

		f32, err = ParseFloat[float32](view(input))
		requireT.ErrorIs(err, ErrInvalidNumber, input)
		requireT.Zero(f32, input)
	}
}

func TestCString(t *testing.T) {
	requireT := require.New(t)

	v := FromCString(cs("héllo"))
	requireT.EqualValues(6, v.ByteLen())
	requireT.EqualValues(5, v.Len())
	requireT.Equal("héllo", v.GoString())

	withNull := FromCStringWithNull(cs("abc"))
	requireT.EqualValues(4, withNull.ByteLen())
	requireT.Equal([]byte{'a', 'b', 'c', 0}, withNull.Bytes())

	requireT.Zero(FromCString(nil).ByteLen())
	requireT.Zero(FromCStringWithNull(nil).ByteLen())
}

func TestFromBytes(t *testing.T) {
	requireT := require.New(t)

	requireT.Equal("abc", FromBytes(slice.Bytes([]byte("abc"))).GoString())
	requireT.Zero(FromBytes(slice.Of([]uint16{1, 2})).ByteLen())
}

func TestLen(t *testing.T) {
	requireT := require.New(t)

	requireT.EqualValues(3, view("a😀b").Len())
	requireT.EqualValues(6, view("a😀b").ByteLen())
	requireT.Zero(view("").Len())
	requireT.Equal(types.NotFound, ViewOf([]byte{'a', 0xE2, 0x82}).Len())
}

func TestGet(t *testing.T) {
	requireT := require.New(t)

	v := view("héllo")
	requireT.Equal("é", v.Get(types.NewRange(1, 3)).GoString())
	requireT.Equal("llo", v.Get(types.NewRange(3, 6)).GoString())

	// Range is not snapped to code point boundaries.
	requireT.Equal(types.NotFound, v.Get(types.NewRange(2, 4)).Len())

	requireT.Zero(v.Get(types.NewRange(4, 10)).ByteLen())
}

func TestPredicates(t *testing.T) {
	requireT := require.New(t)

	v := view("żółw i żaba")

	requireT.False(v.IsASCII())
	requireT.True(view("plain").IsASCII())
	requireT.True(view("").IsASCII())

	requireT.True(v.Compare(view("żółw i żaba")))
	requireT.False(v.Compare(view("żółw")))

	requireT.True(v.Contains(view("i ż")))
	requireT.False(v.Contains(view("zaba")))
	requireT.True(v.StartsWith(view("żół")))
	requireT.False(v.StartsWith(view("aba")))
	requireT.True(v.EndsWith(view("aba")))
	requireT.False(v.EndsWith(view("żół")))

	invalid := ViewOf([]byte{'a', 0xFF})
	requireT.False(invalid.StartsWith(view("a")))
	requireT.False(invalid.EndsWith(view("")))
	requireT.False(invalid.Contains(view("a")))
}

func TestFind(t *testing.T) {
	requireT := require.New(t)

	v := view("żaba żaba")

	requireT.EqualValues(0, v.Find(view("ża")))
	requireT.EqualValues(5, v.FindLast(view("ża")))
	requireT.EqualValues(1, v.Find(view("aba")))
	requireT.EqualValues(6, v.FindLast(view("aba")))
	requireT.Equal(types.NotFound, v.Find(view("x")))
	requireT.Equal(types.NotFound, v.FindLast(view("x")))
	requireT.Equal(types.NotFound, ViewOf([]byte{0xFF, 'a'}).Find(view("a")))

	// Single occurrence gives the same index from both sides.
	requireT.Equal(v.Find(view(" ")), v.FindLast(view(" ")))
}

func TestCaseConversion(t *testing.T) {
	requireT := require.New(t)

	b := []byte("MiXeD ąĘ 123")
	v := ViewOf(b)

	v.ToUppercase()
	requireT.Equal("MIXED ąĘ 123", string(b))
	v.ToLowercase()
	requireT.Equal("mixed ąĘ 123", string(b))
}

func TestTrim(t *testing.T) {
	requireT := require.New(t)

	requireT.Equal("a b", view(" \t a b\r\n").Trim().GoString())
	requireT.Equal("ab", view("ab").Trim().GoString())
	requireT.Zero(view(" \n ").Trim().ByteLen())
	requireT.Zero(view("").Trim().ByteLen())
}

func TestRunes(t *testing.T) {
	requireT := require.New(t)

	offsets := []uintptr{}
	runes := []rune{}
	for offset, r := range ViewOf([]byte{'a', 0xC3, 0xA9, 0xFF, 'b'}).Runes() {
		offsets = append(offsets, offset)
		runes = append(runes, r)
	}
	requireT.Equal([]uintptr{0, 1, 3, 4}, offsets)
	requireT.Equal([]rune{'a', 0xE9, types.ReplacementCodePoint, 'b'}, runes)
}

func TestHash(t *testing.T) {
	requireT := require.New(t)

	requireT.Equal(view("same").Hash(), view("same").Hash())
	requireT.NotEqual(view("same").Hash(), view("Same").Hash())
}

package str

import (
	"bytes"
	"strconv"
	"unicode/utf8"
	"unsafe"

	"fortio.org/safecast"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/outofforest/corestd/cstr"
	"github.com/outofforest/corestd/slice"
	"github.com/outofforest/corestd/types"
)

// ErrInvalidNumber is returned when view does not contain decimal numeral fitting the type.
var ErrInvalidNumber = errors.New("invalid number")

const asciiSpace = " \t\n\v\f\r"

// View is the non-owning view over UTF-8 bytes.
type View struct {
	s slice.Slice
}

// FromCString creates view of bytes preceding the NUL terminator.
func FromCString(raw unsafe.Pointer) View {
	return View{s: slice.New(cstr.Length(raw), 1, raw)}
}

// FromCStringWithNull creates view of C string including the NUL terminator.
func FromCStringWithNull(raw unsafe.Pointer) View {
	if raw == nil {
		return View{s: slice.New(0, 1, nil)}
	}
	return View{s: slice.New(cstr.Length(raw)+1, 1, raw)}
}

// FromBytes creates view of byte slice. Empty view is returned if element size is not 1.
func FromBytes(s slice.Slice) View {
	if s.ElemSize() != 1 {
		return View{s: slice.New(0, 1, nil)}
	}
	return View{s: s}
}

// ViewOf creates view of go bytes. Bytes must outlive the view.
func ViewOf(b []byte) View {
	return View{s: slice.Bytes(b)}
}

// Len returns number of code points or types.NotFound if bytes are not valid UTF-8.
func (v View) Len() uintptr {
	b := v.Bytes()
	if !utf8.Valid(b) {
		return types.NotFound
	}
	return uintptr(utf8.RuneCount(b))
}

// ByteLen returns number of bytes.
func (v View) ByteLen() uintptr {
	return v.s.Len()
}

// Raw returns address of the first byte.
func (v View) Raw() unsafe.Pointer {
	return v.s.Raw()
}

// AsSlice returns byte slice of the view.
func (v View) AsSlice() slice.Slice {
	return v.s
}

// Bytes returns go bytes backed by the viewed memory.
func (v View) Bytes() []byte {
	return v.s.AsBytes()
}

// Get returns view of bytes in the range. Range is not snapped to code point boundaries.
func (v View) Get(r types.Range) View {
	return View{s: v.s.Subslice(r)}
}

// IsASCII reports whether all bytes are ASCII.
func (v View) IsASCII() bool {
	for _, c := range v.Bytes() {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Compare reports whether both views contain the same bytes.
func (v View) Compare(other View) bool {
	return bytes.Equal(v.Bytes(), other.Bytes())
}

// Contains reports whether pattern occurs in the view.
func (v View) Contains(pattern View) bool {
	return v.Find(pattern) != types.NotFound
}

// StartsWith reports whether view begins with pattern. False is returned for invalid UTF-8.
func (v View) StartsWith(pattern View) bool {
	b, p, ok := validPair(v, pattern)
	return ok && bytes.HasPrefix(b, p)
}

// EndsWith reports whether view ends with pattern. False is returned for invalid UTF-8.
func (v View) EndsWith(pattern View) bool {
	b, p, ok := validPair(v, pattern)
	return ok && bytes.HasSuffix(b, p)
}

// Find returns code point index of the first occurrence of pattern. types.NotFound is returned if
// pattern does not occur or any of the views is not valid UTF-8.
func (v View) Find(pattern View) uintptr {
	b, p, ok := validPair(v, pattern)
	if !ok {
		return types.NotFound
	}
	return runeIndex(b, bytes.Index(b, p))
}

// FindLast returns code point index of the last occurrence of pattern. types.NotFound is returned if
// pattern does not occur or any of the views is not valid UTF-8.
func (v View) FindLast(pattern View) uintptr {
	b, p, ok := validPair(v, pattern)
	if !ok {
		return types.NotFound
	}
	return runeIndex(b, bytes.LastIndex(b, p))
}

// ToUppercase converts ASCII letters to upper case in place.
func (v View) ToUppercase() {
	b := v.Bytes()
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
}

// ToLowercase converts ASCII letters to lower case in place.
func (v View) ToLowercase() {
	b := v.Bytes()
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}
}

// Trim returns view without leading and trailing ASCII whitespace.
func (v View) Trim() View {
	b := v.Bytes()
	start := len(b) - len(bytes.TrimLeft(b, asciiSpace))
	end := len(bytes.TrimRight(b, asciiSpace))
	if start >= end {
		return View{s: slice.New(0, 1, v.s.Raw())}
	}
	return v.Get(types.NewRange(uintptr(start), uintptr(end)))
}

// Runes iterates over code points yielding byte offset of each one. Invalid bytes are yielded as
// types.ReplacementCodePoint.
func (v View) Runes() func(func(uintptr, rune) bool) {
	return func(yield func(uintptr, rune) bool) {
		b := v.Bytes()
		for offset := 0; offset < len(b); {
			r, size := utf8.DecodeRune(b[offset:])
			if r == utf8.RuneError && size == 1 {
				r = types.ReplacementCodePoint
			}
			if !yield(uintptr(offset), r) {
				return
			}
			offset += size
		}
	}
}

// Hash returns 64-bit hash of the bytes.
func (v View) Hash() uint64 {
	return v.s.Hash()
}

// GoString returns copy of the bytes as go string.
func (v View) GoString() string {
	return string(v.Bytes())
}

// ParseInt parses view as signed decimal numeral.
func ParseInt[T constraints.Signed](v View) (T, error) {
	n, err := strconv.ParseInt(v.GoString(), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidNumber, "parsing %q: %s", v.GoString(), err)
	}
	return narrow[T](n, v)
}

// ParseUint parses view as unsigned decimal numeral.
func ParseUint[T constraints.Unsigned](v View) (T, error) {
	n, err := strconv.ParseUint(v.GoString(), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidNumber, "parsing %q: %s", v.GoString(), err)
	}
	return narrow[T](n, v)
}

// ParseFloat parses view as decimal floating point numeral with optional fraction and exponent.
// Hexadecimal, infinity and NaN forms are rejected.
func ParseFloat[T constraints.Float](v View) (T, error) {
	if !isDecimal(v.Bytes()) {
		return 0, errors.Wrapf(ErrInvalidNumber, "parsing %q: not a decimal numeral", v.GoString())
	}
	var zero T
	n, err := strconv.ParseFloat(v.GoString(), int(unsafe.Sizeof(zero))*8)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidNumber, "parsing %q: %s", v.GoString(), err)
	}
	return T(n), nil
}

func narrow[T constraints.Integer, N int64 | uint64](n N, v View) (T, error) {
	result, err := safecast.Conv[T](n)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidNumber, "parsing %q: %s", v.GoString(), err)
	}
	return result, nil
}

// isDecimal reports whether b contains only the characters of a decimal float numeral and does not
// start with the hexadecimal prefix.
func isDecimal(b []byte) bool {
	if len(b) > 0 && (b[0] == '+' || b[0] == '-') {
		b = b[1:]
	}
	if len(b) >= 2 && b[0] == '0' && (b[1] == 'x' || b[1] == 'X') {
		return false
	}
	for _, c := range b {
		switch {
		case '0' <= c && c <= '9', c == '.', c == 'e', c == 'E', c == '+', c == '-':
		default:
			return false
		}
	}
	return len(b) > 0
}

func validPair(v, pattern View) ([]byte, []byte, bool) {
	b := v.Bytes()
	p := pattern.Bytes()
	if !utf8.Valid(b) || !utf8.Valid(p) {
		return nil, nil, false
	}
	return b, p, true
}

func runeIndex(b []byte, index int) uintptr {
	if index < 0 {
		return types.NotFound
	}
	return uintptr(utf8.RuneCount(b[:index]))
}

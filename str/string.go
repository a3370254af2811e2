package str

import (
	"strconv"
	"unicode/utf8"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/outofforest/corestd/slice"
	"github.com/outofforest/corestd/types"
	"github.com/outofforest/corestd/vec"
)

// ErrInvalidCodePoint is returned when integer is not a Unicode scalar value.
var ErrInvalidCodePoint = errors.New("invalid code point")

// String is the owning UTF-8 text buffer.
type String struct {
	v vec.Vec
}

// New creates empty string.
func New() (String, error) {
	v, err := vec.New(1)
	return String{v: v}, err
}

// WithCapacity creates empty string able to keep capacity bytes without reallocation.
func WithCapacity(capacity uintptr) (String, error) {
	v, err := vec.WithCapacity(1, capacity)
	return String{v: v}, err
}

// FromView creates string holding copy of the view.
func FromView(view View) (String, error) {
	s, err := WithCapacity(max(view.ByteLen(), 1))
	if err != nil {
		return s, err
	}
	if err := s.PushStr(view); err != nil {
		_ = s.Free()
		return String{}, err
	}
	return s, nil
}

// FromGo creates string holding copy of go string.
func FromGo(s string) (String, error) {
	return FromView(ViewOf(unsafe.Slice(unsafe.StringData(s), len(s))))
}

// FromInt formats signed integer in base 10.
func FromInt[T constraints.Signed](n T) (String, error) {
	return FromGo(strconv.FormatInt(int64(n), 10))
}

// FromUint formats unsigned integer in base 10.
func FromUint[T constraints.Unsigned](n T) (String, error) {
	return FromGo(strconv.FormatUint(uint64(n), 10))
}

// FromFloat formats float in base 10 using the shortest representation parsing back to the same value.
func FromFloat[T constraints.Float](n T) (String, error) {
	return FromGo(strconv.FormatFloat(float64(n), 'f', -1, int(unsafe.Sizeof(n))*8))
}

// Push appends UTF-8 encoding of the code point.
func (s *String) Push(r rune) error {
	if !utf8.ValidRune(r) {
		return errors.Wrapf(ErrInvalidCodePoint, "code point %#x", r)
	}
	var buf [utf8.UTFMax]byte
	return s.v.Extend(slice.Bytes(buf[:utf8.EncodeRune(buf[:], r)]))
}

// Pop removes the last code point and returns it. If string is empty or does not end with well-formed
// UTF-8 sequence, replacement code point and false are returned and string is left unchanged.
func (s *String) Pop() (rune, bool) {
	r, size := utf8.DecodeLastRune(s.Bytes())
	if size == 0 || (r == utf8.RuneError && size == 1) {
		return types.ReplacementCodePoint, false
	}
	// Shrinking never allocates.
	_ = s.v.Resize(s.v.Len() - uintptr(size))
	return r, true
}

// Extend pushes every 4-byte code point of the slice. Code points pushed before a failure are kept.
func (s *String) Extend(codePoints slice.Slice) error {
	if codePoints.ElemSize() != unsafe.Sizeof(rune(0)) {
		return errors.Wrapf(vec.ErrSizeMismatch, "code point size %d", codePoints.ElemSize())
	}
	for _, p := range codePoints.All() {
		if err := s.Push(*(*rune)(p)); err != nil {
			return err
		}
	}
	return nil
}

// PushBytes appends bytes without validating them.
func (s *String) PushBytes(b slice.Slice) error {
	return s.v.Extend(b)
}

// PushStr appends bytes of the view.
func (s *String) PushStr(view View) error {
	return s.v.Extend(view.AsSlice())
}

// Len returns number of code points or types.NotFound if bytes are not valid UTF-8.
func (s *String) Len() uintptr {
	return s.AsView().Len()
}

// ByteLen returns number of bytes.
func (s *String) ByteLen() uintptr {
	return s.v.Len()
}

// Cap returns number of bytes string may keep without reallocation.
func (s *String) Cap() uintptr {
	return s.v.Cap()
}

// IsEmpty reports whether string has no bytes.
func (s *String) IsEmpty() bool {
	return s.v.IsEmpty()
}

// Raw returns address of the buffer.
func (s *String) Raw() unsafe.Pointer {
	return s.v.Raw()
}

// Vec returns the underlying buffer.
func (s *String) Vec() *vec.Vec {
	return &s.v
}

// AsSlice returns byte slice valid until string is modified.
func (s *String) AsSlice() slice.Slice {
	return s.v.AsSlice()
}

// AsView returns view valid until string is modified.
func (s *String) AsView() View {
	return View{s: s.v.AsSlice()}
}

// Bytes returns go bytes backed by the buffer, valid until string is modified.
func (s *String) Bytes() []byte {
	return s.v.AsSlice().AsBytes()
}

// GoString returns copy of the bytes as go string.
func (s *String) GoString() string {
	return s.AsView().GoString()
}

// ToUpper converts ASCII letters to upper case in place.
func (s *String) ToUpper() {
	s.AsView().ToUppercase()
}

// ToLower converts ASCII letters to lower case in place.
func (s *String) ToLower() {
	s.AsView().ToLowercase()
}

// Clear removes all bytes keeping the buffer.
func (s *String) Clear() {
	s.v.Clear()
}

// Clone creates deep copy of the string.
func (s *String) Clone() (String, error) {
	v, err := s.v.Clone()
	return String{v: v}, err
}

// Free deallocates the buffer.
func (s *String) Free() error {
	return s.v.Free()
}

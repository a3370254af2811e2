package cstr

import "unsafe"

// Length returns number of bytes preceding the NUL terminator.
func Length(raw unsafe.Pointer) uintptr {
	if raw == nil {
		return 0
	}
	var n uintptr
	for *(*byte)(unsafe.Add(raw, n)) != 0 {
		n++
	}
	return n
}

// Compare reports whether both NUL-terminated strings contain the same bytes. Nil is equal only to nil.
func Compare(a, b unsafe.Pointer) bool {
	if a == nil || b == nil {
		return a == b
	}
	for i := uintptr(0); ; i++ {
		ca := *(*byte)(unsafe.Add(a, i))
		if ca != *(*byte)(unsafe.Add(b, i)) {
			return false
		}
		if ca == 0 {
			return true
		}
	}
}

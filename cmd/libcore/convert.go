package main

import "unsafe"

// as reinterprets value of identical layout.
func as[To, From any](v From) To {
	return *(*To)(unsafe.Pointer(&v))
}

// ref reinterprets pointer to record of identical layout.
func ref[To, From any](p *From) *To {
	return (*To)(unsafe.Pointer(p))
}

// Package main builds the C library exposing the containers. Build it with -buildmode=c-shared or
// -buildmode=c-archive, cgo is required.
package main

func main() {}

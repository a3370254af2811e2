package types

import (
	"runtime"
	"unsafe"
)

// Endianness enumerates byte orders.
type Endianness int32

const (
	// LittleEndian means the least significant byte is stored first.
	LittleEndian Endianness = iota

	// BigEndian means the most significant byte is stored first.
	BigEndian
)

// Arch enumerates CPU architectures.
type Arch int32

const (
	// ArchOther is any architecture not listed below.
	ArchOther Arch = iota
	ArchX86
	ArchX86_64
	ArchARM
	ArchAArch64
	ArchRISCV64
	ArchPPC64
	ArchS390X
	ArchMIPS
	ArchMIPS64
	ArchLoong64
	ArchWasm
)

// OS enumerates operating systems.
type OS int32

const (
	// OSOther is any operating system not listed below.
	OSOther OS = iota
	OSLinux
	OSWindows
	OSDarwin
	OSFreeBSD
	OSNetBSD
	OSOpenBSD
	OSAndroid
	OSIOS
	OSWasi
	OSJS
)

var archTags = map[string]Arch{
	"386":      ArchX86,
	"amd64":    ArchX86_64,
	"arm":      ArchARM,
	"arm64":    ArchAArch64,
	"riscv64":  ArchRISCV64,
	"ppc64":    ArchPPC64,
	"ppc64le":  ArchPPC64,
	"s390x":    ArchS390X,
	"mips":     ArchMIPS,
	"mipsle":   ArchMIPS,
	"mips64":   ArchMIPS64,
	"mips64le": ArchMIPS64,
	"loong64":  ArchLoong64,
	"wasm":     ArchWasm,
}

var osTags = map[string]OS{
	"linux":   OSLinux,
	"windows": OSWindows,
	"darwin":  OSDarwin,
	"freebsd": OSFreeBSD,
	"netbsd":  OSNetBSD,
	"openbsd": OSOpenBSD,
	"android": OSAndroid,
	"ios":     OSIOS,
	"wasip1":  OSWasi,
	"js":      OSJS,
}

// NativeEndianness returns byte order of the running machine.
func NativeEndianness() Endianness {
	v := uint16(1)
	if *(*byte)(unsafe.Pointer(&v)) == 1 {
		return LittleEndian
	}
	return BigEndian
}

// CurrentArch returns the architecture the library was built for.
func CurrentArch() Arch {
	if a, ok := archTags[runtime.GOARCH]; ok {
		return a
	}
	return ArchOther
}

// CurrentOS returns the operating system the library was built for.
func CurrentOS() OS {
	if o, ok := osTags[runtime.GOOS]; ok {
		return o
	}
	return OSOther
}

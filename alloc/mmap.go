//go:build unix

package alloc

import (
	"os"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// mapMemory maps anonymous memory region. Returned memory is zeroed.
func mapMemory(size uintptr, useHugePages bool) (unsafe.Pointer, error) {
	p, err := unix.MmapPtr(-1, 0, nil, size, unix.PROT_READ|unix.PROT_WRITE, mmapFlags(useHugePages))
	if err != nil {
		return nil, errors.Wrapf(err, "mapping %d bytes failed", size)
	}
	return p, nil
}

// unmapMemory releases region mapped by mapMemory.
func unmapMemory(p unsafe.Pointer, size uintptr, useHugePages bool) error {
	// mmap allocates a multiple of the page size and munmap must receive that size, otherwise memory is
	// not released. Huge pages are either 2MB or 1GB and there is no function reporting which one is used,
	// so both are tried.
	if useHugePages {
		if err := unmap(p, size, 2*1024*1024); err == nil {
			return nil
		}
		if err := unmap(p, size, 1024*1024*1024); err == nil {
			return nil
		}
	}
	return unmap(p, size, uintptr(os.Getpagesize()))
}

func unmap(p unsafe.Pointer, size, pageSize uintptr) error {
	return errors.WithStack(unix.MunmapPtr(p, roundUp(size, pageSize)))
}

func roundUp(size, alignment uintptr) uintptr {
	return (size + alignment - 1) / alignment * alignment
}

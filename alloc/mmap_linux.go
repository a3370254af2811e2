package alloc

import "golang.org/x/sys/unix"

func mmapFlags(useHugePages bool) int {
	flags := unix.MAP_PRIVATE | unix.MAP_ANONYMOUS
	if useHugePages {
		flags |= unix.MAP_HUGETLB | unix.MAP_POPULATE
	}
	return flags
}

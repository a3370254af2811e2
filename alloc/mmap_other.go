//go:build unix && !linux

package alloc

import "golang.org/x/sys/unix"

func mmapFlags(_ bool) int {
	return unix.MAP_PRIVATE | unix.MAP_ANON
}

//go:build !windows

package diag

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/coroweave/ringcoro/internal/klog"
)

// KeyReady reports whether a byte is waiting to be read from stdin,
// without blocking or consuming it. It is a non-blocking poll, exactly
// the contract kbhit had, ported from an fd_set select on descriptor 0
// to unix.Select.
func KeyReady() bool {
	fd := int(os.Stdin.Fd())

	var set unix.FdSet
	fdSet(&set, fd)

	tv := unix.Timeval{}
	n, err := unix.Select(fd+1, &set, nil, nil, &tv)
	if err != nil {
		klog.Warn("stdin read probe failed", "error", err)
		return false
	}
	return n > 0 && fdIsSet(&set, fd)
}

func fdSet(set *unix.FdSet, fd int) {
	set.Bits[fd/64] |= 1 << (uint(fd) % 64)
}

func fdIsSet(set *unix.FdSet, fd int) bool {
	return set.Bits[fd/64]&(1<<(uint(fd)%64)) != 0
}

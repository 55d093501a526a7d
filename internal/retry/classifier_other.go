//go:build !windows

package retry

import "syscall"

var lockErrnos = []syscall.Errno{syscall.EBUSY, syscall.EAGAIN, syscall.ETXTBSY}

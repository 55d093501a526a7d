package retry

import "syscall"

// ERROR_SHARING_VIOLATION and ERROR_LOCK_VIOLATION.
var lockErrnos = []syscall.Errno{32, 33}

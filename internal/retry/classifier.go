package retry

import (
	"errors"
	"syscall"
)

// FileLockClassifier treats "file in use" errors as transient.
// Everything else, including missing files and real permission problems, is fatal.
type FileLockClassifier struct{}

// NewFileLockClassifier creates a FileLockClassifier.
func NewFileLockClassifier() *FileLockClassifier {
	return &FileLockClassifier{}
}

// IsTransient reports whether err is a sharing or lock violation.
func (c *FileLockClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	for _, e := range lockErrnos {
		if errno == e {
			return true
		}
	}
	return false
}

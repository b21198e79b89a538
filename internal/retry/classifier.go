package retry

import (
	"errors"
	"io/fs"
	"runtime"
	"syscall"
)

// busyErrnos are conditions that clear once another process lets go of a file.
var busyErrnos = []syscall.Errno{
	syscall.EBUSY,
	syscall.ETXTBSY,
	syscall.EAGAIN,
	syscall.EINTR,
}

// FilesystemErrorClassifier implements blogsmith.ErrorClassifier for
// file and directory operations.
type FilesystemErrorClassifier struct {
	goos string
}

// NewFilesystemErrorClassifier classifies errors for the running platform.
func NewFilesystemErrorClassifier() *FilesystemErrorClassifier {
	return &FilesystemErrorClassifier{goos: runtime.GOOS}
}

// IsTransient reports whether err is a busy or interrupted condition.
// Missing files, full disks and permission problems are fatal, except on
// Windows where a rename over an open handle surfaces as access denied.
func (c *FilesystemErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	for _, errno := range busyErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	if c.goos == "windows" && errors.Is(err, fs.ErrPermission) {
		return true
	}

	return false
}

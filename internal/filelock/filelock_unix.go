//go:build !windows

package filelock

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// lockFile blocks until the store lock is held exclusively. A signal
// arriving mid-wait restarts the wait.
func lockFile(f *os.File) error {
	fd := int(f.Fd()) //nolint:gosec // fd fits in int
	for {
		err := unix.Flock(fd, unix.LOCK_EX)
		if !errors.Is(err, unix.EINTR) {
			return err
		}
	}
}

func unlockFile(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN) //nolint:gosec // fd fits in int
}

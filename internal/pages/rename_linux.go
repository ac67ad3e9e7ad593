//go:build linux

package pages

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func renameNoReplace(source, target string) error {
	err := unix.Renameat2(unix.AT_FDCWD, source, unix.AT_FDCWD, target, unix.RENAME_NOREPLACE)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.EEXIST):
		return &os.LinkError{Op: "rename", Old: source, New: target, Err: os.ErrExist}
	case errors.Is(err, unix.EINVAL), errors.Is(err, unix.ENOSYS):
		// Filesystem or kernel without RENAME_NOREPLACE; the caller already
		// checked the target.
		return os.Rename(source, target)
	default:
		return &os.LinkError{Op: "rename", Old: source, New: target, Err: err}
	}
}

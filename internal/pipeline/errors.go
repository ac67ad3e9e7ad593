package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cba/internal/archiver"
)

var (
	// ErrBusy is returned when a run is already in progress.
	ErrBusy = errors.New("pipeline: run in progress")

	// ErrArchiverMissing is returned when no 7z executable was found.
	ErrArchiverMissing = errors.New("pipeline: 7z not found")
)

type ErrorKind int

const (
	ArchiverMissing ErrorKind = iota
	FolderEmpty
	EnumerateFailed
	TargetExists
	RenameFailed
	ArchiveFailed
	SpawnFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ArchiverMissing:
		return "archiver missing"
	case FolderEmpty:
		return "folder empty"
	case EnumerateFailed:
		return "enumerate failed"
	case TargetExists:
		return "target exists"
	case RenameFailed:
		return "rename failed"
	case ArchiveFailed:
		return "archive failed"
	case SpawnFailed:
		return "spawn failed"
	default:
		return "unknown"
	}
}

// Error is a failure that aborted a run. Its message is the short text shown
// to the user.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	name := filepath.Base(e.Path)
	switch e.Kind {
	case ArchiverMissing:
		return "Undefined 7z"
	case FolderEmpty:
		return name + " is empty."
	case TargetExists:
		return filepath.Join(filepath.Base(filepath.Dir(e.Path)), name) + " already exists."
	case ArchiveFailed:
		return e.Err.Error()
	case EnumerateFailed, RenameFailed, SpawnFailed:
		if e.Path == "" {
			return cause(e.Err).Error()
		}
		return fmt.Sprintf("%s: %v", name, cause(e.Err))
	default:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// cause strips the path decoration of fs errors, since the message already names the file.
func cause(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Err
	}
	var spawnErr *archiver.SpawnError
	if errors.As(err, &spawnErr) {
		return spawnErr.Err
	}
	return err
}

func renameError(err error) *Error {
	var pathErr *fs.PathError
	if errors.Is(err, fs.ErrExist) && errors.As(err, &pathErr) {
		return &Error{Kind: TargetExists, Path: pathErr.Path, Err: err}
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return &Error{Kind: RenameFailed, Path: linkErr.Old, Err: err}
	}
	return &Error{Kind: RenameFailed, Err: err}
}

func archiveError(archive string, err error) *Error {
	var exitErr *archiver.ExitError
	if errors.As(err, &exitErr) {
		return &Error{Kind: ArchiveFailed, Path: archive, Err: err}
	}
	return &Error{Kind: SpawnFailed, Path: archive, Err: err}
}

package pages

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// Width is the zero-padded field width for n pages: the number of digits of
// the largest index, never less than one.
func Width(n int) int {
	if n <= 1 {
		return 1
	}
	return len(strconv.Itoa(n - 1))
}

// Targets returns the canonical names for n pages inside dir.
func Targets(dir string, n int) []string {
	if n <= 0 {
		return nil
	}
	format := "%0" + strconv.Itoa(Width(n)) + "d.jpg"
	targets := make([]string, n)
	for i := range targets {
		targets[i] = filepath.Join(dir, fmt.Sprintf(format, i))
	}
	return targets
}

// Move is one completed rename.
type Move struct {
	From string
	To   string
}

// Rename moves sorted[i] to targets[i] in order, never replacing an existing
// file. It stops early at the first page that already carries its canonical
// name, since the rest of the folder was canonicalised by an earlier run.
//
// A collision is reported as a *fs.PathError wrapping fs.ErrExist and a failed
// move as the *os.LinkError from the filesystem. Moves already made are kept
// and returned either way.
func Rename(sorted, targets []string, onMove func(Move)) ([]Move, error) {
	if len(sorted) != len(targets) {
		return nil, fmt.Errorf("pages: %d files for %d targets", len(sorted), len(targets))
	}
	var moves []Move
	for i, source := range sorted {
		target := targets[i]
		if filepath.Clean(source) == filepath.Clean(target) {
			break
		}
		if _, err := os.Lstat(target); err == nil {
			return moves, &fs.PathError{Op: "rename", Path: target, Err: fs.ErrExist}
		}
		if err := renameNoReplace(source, target); err != nil {
			if errors.Is(err, fs.ErrExist) {
				return moves, &fs.PathError{Op: "rename", Path: target, Err: fs.ErrExist}
			}
			return moves, err
		}
		move := Move{From: source, To: target}
		moves = append(moves, move)
		if onMove != nil {
			onMove(move)
		}
	}
	return moves, nil
}

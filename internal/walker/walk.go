// Package walker finds the folders below a set of user supplied paths.
package walker

import (
	"os"
	"path/filepath"

	"cba/internal/pages"
)

// Dir is a directory reached by Walk that has at least one child.
type Dir struct {
	Path    string
	Images  int
	Subdirs int
}

// Intermediate reports whether d only groups other folders.
func (d Dir) Intermediate() bool {
	return d.Images == 0 && d.Subdirs > 0
}

type node struct {
	path string
	dir  bool
}

// Walk visits inputs level by level. Every directory with at least one child
// is returned, all directories of one level before any of the next, in the
// order they were met. Directories that cannot be read count as empty.
// Symbolic links are only followed for the inputs themselves.
func Walk(inputs []string) []Dir {
	frontier := make([]node, 0, len(inputs))
	for _, input := range inputs {
		path, err := filepath.Abs(input)
		if err != nil {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		frontier = append(frontier, node{path: path, dir: info.IsDir()})
	}

	var dirs []Dir
	seen := make(map[string]bool)
	for len(frontier) > 0 {
		var next []node
		for _, n := range frontier {
			if !n.dir || seen[n.path] {
				continue
			}
			seen[n.path] = true

			entries, err := os.ReadDir(n.path)
			if err != nil || len(entries) == 0 {
				continue
			}
			d := Dir{Path: n.path}
			for _, entry := range entries {
				child := node{path: filepath.Join(n.path, entry.Name()), dir: entry.IsDir()}
				switch {
				case child.dir:
					d.Subdirs++
				case pages.IsImage(entry):
					d.Images++
				}
				next = append(next, child)
			}
			dirs = append(dirs, d)
		}
		frontier = next
	}
	return dirs
}

//go:build !linux

package pages

import "os"

func renameNoReplace(source, target string) error {
	return os.Rename(source, target)
}

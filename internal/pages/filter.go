package pages

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

var imageName = regexp.MustCompile(`(?i).+\.(jpe?g)$`)

// IsImageName reports whether a file name looks like a JPEG page.
func IsImageName(name string) bool {
	return imageName.MatchString(name)
}

// IsImage reports whether a directory entry is a regular file with a page name.
func IsImage(d fs.DirEntry) bool {
	return d.Type().IsRegular() && IsImageName(d.Name())
}

// Collect lists the pages directly inside dir, in directory order.
func Collect(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var images []string
	for _, entry := range entries {
		if IsImage(entry) {
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}
	return images, nil
}

// TotalSize sums the sizes of files. Files that cannot be stat'ed count as zero.
func TotalSize(files []string) int64 {
	var total int64
	for _, file := range files {
		if info, err := os.Stat(file); err == nil {
			total += info.Size()
		}
	}
	return total
}

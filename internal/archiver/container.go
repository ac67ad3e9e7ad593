package archiver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Container identifies the archive format wrapping the pages.
type Container int

const (
	Auto Container = iota
	SevenZip
	Zip
)

// AutoZipThreshold is the total page size above which Auto resolves to Zip.
const AutoZipThreshold int64 = 16 * 1024 * 1024

// Containers returns every container type in declaration order.
func Containers() []Container {
	return []Container{Auto, SevenZip, Zip}
}

func (c Container) String() string {
	switch c {
	case SevenZip:
		return "7z"
	case Zip:
		return "zip"
	default:
		return "auto"
	}
}

// Ext is the archive file extension, without the dot. Auto has none.
func (c Container) Ext() string {
	switch c {
	case SevenZip:
		return "cb7"
	case Zip:
		return "cbz"
	default:
		return ""
	}
}

// Flags are the archiver switches selecting the container.
func (c Container) Flags() []string {
	switch c {
	case SevenZip:
		return []string{"-t7z", "-ms=on"}
	case Zip:
		return []string{"-tzip"}
	default:
		return nil
	}
}

// Set parses s into c, so a Container can be bound as a command-line flag.
func (c *Container) Set(s string) error {
	parsed, err := ParseContainer(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c *Container) Type() string {
	return "container"
}

func ParseContainer(s string) (Container, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "7z", "cb7", "sevenzip":
		return SevenZip, nil
	case "zip", "cbz":
		return Zip, nil
	default:
		return Auto, fmt.Errorf("unknown container %q (want auto, 7z or zip)", s)
	}
}

// Select resolves the requested container for a folder whose pages total size bytes.
// Solid 7z blocks make random page access slow on large books, so Auto prefers zip there.
func Select(requested Container, size int64) Container {
	if requested != Auto {
		return requested
	}
	if size > AutoZipThreshold {
		return Zip
	}
	return SevenZip
}

// ArchivePath is the sibling archive written for folder.
func ArchivePath(folder string, c Container) string {
	return filepath.Clean(folder) + "." + c.Ext()
}

// ArchiveExists reports whether folder already has an archive of type c next to it.
func ArchiveExists(folder string, c Container) bool {
	_, err := os.Lstat(ArchivePath(folder, c))
	return err == nil
}

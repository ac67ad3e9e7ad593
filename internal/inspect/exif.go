// Package inspect looks inside page files without modifying them.
package inspect

import (
	"errors"
	"io"
	"os"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"

	"cba/pkg/imgutil"
)

// Metadata summarises the EXIF tags carried by a page.
type Metadata struct {
	Tags      int
	HasGPS    bool
	Model     string
	Timestamp string
}

// Identifying reports whether the tags can tie a page back to a device or place.
func (m Metadata) Identifying() bool {
	return m.HasGPS || m.Model != ""
}

// Describe lists the identifying tags, camera model first, then gps and the
// capture time when present.
func (m Metadata) Describe() string {
	var parts []string
	if m.Model != "" {
		parts = append(parts, m.Model)
	}
	if m.HasGPS {
		parts = append(parts, "gps")
	}
	if m.Timestamp != "" {
		parts = append(parts, m.Timestamp)
	}
	return strings.Join(parts, ", ")
}

func readMetadata(rs io.ReadSeeker) (Metadata, error) {
	var md Metadata
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return md, err
	}

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(rs, nil, true)
	if err != nil {
		if isNoExif(err) {
			return md, nil
		}
		return md, err
	}

	for _, tag := range tags {
		md.Tags++
		switch {
		case strings.HasPrefix(tag.TagName, "GPS") || strings.Contains(tag.IfdPath, "GPS"):
			md.HasGPS = true
		case tag.TagName == "Model":
			md.Model = strings.TrimSpace(tag.FormattedFirst)
		case tag.TagName == "DateTimeOriginal" || (tag.TagName == "DateTime" && md.Timestamp == ""):
			md.Timestamp = tag.FormattedFirst
		}
	}
	return md, nil
}

func isNoExif(err error) bool {
	if errors.Is(err, exif.ErrNoExif) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}

// Page is what inspection found in one page file.
type Page struct {
	Path     string
	Kind     imgutil.Kind
	Metadata Metadata
	Err      error
}

// Mislabelled reports whether the content is not the JPEG its name promises.
func (p Page) Mislabelled() bool {
	return p.Err == nil && p.Kind != imgutil.KindJPEG
}

// File inspects a single page.
func File(path string) Page {
	page := Page{Path: path}
	f, err := os.Open(path)
	if err != nil {
		page.Err = err
		return page
	}
	defer f.Close()

	page.Kind, err = imgutil.SniffReader(f)
	if err != nil {
		page.Err = err
		return page
	}
	if page.Kind != imgutil.KindJPEG {
		return page
	}
	page.Metadata, page.Err = readMetadata(f)
	return page
}

// Report groups the findings for a folder of pages.
type Report struct {
	Mislabelled []Page
	Identifying []Page
	Failed      []Page
}

func (r Report) Empty() bool {
	return len(r.Mislabelled) == 0 && len(r.Identifying) == 0 && len(r.Failed) == 0
}

// Pages inspects every page in order.
func Pages(paths []string) Report {
	var report Report
	for _, path := range paths {
		page := File(path)
		switch {
		case page.Err != nil:
			report.Failed = append(report.Failed, page)
		case page.Mislabelled():
			report.Mislabelled = append(report.Mislabelled, page)
		case page.Metadata.Identifying():
			report.Identifying = append(report.Identifying, page)
		}
	}
	return report
}

package inspect

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cba/pkg/imgutil"
)

func TestFileReadsExifModel(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "001.jpg")
	if err := buildJPEGWithExif(src); err != nil {
		t.Fatalf("build JPEG: %v", err)
	}

	page := File(src)
	if page.Err != nil {
		t.Fatalf("inspect: %v", page.Err)
	}
	if page.Kind != imgutil.KindJPEG {
		t.Fatalf("kind = %s", page.Kind)
	}
	if page.Metadata.Tags == 0 || !strings.Contains(page.Metadata.Model, "TestCam") {
		t.Fatalf("metadata = %+v", page.Metadata)
	}
	if !page.Metadata.Identifying() {
		t.Fatalf("expected identifying metadata")
	}
	if !strings.Contains(page.Metadata.Timestamp, "2024:01:02") {
		t.Fatalf("timestamp = %q", page.Metadata.Timestamp)
	}
}

func TestMetadataDescribe(t *testing.T) {
	cases := []struct {
		md   Metadata
		want string
	}{
		{Metadata{Model: "TestCam", HasGPS: true, Timestamp: "2024:01:02 03:04:05"}, "TestCam, gps, 2024:01:02 03:04:05"},
		{Metadata{HasGPS: true}, "gps"},
		{Metadata{Model: "TestCam"}, "TestCam"},
		{Metadata{}, ""},
	}
	for _, tc := range cases {
		if got := tc.md.Describe(); got != tc.want {
			t.Fatalf("Describe(%+v) = %q, want %q", tc.md, got, tc.want)
		}
	}
}

func TestPagesGroupsFindings(t *testing.T) {
	dir := t.TempDir()
	withExif := filepath.Join(dir, "0.jpg")
	plain := filepath.Join(dir, "1.jpg")
	fake := filepath.Join(dir, "2.jpg")
	missing := filepath.Join(dir, "3.jpg")

	if err := buildJPEGWithExif(withExif); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(plain, []byte{0xff, 0xd8, 0xff, 0xdb, 0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xd9}, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := buildPNG(fake); err != nil {
		t.Fatal(err)
	}

	report := Pages([]string{withExif, plain, fake, missing})
	if len(report.Identifying) != 1 || report.Identifying[0].Path != withExif {
		t.Fatalf("identifying = %+v", report.Identifying)
	}
	if len(report.Mislabelled) != 1 || report.Mislabelled[0].Kind != imgutil.KindPNG {
		t.Fatalf("mislabelled = %+v", report.Mislabelled)
	}
	if len(report.Failed) != 1 || report.Failed[0].Path != missing {
		t.Fatalf("failed = %+v", report.Failed)
	}
	if report.Empty() {
		t.Fatalf("report should not be empty")
	}
}

func buildJPEGWithExif(path string) error {
	exifData := buildExifTIFF()
	exif := append([]byte("Exif\x00\x00"), exifData...)

	var buf bytes.Buffer
	buf.Write([]byte{0xff, 0xd8})
	buf.Write([]byte{0xff, 0xe1})
	_ = binary.Write(&buf, binary.BigEndian, uint16(len(exif)+2))
	buf.Write(exif)
	buf.Write([]byte{0xff, 0xd9})

	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// buildExifTIFF returns a little-endian IFD0 with Model and DateTime.
func buildExifTIFF() []byte {
	var tiff bytes.Buffer
	tiff.Write([]byte{0x49, 0x49, 0x2a, 0x00})
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(2))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0110))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(2))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(38))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0132))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(2))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(20))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(46))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(0))
	tiff.Write([]byte("TestCam\x00"))
	tiff.Write([]byte("2024:01:02 03:04:05\x00"))
	return tiff.Bytes()
}

func buildPNG(path string) error {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 0xff, A: 0xff})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

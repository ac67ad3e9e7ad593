package archiver

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestSelect(t *testing.T) {
	cases := []struct {
		requested Container
		size      int64
		want      Container
	}{
		{Auto, 0, SevenZip},
		{Auto, AutoZipThreshold, SevenZip},
		{Auto, AutoZipThreshold + 1, Zip},
		{Auto, 20 << 20, Zip},
		{SevenZip, 20 << 20, SevenZip},
		{Zip, 1, Zip},
	}
	for _, tc := range cases {
		if got := Select(tc.requested, tc.size); got != tc.want {
			t.Fatalf("Select(%s, %d) = %s, want %s", tc.requested, tc.size, got, tc.want)
		}
	}
}

func TestContainerProperties(t *testing.T) {
	if SevenZip.Ext() != "cb7" || Zip.Ext() != "cbz" || Auto.Ext() != "" {
		t.Fatalf("unexpected extensions: %q %q %q", SevenZip.Ext(), Zip.Ext(), Auto.Ext())
	}
	if !slices.Equal(SevenZip.Flags(), []string{"-t7z", "-ms=on"}) {
		t.Fatalf("7z flags = %v", SevenZip.Flags())
	}
	if !slices.Equal(Zip.Flags(), []string{"-tzip"}) {
		t.Fatalf("zip flags = %v", Zip.Flags())
	}

	all := Containers()
	all[0] = Zip
	if Containers()[0] != Auto {
		t.Fatalf("Containers must return a fresh slice")
	}
}

func TestParseContainer(t *testing.T) {
	for in, want := range map[string]Container{
		"":         Auto,
		"AUTO":     Auto,
		"7z":       SevenZip,
		"cb7":      SevenZip,
		"SevenZip": SevenZip,
		"zip":      Zip,
		"cbz":      Zip,
	} {
		got, err := ParseContainer(in)
		if err != nil || got != want {
			t.Fatalf("ParseContainer(%q) = %s, %v; want %s", in, got, err, want)
		}
	}

	var c Container
	if err := c.Set("rar"); err == nil {
		t.Fatalf("expected error for rar")
	}
	if err := c.Set("zip"); err != nil || c != Zip {
		t.Fatalf("Set(zip) = %v, container %s", err, c)
	}
}

func TestArchivePath(t *testing.T) {
	dir := t.TempDir()
	folder := filepath.Join(dir, "Vol 01")
	if got, want := ArchivePath(folder+string(filepath.Separator), SevenZip), folder+".cb7"; got != want {
		t.Fatalf("ArchivePath = %q, want %q", got, want)
	}

	if ArchiveExists(folder, Zip) {
		t.Fatalf("archive should not exist yet")
	}
	if err := os.WriteFile(folder+".cbz", nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if !ArchiveExists(folder, Zip) {
		t.Fatalf("expected cbz to exist")
	}
	if ArchiveExists(folder, SevenZip) {
		t.Fatalf("cb7 should not exist")
	}
}

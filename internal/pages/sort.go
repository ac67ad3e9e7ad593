package pages

import (
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var digitRun = regexp.MustCompile(`\d+`)

// Compare orders two page paths by the digit runs in their file names.
//
// When both names carry the same number of runs they are compared run by run
// as integers. Otherwise, or when every run is equal, the full paths are
// compared lexicographically. Names with different run counts therefore never
// compare numerically: "v2_p10.jpg" against "p2.jpg" is decided by the path.
func Compare(a, b string) int {
	ra := digitRun.FindAllString(filepath.Base(a), -1)
	rb := digitRun.FindAllString(filepath.Base(b), -1)
	if len(ra) == 0 || len(rb) == 0 || len(ra) != len(rb) {
		return strings.Compare(a, b)
	}
	for i := range ra {
		if c := compareRun(ra[i], rb[i]); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

// compareRun compares two decimal digit strings by value. Runs that do not
// fit in a uint64 are compared by length and then digit by digit once their
// leading zeros are trimmed, which agrees with the numeric order.
func compareRun(a, b string) int {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// Sort returns a sorted copy of files. The input is left untouched.
func Sort(files []string) []string {
	sorted := slices.Clone(files)
	slices.SortStableFunc(sorted, Compare)
	return sorted
}

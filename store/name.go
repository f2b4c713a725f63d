package store

import (
	"regexp"
	"strconv"
)

var suffixPattern = regexp.MustCompile(`^(.*)_(\d+)$`)

// uniqueName returns name if it is not taken. Otherwise it appends "_1",
// or continues counting from an existing numeric suffix, until the result
// is not taken.
func uniqueName(name string, taken func(string) bool) string {
	if !taken(name) {
		return name
	}

	base, n := name, 1

	if m := suffixPattern.FindStringSubmatch(name); m != nil {
		if i, err := strconv.Atoi(m[2]); err == nil {
			base, n = m[1], i
		}
	}

	for {
		candidate := base + "_" + strconv.Itoa(n)
		if !taken(candidate) {
			return candidate
		}

		n++
	}
}

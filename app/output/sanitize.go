package output

import (
	"strconv"
	"strings"
)

// Sanitize replaces every rune outside [A-Za-z0-9_.-] with '_'.
func Sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if isSafe(r) {
			return r
		}
		return '_'
	}, name)
}

func isSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '.', r == '-':
		return true
	}
	return false
}

// BaseName returns the sanitized file stem, or feed_data_<rowIndex> when nothing is left.
func BaseName(urlName string, rowIndex int) string {
	if base := Sanitize(urlName); base != "" {
		return base
	}
	return "feed_data_" + strconv.Itoa(rowIndex)
}

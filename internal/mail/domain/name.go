package domain

import (
	"strings"
	"unicode"
)

// IsValidDomain checks whether name looks like a domain that can appear in a
// disposable list. It enforces:
//   - total length of at most 255 characters
//   - at least two labels separated by dots
//   - each label between 1 and 63 characters
//   - no whitespace, '@' or '/' anywhere
//   - the first label starts with a letter or digit
//
// Case is not checked or changed.
func IsValidDomain(name string) bool {
	if name == "" || len(name) > 255 {
		return false
	}
	if strings.ContainsAny(name, "@/") || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return false
	}
	labels := strings.Split(name, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if len(label) > 63 || len(label) == 0 {
			return false
		}
	}
	first := []rune(labels[0])[0]
	return unicode.IsLetter(first) || unicode.IsDigit(first)
}

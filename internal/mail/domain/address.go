package domain

import "strings"

// SplitAddress returns the candidate domain of an address line: everything
// after the first '@', with surrounding whitespace (including the line
// terminator) removed. Further '@' characters stay in the candidate.
// ok is false when the line has no '@'.
func SplitAddress(line string) (candidate string, ok bool) {
	i := strings.IndexByte(line, '@')
	if i < 0 {
		return "", false
	}
	return strings.TrimSpace(line[i+1:]), true
}

// TrimLineBreak removes trailing "\n" and "\r" characters and nothing else.
func TrimLineBreak(line string) string {
	return strings.TrimRight(line, "\r\n")
}

package util

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeWhitespace trims and collapses whitespace to single spaces.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// NormalizeHandle trims input and drops a leading '@'.
func NormalizeHandle(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimPrefix(s, "@")
}

// TitleSegments upper-cases the first rune of every separator-delimited
// segment and joins the segments with spaces.
func TitleSegments(s string) string {
	parts := Segments(s)
	for i, p := range parts {
		r, size := utf8.DecodeRuneInString(p)
		if size == 0 {
			continue
		}
		parts[i] = string(unicode.ToUpper(r)) + p[size:]
	}
	return strings.Join(parts, " ")
}

// Segments splits s on '_', '.' and '-'. Empty segments are kept.
func Segments(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		if r == '_' || r == '.' || r == '-' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

// Package util provides the text helpers shared by the form, the message
// templates and the roster importer.
package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CapFirst upper-cases the first letter and leaves the rest untouched.
func CapFirst(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// TitleWords collapses whitespace and capitalizes every word.
// "  juan  PEREZ " becomes "Juan Perez".
func TitleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = Capitalize(w)
	}
	return strings.Join(words, " ")
}

// OrDefault returns def when s is blank.
func OrDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// JoinList joins items as "a, b y c". A single item is returned as is.
func JoinList(items []string, last string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " " + last + " " + items[len(items)-1]
}

// TrimFloatSuffix drops the ".0" spreadsheets append to numeric cells read as text.
func TrimFloatSuffix(s string) string {
	return strings.TrimSuffix(s, ".0")
}

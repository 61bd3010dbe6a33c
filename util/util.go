package util

import (
	"strings"
	"unicode"
)

// Capitalize lowercases the whole value and upper-cases the first rune.
// Recipe names and ingredient/instruction descriptions are stored in this
// canonical form so that case-insensitive duplicates collapse to the same
// stored value.
func Capitalize(value string) string {
	lowered := strings.ToLower(strings.TrimSpace(value))
	if lowered == "" {
		return ""
	}
	runes := []rune(lowered)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// IsBlank reports whether the value is empty or whitespace only.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// SplitCSV expands query parameter values that may carry comma separated
// entries into a flat list, dropping blanks.
func SplitCSV(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if !IsBlank(part) {
				out = append(out, strings.TrimSpace(part))
			}
		}
	}
	return out
}

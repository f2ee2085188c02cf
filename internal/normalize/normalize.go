// Package normalize cleans scraped profile text before it is compared and
// stored. Every rule is pure and idempotent and accepts any input.
package normalize

import (
	"strings"
	"unicode"
)

// DefaultDescriptionMarker is the suffix LinkedIn appends to German og:description values.
const DefaultDescriptionMarker = "Sehen Sie sich das Profil an"

// Func is a pluggable normalization rule.
type Func func(raw string) string

// Rules bundles the rules applied to raw text fields.
type Rules struct {
	Title       Func
	Description Func
}

// DefaultRules returns the title rule and the description rule with the
// default marker.
func DefaultRules() Rules {
	return Rules{
		Title:       Title,
		Description: Description,
	}
}

// Title extracts the headline from a search result title such as
// "Jane Doe - Founder | Stealth". The text before the first dash separator is
// dropped and the headline ends at the next separator or pipe. Titles without
// a separator are returned trimmed.
//
// "Jane Doe - Founder - Acme | X" yields "Founder": stopping at the second
// separator and ignoring intra-word hyphens keeps Title idempotent.
func Title(raw string) string {
	runes := []rune(raw)

	start := -1
	for i := range runes {
		if isSeparator(runes, i) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return strings.TrimSpace(raw)
	}

	end := len(runes)
	for i := start; i < len(runes); i++ {
		if runes[i] == '|' || isSeparator(runes, i) {
			end = i
			break
		}
	}

	return strings.TrimSpace(string(runes[start:end]))
}

// isSeparator reports whether runes[i] is a hyphen or en dash acting as a
// separator. Hyphens inside words ("Co-Founder") are not separators.
func isSeparator(runes []rune, i int) bool {
	if runes[i] != '-' && runes[i] != '–' {
		return false
	}
	if i == 0 || i == len(runes)-1 {
		return true
	}
	return !(isWordRune(runes[i-1]) && isWordRune(runes[i+1]))
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Description truncates raw at the default marker.
func Description(raw string) string {
	return truncateAt(raw, []string{DefaultDescriptionMarker})
}

// DescriptionFunc builds a description rule truncating at the earliest of
// markers. Empty markers are ignored.
func DescriptionFunc(markers ...string) Func {
	kept := make([]string, 0, len(markers))
	for _, m := range markers {
		if m != "" {
			kept = append(kept, m)
		}
	}
	return func(raw string) string {
		return truncateAt(raw, kept)
	}
}

func truncateAt(raw string, markers []string) string {
	cut := len(raw)
	for _, m := range markers {
		if idx := strings.Index(raw, m); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return strings.TrimSpace(raw[:cut])
}

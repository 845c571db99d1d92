// Package validation provides the string predicates and the structured cause
// records produced when diagram elements are validated.
package validation

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// IsAlphanumeric reports whether s consists only of letters, digits and
// underscores. The empty string is accepted; callers check presence first.
func IsAlphanumeric(s string) bool {
	for _, r := range norm.NFC.String(s) {
		if !isWordRune(r) {
			return false
		}
	}
	return true
}

// IsAlphanumericWithBrackets is IsAlphanumeric that additionally accepts the
// characters used by type expressions such as List<int>, int[] or Map<K,V>.
func IsAlphanumericWithBrackets(s string) bool {
	for _, r := range norm.NFC.String(s) {
		if isWordRune(r) {
			continue
		}
		switch r {
		case '[', ']', '<', '>', '(', ')', ',':
			continue
		}
		return false
	}
	return true
}

// IsBlank reports whether s is non-empty but holds only whitespace.
func IsBlank(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

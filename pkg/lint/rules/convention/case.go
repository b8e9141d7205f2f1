package convention

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// preserveCase adapts an all-lower-case canonical form to a sample that
// starts with a capital, as at the start of a sentence. Other casings of
// the sample, all caps included, yield the canonical form unchanged, as do
// canonical forms with their own capitals.
func preserveCase(canonical, sample string) string {
	if isLower(canonical) && firstLetterUpper(sample) {
		return capitalize(canonical)
	}
	return canonical
}

func isLower(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func firstLetterUpper(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return unicode.IsUpper(r)
		}
	}
	return false
}

// capitalize upper-cases the first letter of s.
func capitalize(s string) string {
	for i, r := range s {
		if unicode.IsLetter(r) {
			return s[:i] + toUpper(string(r)) + s[i+utf8.RuneLen(r):]
		}
	}
	return s
}

// toUpper builds a fresh Caser per call; Casers are not safe for
// concurrent use.
func toUpper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// foldCase maps s to a case-insensitive comparison key.
func foldCase(s string) string {
	return cases.Fold().String(s)
}

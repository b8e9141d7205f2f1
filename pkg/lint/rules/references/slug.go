package references

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// reTitleCommand matches a macro with one or two brace arguments, nested
// at most one level deep. Only the first argument survives.
var reTitleCommand = regexp.MustCompile(
	`\\[a-zA-Z]+\*?\{(?P<first>[^{}]*(?:\{[^{}]*\}[^{}]*)*)\}(?:\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\})?`)

var labelPrefixes = map[string]string{
	"chapter":       "chap",
	"section":       "sec",
	"subsection":    "ssec",
	"subsubsection": "sssec",
}

// LabelFor returns the expected label for a heading, e.g. "sec:hello-world".
func LabelFor(kind, title string) string {
	prefix, ok := labelPrefixes[kind]
	if !ok {
		prefix = "unknwn"
	}
	return prefix + ":" + Slugify(StripCommands(title))
}

// StripCommands replaces macros by their first argument until nothing
// changes, so \texorpdfstring{\acs{knn}}{k-NN} becomes knn.
func StripCommands(s string) string {
	for {
		next := reTitleCommand.ReplaceAllString(s, "${first}")
		if next == s {
			return s
		}
		s = next
	}
}

// transliterations covers lower-case letters that have no decomposition
// into an ASCII base letter and a mark.
var transliterations = strings.NewReplacer(
	"ß", "ss",
	"æ", "ae",
	"œ", "oe",
	"ø", "o",
	"ł", "l",
	"đ", "d",
	"ð", "d",
	"þ", "th",
	"ħ", "h",
	"ı", "i",
)

// Slugify lower-cases s, transliterates it to ASCII, and joins runs of
// letters and digits with single dashes.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	s = transliterations.Replace(cases.Lower(language.Und).String(s))

	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}

// Package normalize cleans raw scraped text and deduplicates records.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Mrunal31-Stark/Web-Scraper/internal/model"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// countryAliases folds common short forms into the names used by the
// primary source, so the country filter compares like with like. Keys
// are lowercase; the lookup is case-insensitive.
var countryAliases = map[string]string{
	"us":      "United States",
	"u.s.":    "United States",
	"usa":     "United States",
	"uk":      "United Kingdom",
	"england": "United Kingdom",
}

// smallWords stay lowercase mid-phrase when title casing.
var smallWords = map[string]struct{}{
	"and": {}, "or": {}, "of": {}, "the": {}, "in": {}, "on": {},
	"for": {}, "to": {}, "at": {}, "by": {}, "with": {},
}

// Clean trims, collapses whitespace runs, and strips non-printable
// characters. Empty input maps to the sentinel.
func Clean(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	out := whitespaceRun.ReplaceAllString(b.String(), " ")
	out = strings.TrimSpace(out)
	if out == "" {
		return model.Sentinel
	}
	return out
}

// TitleCase applies title casing that keeps short all-caps tokens (IIT,
// MBA) intact, lowercases connective words mid-phrase, and folds country
// aliases. The sentinel passes through unchanged.
func TitleCase(s string) string {
	s = Clean(s)
	if s == model.Sentinel {
		return s
	}

	words := strings.Fields(s)
	for i, w := range words {
		lower := strings.ToLower(w)
		switch {
		case i > 0 && isSmallWord(lower):
			words[i] = lower
		case w == strings.ToUpper(w) && len(w) <= 5 && strings.ContainsFunc(w, unicode.IsLetter):
			// keep acronyms as-is
		default:
			words[i] = capitalize(lower)
		}
	}
	titled := strings.Join(words, " ")
	if alias, ok := countryAliases[strings.ToLower(titled)]; ok {
		return alias
	}
	return titled
}

func isSmallWord(w string) bool {
	_, ok := smallWords[w]
	return ok
}

func capitalize(w string) string {
	r := []rune(w)
	if len(r) == 0 {
		return w
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Dedupe retains the first occurrence per key, preserving encounter
// order. Running it twice over its own output is a no-op.
func Dedupe[T any](items []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := key(it)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

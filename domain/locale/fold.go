package locale

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// arabicLetters collapses spelling variants that users type interchangeably.
// Hamza-carrying alefs are already reduced by decomposition.
func arabicLetters(r rune) rune {
	switch r {
	case 'ٱ': // alef wasla
		return 'ا'
	case 'ة': // taa marbuta
		return 'ه'
	case 'ى': // alef maqsura
		return 'ي'
	default:
		return r
	}
}

func isTatweel(r rune) bool { return r == 'ـ' }

// Fold normalises s for search matching: case folded, diacritics and Arabic
// tashkeel removed, Arabic letter variants unified, whitespace collapsed.
func Fold(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(isTatweel)),
		runes.Map(arabicLetters),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = cases.Fold().String(out)
	return strings.Join(strings.Fields(out), " ")
}

// Tokens splits a folded query into search terms.
func Tokens(query string) []string {
	return strings.Fields(Fold(query))
}

// Matches reports whether every token of query occurs in at least one field.
// An empty query matches everything.
func Matches(query string, fields ...string) bool {
	tokens := Tokens(query)
	if len(tokens) == 0 {
		return true
	}
	folded := make([]string, len(fields))
	for i, f := range fields {
		folded[i] = Fold(f)
	}
	for _, tok := range tokens {
		found := false
		for _, f := range folded {
			if strings.Contains(f, tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Score counts how many query tokens occur across fields, weighting earlier
// fields higher. Used for keyword ranking.
func Score(query string, fields ...string) float64 {
	tokens := Tokens(query)
	if len(tokens) == 0 {
		return 0
	}
	var score float64
	for i, f := range fields {
		folded := Fold(f)
		weight := 1.0 / float64(i+1)
		for _, tok := range tokens {
			if strings.Contains(folded, tok) {
				score += weight
			}
		}
	}
	return score
}

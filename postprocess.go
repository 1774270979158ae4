package translit

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// digits maps Devanagari (U+0966–U+096F) and Bengali (U+09E6–U+09EF) digits
// to ASCII.
var digits = runes.Map(func(r rune) rune {
	switch {
	case r >= '०' && r <= '९':
		return '0' + (r - '०')
	case r >= '০' && r <= '৯':
		return '0' + (r - '০')
	default:
		return r
	}
})

// ConvertNumbers replaces Devanagari and Bengali digits with ASCII digits.
// ASCII digits are left as they are, so the function is idempotent.
func ConvertNumbers(text string) string {
	if text == "" {
		return ""
	}

	result, _, err := transform.String(digits, text)
	if err != nil {
		return text
	}

	return result
}

// dandas turns verse punctuation into a sentence-ending period. A pair of
// single dandas counts as one double danda.
var dandas = strings.NewReplacer(
	"।।", ".",
	string(doubleDanda), ".",
	string(danda), ".",
)

// PreservePunctuation converts danda marks to periods.
func PreservePunctuation(text string) string {
	if text == "" {
		return ""
	}

	return dandas.Replace(text)
}

// Capitalize applies the capitalization policy of textType. Unknown text
// types leave text unchanged.
func Capitalize(textType TextType, text string) string {
	switch textType {
	case Verse:
		return LowercaseVerse(text)
	case Prose:
		return CapitalizeAfterPeriod(text)
	default:
		return text
	}
}

// LowercaseVerse lowercases the whole text using Ukrainian case rules.
func LowercaseVerse(text string) string {
	if text == "" {
		return ""
	}

	return cases.Lower(language.Ukrainian).String(text)
}

// CapitalizeAfterPeriod uppercases the first rune of text and the first
// letter following each period that is followed by whitespace. Everything
// else, whitespace included, is kept as is.
func CapitalizeAfterPeriod(text string) string {
	if text == "" {
		return ""
	}

	upper := cases.Upper(language.Ukrainian)

	var sb strings.Builder
	sb.Grow(len(text))

	const (
		scanning = iota
		afterPeriod
		afterPeriodSpace
	)

	state := scanning
	first := true

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		chunk := text[i : i+size]
		i += size

		switch {
		case first:
			sb.WriteString(upper.String(chunk))
			first = false
			state = scanning
			if r == '.' {
				state = afterPeriod
			}

			continue
		case r == '.':
			state = afterPeriod
		case unicode.IsSpace(r):
			if state == afterPeriod {
				state = afterPeriodSpace
			}
		case state == afterPeriodSpace && unicode.IsLetter(r):
			sb.WriteString(upper.String(chunk))
			state = scanning

			continue
		default:
			state = scanning
		}

		sb.WriteString(chunk)
	}

	return sb.String()
}

package translit

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Latin letters left behind once the marks are stripped from ī and Ī.
var lookalikes = map[rune]rune{
	'i': 'і',
	'I': 'І',
}

// stripMarks drops nonspacing marks except the breve and diaeresis that
// make й and ї distinct letters.
var stripMarks = runes.Remove(runes.Predicate(func(r rune) bool {
	return unicode.Is(unicode.Mn, r) && r != '\u0306' && r != '\u0308'
}))

// SearchKey folds transliterated text into a plain lowercase form without
// diacritics, used to match glossary terms regardless of marks:
// "Кр̣шн̣а" and "кршна" share the key "кршна".
func SearchKey(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)

	result, _, err := transform.String(transform.Chain(norm.NFD, stripMarks, norm.NFC), text)
	if err == nil {
		text = result
	}

	var sb strings.Builder
	sb.Grow(len(text))

	for _, r := range text {
		if l, ok := lookalikes[r]; ok {
			sb.WriteRune(l)
			continue
		}

		sb.WriteRune(r)
	}

	return cases.Lower(language.Ukrainian).String(sb.String())
}

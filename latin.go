package translit

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// TransliterateLatin converts IAST text to Cyrillic by replacing every
// occurrence of each table key in turn, longest keys first and lexically
// within a length. So "ṅgha" reads "gh" before "ṅg" and gives "н̇ґга".
// Runes without a mapping are copied unchanged. Input may be composed or
// decomposed, output is NFC.
//
// No target contains a source key, so a replacement is never rewritten by
// a later, shorter key.
func TransliterateLatin(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)

	for _, e := range latinTable.entries {
		if strings.Contains(text, e.Source) {
			text = strings.ReplaceAll(text, e.Source, e.Target)
		}
	}

	return norm.NFC.String(text)
}

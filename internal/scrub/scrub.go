// Package scrub tidies scraped source fragments before transliteration:
// mojibake repair, stray byte-order marks, verse number prefixes and
// whitespace. NormalizeField adds per-field spelling fixes for stored
// verse records.
package scrub

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	translit "github.com/ad/sanskrit-translit"
)

// mojibake fixes the common sequences left when UTF-8 was read as
// Windows-1252 and the text could not be round-tripped as a whole.
var mojibake = strings.NewReplacer(
	"â€™", "'",
	"â€œ", `"`,
	"â€", `"`,
	"Ã¡", "á",
	"Ã©", "é",
	"Ã­", "í",
	"Ã³", "ó",
	"Ãº", "ú",
	"''", "'",
	"``", `"`,
	"\ufffd", "",
	"\ufeff", "",
	"\uf0a0", "",
)

// RepairMojibake undoes UTF-8 text that was decoded as Windows-1252. When
// the whole string cannot be re-encoded, known sequences are replaced one
// by one.
func RepairMojibake(s string) string {
	if s == "" {
		return ""
	}

	if strings.ContainsAny(s, "ÃâÂ") {
		enc, err := charmap.Windows1252.NewEncoder().String(s)
		if err == nil && utf8.ValidString(enc) && enc != s {
			s = enc
		}
	}

	return mojibake.Replace(s)
}

var (
	numberPrefix  = regexp.MustCompile(`^\s*\d+\s*:\s*`)
	textPrefix    = regexp.MustCompile(`(?i)^\s*текст\s+\d+\s*:\s*`)
	spaces        = regexp.MustCompile(`\s+`)
	spaceBeforePn = regexp.MustCompile(`\s+([,.;:!?])`)
)

// Clean repairs mojibake, drops "Текст 12:" and "18:" prefixes, collapses
// runs of whitespace and removes spaces before punctuation.
func Clean(s string) string {
	if s == "" {
		return ""
	}

	s = RepairMojibake(s)
	s = numberPrefix.ReplaceAllString(s, "")
	s = textPrefix.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, " ")
	s = spaceBeforePn.ReplaceAllString(s, "$1")

	return strings.TrimSpace(s)
}

// Field is the kind of stored verse field a text belongs to. Each kind gets
// its own rules on top of Clean.
type Field int

const (
	FieldSanskrit Field = iota
	// FieldTransliteration is Ukrainian transliteration as stored.
	FieldTransliteration
	// FieldTransliterationEN is IAST transliteration to be converted.
	FieldTransliterationEN
	FieldSynonyms
	FieldTranslation
	FieldCommentary
)

func (f Field) String() string {
	switch f {
	case FieldSanskrit:
		return "sanskrit"
	case FieldTransliteration:
		return "transliteration"
	case FieldTransliterationEN:
		return "transliteration_en"
	case FieldSynonyms:
		return "synonyms"
	case FieldTranslation:
		return "translation"
	case FieldCommentary:
		return "commentary"
	default:
		return "unknown"
	}
}

// ParseField converts a field name as used in verse records.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sanskrit":
		return FieldSanskrit, nil
	case "transliteration", "transliteration_ua":
		return FieldTransliteration, nil
	case "transliteration_en":
		return FieldTransliterationEN, nil
	case "synonyms", "synonyms_ua", "synonyms_en":
		return FieldSynonyms, nil
	case "translation", "translation_ua", "translation_en":
		return FieldTranslation, nil
	case "commentary", "commentary_ua", "commentary_en":
		return FieldCommentary, nil
	}

	return FieldSanskrit, fmt.Errorf("unknown field %q", s)
}

// diacritics drops a dot below that OCR leaves on plain vowels.
var diacritics = strings.NewReplacer(
	"а\u0323", "а",
	"і\u0323", "і",
)

// clusters restores aspirated stops written with г instead of х.
var clusters = strings.NewReplacer(
	"тг", "тх",
	"пг", "пх",
	"кг", "кх",
	"чг", "чх",
	"Тг", "Тх",
	"Пг", "Пх",
	"Кг", "Кх",
	"Чг", "Чх",
)

// words fixes spellings in Ukrainian prose. It never touches
// transliteration, where "чайтанйа" is the intended form.
var words = strings.NewReplacer(
	"Шрі Чайтан'я-чарітамріта", "Шрі Чайтанья-чарітамріта",
	"Чайтан'я", "Чайтанья",
	"Ніт'янанда", "Нітьянанда",
	"енерґія", "енергія",
	"Ачйута", "Ачьюта",
	"Адвайта", "Адваіта",
)

// NormalizeField cleans text with Clean and then applies the rules for
// field:
//
//	sanskrit            diacritics
//	transliteration     diacritics, clusters
//	transliteration_en  IAST to Cyrillic, diacritics, words
//	synonyms, translation, commentary
//	                    diacritics, words, clusters
func NormalizeField(text string, field Field) string {
	s := Clean(text)
	if s == "" {
		return ""
	}

	switch field {
	case FieldSanskrit:
		s = diacritics.Replace(s)
	case FieldTransliteration:
		s = diacritics.Replace(s)
		s = clusters.Replace(s)
	case FieldTransliterationEN:
		s = translit.TransliterateLatin(s)
		s = diacritics.Replace(s)
		s = words.Replace(s)
	case FieldSynonyms, FieldTranslation, FieldCommentary:
		s = diacritics.Replace(s)
		s = words.Replace(s)
		s = clusters.Replace(s)
	}

	return s
}

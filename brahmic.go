package translit

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// inherentVowel is written after a consonant that is followed by neither a
// dependent vowel sign nor a virama.
const inherentVowel = "а"

// brahmicScript describes the code point layout of one Brahmic block.
type brahmicScript struct {
	table *Table

	consonants [][2]rune // inclusive ranges
	signs      [][2]rune // dependent vowel signs
	virama     rune
	nukta      rune

	// independent is the independent vowel equivalent of each sign, used
	// when a sign has no consonant to attach to.
	independent map[rune]rune
}

var devanagari = &brahmicScript{
	table:      devanagariTable,
	consonants: [][2]rune{{0x0915, 0x0939}, {0x0958, 0x095F}, {0x0978, 0x097F}},
	signs:      [][2]rune{{0x093E, 0x094C}, {0x094E, 0x094F}, {0x0955, 0x0957}, {0x0962, 0x0963}},
	virama:     0x094D,
	nukta:      0x093C,
	independent: map[rune]rune{
		'ा': 'आ',
		'ि': 'इ',
		'ी': 'ई',
		'ु': 'उ',
		'ू': 'ऊ',
		'ृ': 'ऋ',
		'ॄ': 'ॠ',
		'ॢ': 'ऌ',
		'ॣ': 'ॡ',
		'े': 'ए',
		'ै': 'ऐ',
		'ो': 'ओ',
		'ौ': 'औ',
	},
}

var bengali = &brahmicScript{
	table:      bengaliTable,
	consonants: [][2]rune{{0x0995, 0x09B9}, {0x09DC, 0x09DF}},
	signs:      [][2]rune{{0x09BE, 0x09CC}, {0x09D7, 0x09D7}, {0x09E2, 0x09E3}},
	virama:     0x09CD,
	nukta:      0x09BC,
	independent: map[rune]rune{
		'া': 'আ',
		'ি': 'ই',
		'ী': 'ঈ',
		'ু': 'উ',
		'ূ': 'ঊ',
		'ৃ': 'ঋ',
		'ৄ': 'ৠ',
		'ে': 'এ',
		'ৈ': 'ঐ',
		'ো': 'ও',
		'ৌ': 'ঔ',
	},
}

func inRanges(r rune, ranges [][2]rune) bool {
	for _, rg := range ranges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}

	return false
}

func (s *brahmicScript) isConsonant(r rune) bool {
	return inRanges(r, s.consonants)
}

func (s *brahmicScript) isVowelSign(r rune) bool {
	return inRanges(r, s.signs)
}

// scanState is the state of the Brahmic scanner between runes.
type scanState int

const (
	awaitingGlyph scanState = iota
	// consonantAwaitingMatra: a consonant was written and its vowel is
	// still open.
	consonantAwaitingMatra
)

// TransliterateDevanagari converts Devanagari text to Cyrillic.
func TransliterateDevanagari(text string) string {
	return devanagari.transliterate(text)
}

// TransliterateBengali converts Bengali script text to Cyrillic.
func TransliterateBengali(text string) string {
	return bengali.transliterate(text)
}

// transliterate scans text once, left to right, with one rune of context
// carried in the scanner state. It never fails: runes it cannot map are
// written unchanged.
func (s *brahmicScript) transliterate(text string) string {
	if text == "" {
		return ""
	}

	// NFC splits composition-excluded nukta letters into base + nukta,
	// which the consonant lookahead below handles.
	text = norm.NFC.String(text)

	var sb strings.Builder
	sb.Grow(len(text) * 2)

	state := awaitingGlyph
	// unmapped is set while the open consonant had no table entry; it is
	// copied as is and gets no inherent vowel.
	unmapped := false

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])

		switch state {
		case consonantAwaitingMatra:
			switch {
			case s.isVowelSign(r):
				if dst, ok := s.table.lookupRune(r); ok {
					sb.WriteString(dst)
				} else {
					// unknown sign still replaces the inherent vowel
					sb.WriteRune(r)
				}
				i += size
				state = awaitingGlyph
			case r == s.virama:
				i += size
				state = awaitingGlyph
			case r == s.nukta:
				// stray nukta on a consonant without a nukta form
				sb.WriteRune(r)
				i += size
			default:
				if !unmapped {
					sb.WriteString(inherentVowel)
				}
				state = awaitingGlyph
			}

			continue

		case awaitingGlyph:
			if s.isConsonant(r) {
				n, ok := s.writeConsonant(&sb, text[i:], r, size)
				i += n
				unmapped = !ok
				state = consonantAwaitingMatra

				continue
			}

			if s.isVowelSign(r) {
				s.writeDetachedSign(&sb, r)
				i += size

				continue
			}

			if dst, ok := s.table.lookupRune(r); ok {
				sb.WriteString(dst)
			} else {
				sb.WriteRune(r)
			}
			i += size
		}
	}

	if state == consonantAwaitingMatra && !unmapped {
		sb.WriteString(inherentVowel)
	}

	return norm.NFC.String(sb.String())
}

// writeConsonant writes the consonant at the head of rest and returns the
// number of bytes consumed. A following nukta is folded in when the table
// has a mapping for the pair. ok is false when the consonant has no mapping
// and was copied unchanged.
func (s *brahmicScript) writeConsonant(sb *strings.Builder, rest string, r rune, size int) (n int, ok bool) {
	if next, nsize := utf8.DecodeRuneInString(rest[size:]); next == s.nukta {
		if dst, ok := s.table.Lookup(rest[:size+nsize]); ok {
			sb.WriteString(dst)
			return size + nsize, true
		}
	}

	dst, ok := s.table.lookupRune(r)
	if !ok {
		sb.WriteRune(r)
		return size, false
	}

	sb.WriteString(dst)

	return size, true
}

// writeDetachedSign handles a vowel sign with no consonant before it, such
// as a sign at the start of text or a second sign in a row.
func (s *brahmicScript) writeDetachedSign(sb *strings.Builder, r rune) {
	if v, ok := s.independent[r]; ok {
		if dst, ok := s.table.lookupRune(v); ok {
			sb.WriteString(dst)
			return
		}
	}

	sb.WriteRune(r)
}

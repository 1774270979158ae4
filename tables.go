package translit

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/slices"
	"golang.org/x/text/unicode/norm"
)

// Combining marks used by the Cyrillic rendering.
const (
	dotAbove    = "\u0307"
	dotBelow    = "\u0323"
	macron      = "\u0304"
	acute       = "\u0301"
	tilde       = "\u0303"
	candrabindu = "\u0310"
)

const (
	danda       = '।'
	doubleDanda = '॥'
)

// GlyphMapping associates a source token with its Cyrillic rendering.
type GlyphMapping struct {
	Source string
	Target string
}

// Table is an immutable set of glyph mappings for one source script.
type Table struct {
	name    string
	entries []GlyphMapping
	index   map[string]string
	runes   map[rune]string
	maxKey  int
}

func newTable(name string, mappings map[string]string) *Table {
	t := &Table{
		name:    name,
		entries: make([]GlyphMapping, 0, len(mappings)),
		index:   make(map[string]string, len(mappings)),
		runes:   make(map[rune]string),
	}

	for src, dst := range mappings {
		key := norm.NFC.String(src)
		if prev, ok := t.index[key]; ok && prev != dst {
			panic(fmt.Sprintf("translit: %s table maps %q twice (%q, %q)", name, key, prev, dst))
		}

		t.index[key] = dst

		n := utf8.RuneCountInString(key)
		if n > t.maxKey {
			t.maxKey = n
		}
		if n == 1 {
			r, _ := utf8.DecodeRuneInString(key)
			t.runes[r] = dst
		}
	}

	for key, dst := range t.index {
		t.entries = append(t.entries, GlyphMapping{Source: key, Target: dst})
	}

	slices.SortFunc(t.entries, compareMappings)

	return t
}

// compareMappings orders longer source keys first, then lexically.
func compareMappings(a, b GlyphMapping) int {
	la, lb := utf8.RuneCountInString(a.Source), utf8.RuneCountInString(b.Source)
	if la != lb {
		return lb - la
	}

	return strings.Compare(a.Source, b.Source)
}

// Name returns the script name the table was built for.
func (t *Table) Name() string {
	return t.name
}

// Lookup returns the target for an exact source token.
func (t *Table) Lookup(source string) (string, bool) {
	dst, ok := t.index[source]
	return dst, ok
}

func (t *Table) lookupRune(r rune) (string, bool) {
	dst, ok := t.runes[r]
	return dst, ok
}

// Entries returns a copy of the mappings, longest source key first and
// lexically within equal lengths.
func (t *Table) Entries() []GlyphMapping {
	return slices.Clone(t.entries)
}

// Keys returns the source keys in Entries order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.entries))
	for i, e := range t.entries {
		keys[i] = e.Source
	}

	return keys
}

// Len returns the number of mappings.
func (t *Table) Len() int {
	return len(t.entries)
}

// MaxKeyLen returns the length in runes of the longest source key.
func (t *Table) MaxKeyLen() int {
	return t.maxKey
}

var (
	latinTable      = newTable("iast", iastToCyrillic)
	devanagariTable = newTable("devanagari", devanagariToCyrillic)
	bengaliTable    = newTable("bengali", bengaliToCyrillic)
)

// LatinTable returns the IAST mapping table.
func LatinTable() *Table { return latinTable }

// DevanagariTable returns the Devanagari mapping table.
func DevanagariTable() *Table { return devanagariTable }

// BengaliTable returns the Bengali mapping table.
func BengaliTable() *Table { return bengaliTable }

// TableFor returns the table for script, or nil for an unknown script.
func TableFor(script SourceScript) *Table {
	switch script {
	case ScriptIAST:
		return latinTable
	case ScriptDevanagari:
		return devanagariTable
	case ScriptBengali:
		return bengaliTable
	default:
		return nil
	}
}

// forbidden lists the Cyrillic letters that must never appear in output.
var forbidden = []rune{'є', 'и', 'ь', 'ю', 'я', 'ы', 'э'}

// ForbiddenLetters returns the letters the output alphabet excludes.
func ForbiddenLetters() []rune {
	return slices.Clone(forbidden)
}

var iastToCyrillic = map[string]string{
	// vowels
	"a": "а",
	"ā": "а" + macron,
	"i": "і",
	"ī": "ī",
	"u": "у",
	"ū": "ӯ",
	"e": "е",
	"o": "о",
	"ṛ": "р" + dotBelow,
	"ṝ": "р" + dotBelow + macron,
	"r̥": "р" + dotBelow,
	"r̥̄": "р" + dotBelow + macron,
	"ḷ": "л" + dotBelow,

	"A": "А",
	"Ā": "А" + macron,
	"I": "І",
	"Ī": "Ī",
	"U": "У",
	"Ū": "Ӯ",
	"E": "Е",
	"O": "О",
	"Ṛ": "Р" + dotBelow,
	"Ṝ": "Р" + dotBelow + macron,
	"R̥": "Р" + dotBelow,
	"R̥̄": "Р" + dotBelow + macron,
	"Ḷ": "Л" + dotBelow,

	// vowel groups
	"ai":  "аі",
	"au":  "ау",
	"aya": "айа",
	"āya": "а" + macron + "йа",
	"āye": "а" + macron + "йе",
	"ya":  "йа",
	"ye":  "йе",
	"Ai":  "Аі",
	"Au":  "Ау",
	"Ya":  "Йа",
	"Ye":  "Йе",

	// aspirates and clusters
	"kh":  "кх",
	"gh":  "ґг",
	"ch":  "чх",
	"jh":  "джх",
	"ṭh":  "т" + dotBelow + "х",
	"ḍh":  "д" + dotBelow + "г",
	"th":  "тх",
	"dh":  "дг",
	"ph":  "пх",
	"bh":  "бг",
	"kṣ":  "кш",
	"jñ":  "дж" + "н" + tilde,
	"ṅg":  "н" + dotAbove + "ґ",
	"ñi":  "н" + tilde + "і",
	"hy":  "хй",
	"cch": "ччх",
	"jjh": "дджх",
	"ṛṣṇ": "р" + dotBelow + "ш" + "н" + dotBelow,

	"Kh": "Кх",
	"Gh": "Ґг",
	"Ch": "Чх",
	"Jh": "Джх",
	"Ṭh": "Т" + dotBelow + "х",
	"Ḍh": "Д" + dotBelow + "г",
	"Th": "Тх",
	"Dh": "Дг",
	"Ph": "Пх",
	"Bh": "Бг",
	"Kṣ": "Кш",
	"Jñ": "Дж" + "н" + tilde,
	"Hy": "Хй",

	// consonants with diacritics
	"ś": "ш" + acute,
	"ṣ": "ш",
	"ṭ": "т" + dotBelow,
	"ḍ": "д" + dotBelow,
	"ṇ": "н" + dotBelow,
	"ñ": "н" + tilde,
	"ṅ": "н" + dotAbove,
	"ṁ": "м" + dotAbove,
	"ṃ": "м" + dotAbove,
	"m̐": "м" + candrabindu,
	"ḥ": "х" + dotBelow,

	"Ś": "Ш" + acute,
	"Ṣ": "Ш",
	"Ṭ": "Т" + dotBelow,
	"Ḍ": "Д" + dotBelow,
	"Ṇ": "Н" + dotBelow,
	"Ñ": "Н" + tilde,
	"Ṅ": "Н" + dotAbove,
	"Ṁ": "М" + dotAbove,
	"Ṃ": "М" + dotAbove,
	"M̐": "М" + candrabindu,
	"Ḥ": "Х" + dotBelow,

	// plain consonants
	"k": "к",
	"g": "ґ",
	"c": "ч",
	"j": "дж",
	"t": "т",
	"d": "д",
	"p": "п",
	"b": "б",
	"n": "н",
	"m": "м",
	"y": "й",
	"r": "р",
	"l": "л",
	"v": "в",
	"s": "с",
	"h": "х",

	"K": "К",
	"G": "Ґ",
	"C": "Ч",
	"J": "Дж",
	"T": "Т",
	"D": "Д",
	"P": "П",
	"B": "Б",
	"N": "Н",
	"M": "М",
	"Y": "Й",
	"R": "Р",
	"L": "Л",
	"V": "В",
	"S": "С",
	"H": "Х",
}

var devanagariToCyrillic = map[string]string{
	// independent vowels
	"अ": "а",
	"आ": "а" + macron,
	"इ": "і",
	"ई": "ī",
	"उ": "у",
	"ऊ": "ӯ",
	"ऋ": "р" + dotBelow,
	"ॠ": "р" + dotBelow + macron,
	"ऌ": "л" + dotBelow,
	"ॡ": "л" + dotBelow + macron,
	"ए": "е",
	"ऐ": "аі",
	"ओ": "о",
	"औ": "ау",

	// consonants, without the inherent vowel
	"क": "к",
	"ख": "кх",
	"ग": "ґ",
	"घ": "ґг",
	"ङ": "н" + dotAbove,
	"च": "ч",
	"छ": "чх",
	"ज": "дж",
	"झ": "джх",
	"ञ": "н" + tilde,
	"ट": "т" + dotBelow,
	"ठ": "т" + dotBelow + "х",
	"ड": "д" + dotBelow,
	"ढ": "д" + dotBelow + "г",
	"ण": "н" + dotBelow,
	"त": "т",
	"थ": "тх",
	"द": "д",
	"ध": "дг",
	"न": "н",
	"प": "п",
	"फ": "пх",
	"ब": "б",
	"भ": "бг",
	"म": "м",
	"य": "й",
	"र": "р",
	"ल": "л",
	"ळ": "л" + dotBelow,
	"ऩ": "н",
	"ऱ": "р",
	"ऴ": "л" + dotBelow,
	"व": "в",
	"श": "ш" + acute,
	"ष": "ш",
	"स": "с",
	"ह": "х",

	// nasalisation and aspiration
	"ँ": "м" + candrabindu,
	"ं": "м" + dotAbove,
	"ः": "х" + dotBelow,

	// dependent vowel signs
	"ा": "а" + macron,
	"ि": "і",
	"ी": "ī",
	"ु": "у",
	"ू": "ӯ",
	"ृ": "р" + dotBelow,
	"ॄ": "р" + dotBelow + macron,
	"ॢ": "л" + dotBelow,
	"ॣ": "л" + dotBelow + macron,
	"े": "е",
	"ै": "аі",
	"ो": "о",
	"ौ": "ау",

	// virama
	"्": "",

	"ऽ": "'",
	"ॐ": "ом" + dotAbove,
}

var bengaliToCyrillic = map[string]string{
	// independent vowels
	"অ": "а",
	"আ": "а" + macron,
	"ই": "і",
	"ঈ": "ī",
	"উ": "у",
	"ঊ": "ӯ",
	"ঋ": "р" + dotBelow,
	"ৠ": "р" + dotBelow + macron,
	"ঌ": "л" + dotBelow,
	"এ": "е",
	"ঐ": "аі",
	"ও": "о",
	"ঔ": "ау",

	// consonants, without the inherent vowel
	"ক": "к",
	"খ": "кх",
	"গ": "ґ",
	"ঘ": "ґг",
	"ঙ": "н" + dotAbove,
	"চ": "ч",
	"ছ": "чх",
	"জ": "дж",
	"ঝ": "джх",
	"ঞ": "н" + tilde,
	"ট": "т" + dotBelow,
	"ঠ": "т" + dotBelow + "х",
	"ড": "д" + dotBelow,
	"ঢ": "д" + dotBelow + "г",
	"ণ": "н" + dotBelow,
	"ত": "т",
	"থ": "тх",
	"দ": "д",
	"ধ": "дг",
	"ন": "н",
	"প": "п",
	"ফ": "пх",
	"ব": "б",
	"ভ": "бг",
	"ম": "м",
	"য": "й",
	"র": "р",
	"ল": "л",
	"শ": "ш" + acute,
	"ষ": "ш",
	"স": "с",
	"হ": "х",
	"ড়": "р" + dotBelow,
	"ঢ়": "р" + dotBelow + "х",
	"য়": "й",

	// khanda ta carries no inherent vowel
	"ৎ": "т",

	// nasalisation and aspiration
	"ঁ": "м" + candrabindu,
	"ং": "м" + dotAbove,
	"ঃ": "х" + dotBelow,

	// dependent vowel signs
	"া": "а" + macron,
	"ি": "і",
	"ী": "ī",
	"ু": "у",
	"ূ": "ӯ",
	"ৃ": "р" + dotBelow,
	"ৄ": "р" + dotBelow + macron,
	"ে": "е",
	"ৈ": "аі",
	"ো": "о",
	"ৌ": "ау",

	// hasanta
	"্": "",

	"ঽ": "'",
}

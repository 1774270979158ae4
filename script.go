// Package translit converts Sanskrit and Bengali source text written in IAST
// Latin, Devanagari or Bengali script into Ukrainian Cyrillic with diacritics.
//
// All functions are pure. Mapping tables are built once at package
// initialisation and only read afterwards, so every function is safe for
// concurrent use.
package translit

import (
	"strings"
	"unicode"
)

// SourceScript selects the mapping table and scanning algorithm.
type SourceScript int

const (
	ScriptIAST SourceScript = iota
	ScriptDevanagari
	ScriptBengali
)

func (s SourceScript) String() string {
	switch s {
	case ScriptIAST:
		return "iast"
	case ScriptDevanagari:
		return "devanagari"
	case ScriptBengali:
		return "bengali"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the supported scripts.
func (s SourceScript) Valid() bool {
	return s >= ScriptIAST && s <= ScriptBengali
}

// ParseScript accepts the script names used by the import tooling.
func ParseScript(value string) (SourceScript, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "iast", "latin", "roman":
		return ScriptIAST, nil
	case "devanagari", "deva", "sanskrit":
		return ScriptDevanagari, nil
	case "bengali", "bangla", "beng":
		return ScriptBengali, nil
	}

	return 0, &ParseError{Kind: "script", Value: value, Err: ErrUnknownScript}
}

// TextType selects the capitalization policy.
type TextType int

const (
	// Verse output is lowercased entirely.
	Verse TextType = iota
	// Prose output is capitalized at the start and after each sentence.
	Prose
)

func (t TextType) String() string {
	switch t {
	case Verse:
		return "verse"
	case Prose:
		return "prose"
	default:
		return "unknown"
	}
}

// Valid reports whether t is one of the supported text types.
func (t TextType) Valid() bool {
	return t == Verse || t == Prose
}

// ParseTextType accepts "verse"/"shloka" and "prose"/"purport".
func ParseTextType(value string) (TextType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "verse", "shloka", "sloka":
		return Verse, nil
	case "prose", "purport", "commentary":
		return Prose, nil
	}

	return 0, &ParseError{Kind: "text type", Value: value, Err: ErrUnknownTextType}
}

// DetectScript guesses the source script from the letters in text. Brahmic
// letters win over Latin ones; when both Brahmic scripts occur the more
// frequent one is chosen. ok is false when text has no letters at all, in
// which case ScriptIAST is returned.
func DetectScript(text string) (script SourceScript, ok bool) {
	var deva, beng, latin int

	for _, r := range text {
		switch {
		case r == danda || r == doubleDanda:
			// shared by both Brahmic scripts
		case unicode.Is(unicode.Devanagari, r):
			deva++
		case unicode.Is(unicode.Bengali, r):
			beng++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}

	switch {
	case deva == 0 && beng == 0 && latin == 0:
		return ScriptIAST, false
	case deva == 0 && beng == 0:
		return ScriptIAST, true
	case beng > deva:
		return ScriptBengali, true
	default:
		return ScriptDevanagari, true
	}
}

func (s SourceScript) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, &ParseError{Kind: "script", Value: s.String(), Err: ErrUnknownScript}
	}

	return []byte(s.String()), nil
}

func (s *SourceScript) UnmarshalText(text []byte) error {
	v, err := ParseScript(string(text))
	if err != nil {
		return err
	}

	*s = v

	return nil
}

func (t TextType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, &ParseError{Kind: "text type", Value: t.String(), Err: ErrUnknownTextType}
	}

	return []byte(t.String()), nil
}

func (t *TextType) UnmarshalText(text []byte) error {
	v, err := ParseTextType(string(text))
	if err != nil {
		return err
	}

	*t = v

	return nil
}

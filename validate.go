package translit

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// contextRunes is how many runes of text are kept on each side of a
// violation.
const contextRunes = 10

// Violation is one occurrence of a forbidden letter.
type Violation struct {
	Letter  rune   `json:"letter"`
	Offset  int    `json:"offset"` // byte offset in the validated text
	Context string `json:"context"`
}

func (v Violation) String() string {
	return fmt.Sprintf("forbidden letter %q at %d: %q", v.Letter, v.Offset, v.Context)
}

// ValidationResult reports whether text is free of forbidden letters.
type ValidationResult struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}

func isForbidden(r rune) bool {
	lr := unicode.ToLower(r)
	for _, f := range forbidden {
		if lr == f {
			return true
		}
	}

	return false
}

// Validate reports every forbidden letter in text, in either case. It never
// changes text: a violation points at a table defect to be fixed at the
// source.
func Validate(text string) ValidationResult {
	res := ValidationResult{Valid: true, Violations: []Violation{}}

	for i, r := range text {
		if !isForbidden(r) {
			continue
		}

		res.Valid = false
		res.Violations = append(res.Violations, Violation{
			Letter:  r,
			Offset:  i,
			Context: snippet(text, i, utf8.RuneLen(r)),
		})
	}

	return res
}

// snippet returns text around the size bytes at offset, extended by up to
// contextRunes runes on each side.
func snippet(text string, offset, size int) string {
	start := offset
	for n := 0; n < contextRunes && start > 0; n++ {
		_, s := utf8.DecodeLastRuneInString(text[:start])
		start -= s
	}

	end := offset + size
	for n := 0; n < contextRunes && end < len(text); n++ {
		_, s := utf8.DecodeRuneInString(text[end:])
		end += s
	}

	return text[start:end]
}

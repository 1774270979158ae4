package translit

import "fmt"

// Request is a single transliteration job.
type Request struct {
	Text     string       `json:"text"`
	Script   SourceScript `json:"script"`
	TextType TextType     `json:"text_type"`
}

// Validate checks the selectors of r.
func (r Request) Validate() error {
	if !r.Script.Valid() {
		return &ParseError{Kind: "script", Value: fmt.Sprint(int(r.Script)), Err: ErrUnknownScript}
	}
	if !r.TextType.Valid() {
		return &ParseError{Kind: "text type", Value: fmt.Sprint(int(r.TextType)), Err: ErrUnknownTextType}
	}

	return nil
}

// Result is the outcome of a request.
type Result struct {
	Output     string      `json:"output"`
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}

type options struct {
	numerals    bool
	punctuation bool
	hyphens     bool
}

// Option adjusts the post-processing stages of Process.
type Option func(*options)

// WithCompoundHyphens hyphenates known compounds before capitalization.
func WithCompoundHyphens() Option {
	return func(o *options) { o.hyphens = true }
}

// WithoutNumerals keeps Brahmic digits as they are.
func WithoutNumerals() Option {
	return func(o *options) { o.numerals = false }
}

// WithoutPunctuation keeps danda marks as they are.
func WithoutPunctuation() Option {
	return func(o *options) { o.punctuation = false }
}

// Transliterate runs the full pipeline with default options.
func Transliterate(text string, script SourceScript, textType TextType) Result {
	return Process(Request{Text: text, Script: script, TextType: textType})
}

// Process transliterates req.Text and runs the post-processors in order:
// numerals, punctuation, optional compound hyphens, capitalization. The
// output is then validated. Text in an unknown script is post-processed
// without transliteration.
func Process(req Request, opts ...Option) Result {
	o := options{numerals: true, punctuation: true}
	for _, opt := range opts {
		opt(&o)
	}

	out := transliterateScript(req.Script, req.Text)

	if o.numerals {
		out = ConvertNumbers(out)
	}
	if o.punctuation {
		out = PreservePunctuation(out)
	}
	if o.hyphens {
		out = AddCompoundHyphens(out)
	}
	out = Capitalize(req.TextType, out)

	v := Validate(out)

	return Result{Output: out, Valid: v.Valid, Violations: v.Violations}
}

func transliterateScript(script SourceScript, text string) string {
	switch script {
	case ScriptIAST:
		return TransliterateLatin(text)
	case ScriptDevanagari:
		return TransliterateDevanagari(text)
	case ScriptBengali:
		return TransliterateBengali(text)
	default:
		return text
	}
}

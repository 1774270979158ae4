// Package report writes transliteration results as plain text or JSON lines.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tdewolff/minify/v2"
	minjson "github.com/tdewolff/minify/v2/json"

	translit "github.com/ad/sanskrit-translit"
)

const mediaType = "application/json"

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc(mediaType, minjson.Minify)

	return m
}

// MinifyJSON returns input without insignificant whitespace. Invalid JSON is
// returned unchanged.
func MinifyJSON(input []byte) string {
	out, err := minifier.Bytes(mediaType, input)
	if err != nil {
		return string(input)
	}

	return string(out)
}

// Format selects how records are written.
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatPrettyJSON
)

// ParseFormat converts "text", "json" or "pretty".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "pretty":
		return FormatPrettyJSON, nil
	}

	return FormatText, fmt.Errorf("unknown output format %q", s)
}

// Record is one transliterated input line.
type Record struct {
	Line       int                   `json:"line"`
	Script     translit.SourceScript `json:"script"`
	TextType   translit.TextType     `json:"text_type"`
	Output     string                `json:"output"`
	Key        string                `json:"key"`
	Valid      bool                  `json:"valid"`
	Violations []translit.Violation  `json:"violations"`
}

// NewRecord builds a record from a pipeline result. Key is the folded
// search form of the output.
func NewRecord(line int, req translit.Request, res translit.Result) Record {
	return Record{
		Line:       line,
		Script:     req.Script,
		TextType:   req.TextType,
		Output:     res.Output,
		Key:        translit.SearchKey(res.Output),
		Valid:      res.Valid,
		Violations: res.Violations,
	}
}

// Writer writes records in a fixed format. It is not safe for concurrent
// use.
type Writer struct {
	w      io.Writer
	format Format
	buf    bytes.Buffer
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// Write writes rec followed by a newline. Text format writes only the
// output text.
func (wr *Writer) Write(rec Record) error {
	if wr.format == FormatText {
		_, err := io.WriteString(wr.w, rec.Output+"\n")
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode line %d: %w", rec.Line, err)
	}

	if wr.format == FormatPrettyJSON {
		_, err = wr.w.Write(append(data, '\n'))
		return err
	}

	wr.buf.Reset()
	if err := minifier.Minify(mediaType, &wr.buf, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("minify line %d: %w", rec.Line, err)
	}
	wr.buf.WriteByte('\n')

	_, err = wr.w.Write(wr.buf.Bytes())

	return err
}

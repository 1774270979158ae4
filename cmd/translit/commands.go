package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"time"

	translit "github.com/ad/sanskrit-translit"
	"github.com/ad/sanskrit-translit/internal/logging"
	"github.com/ad/sanskrit-translit/internal/report"
	"github.com/ad/sanskrit-translit/internal/scrub"
)

// errViolations is returned by strict runs and validate when any line
// contains forbidden letters.
var errViolations = errors.New("forbidden letters found")

// RunCmd transliterates input lines.
type RunCmd struct {
	Files   []string `arg:"" optional:"" help:"Input files, one request per line. Reads stdin when empty."`
	Script  string   `short:"s" default:"auto" help:"Source script: auto, iast, devanagari or bengali."`
	Type    string   `short:"t" default:"verse" help:"Text type: verse or prose."`
	Format  string   `short:"f" default:"text" enum:"text,json,pretty" help:"Output format."`
	Workers int      `short:"w" default:"0" help:"Parallel workers, 0 uses every CPU."`
	Hyphens bool     `help:"Hyphenate known compounds."`
	Clean   bool     `help:"Repair mojibake and drop verse number prefixes first."`
	Strict  bool     `help:"Fail when any output line contains forbidden letters."`

	NoNumerals    bool `name:"no-numerals" help:"Keep Brahmic digits."`
	NoPunctuation bool `name:"no-punctuation" help:"Keep danda marks."`
}

func (c *RunCmd) config() (batchConfig, error) {
	cfg := batchConfig{clean: c.Clean, workers: c.Workers}

	if c.Script == "auto" {
		cfg.detect = true
	} else {
		script, err := translit.ParseScript(c.Script)
		if err != nil {
			return cfg, err
		}
		cfg.script = script
	}

	textType, err := translit.ParseTextType(c.Type)
	if err != nil {
		return cfg, err
	}
	cfg.textType = textType

	if cfg.workers <= 0 {
		cfg.workers = runtime.NumCPU()
	}
	if c.Hyphens {
		cfg.options = append(cfg.options, translit.WithCompoundHyphens())
	}
	if c.NoNumerals {
		cfg.options = append(cfg.options, translit.WithoutNumerals())
	}
	if c.NoPunctuation {
		cfg.options = append(cfg.options, translit.WithoutPunctuation())
	}

	return cfg, nil
}

func (c *RunCmd) Run(ctx context.Context, s *streams) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	inputs, err := readInputs(c.Files, s.in)
	if err != nil {
		return err
	}

	w := report.NewWriter(s.out, format)
	invalidTotal := 0

	for _, in := range inputs {
		started := time.Now()
		logger := logging.GetLogger().With("source", in.name)
		logger.Debug("batch_start", "lines", len(in.lines), "workers", cfg.workers)

		records, err := processLines(ctx, in.lines, cfg)
		if err != nil {
			return err
		}

		invalid := 0
		for _, rec := range records {
			if !rec.Valid {
				invalid++
				logging.Violations(in.name, rec.Line, len(rec.Violations),
					"script", rec.Script.String(),
					"first", rec.Violations[0].String(),
				)
			}

			if err := w.Write(rec); err != nil {
				return err
			}
		}

		logging.BatchDone(in.name, len(records), invalid, time.Since(started))
		invalidTotal += invalid
	}

	if c.Strict && invalidTotal > 0 {
		return fmt.Errorf("%w in %d lines", errViolations, invalidTotal)
	}

	return nil
}

// ValidateCmd checks already transliterated text.
type ValidateCmd struct {
	Files []string `arg:"" optional:"" help:"Files to check. Reads stdin when empty."`
}

func (c *ValidateCmd) Run(s *streams) error {
	inputs, err := readInputs(c.Files, s.in)
	if err != nil {
		return err
	}

	total := 0
	for _, in := range inputs {
		for i, line := range in.lines {
			res := translit.Validate(line)
			for _, v := range res.Violations {
				fmt.Fprintf(s.out, "%s:%d: %s\n", in.name, i+1, v)
			}
			total += len(res.Violations)
		}
	}

	if total > 0 {
		return fmt.Errorf("%w: %d", errViolations, total)
	}

	return nil
}

// DetectCmd prints the detected script of each line.
type DetectCmd struct {
	Files []string `arg:"" optional:"" help:"Files to inspect. Reads stdin when empty."`
}

func (c *DetectCmd) Run(s *streams) error {
	inputs, err := readInputs(c.Files, s.in)
	if err != nil {
		return err
	}

	for _, in := range inputs {
		for _, line := range in.lines {
			name := "none"
			if script, ok := translit.DetectScript(line); ok {
				name = script.String()
			}
			fmt.Fprintf(s.out, "%s\t%s\n", name, line)
		}
	}

	return nil
}

// TableCmd prints a mapping table.
type TableCmd struct {
	Script string `short:"s" required:"" help:"Table to print: iast, devanagari or bengali."`
	Format string `short:"f" default:"text" enum:"text,json,pretty" help:"Output format."`
}

type tableEntry struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

func (c *TableCmd) Run(s *streams) error {
	script, err := translit.ParseScript(c.Script)
	if err != nil {
		return err
	}

	entries := translit.TableFor(script).Entries()

	if c.Format == "text" {
		for _, e := range entries {
			fmt.Fprintf(s.out, "%s\t%s\n", e.Source, e.Target)
		}

		return nil
	}

	out := make([]tableEntry, len(entries))
	for i, e := range entries {
		out[i] = tableEntry{Source: e.Source, Target: e.Target}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	text := string(data)
	if c.Format == "json" {
		text = report.MinifyJSON(data)
	}

	_, err = fmt.Fprintln(s.out, text)

	return err
}

// NormalizeCmd applies the spelling rules of one verse field to each line.
type NormalizeCmd struct {
	Files []string `arg:"" optional:"" help:"Files to normalize. Reads stdin when empty."`
	Field string   `short:"F" required:"" help:"Field kind: sanskrit, transliteration, transliteration_en, synonyms, translation or commentary."`
}

func (c *NormalizeCmd) Run(s *streams) error {
	field, err := scrub.ParseField(c.Field)
	if err != nil {
		return err
	}

	inputs, err := readInputs(c.Files, s.in)
	if err != nil {
		return err
	}

	for _, in := range inputs {
		for _, line := range in.lines {
			if _, err := fmt.Fprintln(s.out, scrub.NormalizeField(line, field)); err != nil {
				return err
			}
		}
	}

	return nil
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	translit "github.com/ad/sanskrit-translit"
	"github.com/ad/sanskrit-translit/internal/report"
	"github.com/ad/sanskrit-translit/internal/scrub"
)

const maxLineSize = 1 << 20

// stdinName is how stdin shows up in logs and diagnostics.
const stdinName = "-"

// input is one named source of lines.
type input struct {
	name  string
	lines []string
}

// readInputs reads every file, or r when files is empty.
func readInputs(files []string, r io.Reader) ([]input, error) {
	if len(files) == 0 {
		lines, err := readLines(r)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return []input{{name: stdinName, lines: lines}}, nil
	}

	inputs := make([]input, 0, len(files))
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}

		lines, err := readLines(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		inputs = append(inputs, input{name: name, lines: lines})
	}

	return inputs, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}

	return lines, sc.Err()
}

// batchConfig describes how every line of a batch is processed.
type batchConfig struct {
	script   translit.SourceScript
	detect   bool
	textType translit.TextType
	clean    bool
	options  []translit.Option
	workers  int
}

// request builds the pipeline request for one line.
func (c batchConfig) request(line string) translit.Request {
	if c.clean {
		line = scrub.Clean(line)
	}

	script := c.script
	if c.detect {
		if detected, ok := translit.DetectScript(line); ok {
			script = detected
		}
	}

	return translit.Request{Text: line, Script: script, TextType: c.textType}
}

// processLines transliterates lines with up to cfg.workers goroutines. Each
// worker owns a contiguous shard, so records come back in input order.
func processLines(ctx context.Context, lines []string, cfg batchConfig) ([]report.Record, error) {
	records := make([]report.Record, len(lines))
	if len(lines) == 0 {
		return records, nil
	}

	workers := cfg.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(lines) {
		workers = len(lines)
	}
	shard := (len(lines) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(lines); start += shard {
		end := min(start+shard, len(lines))

		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				req := cfg.request(lines[i])
				records[i] = report.NewRecord(i+1, req, translit.Process(req, cfg.options...))
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

// Package main provides a command line front end for the transliteration
// engine.
//
// Usage:
//
//	translit run [--script auto|iast|devanagari|bengali] [--type verse|prose] [--format text|json|pretty] [FILES...]
//	translit validate [FILES...]
//	translit detect [FILES...]
//	translit table --script <script> [--format text|json|pretty]
//	translit normalize --field <field> [FILES...]
//
// Every input line is one request. Without files, stdin is read.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/ad/sanskrit-translit/internal/logging"
)

// streams carries the standard streams so commands can be tested.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// CLI is the command tree.
type CLI struct {
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level."`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format."`

	Run       RunCmd       `cmd:"" help:"Transliterate lines to Ukrainian Cyrillic."`
	Validate  ValidateCmd  `cmd:"" help:"Report forbidden letters in already transliterated lines."`
	Detect    DetectCmd    `cmd:"" help:"Print the detected source script of each line."`
	Table     TableCmd     `cmd:"" help:"Print a mapping table in lookup order."`
	Normalize NormalizeCmd `cmd:"" help:"Apply per-field spelling fixes to stored verse text."`
}

// AfterApply configures logging once flags are parsed.
func (c *CLI) AfterApply(s *streams) error {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return err
	}

	logging.InitLogger(s.err, level, format)

	return nil
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("translit"),
		kong.Description("Sanskrit and Bengali to Ukrainian Cyrillic transliteration"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	}, options...)

	return kong.New(cli, options...)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var cli CLI

	parser, err := newParser(&cli,
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(&streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}),
	)
	if err != nil {
		panic(err)
	}

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = kctx.Run()
	kctx.FatalIfErrorf(err)
}

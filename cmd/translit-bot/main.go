// Command translit-bot is a Telegram bot that replies to Sanskrit and Bengali
// text with its Ukrainian transliteration.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/go-telegram/bot"

	translit "github.com/ad/sanskrit-translit"
	"github.com/ad/sanskrit-translit/internal/logging"
)

// ConfigFileName is where the add-on supervisor mounts the options.
const ConfigFileName = "/data/options.json"

// Config ...
type Config struct {
	Token     string `json:"TOKEN" env:"TOKEN" help:"Telegram bot token."`
	TextType  string `json:"TEXT_TYPE" name:"text-type" env:"TEXT_TYPE" default:"verse" help:"Default text type: verse or prose."`
	LogLevel  string `json:"LOG_LEVEL" name:"log-level" env:"LOG_LEVEL" default:"info" help:"Log level."`
	LogFormat string `json:"LOG_FORMAT" name:"log-format" env:"LOG_FORMAT" default:"text" help:"Log format: text or json."`
}

var errNoToken = errors.New("TOKEN env var not set")

// loadConfig reads path when it exists and falls back to flags and the
// environment otherwise.
func loadConfig(path string, args []string) (*Config, error) {
	config := &Config{}

	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error on unmarshal config from file %s: %w", path, err)
		}
	} else {
		parser, err := kong.New(config,
			kong.Name("translit-bot"),
			kong.Description("Telegram bot for Sanskrit and Bengali transliteration"),
		)
		if err != nil {
			return nil, err
		}

		if _, err := parser.Parse(args); err != nil {
			return nil, err
		}
	}

	if config.Token == "" {
		return nil, errNoToken
	}
	if config.TextType == "" {
		config.TextType = translit.Verse.String()
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}

	return config, nil
}

func main() {
	config, err := loadConfig(ConfigFileName, os.Args[1:])
	if err != nil {
		logging.Error("config", "error", err)
		os.Exit(1)
	}

	level, err := logging.ParseLevel(config.LogLevel)
	if err != nil {
		logging.Error("config", "error", err)
		os.Exit(1)
	}
	format, err := logging.ParseFormat(config.LogFormat)
	if err != nil {
		logging.Error("config", "error", err)
		os.Exit(1)
	}
	logging.InitLogger(os.Stderr, level, format)

	textType, err := translit.ParseTextType(config.TextType)
	if err != nil {
		logging.Error("config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	a := &app{textType: textType}

	opts := []bot.Option{
		bot.WithDefaultHandler(a.handler),
		bot.WithErrorsHandler(func(err error) {
			logging.Warn("telegram", "error", err)
		}),
	}

	b, err := bot.New(config.Token, opts...)
	if err != nil {
		logging.Error("bot init", "error", err)
		os.Exit(1)
	}

	logging.Info("bot started", "text_type", textType.String())

	b.Start(ctx)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	translit "github.com/ad/sanskrit-translit"
	"github.com/ad/sanskrit-translit/internal/logging"
	"github.com/ad/sanskrit-translit/internal/report"
)

const (
	messageLimit  = 4096
	callbackLimit = 64
)

const helpText = `Send a verse or a purport in IAST, Devanagari or Bengali script and I will reply with its Ukrainian transliteration.

The script is detected automatically. Use the buttons under a reply to switch between verse (lowercase) and prose (sentence case).`

const (
	noLettersText   = "Nothing to transliterate: the message has no letters."
	unavailableText = "The original message is no longer available."
)

// app holds the per-bot settings shared by every update.
type app struct {
	textType translit.TextType
}

func (a *app) handler(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		a.handleCallback(ctx, b, update.CallbackQuery)

		return
	}

	if update.Message != nil && update.Message.Text != "" {
		switch command(update.Message.Text) {
		case "/start", "/help":
			a.reply(ctx, b, update.Message, helpText, nil)
		default:
			a.handleText(ctx, b, update.Message)
		}

		return
	}

	if data, err := json.Marshal(update); err == nil {
		logging.Debug("unhandled update", "update", report.MinifyJSON(data))
	}
}

// command returns the bot command that starts text, without a @botname
// suffix, or "" when text is not a command.
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}

	cmd, _, _ := strings.Cut(strings.Fields(text)[0], "@")

	return cmd
}

func (a *app) handleText(ctx context.Context, b *bot.Bot, msg *models.Message) {
	script, ok := translit.DetectScript(msg.Text)
	if !ok {
		a.reply(ctx, b, msg, noLettersText, nil)

		return
	}

	res := translit.Process(translit.Request{Text: msg.Text, Script: script, TextType: a.textType})
	if !res.Valid {
		logging.Violations("telegram", msg.ID, len(res.Violations), "chat", msg.Chat.ID, "script", script.String())
	}

	a.reply(ctx, b, msg, render(res), keyboard(script, a.textType))
}

func (a *app) reply(ctx context.Context, b *bot.Bot, msg *models.Message, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:          msg.Chat.ID,
		Text:            text,
		ReplyParameters: &models.ReplyParameters{MessageID: msg.ID},
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		logging.Error("send message", "chat", msg.Chat.ID, "error", err)
	}
}

func (a *app) handleCallback(ctx context.Context, b *bot.Bot, cq *models.CallbackQuery) {
	answer := &bot.AnswerCallbackQueryParams{CallbackQueryID: cq.ID}
	defer func() {
		if _, err := b.AnswerCallbackQuery(ctx, answer); err != nil {
			logging.Debug("answer callback", "error", err)
		}
	}()

	textType, script, err := parseCallbackData(cq.Data)
	if err != nil {
		logging.Warn("bad callback data", "data", cq.Data, "error", err)

		return
	}

	msg := cq.Message.Message
	if msg == nil || msg.ReplyToMessage == nil || msg.ReplyToMessage.Text == "" {
		answer.Text = unavailableText

		return
	}

	res := translit.Process(translit.Request{Text: msg.ReplyToMessage.Text, Script: script, TextType: textType})

	_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        render(res),
		ReplyMarkup: keyboard(script, textType),
	})
	if err != nil {
		// Telegram refuses edits that leave the message unchanged.
		logging.Debug("edit message", "chat", msg.Chat.ID, "error", err)
	}
}

// render formats a result as a message, listing forbidden letters below the
// text and keeping the message within Telegram's limit.
func render(res translit.Result) string {
	text := res.Output

	if !res.Valid {
		seen := map[rune]bool{}
		letters := make([]string, 0, len(res.Violations))
		for _, v := range res.Violations {
			if !seen[v.Letter] {
				seen[v.Letter] = true
				letters = append(letters, string(v.Letter))
			}
		}

		text += "\n\n⚠️ forbidden letters: " + strings.Join(letters, ", ")
	}

	return truncate(text, messageLimit)
}

func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)

	return string(runes[:limit-1]) + "…"
}

func callbackData(textType translit.TextType, script translit.SourceScript) string {
	return textType.String() + "-" + script.String()
}

func parseCallbackData(data string) (translit.TextType, translit.SourceScript, error) {
	tt, sc, ok := strings.Cut(data, "-")
	if !ok {
		return 0, 0, fmt.Errorf("malformed callback data %q", data)
	}

	textType, err := translit.ParseTextType(tt)
	if err != nil {
		return 0, 0, err
	}

	script, err := translit.ParseScript(sc)
	if err != nil {
		return 0, 0, err
	}

	return textType, script, nil
}

// keyboard offers both text types for script, marking the current one.
func keyboard(script translit.SourceScript, current translit.TextType) *models.InlineKeyboardMarkup {
	buttons := []models.InlineKeyboardButton{}

	for _, textType := range []translit.TextType{translit.Verse, translit.Prose} {
		data := callbackData(textType, script)
		if !checkStringLimit(data, callbackLimit) {
			continue
		}

		text := textType.String()
		if textType == current {
			text = "🟢 " + text
		}

		buttons = append(buttons, models.InlineKeyboardButton{Text: text, CallbackData: data})
	}

	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{buttons},
	}
}

func checkStringLimit(input string, limit int) bool {
	return len(input) <= limit
}

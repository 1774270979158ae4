package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	translit "github.com/ad/sanskrit-translit"
)

type serverMock struct {
	s *httptest.Server

	mu    sync.Mutex
	calls map[string][]map[string]string
}

func (s *serverMock) Close() {
	s.s.Close()
}

func (s *serverMock) URL() string {
	return s.s.URL
}

// requests returns the form fields of every call to method.
func (s *serverMock) requests(method string) []map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls[method]
}

func (s *serverMock) handler(rw http.ResponseWriter, req *http.Request) {
	method := path.Base(req.URL.Path)

	fields := map[string]string{}
	if err := req.ParseMultipartForm(1 << 20); err == nil {
		for k, v := range req.MultipartForm.Value {
			if len(v) > 0 {
				fields[k] = v[0]
			}
		}
	}

	s.mu.Lock()
	s.calls[method] = append(s.calls[method], fields)
	s.mu.Unlock()

	var resp string
	switch method {
	case "sendMessage", "editMessageText":
		resp = `{"ok":true,"result":{"message_id":2,"date":1,"chat":{"id":1,"type":"private"}}}`
	case "answerCallbackQuery":
		resp = `{"ok":true,"result":true}`
	default:
		panic("answer not found for request: " + req.URL.String())
	}

	if _, err := rw.Write([]byte(resp)); err != nil {
		panic(err)
	}
}

func newServerMock() *serverMock {
	s := &serverMock{
		calls: map[string][]map[string]string{},
	}

	s.s = httptest.NewServer(http.HandlerFunc(s.handler))

	return s
}

func newTestBot(t *testing.T) (*bot.Bot, *serverMock) {
	t.Helper()

	s := newServerMock()
	t.Cleanup(s.Close)

	b, err := bot.New("test_token", bot.WithServerURL(s.URL()), bot.WithSkipGetMe())
	if err != nil {
		t.Fatalf("unexpected error %q", err)
	}

	return b, s
}

func textMessage(text string) *models.Message {
	return &models.Message{
		ID:   10,
		Chat: models.Chat{ID: 1},
		Text: text,
	}
}

func Test_handlerText(t *testing.T) {
	b, s := newTestBot(t)
	a := &app{textType: translit.Verse}

	a.handler(context.Background(), b, &models.Update{Message: textMessage("Kṛṣṇa")})

	sent := s.requests("sendMessage")
	require.Len(t, sent, 1)

	assert.Equal(t, "1", sent[0]["chat_id"])
	assert.Equal(t, translit.Transliterate("Kṛṣṇa", translit.ScriptIAST, translit.Verse).Output, sent[0]["text"])
	assert.Contains(t, sent[0]["reply_markup"], `"callback_data":"prose-iast"`)
	assert.Contains(t, sent[0]["reply_markup"], `"callback_data":"verse-iast"`)
	assert.Contains(t, sent[0]["reply_parameters"], `"message_id":10`)
}

func Test_handlerCommands(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "start", text: "/start", want: helpText},
		{name: "help", text: "/help", want: helpText},
		{name: "help with bot name", text: "/help@translit_bot", want: helpText},
		{name: "no letters", text: "123 ...", want: noLettersText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, s := newTestBot(t)
			a := &app{textType: translit.Verse}

			a.handler(context.Background(), b, &models.Update{Message: textMessage(tt.text)})

			sent := s.requests("sendMessage")
			require.Len(t, sent, 1)
			assert.Equal(t, tt.want, sent[0]["text"])
			assert.Empty(t, sent[0]["reply_markup"])
		})
	}
}

func Test_handlerCallback(t *testing.T) {
	source := "हरे कृष्ण। हरे राम।"

	tests := []struct {
		name     string
		data     string
		message  *models.Message
		wantEdit string
		wantNote string
	}{
		{
			name: "switch to prose",
			data: "prose-devanagari",
			message: &models.Message{
				ID:             2,
				Chat:           models.Chat{ID: 1},
				ReplyToMessage: textMessage(source),
			},
			wantEdit: translit.Transliterate(source, translit.ScriptDevanagari, translit.Prose).Output,
		},
		{
			name: "switch to verse",
			data: "verse-devanagari",
			message: &models.Message{
				ID:             2,
				Chat:           models.Chat{ID: 1},
				ReplyToMessage: textMessage(source),
			},
			wantEdit: translit.Transliterate(source, translit.ScriptDevanagari, translit.Verse).Output,
		},
		{
			name:     "original deleted",
			data:     "prose-iast",
			message:  &models.Message{ID: 2, Chat: models.Chat{ID: 1}},
			wantNote: unavailableText,
		},
		{
			name:     "inaccessible",
			data:     "prose-iast",
			wantNote: unavailableText,
		},
		{
			name: "bad data",
			data: `{"c": "free-test"}`,
			message: &models.Message{
				ID:             2,
				Chat:           models.Chat{ID: 1},
				ReplyToMessage: textMessage(source),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, s := newTestBot(t)
			a := &app{textType: translit.Verse}

			a.handler(context.Background(), b, &models.Update{
				CallbackQuery: &models.CallbackQuery{
					ID:      "cq",
					Data:    tt.data,
					From:    models.User{ID: 1},
					Message: models.MaybeInaccessibleMessage{Message: tt.message},
				},
			})

			answers := s.requests("answerCallbackQuery")
			require.Len(t, answers, 1)
			assert.Equal(t, "cq", answers[0]["callback_query_id"])
			assert.Equal(t, tt.wantNote, answers[0]["text"])

			edits := s.requests("editMessageText")
			if tt.wantEdit == "" {
				assert.Empty(t, edits)
				return
			}

			require.Len(t, edits, 1)
			assert.Equal(t, tt.wantEdit, edits[0]["text"])
			assert.Equal(t, "2", edits[0]["message_id"])
			assert.Contains(t, edits[0]["reply_markup"], tt.data)
		})
	}
}

func Test_handlerUnknownUpdate(t *testing.T) {
	b, s := newTestBot(t)
	a := &app{textType: translit.Prose}

	a.handler(context.Background(), b, &models.Update{ID: 5})

	assert.Empty(t, s.requests("sendMessage"))
}

func Test_render(t *testing.T) {
	valid := translit.Result{Output: "кр̣шн̣а", Valid: true, Violations: []translit.Violation{}}
	assert.Equal(t, "кр̣шн̣а", render(valid))

	invalid := translit.Process(translit.Request{Text: "и я и", Script: translit.ScriptIAST})
	assert.Equal(t, "и я и\n\n⚠️ forbidden letters: и, я", render(invalid))

	long := translit.Result{Output: strings.Repeat("а", messageLimit+10), Valid: true}
	got := render(long)
	assert.Equal(t, messageLimit, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}

func Test_callbackData(t *testing.T) {
	for _, script := range []translit.SourceScript{translit.ScriptIAST, translit.ScriptDevanagari, translit.ScriptBengali} {
		for _, textType := range []translit.TextType{translit.Verse, translit.Prose} {
			data := callbackData(textType, script)
			assert.True(t, checkStringLimit(data, callbackLimit))

			gotType, gotScript, err := parseCallbackData(data)
			require.NoError(t, err)
			assert.Equal(t, textType, gotType)
			assert.Equal(t, script, gotScript)
		}
	}

	for _, data := range []string{"", "verse", "poem-iast", "verse-tamil"} {
		_, _, err := parseCallbackData(data)
		assert.Error(t, err, data)
	}
}

func Test_keyboard(t *testing.T) {
	kb := keyboard(translit.ScriptBengali, translit.Prose)

	require.Len(t, kb.InlineKeyboard, 1)
	assert.Equal(t, []models.InlineKeyboardButton{
		{Text: "verse", CallbackData: "verse-bengali"},
		{Text: "🟢 prose", CallbackData: "prose-bengali"},
	}, kb.InlineKeyboard[0])
}

func Test_loadConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "options.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"TOKEN":"file-token","TEXT_TYPE":"prose"}`), 0o600))

	config, err := loadConfig(file, nil)
	require.NoError(t, err)
	assert.Equal(t, &Config{Token: "file-token", TextType: "prose", LogLevel: "info", LogFormat: "text"}, config)

	missing := filepath.Join(dir, "missing.json")

	config, err = loadConfig(missing, []string{"--token", "flag-token", "--log-level", "debug"})
	require.NoError(t, err)
	assert.Equal(t, "flag-token", config.Token)
	assert.Equal(t, "verse", config.TextType)
	assert.Equal(t, "debug", config.LogLevel)

	t.Setenv("TOKEN", "env-token")
	config, err = loadConfig(missing, nil)
	require.NoError(t, err)
	assert.Equal(t, "env-token", config.Token)

	t.Setenv("TOKEN", "")
	_, err = loadConfig(missing, nil)
	assert.True(t, errors.Is(err, errNoToken))

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"TOKEN":`), 0o600))
	_, err = loadConfig(broken, nil)
	assert.Error(t, err)

	data, err := json.Marshal(Config{Token: "x"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"TOKEN":"x"`)
}

func Test_checkStringLimit(t *testing.T) {
	type args struct {
		input string
		limit int
	}
	tests := []struct {
		name string
		args args
		want bool
	}{
		{
			name: "63",
			args: args{
				input: "0123456789 0123456789 0123456789 0123456789 0123456789 01234567",
				limit: 64,
			},
			want: true,
		},
		{
			name: "65",
			args: args{
				input: "0123456789 0123456789 0123456789 0123456789 0123456789 0123456789",
				limit: 64,
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkStringLimit(tt.args.input, tt.args.limit); got != tt.want {
				t.Errorf("checkStringLimit() = %v, want %v", got, tt.want)
			}
		})
	}
}

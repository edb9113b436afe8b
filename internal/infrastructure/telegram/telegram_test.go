package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minerepair/repairhub/internal/application/notification"
)

type sentMessage struct {
	Path      string
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type fakeBotAPI struct {
	mu       sync.Mutex
	sent     []sentMessage
	response string
}

func newFakeBotAPI(t *testing.T, response string) (*fakeBotAPI, *httptest.Server) {
	api := &fakeBotAPI{response: response}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg sentMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		msg.Path = r.URL.Path

		api.mu.Lock()
		api.sent = append(api.sent, msg)
		api.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(api.response))
	}))
	t.Cleanup(srv.Close)
	return api, srv
}

func TestBotService_SendMessage(t *testing.T) {
	api, srv := newFakeBotAPI(t, `{"ok":true}`)
	bot := NewBotService("TOKEN", WithAPIBase(srv.URL))

	require.NoError(t, bot.SendMessage(context.Background(), 42, "hello"))

	require.Len(t, api.sent, 1)
	assert.Equal(t, "/botTOKEN/sendMessage", api.sent[0].Path)
	assert.Equal(t, int64(42), api.sent[0].ChatID)
	assert.Equal(t, "HTML", api.sent[0].ParseMode)
}

func TestBotService_SendMessageSplitsLongText(t *testing.T) {
	api, srv := newFakeBotAPI(t, `{"ok":true}`)
	bot := NewBotService("TOKEN", WithAPIBase(srv.URL))

	text := strings.Repeat("a", maxMessageLength) + "\n" + strings.Repeat("b", 10)
	require.NoError(t, bot.SendMessage(context.Background(), 1, text))
	assert.Len(t, api.sent, 2)
}

func TestBotService_APIError(t *testing.T) {
	_, srv := newFakeBotAPI(t, `{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`)
	bot := NewBotService("TOKEN", WithAPIBase(srv.URL))

	err := bot.SendMessage(context.Background(), 1, "hi")
	require.Error(t, err)
	assert.True(t, IsBotBlocked(err))
	assert.False(t, IsRateLimited(err))

	_, srv = newFakeBotAPI(t, `{"ok":false,"error_code":429,"description":"Too Many Requests","parameters":{"retry_after":7}}`)
	bot = NewBotService("TOKEN", WithAPIBase(srv.URL))
	err = bot.SendMessage(context.Background(), 1, "hi")
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.Contains(t, err.Error(), "retry_after=7s")
}

func TestChannel_Deliver(t *testing.T) {
	api, srv := newFakeBotAPI(t, `{"ok":true}`)
	ch := NewChannel(NewBotService("TOKEN", WithAPIBase(srv.URL)))
	msg := notification.Message{Subject: "Request #5", Body: "**Pump <failure>**\nCity: Miass"}

	err := ch.Deliver(context.Background(), notification.Target{UserID: 1}, msg)
	assert.ErrorIs(t, err, notification.ErrNoAddress)
	assert.Empty(t, api.sent)

	chatID := int64(777)
	require.NoError(t, ch.Deliver(context.Background(), notification.Target{UserID: 1, ChatID: &chatID}, msg))
	require.Len(t, api.sent, 1)
	assert.Equal(t, chatID, api.sent[0].ChatID)
	assert.Equal(t, "<b>Request #5</b>\n\n<b>Pump &lt;failure&gt;</b>\nCity: Miass", api.sent[0].Text)
}

func TestBroadcaster_PostsToChannel(t *testing.T) {
	api, srv := newFakeBotAPI(t, `{"ok":true}`)
	b := NewBroadcaster(NewBotService("TOKEN", WithAPIBase(srv.URL)), -100123)

	require.NoError(t, b.Broadcast(context.Background(), notification.Message{Body: "new work"}))
	require.Len(t, api.sent, 1)
	assert.Equal(t, int64(-100123), api.sent[0].ChatID)
	assert.Equal(t, "new work", api.sent[0].Text)
}

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"short", "hello", 10, []string{"hello"}},
		{"empty", "", 10, []string{""}},
		{"paragraph break", "aaaa\n\nbbbb", 8, []string{"aaaa\n\n", "bbbb"}},
		{"line break", "aaaa\nbbbb", 6, []string{"aaaa\n", "bbbb"}},
		{"hard cut", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"runes", "ёёёё", 2, []string{"ёё", "ёё"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitMessage(tt.text, tt.limit))
		})
	}
}

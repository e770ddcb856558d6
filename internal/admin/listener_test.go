package admin

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/remotefeed/internal/control"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeBotAPI hands out queued updates once and records sendMessage calls.
type fakeBotAPI struct {
	mu      sync.Mutex
	updates []string
	replies []map[string]string
	srv     *httptest.Server
}

func newFakeBotAPI(t *testing.T, updates ...string) *fakeBotAPI {
	t.Helper()
	f := &fakeBotAPI{updates: updates}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			io.WriteString(w, `{"ok":true,"result":{"id":42,"is_bot":true,"first_name":"feed","username":"feed_bot"}}`)
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			f.mu.Lock()
			pending := f.updates
			f.updates = nil
			f.mu.Unlock()
			if len(pending) == 0 {
				time.Sleep(10 * time.Millisecond)
			}
			fmt.Fprintf(w, `{"ok":true,"result":[%s]}`, strings.Join(pending, ","))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			r.ParseForm()
			form := map[string]string{}
			for k := range r.PostForm {
				form[k] = r.PostForm.Get(k)
			}
			f.mu.Lock()
			f.replies = append(f.replies, form)
			f.mu.Unlock()
			io.WriteString(w, `{"ok":true,"result":{"message_id":9,"date":0,"chat":{"id":7,"type":"private"}}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeBotAPI) sent() []map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]string(nil), f.replies...)
}

func commandUpdate(id int, userID int64, text string) string {
	cmdLen := len(text)
	if i := strings.IndexByte(text, ' '); i >= 0 {
		cmdLen = i
	}
	return fmt.Sprintf(`{"update_id":%d,"message":{"message_id":%d,"from":{"id":%d,"is_bot":false,"first_name":"op"},`+
		`"chat":{"id":%d,"type":"private"},"date":0,"text":%q,"entities":[{"type":"bot_command","offset":0,"length":%d}]}}`,
		id, id, userID, userID, text, cmdLen)
}

func TestListener_AnswersCommands(t *testing.T) {
	f := newFakeBotAPI(t,
		commandUpdate(1, 7, "/pause"),
		`{"update_id":2,"message":{"message_id":2,"from":{"id":7,"is_bot":false,"first_name":"op"},"chat":{"id":7,"type":"private"},"date":0,"text":"hello"}}`,
		commandUpdate(3, 7, "/last 3"),
	)
	bot, err := tgbotapi.NewBotAPIWithClient("123:abc", f.srv.URL+"/bot%s/%s", f.srv.Client())
	require.NoError(t, err)

	state := control.NewState()
	reader := &fakeReader{}
	l := NewListener(bot, NewHandler(reader, state, 7), 0, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	require.Eventually(t, func() bool { return len(f.sent()) == 2 }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop")
	}

	assert.True(t, state.Paused())
	assert.Equal(t, 3, reader.askedN)

	replies := f.sent()
	assert.Equal(t, "7", replies[0]["chat_id"])
	assert.Contains(t, replies[0]["text"], "Paused")
	assert.Contains(t, replies[1]["text"], "No jobs posted")
}

func TestListener_IgnoresOtherUsers(t *testing.T) {
	f := newFakeBotAPI(t, commandUpdate(1, 99, "/pause"))
	bot, err := tgbotapi.NewBotAPIWithClient("123:abc", f.srv.URL+"/bot%s/%s", f.srv.Client())
	require.NoError(t, err)

	state := control.NewState()
	l := NewListener(bot, NewHandler(&fakeReader{}, state, 7), 0, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	require.Eventually(t, func() bool { return len(f.sent()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, f.sent()[0]["text"], "Access denied")
	assert.False(t, state.Paused())
}

package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"fxpulse/internal/domain"

	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	Token     string
	ChatID    string
	Text      string
	ParseMode string
}

type fakeBotAPI struct {
	mu       sync.Mutex
	sent     []sentMessage
	failures map[string]int // token -> status code
}

func (f *fakeBotAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		path := strings.TrimPrefix(r.URL.Path, "/bot")
		token, method, ok := strings.Cut(path, "/")
		require.True(t, ok)
		require.Equal(t, "sendMessage", method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		f.mu.Lock()
		f.sent = append(f.sent, sentMessage{
			Token:     token,
			ChatID:    body["chat_id"].(string),
			Text:      body["text"].(string),
			ParseMode: body["parse_mode"].(string),
		})
		status, fail := f.failures[token]
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if fail {
			w.WriteHeader(status)
			if status == http.StatusBadRequest {
				_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
				return
			}
			_, _ = w.Write([]byte(`bad gateway`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":1760000000,"chat":{"id":100,"type":"private"},"text":"ok"}}`))
	}
}

func newFake(t *testing.T, failures map[string]int) (*fakeBotAPI, *httptest.Server) {
	t.Helper()
	f := &fakeBotAPI{failures: failures}
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)
	return f, srv
}

func TestNotifier_Notify_SendsToEveryDestination(t *testing.T) {
	fake, srv := newFake(t, nil)
	n := NewNotifier(srv.Client(), srv.URL+"/")

	report := n.Notify(context.Background(), "*Market Update*", []domain.Destination{
		{Name: "bot_1", Token: "111:AAA", ChatID: "100"},
		{Name: "bot_2", Token: "222:BBB", ChatID: "@channel"},
	})

	require.Equal(t, 2, report.Delivered())
	require.Equal(t, 0, report.Failed())
	require.Equal(t, []sentMessage{
		{Token: "111:AAA", ChatID: "100", Text: "*Market Update*", ParseMode: "Markdown"},
		{Token: "222:BBB", ChatID: "@channel", Text: "*Market Update*", ParseMode: "Markdown"},
	}, fake.sent)
}

func TestNotifier_Notify_FailureIsIsolated(t *testing.T) {
	cases := []struct {
		name   string
		status int
	}{
		{name: "api error", status: http.StatusBadRequest},
		{name: "gateway error", status: http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake, srv := newFake(t, map[string]int{"111:AAA": tc.status})
			n := NewNotifier(srv.Client(), srv.URL)

			report := n.Notify(context.Background(), "hello", []domain.Destination{
				{Name: "bot_1", Token: "111:AAA", ChatID: "100"},
				{Name: "bot_2", Token: "222:BBB", ChatID: "200"},
			})

			require.Len(t, fake.sent, 2, "second destination must still be attempted")
			require.Equal(t, 1, report.Failed())
			require.Equal(t, 1, report.Delivered())
			require.Error(t, report.Results[0].Err)
			require.NotContains(t, report.Results[0].Err.Error(), "111:AAA")
			require.NoError(t, report.Results[1].Err)
		})
	}
}

func TestNotifier_Notify_UnreachableAPI(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	n := NewNotifier(&http.Client{}, srv.URL)

	report := n.Notify(context.Background(), "hello", []domain.Destination{
		{Name: "bot_1", Token: "333:CCC", ChatID: "1"},
		{Name: "bot_2", Token: "444:DDD", ChatID: "2"},
	})

	require.Equal(t, 2, report.Failed())
	for _, res := range report.Results {
		require.NotContains(t, res.Err.Error(), ":CCC")
		require.NotContains(t, res.Err.Error(), ":DDD")
	}
}

func TestNotifier_Notify_CanceledContext(t *testing.T) {
	fake, srv := newFake(t, nil)
	n := NewNotifier(srv.Client(), srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := n.Notify(ctx, "hello", []domain.Destination{{Name: "bot_1", Token: "t", ChatID: "1"}})
	require.Equal(t, 1, report.Failed())
	require.ErrorIs(t, report.Results[0].Err, context.Canceled)
	require.Empty(t, fake.sent)
}

func TestNotifier_Notify_NoDestinations(t *testing.T) {
	n := NewNotifier(http.DefaultClient, "")
	report := n.Notify(context.Background(), "hello", nil)
	require.Empty(t, report.Results)
}

package notify

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookDeliversEvent(t *testing.T) {
	var mu sync.Mutex
	var got []Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var e Event
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&e))
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, time.Second, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	wh.Notify(context.Background(), Event{Type: EventSignup, Activity: "Chess Club", Email: "emma@mergington.edu"})
	wh.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	require.Equal(t, EventSignup, got[0].Type)
	require.Equal(t, "Chess Club", got[0].Activity)
	require.Equal(t, "emma@mergington.edu", got[0].Email)
	require.False(t, got[0].At.IsZero())
}

func TestWebhookRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, time.Second, 2, slog.Default())
	require.NoError(t, wh.Send(context.Background(), Event{Type: EventUnregister, Activity: "Art Club", Email: "x@mergington.edu"}))
	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestWebhookReportsClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, time.Second, 0, slog.Default())
	require.Error(t, wh.Send(context.Background(), Event{Type: EventSignup}))
}

func TestNopNotifier(t *testing.T) {
	var n Notifier = Nop{}
	n.Notify(context.Background(), Event{})
}

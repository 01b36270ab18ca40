package notify

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-scheduler-api/internal/model"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func dial(t *testing.T, h *Hub, uid uuid.UUID) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Serve(w, r, uid)
	}))
	t.Cleanup(srv.Close)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestNotifyDelivers(t *testing.T) {
	h := NewHub(discard(), []string{"*"})
	uid, other := uuid.New(), uuid.New()
	a := dial(t, h, uid)
	b := dial(t, h, uid)
	require.Eventually(t, func() bool { return h.Connected(uid) == 2 }, time.Second, 5*time.Millisecond)

	mid := uuid.New()
	h.Notify(other, model.Event{Type: model.EventDeleted, MeetingID: mid})
	h.Notify(uid, model.Event{Type: model.EventInvited, MeetingID: mid, Title: "sync"})

	for _, c := range []*websocket.Conn{a, b} {
		c.SetReadDeadline(time.Now().Add(time.Second))
		var ev model.Event
		require.NoError(t, c.ReadJSON(&ev))
		assert.Equal(t, model.EventInvited, ev.Type)
		assert.Equal(t, mid, ev.MeetingID)
		assert.Equal(t, "sync", ev.Title)
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	h := NewHub(discard(), []string{"*"})
	uid := uuid.New()
	c := dial(t, h, uid)
	require.Eventually(t, func() bool { return h.Connected(uid) == 1 }, time.Second, 5*time.Millisecond)

	c.Close()
	require.Eventually(t, func() bool { return h.Connected(uid) == 0 }, time.Second, 5*time.Millisecond)
}

func TestSlowClientDropped(t *testing.T) {
	h := NewHub(discard(), nil)
	uid := uuid.New()
	c := &client{uid: uid, send: make(chan []byte, 1)}
	h.add(c)

	h.Notify(uid, model.Event{Type: model.EventStatus})
	assert.Equal(t, 1, h.Connected(uid))
	h.Notify(uid, model.Event{Type: model.EventStatus})
	assert.Equal(t, 0, h.Connected(uid))

	// buffered message is still readable, then the channel is closed
	_, ok := <-c.send
	assert.True(t, ok)
	_, ok = <-c.send
	assert.False(t, ok)

	// a second removal is a no-op
	h.remove(c)
}

func TestOriginCheck(t *testing.T) {
	h := NewHub(discard(), []string{"https://app.example"})
	uid := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Serve(w, r, uid)
	}))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example"}})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://app.example"}})
	require.NoError(t, err)
	conn.Close()
}

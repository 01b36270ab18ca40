// Package notify pushes meeting events to connected websocket clients.
package notify

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"social-scheduler-api/internal/model"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
	maxRead    = 512
)

type client struct {
	uid  uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks every open connection per user. Delivery is best effort: a
// client whose buffer is full is disconnected.
type Hub struct {
	mu       sync.RWMutex
	clients  map[uuid.UUID]map[*client]struct{}
	upgrader websocket.Upgrader
	log      *slog.Logger
}

func NewHub(log *slog.Logger, origins []string) *Hub {
	h := &Hub{clients: make(map[uuid.UUID]map[*client]struct{}), log: log}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(origins, "*") || slices.Contains(origins, origin)
		},
	}
	return h
}

// Notify implements meeting.Notifier.
func (h *Hub) Notify(uid uuid.UUID, ev model.Event) {
	if h.Connected(uid) == 0 {
		return
	}
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("encode event", "err", err)
		return
	}

	// sends happen under the read lock so remove cannot close a channel
	// mid-send
	var slow []*client
	h.mu.RLock()
	for c := range h.clients[uid] {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Warn("dropping slow websocket client", "user", uid)
		h.remove(c)
	}
}

// Connected returns how many connections uid has open.
func (h *Hub) Connected(uid uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[uid])
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.uid]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[c.uid] = set
	}
	set[c] = struct{}{}
}

// remove unregisters c and closes its send channel exactly once.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[c.uid]
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.uid)
	}
	close(c.send)
}

// Serve upgrades the request and streams uid's events until the client goes
// away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, uid uuid.UUID) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already answered the request
		h.log.Debug("websocket upgrade failed", "err", err)
		return
	}
	c := &client{uid: uid, conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(c)
	h.log.Debug("websocket connected", "user", uid)

	go h.writePump(c)
	h.readPump(c)
}

// readPump only exists to process control frames and notice disconnects.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxRead)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"

	"logidash/infrastructure/dashboard"
)

const (
	EventSnapshotRefreshed = "snapshot_refreshed"

	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Event is the payload pushed to connected dashboards.
type Event struct {
	Type       string    `json:"type"`
	SyncedAt   time.Time `json:"synced_at"`
	Connection string    `json:"connection"`
	Failed     []string  `json:"failed_sources,omitempty"`
}

type client struct {
	conn *ws.Conn
	mu   sync.Mutex
}

// Hub tracks connected dashboards and fans out refresh events.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok && c.conn != nil {
		_ = c.conn.Close()
	}
}

// Broadcast sends evt to every client, dropping the ones that fail to write.
func (h *Hub) Broadcast(evt Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		slog.Error("ws: marshal event failed", slog.Any("err", err))
		return
	}
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.mu.Lock()
		writeErr := func() (writeErr error) {
			defer func() {
				if r := recover(); r != nil {
					writeErr = fmt.Errorf("ws: write panic: %v", r)
				}
			}()
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			return c.conn.WriteMessage(ws.TextMessage, data)
		}()
		c.mu.Unlock()

		if writeErr != nil {
			slog.Debug("ws: dropping client", slog.Any("err", writeErr))
			h.unregister(c)
		}
	}
}

// BroadcastRefresh tells dashboards a new snapshot is available.
func (h *Hub) BroadcastRefresh(syncedAt time.Time, connection string, failed []string) {
	h.Broadcast(Event{
		Type:       EventSnapshotRefreshed,
		SyncedAt:   syncedAt,
		Connection: connection,
		Failed:     failed,
	})
}

// RefreshListener returns a poller callback that broadcasts each new
// snapshot. connection reports the store's current connection label.
func RefreshListener(h *Hub, connection func() string) func(*dashboard.Snapshot) {
	return func(snap *dashboard.Snapshot) {
		failed := make([]string, 0)
		for _, src := range snap.FailedSources() {
			failed = append(failed, src.Key)
		}
		h.BroadcastRefresh(snap.SyncedAt, connection(), failed)
	}
}

var upgrader = ws.Upgrader{
	CheckOrigin: sameOrigin,
}

// sameOrigin accepts requests without an Origin header and those whose
// Origin host matches the request host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// Handler upgrades the connection and keeps it alive with pings until the
// browser goes away. Incoming messages are ignored.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("ws: upgrade failed", slog.Any("err", err))
			return
		}

		c := &client{conn: conn}
		hub.register(c)
		slog.Debug("ws: client connected", slog.Int("clients", hub.Count()))

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})

		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(pingPeriod)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					c.mu.Lock()
					err := conn.WriteControl(ws.PingMessage, nil, time.Now().Add(writeWait))
					c.mu.Unlock()
					if err != nil {
						return
					}
				}
			}
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		close(done)
		hub.unregister(c)
		slog.Debug("ws: client disconnected", slog.Int("clients", hub.Count()))
	}
}

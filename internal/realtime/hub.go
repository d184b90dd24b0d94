// Package realtime fans feed events out to connected websocket listeners.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

// Frame is the envelope written to listeners.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type listener struct {
	conn      *websocket.Conn
	accountID int64
	send      chan []byte
	closeOnce sync.Once
}

func (l *listener) close() {
	l.closeOnce.Do(func() { close(l.send) })
}

type Hub struct {
	mu        sync.RWMutex
	listeners map[*listener]struct{}
	upgrader  websocket.Upgrader
	logger    *zap.Logger
}

func NewHub(logger *zap.Logger, allowedOrigins []string) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		listeners: make(map[*listener]struct{}),
		logger:    logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

// Emit delivers the event to every listener without blocking. A listener
// whose buffer is full is disconnected.
func (h *Hub) Emit(event string, payload any) {
	msg, err := json.Marshal(Frame{Event: event, Data: payload})
	if err != nil {
		h.logger.Warn("encode realtime frame", zap.String("event", event), zap.Error(err))
		return
	}
	var slow []*listener
	h.mu.RLock()
	for l := range h.listeners {
		select {
		case l.send <- msg:
		default:
			slow = append(slow, l)
		}
	}
	h.mu.RUnlock()
	for _, l := range slow {
		h.logger.Warn("dropping slow realtime listener", zap.Int64("account_id", l.accountID))
		h.remove(l)
	}
}

// Serve upgrades the request and blocks until the listener goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, accountID int64) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	l := &listener{conn: conn, accountID: accountID, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.listeners[l] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("realtime listener connected", zap.Int64("account_id", accountID), zap.Int("total", h.Count()))

	go h.writeLoop(l)
	h.readLoop(l)
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}

// Close disconnects every listener.
func (h *Hub) Close() {
	h.mu.Lock()
	all := make([]*listener, 0, len(h.listeners))
	for l := range h.listeners {
		all = append(all, l)
	}
	h.listeners = make(map[*listener]struct{})
	h.mu.Unlock()
	for _, l := range all {
		l.close()
	}
}

func (h *Hub) remove(l *listener) {
	h.mu.Lock()
	delete(h.listeners, l)
	h.mu.Unlock()
	l.close()
}

// readLoop only services control frames; listeners never send application data.
func (h *Hub) readLoop(l *listener) {
	defer func() {
		h.remove(l)
		_ = l.conn.Close()
		h.logger.Debug("realtime listener disconnected", zap.Int64("account_id", l.accountID))
	}()
	l.conn.SetReadLimit(maxMessageSize)
	_ = l.conn.SetReadDeadline(time.Now().Add(pongWait))
	l.conn.SetPongHandler(func(string) error {
		return l.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := l.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(l *listener) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = l.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-l.send:
			_ = l.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = l.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := l.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.remove(l)
				return
			}
		case <-ticker.C:
			_ = l.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := l.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(l)
				return
			}
		}
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := set["*"]; ok {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

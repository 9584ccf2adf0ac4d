package core

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const ReloadPath = "/__reload"

const reloadMessage = "reload"

// ReloadScript is appended to page bodies in dev mode.
const ReloadScript = `<script>(function(){var ws=new WebSocket((location.protocol==="https:"?"wss://":"ws://")+location.host+"` + ReloadPath + `");ws.onmessage=function(e){if(e.data==="` + reloadMessage + `"){location.reload()}}})()</script>`

const reloadWriteTimeout = time.Second

// Reloader pushes a reload to every browser tab connected in dev mode.
type Reloader interface {
	http.Handler
	Reload()
	Clients() int
}

// ReloadHub keeps one outgoing queue per websocket so that each connection
// has a single writer.
type ReloadHub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]chan struct{}
	upgrader websocket.Upgrader
}

var NewReloadHub = func() Reloader {
	return &ReloadHub{
		clients: make(map[*websocket.Conn]chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *ReloadHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Debug("live reload upgrade")
		return
	}

	pending := make(chan struct{}, 1)
	h.mu.Lock()
	h.clients[conn] = pending
	h.mu.Unlock()
	log.WithField("remote", r.RemoteAddr).Debug("live reload client connected")

	done := make(chan struct{})
	go h.writeLoop(conn, pending, done)
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()
}

func (h *ReloadHub) writeLoop(conn *websocket.Conn, pending <-chan struct{}, done <-chan struct{}) {
	defer h.drop(conn)
	for {
		select {
		case <-done:
			return
		case <-pending:
			conn.SetWriteDeadline(time.Now().Add(reloadWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(reloadMessage)); err != nil {
				return
			}
		}
	}
}

func (h *ReloadHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// Reload queues a reload for every client. A client that already has one
// queued is skipped.
func (h *ReloadHub) Reload() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, pending := range h.clients {
		select {
		case pending <- struct{}{}:
		default:
		}
	}
	log.WithField("clients", len(h.clients)).Debug("live reload")
}

func (h *ReloadHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

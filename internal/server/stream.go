package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The HTTP layer already enforces CORS; the browser clients connect
	// from the configured origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamMarkets upgrades to a WebSocket, sends the current snapshot, then
// pushes every refresh until the client goes away.
func (s *Server) streamMarkets(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	id, updates := s.store.Subscribe()
	defer s.store.Unsubscribe(id)

	logger := s.logger.With("subscriber", id, "remote", r.RemoteAddr)
	logger.Debug("stream client connected")

	// Reader goroutine: we never expect client data, but reads must be
	// pumped to process close and pong frames.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	if err := conn.WriteJSON(s.store.Snapshot()); err != nil {
		logger.Debug("initial snapshot write failed", "error", err)
		return
	}

	pingTicker := time.NewTicker(streamPingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case <-done:
			logger.Debug("stream client disconnected")
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(snap); err != nil {
				logger.Debug("snapshot push failed", "error", err)
				return
			}
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package api

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleWebSocket streams the watchlist quote map to the client: one
// snapshot on connect, then one message per background refresh
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.updater == nil {
		http.Error(w, "quote updates unavailable", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket: Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sub := s.updater.Subscribe()
	defer sub.Cancel()

	if err := conn.WriteJSON(s.quotesService.LatestQuotes()); err != nil {
		return
	}

	// Reader loop only to detect client disconnects
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-disconnected:
			return
		case _, ok := <-sub.Chan():
			if !ok {
				return
			}
			if err := conn.WriteJSON(s.quotesService.LatestQuotes()); err != nil {
				log.Printf("WebSocket: Write failed: %v", err)
				return
			}
		}
	}
}

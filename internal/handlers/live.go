package handlers

import (
	"log"
	"net/http"
	"sync"

	"ambassador-board/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// LiveHandler pushes the top of the fresh leaderboard to connected websocket
// clients whenever a recompute lands. The display bot uses this instead of
// polling the REST endpoint.
type LiveHandler struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
	topN     int
}

// NewLiveHandler creates a new live handler broadcasting the top topN rows.
func NewLiveHandler(topN int) *LiveHandler {
	return &LiveHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The display layer runs on a different origin in production.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
		topN:    topN,
	}
}

// Serve upgrades the connection and keeps it registered until it closes.
func (h *LiveHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Websocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	// Drain reads so pings and close frames are processed; drop the client
	// on any read error.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends the fresh top rows to every connected client. Registered
// with LeaderboardService.SetBroadcast.
func (h *LiveHandler) Broadcast(entries []models.LeaderboardEntry) {
	if len(entries) > h.topN {
		entries = entries[:h.topN]
	}
	payload := gin.H{"type": "leaderboard_update", "top": entries}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(payload); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *LiveHandler) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conn.Close()
	delete(h.clients, conn)
}

package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Event is one progress notification pushed to the page that triggered a
// long running action (image upload, bulk save).
type Event struct {
	Type    string `json:"type"` // "progress" or "done"
	Message string `json:"message"`
	Done    int    `json:"done"`
	Total   int    `json:"total"`
	Updated int    `json:"updated"`
	Failed  int    `json:"failed"`
}

type session struct {
	conn *websocket.Conn
	mu   sync.Mutex // serializes writes to the conn
}

// Hub tracks the open progress sockets by session id. Progress is advisory:
// a page without a socket simply gets no live updates.
type Hub struct {
	connMap sync.Map // to keep track of socket connection with sessionId
}

func NewHub() *Hub {
	return &Hub{}
}

func (h *Hub) StoreConnection(sessionId string, conn *websocket.Conn) {
	h.connMap.Store(sessionId, &session{conn: conn})
}

func (h *Hub) HandleDisconnect(sessionId string) {
	h.connMap.Delete(sessionId)
}

// Publish sends one event to the session's socket if it is connected.
// Delivery failure drops the socket and is otherwise ignored.
func (h *Hub) Publish(sessionId string, ev Event) {
	v, ok := h.connMap.Load(sessionId)
	if !ok {
		return
	}
	s := v.(*session)

	data, err := json.Marshal(ev)
	if err != nil {
		log.Errorf("Failed to marshal progress event: %v", err)
		return
	}

	s.mu.Lock()
	err = s.conn.WriteMessage(websocket.TextMessage, data)
	s.mu.Unlock()
	if err != nil {
		log.Warnf("Failed to push progress to session %s: %v", sessionId, err)
		h.HandleDisconnect(sessionId)
	}
}

package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the progress socket for one page view. The page
// passes the session id it embeds into its forms so pushed events reach the
// right tab.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionId := r.URL.Query().Get("session")
	if sessionId == "" {
		sessionId = uuid.New().String()
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	h.hub.StoreConnection(sessionId, conn)
	log.Infof("progress socket connected: %s", sessionId)

	go h.readUntilClose(conn, sessionId)
}

// readUntilClose drains the socket so close frames are noticed; the client
// never sends application messages.
func (h *Handler) readUntilClose(conn *websocket.Conn, sessionId string) {
	defer func() {
		conn.Close()
		h.hub.HandleDisconnect(sessionId)
		log.Infof("progress socket closed: %s", sessionId)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warnf("progress socket %s closed unexpectedly: %v", sessionId, err)
			}
			return
		}
	}
}

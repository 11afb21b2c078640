package serverrequests

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/Pjt727/odautofill/odrequest"
	"github.com/gorilla/websocket"
)

// messages waiting for a slow dashboard before it starts missing them
const sendBuffer = 16

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

type hubMessage struct {
	Kind    odrequest.EventKind `json:"kind"`
	Request odrequest.Request   `json:"request"`
}

// Hub pushes request changes to every open dashboard. A dashboard that falls
// behind loses messages rather than holding up the request that caused them.
type Hub struct {
	mu          sync.Mutex
	connections []*webSocketConnection
	logger      *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{logger: logger}
}

func (hub *Hub) Publish(ctx context.Context, kind odrequest.EventKind, r odrequest.Request) {
	message, err := json.Marshal(hubMessage{Kind: kind, Request: r})
	if err != nil {
		hub.logger.Error("Could not marshal request event", "request", r.ID, "err", err)
		return
	}
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for _, c := range hub.connections {
		select {
		case c.send <- message:
		default:
			hub.logger.Warn("Dropped request event for slow watcher", "request", r.ID, "kind", kind)
		}
	}
}

// Watchers is the number of open dashboards
func (hub *Hub) Watchers() int {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return len(hub.connections)
}

type webSocketConnection struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
	once sync.Once
}

func (hub *Hub) watch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.logger.Info("Could not upgrade", "err", err)
		return
	}
	wsConn := &webSocketConnection{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		hub:  hub,
	}

	hub.mu.Lock()
	hub.connections = append(hub.connections, wsConn)
	hub.mu.Unlock()

	go wsConn.writePump()
	go wsConn.readPump()
}

// readPump only notices the dashboard going away
func (wsConn *webSocketConnection) readPump() {
	defer wsConn.disconnect()
	for {
		if _, _, err := wsConn.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				wsConn.hub.logger.Info("Watcher closed", "err", err)
			}
			return
		}
	}
}

func (wsConn *webSocketConnection) writePump() {
	defer wsConn.disconnect()
	for message := range wsConn.send {
		if err := wsConn.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			wsConn.hub.logger.Info("Could not write to watcher", "err", err)
			return
		}
	}
	wsConn.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (wsConn *webSocketConnection) disconnect() {
	wsConn.once.Do(func() {
		hub := wsConn.hub
		hub.mu.Lock()
		defer hub.mu.Unlock()
		if i := slices.Index(hub.connections, wsConn); i >= 0 {
			hub.connections = slices.Delete(hub.connections, i, i+1)
		}
		close(wsConn.send)
		wsConn.conn.Close()
	})
}

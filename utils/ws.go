package utils

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

type wsWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// wsClient serializes writes to one connection. The websocket library
// allows at most one concurrent writer per conn.
type wsClient struct {
	mu sync.Mutex
	w  wsWriter
}

func (c *wsClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.WriteMessage(websocket.TextMessage, data)
}

// clients maps a user id to their open websocket connections.
var (
	clientsMu sync.RWMutex
	clients   = make(map[uint][]*wsClient)
)

func RegisterClient(userID uint, conn *websocket.Conn) {
	registerWriter(userID, conn)
}

func UnregisterClient(userID uint, conn *websocket.Conn) {
	unregisterWriter(userID, conn)
}

func registerWriter(userID uint, w wsWriter) {
	clientsMu.Lock()
	defer clientsMu.Unlock()
	clients[userID] = append(clients[userID], &wsClient{w: w})
}

func unregisterWriter(userID uint, w wsWriter) {
	clientsMu.Lock()
	defer clientsMu.Unlock()
	conns := clients[userID]
	for i, c := range conns {
		if c.w == w {
			clients[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(clients[userID]) == 0 {
		delete(clients, userID)
	}
}

// PushToUser sends an event to every open socket of the user. Best-effort:
// a user with no connection simply misses the push.
func PushToUser(userID uint, event, message string) {
	clientsMu.RLock()
	conns := append([]*wsClient(nil), clients[userID]...)
	clientsMu.RUnlock()

	if len(conns) == 0 {
		return
	}

	payload, err := json.Marshal(map[string]string{"event": event, "message": message})
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.write(payload); err != nil {
			log.Println("Could not push to user", userID, ":", err)
		}
	}
}

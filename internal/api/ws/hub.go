package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 5 * time.Second
	// sendBuffer is how many messages may queue for one connection before it
	// is considered too slow and dropped.
	sendBuffer = 64
)

// client is one websocket connection. gorilla connections allow a single
// concurrent writer, so everything bound for the socket is queued on send
// and written by writePump.
type client struct {
	conn     *websocket.Conn
	playerID string
	send     chan interface{}
	done     chan struct{}
	once     sync.Once
}

func newClient(conn *websocket.Conn, playerID string) *client {
	return &client{
		conn:     conn,
		playerID: playerID,
		send:     make(chan interface{}, sendBuffer),
		done:     make(chan struct{}),
	}
}

// enqueue never blocks. It reports false when the client is closed or its
// queue is full.
func (c *client) enqueue(v interface{}) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- v:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

func (c *client) writePump(logger *log.Logger) {
	defer c.close()
	for {
		select {
		case <-c.done:
			return
		case v := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(v); err != nil {
				logger.Printf("Failed to send message to %s: %v", c.playerID, err)
				return
			}
		}
	}
}

type Hub struct {
	mu          sync.RWMutex
	rooms       map[string]map[*client]struct{}
	roomManager RoomManager
	logger      *log.Logger
}

func NewHub(roomManager RoomManager, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		rooms:       make(map[string]map[*client]struct{}),
		roomManager: roomManager,
		logger:      logger,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

type message struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type ack struct {
	Intent string `json:"intent"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

// HandleWS subscribes the connection to room_id and forwards the player's
// intents. player_id is generated when absent and echoed in the welcome.
func (h *Hub) HandleWS(c *gin.Context) {
	roomID := c.Query("room_id")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing room_id"})
		return
	}
	playerID := c.Query("player_id")
	if playerID == "" {
		playerID = uuid.NewString()
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Printf("Failed to upgrade connection: %v", err)
		return
	}
	cl := newClient(conn, playerID)
	go cl.writePump(h.logger)

	h.mu.Lock()
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*client]struct{})
	}
	h.rooms[roomID][cl] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.remove(roomID, cl)
		cl.close()
	}()

	welcome := gin.H{"playerId": playerID, "roomId": roomID}
	if snap, ok := h.roomManager.Snapshot(roomID); ok {
		welcome["room"] = snap
	}
	if !cl.enqueue(gin.H{"action": "welcome", "data": welcome}) {
		return
	}

	for {
		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Printf("Error reading WebSocket message: %v", err)
			}
			return
		}
		res := h.dispatch(roomID, playerID, msg)
		if !cl.enqueue(gin.H{"action": "ack", "data": res}) {
			return
		}
	}
}

func (h *Hub) dispatch(roomID, playerID string, msg message) ack {
	res := ack{Intent: msg.Action}
	switch msg.Action {
	case "join":
		var data struct {
			Name string `json:"name"`
		}
		if !decode(msg.Data, &data, &res) {
			return res
		}
		res.OK = h.roomManager.Join(roomID, playerID, data.Name)
	case "start":
		res.OK = h.roomManager.Start(roomID)
	case "move":
		var data struct {
			DX int `json:"dx"`
			DY int `json:"dy"`
		}
		if !decode(msg.Data, &data, &res) {
			return res
		}
		res.OK = h.roomManager.Move(roomID, playerID, data.DX, data.DY)
	case "place":
		res.OK = h.roomManager.PlaceDevice(roomID, playerID)
	default:
		res.Error = "unknown action"
	}
	return res
}

func decode(raw json.RawMessage, v interface{}, res *ack) bool {
	if len(raw) == 0 {
		return true
	}
	if err := json.Unmarshal(raw, v); err != nil {
		res.Error = "invalid data"
		return false
	}
	return true
}

func (h *Hub) remove(roomID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.rooms[roomID]
	if !ok {
		return
	}
	delete(clients, cl)
	if len(clients) == 0 {
		delete(h.rooms, roomID)
	}
}

// Clients reports how many connections are subscribed to roomID.
func (h *Hub) Clients(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

func (h *Hub) Broadcast(roomID string, action string, data interface{}) {
	if h == nil {
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[roomID]))
	for cl := range h.rooms[roomID] {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	message := map[string]interface{}{
		"action": action,
		"data":   data,
	}
	for _, cl := range clients {
		if !cl.enqueue(message) {
			h.logger.Printf("Dropping slow client %s in room %s", cl.playerID, roomID)
			cl.close()
			h.remove(roomID, cl)
		}
	}
}

package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/CloSpex/bomberman/internal/room"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func roomOr404(c *gin.Context, rm *room.Manager) (*room.Room, bool) {
	r, ok := rm.GetRoom(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
	}
	return r, ok
}

func rejected(c *gin.Context, intent string) {
	c.JSON(http.StatusConflict, gin.H{"ok": false, "error": intent + " rejected"})
}

// @Summary List rooms
// @Description Returns every live room ordered by id
// @Tags Room
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /rooms [get]
func ListRoomsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms := rm.ListRooms()
		out := make([]RoomSummary, 0, len(rooms))
		for _, r := range rooms {
			s := r.Snapshot()
			out = append(out, RoomSummary{ID: s.ID, Phase: s.Phase, Players: len(s.Players), CreatedAt: s.CreatedAt})
		}
		c.JSON(http.StatusOK, gin.H{"rooms": out})
	}
}

// @Summary Create new room
// @Description Create a waiting room. Creating an existing id returns that room.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.CreateRoomRequest false "Room id"
// @Success 201 {object} map[string]interface{}
// @Router /rooms [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		r := rm.CreateRoom(req.RoomID)
		c.JSON(http.StatusCreated, gin.H{"roomId": r.ID, "room": r.Snapshot()})
	}
}

// @Summary Get room snapshot
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{id} [get]
func GetRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, ok := roomOr404(c, rm)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, r.Snapshot())
	}
}

// @Summary Remove room
// @Description Closes the room and notifies its websocket subscribers
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{id} [delete]
func DeleteRoomHandler(rm *room.Manager, b room.Broadcaster) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if !rm.RemoveRoom(id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		if b != nil {
			b.Broadcast(id, "room_removed", gin.H{"roomId": id})
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// @Summary Join room
// @Description Seat a player; the room is created if it does not exist yet
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body http.JoinRequest true "Player info"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /rooms/{id}/join [post]
func JoinHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.PlayerID == "" {
			req.PlayerID = uuid.NewString()
		}
		id := c.Param("id")
		if !rm.Join(id, req.PlayerID, req.Name) {
			rejected(c, "join")
			return
		}
		snap, _ := rm.Snapshot(id)
		c.JSON(http.StatusOK, gin.H{"ok": true, "playerId": req.PlayerID, "room": snap})
	}
}

// @Summary Start game
// @Tags Game
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /rooms/{id}/start [post]
func StartHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, ok := roomOr404(c, rm)
		if !ok {
			return
		}
		if !rm.Start(r.ID) {
			rejected(c, "start")
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "room": r.Snapshot()})
	}
}

// @Summary Player makes a move
// @Description Submit a unit step (dx, dy) for the player
// @Tags Game
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body http.MoveRequest true "Move data"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /rooms/{id}/move [post]
func MoveHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		r, ok := roomOr404(c, rm)
		if !ok {
			return
		}
		if !rm.Move(r.ID, req.PlayerID, req.DX, req.DY) {
			rejected(c, "move")
			return
		}
		snap := r.Snapshot()
		p, _ := snap.Player(req.PlayerID)
		c.JSON(http.StatusOK, gin.H{"ok": true, "player": p})
	}
}

// @Summary Place a device
// @Description Place a device on the player's cell
// @Tags Game
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body http.PlayerRequest true "Player"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /rooms/{id}/place [post]
func PlaceHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlayerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		r, ok := roomOr404(c, rm)
		if !ok {
			return
		}
		if !rm.PlaceDevice(r.ID, req.PlayerID) {
			rejected(c, "place")
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "devices": r.Snapshot().Board.Devices})
	}
}

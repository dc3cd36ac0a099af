package http

import (
	"time"

	"github.com/CloSpex/bomberman/internal/game"
)

// CreateRoomRequest represents the payload for POST /rooms. An empty room id
// gets a generated code.
type CreateRoomRequest struct {
	RoomID string `json:"roomId" binding:"omitempty,max=32"`
}

// JoinRequest represents the payload for joining a room. A missing player id
// is generated and returned.
type JoinRequest struct {
	PlayerID string `json:"playerId" binding:"omitempty,max=64"`
	Name     string `json:"name" binding:"max=32"`
}

// PlayerRequest identifies the acting player for start-less intents.
type PlayerRequest struct {
	PlayerID string `json:"playerId" binding:"required,max=64"`
}

// MoveRequest represents a one-cell step.
type MoveRequest struct {
	PlayerID string `json:"playerId" binding:"required,max=64"`
	DX       int    `json:"dx" binding:"min=-1,max=1"`
	DY       int    `json:"dy" binding:"min=-1,max=1"`
}

// RoomSummary is the list view of a room.
type RoomSummary struct {
	ID        string     `json:"id"`
	Phase     game.Phase `json:"phase"`
	Players   int        `json:"players"`
	CreatedAt time.Time  `json:"createdAt"`
}

package ws

import "github.com/CloSpex/bomberman/internal/shared"

// RoomManager is the part of the room engine the hub forwards intents to.
type RoomManager interface {
	Join(roomID, playerID, name string) bool
	Start(roomID string) bool
	Move(roomID, playerID string, dx, dy int) bool
	PlaceDevice(roomID, playerID string) bool
	Snapshot(roomID string) (shared.RoomSnapshot, bool)
}

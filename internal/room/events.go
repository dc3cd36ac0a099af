package room

import (
	"time"

	"github.com/CloSpex/bomberman/internal/game"
	"github.com/CloSpex/bomberman/internal/shared"
)

type EventKind string

const (
	EventRoomCreated     EventKind = "room_created"
	EventPlayerJoined    EventKind = "player_joined"
	EventGameStarted     EventKind = "game_started"
	EventPlayerMoved     EventKind = "player_moved"
	EventDevicePlaced    EventKind = "device_placed"
	EventDeviceDetonated EventKind = "device_detonated"
	EventRoomUpdated     EventKind = "room_updated"
)

// Event is one outbound notification. Which optional fields are set depends
// on Kind; every value is a detached copy.
type Event struct {
	Kind       EventKind            `json:"kind"`
	RoomID     string               `json:"roomId"`
	At         time.Time            `json:"at"`
	Player     *shared.PlayerView   `json:"player,omitempty"`
	Device     *game.Device         `json:"device,omitempty"`
	Blasts     []game.BlastCell     `json:"blasts,omitempty"`
	Eliminated []string             `json:"eliminated,omitempty"`
	Snapshot   *shared.RoomSnapshot `json:"snapshot,omitempty"`
}

package game

import "time"

type Cell int

const (
	CellEmpty Cell = iota
	CellWall
	CellDestructible
)

func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellWall:
		return "wall"
	case CellDestructible:
		return "destructible"
	}
	return "unknown"
}

// Board is the cell grid of one room plus the transient entities living on it.
// Cells is indexed [y][x].
type Board struct {
	Width   int         `json:"width"`
	Height  int         `json:"height"`
	Cells   [][]Cell    `json:"cells"`
	Devices []Device    `json:"devices"`
	Blasts  []BlastCell `json:"blasts"`
	Pickups []Pickup    `json:"pickups"`
}

// Device is a placed explosive. Range is fixed at placement.
type Device struct {
	ID       string    `json:"id"`
	X        int       `json:"x"`
	Y        int       `json:"y"`
	OwnerID  string    `json:"ownerId"`
	PlacedAt time.Time `json:"placedAt"`
	Range    int       `json:"range"`
}

type BlastCell struct {
	X         int       `json:"x"`
	Y         int       `json:"y"`
	CreatedAt time.Time `json:"createdAt"`
}

type PickupKind int

const (
	PickupCapacityUp PickupKind = iota
	PickupRangeUp
	PickupSpeedUp

	pickupKindCount
)

func (k PickupKind) String() string {
	switch k {
	case PickupCapacityUp:
		return "capacity_up"
	case PickupRangeUp:
		return "range_up"
	case PickupSpeedUp:
		return "speed_up"
	}
	return "unknown"
}

type Pickup struct {
	X    int        `json:"x"`
	Y    int        `json:"y"`
	Kind PickupKind `json:"kind"`
}

// Stats are the mutable gameplay numbers of a player. Pickups modify them in
// place.
type Stats struct {
	Capacity int `json:"capacity"`
	Range    int `json:"range"`
}

type Player struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Role   string         `json:"role"`
	Color  string         `json:"color"`
	X      int            `json:"x"`
	Y      int            `json:"y"`
	Alive  bool           `json:"alive"`
	Stats  Stats          `json:"stats"`
	Policy MovementPolicy `json:"policy"`
	// Speed is informational only; gameplay uses the cooldown tracker.
	Speed float64 `json:"speed"`
}

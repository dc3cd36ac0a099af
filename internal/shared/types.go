package shared

import (
	"time"

	"github.com/CloSpex/bomberman/internal/game"
)

// PlayerView is a detached copy of a player.
type PlayerView struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	Color      string          `json:"color"`
	X          int             `json:"x"`
	Y          int             `json:"y"`
	Alive      bool            `json:"alive"`
	Capacity   int             `json:"capacity"`
	Range      int             `json:"range"`
	Policy     game.PolicyKind `json:"policy"`
	CooldownMs int64           `json:"cooldownMs"`
	Boosts     int             `json:"boosts"`
	Speed      float64         `json:"speed"`
}

// RoomSnapshot is a consistent, detached copy of one room. Nothing in it
// aliases live room state.
type RoomSnapshot struct {
	ID         string       `json:"id"`
	Phase      game.Phase   `json:"phase"`
	Players    []PlayerView `json:"players"`
	Board      *game.Board  `json:"board"`
	WinnerID   *string      `json:"winnerId,omitempty"`
	Draw       bool         `json:"draw"`
	CreatedAt  time.Time    `json:"createdAt"`
	LastUpdate time.Time    `json:"lastUpdate"`
}

func NewPlayerView(p *game.Player, t *game.CooldownTracker) PlayerView {
	return PlayerView{
		ID:         p.ID,
		Name:       p.Name,
		Role:       p.Role,
		Color:      p.Color,
		X:          p.X,
		Y:          p.Y,
		Alive:      p.Alive,
		Capacity:   p.Stats.Capacity,
		Range:      p.Stats.Range,
		Policy:     p.Policy.Kind,
		CooldownMs: t.Effective(p.ID, p.Policy).Milliseconds(),
		Boosts:     t.Boosts(p.ID),
		Speed:      p.Speed,
	}
}

func (s RoomSnapshot) Player(id string) (PlayerView, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerView{}, false
}

func (s RoomSnapshot) Alive() int {
	n := 0
	for _, p := range s.Players {
		if p.Alive {
			n++
		}
	}
	return n
}

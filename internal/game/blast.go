package game

import (
	"fmt"
	"math/rand"
	"time"
)

var rayDirs = [4]Pos{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// walkBlast visits the origin and then up to rng cells along each cardinal
// ray. A ray ends before a wall or the board edge, and after any cell for
// which visit returns true.
func walkBlast(b *Board, origin Pos, rng int, visit func(p Pos, c Cell) bool) {
	if !b.InBounds(origin.X, origin.Y) {
		return
	}
	originCell := b.CellAt(origin.X, origin.Y)
	if originCell == CellWall {
		return
	}
	if visit(origin, originCell) {
		return
	}
	for _, d := range rayDirs {
		for step := 1; step <= rng; step++ {
			p := Pos{origin.X + d.X*step, origin.Y + d.Y*step}
			if !b.InBounds(p.X, p.Y) {
				break
			}
			c := b.Cells[p.Y][p.X]
			if c == CellWall {
				break
			}
			if visit(p, c) {
				break
			}
		}
	}
}

// Detonation is the outcome of one device going off.
type Detonation struct {
	Device     Device      `json:"device"`
	Blasts     []BlastCell `json:"blasts"`
	Eliminated []string    `json:"eliminated,omitempty"`
	Cleared    []Pos       `json:"cleared,omitempty"`
	Dropped    []Pickup    `json:"dropped,omitempty"`
}

// Detonate explodes d on b: it records blast cells, eliminates living players
// caught in them, clears destructible cells (each may drop a pickup with
// probability dropChance) and removes the device. Randomness only comes from
// rng, so the result is reproducible for a given seed.
func Detonate(b *Board, d Device, players []*Player, rng *rand.Rand, dropChance float64, now time.Time) Detonation {
	if d.Range < 0 {
		panic(fmt.Sprintf("game: device %s has negative range %d", d.ID, d.Range))
	}
	out := Detonation{Device: d}
	walkBlast(b, Pos{d.X, d.Y}, d.Range, func(p Pos, c Cell) bool {
		out.Blasts = append(out.Blasts, BlastCell{X: p.X, Y: p.Y, CreatedAt: now})
		for _, pl := range players {
			if pl.Alive && pl.X == p.X && pl.Y == p.Y {
				pl.Alive = false
				out.Eliminated = append(out.Eliminated, pl.ID)
			}
		}
		if c != CellDestructible {
			return false
		}
		b.ClearCell(p.X, p.Y)
		out.Cleared = append(out.Cleared, p)
		if rng.Float64() < dropChance {
			if _, taken := b.PickupAt(p.X, p.Y); !taken {
				pu := Pickup{X: p.X, Y: p.Y, Kind: PickupKind(rng.Intn(int(pickupKindCount)))}
				b.Pickups = append(b.Pickups, pu)
				out.Dropped = append(out.Dropped, pu)
			}
		}
		return true
	})
	b.RemoveDevice(d.ID)
	b.Blasts = append(b.Blasts, out.Blasts...)
	return out
}

package game

import (
	"fmt"
	"math/rand"
	"time"
)

// Pos is a board coordinate.
type Pos struct{ X, Y int }

// NewBoard returns an all-empty board. Room play uses GenerateBoard.
func NewBoard(w, h int) *Board {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("game: invalid board size %dx%d", w, h))
	}
	cells := make([][]Cell, h)
	for y := range cells {
		cells[y] = make([]Cell, w)
	}
	return &Board{Width: w, Height: h, Cells: cells}
}

// GenerateBoard lays down the wall skeleton (border plus the even/even
// lattice), keeps a three-cell pocket empty at every spawn corner and fills
// the rest with destructible cells with probability p.
func GenerateBoard(w, h int, p float64, rng *rand.Rand) *Board {
	b := NewBoard(w, h)
	safe := make(map[Pos]struct{}, 12)
	for corner := 0; corner < 4; corner++ {
		for _, pos := range b.SafePocket(corner) {
			safe[pos] = struct{}{}
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch {
			case x == 0 || x == w-1 || y == 0 || y == h-1:
				b.Cells[y][x] = CellWall
			case isSafe(safe, x, y):
				// pockets beat the lattice on even-sized boards
				b.Cells[y][x] = CellEmpty
			case x%2 == 0 && y%2 == 0:
				b.Cells[y][x] = CellWall
			case rng.Float64() < p:
				b.Cells[y][x] = CellDestructible
			default:
				b.Cells[y][x] = CellEmpty
			}
		}
	}
	return b
}

func isSafe(safe map[Pos]struct{}, x, y int) bool {
	_, ok := safe[Pos{x, y}]
	return ok
}

// Spawn returns the spawn cell of a corner: 0 top-left, 1 top-right,
// 2 bottom-left, 3 bottom-right.
func (b *Board) Spawn(corner int) Pos {
	switch corner {
	case 0:
		return Pos{1, 1}
	case 1:
		return Pos{b.Width - 2, 1}
	case 2:
		return Pos{1, b.Height - 2}
	case 3:
		return Pos{b.Width - 2, b.Height - 2}
	}
	panic(fmt.Sprintf("game: spawn corner %d out of range", corner))
}

// SafePocket lists the spawn cell and its two inward neighbours.
func (b *Board) SafePocket(corner int) []Pos {
	s := b.Spawn(corner)
	ix, iy := 1, 1
	if s.X > b.Width/2 {
		ix = -1
	}
	if s.Y > b.Height/2 {
		iy = -1
	}
	return []Pos{s, {s.X + ix, s.Y}, {s.X, s.Y + iy}}
}

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// CellAt reports out-of-bounds coordinates as walls.
func (b *Board) CellAt(x, y int) Cell {
	if !b.InBounds(x, y) {
		return CellWall
	}
	return b.Cells[y][x]
}

func (b *Board) IsPassable(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	if c := b.Cells[y][x]; c == CellWall || c == CellDestructible {
		return false
	}
	_, occupied := b.DeviceAt(x, y)
	return !occupied
}

// ClearCell turns a destructible cell into an empty one. Other cells are left
// alone.
func (b *Board) ClearCell(x, y int) {
	if b.InBounds(x, y) && b.Cells[y][x] == CellDestructible {
		b.Cells[y][x] = CellEmpty
	}
}

func (b *Board) DeviceAt(x, y int) (Device, bool) {
	for _, d := range b.Devices {
		if d.X == x && d.Y == y {
			return d, true
		}
	}
	return Device{}, false
}

func (b *Board) LiveDevicesFor(ownerID string) int {
	n := 0
	for _, d := range b.Devices {
		if d.OwnerID == ownerID {
			n++
		}
	}
	return n
}

func (b *Board) AddDevice(d Device) {
	b.Devices = append(b.Devices, d)
}

func (b *Board) RemoveDevice(id string) bool {
	for i, d := range b.Devices {
		if d.ID == id {
			b.Devices = append(b.Devices[:i], b.Devices[i+1:]...)
			return true
		}
	}
	return false
}

// DueDevices returns the devices whose fuse has run out, in placement order.
func (b *Board) DueDevices(now time.Time, fuse time.Duration) []Device {
	var due []Device
	for _, d := range b.Devices {
		if now.Sub(d.PlacedAt) >= fuse {
			due = append(due, d)
		}
	}
	return due
}

func (b *Board) PickupAt(x, y int) (Pickup, bool) {
	for _, p := range b.Pickups {
		if p.X == x && p.Y == y {
			return p, true
		}
	}
	return Pickup{}, false
}

func (b *Board) RemovePickupAt(x, y int) (Pickup, bool) {
	for i, p := range b.Pickups {
		if p.X == x && p.Y == y {
			b.Pickups = append(b.Pickups[:i], b.Pickups[i+1:]...)
			return p, true
		}
	}
	return Pickup{}, false
}

// ExpireBlasts drops every blast cell at least lifetime old and reports how
// many were removed.
func (b *Board) ExpireBlasts(now time.Time, lifetime time.Duration) int {
	kept := b.Blasts[:0]
	removed := 0
	for _, bc := range b.Blasts {
		if now.Sub(bc.CreatedAt) >= lifetime {
			removed++
			continue
		}
		kept = append(kept, bc)
	}
	b.Blasts = kept
	return removed
}

// Clone returns a deep copy safe to hand out while b keeps changing.
func (b *Board) Clone() *Board {
	out := &Board{
		Width:   b.Width,
		Height:  b.Height,
		Cells:   make([][]Cell, len(b.Cells)),
		Devices: append([]Device(nil), b.Devices...),
		Blasts:  append([]BlastCell(nil), b.Blasts...),
		Pickups: append([]Pickup(nil), b.Pickups...),
	}
	for y, row := range b.Cells {
		out.Cells[y] = append([]Cell(nil), row...)
	}
	return out
}

package game

// Weights tune ScoreStep.
type Weights struct {
	Danger       int
	Destructible int
	Pickup       int
}

var DefaultWeights = Weights{Danger: 100, Destructible: 10, Pickup: 25}

// Danger returns every cell an active blast or a live device's pattern covers.
// Walls and destructible cells stop rays exactly as in Detonate.
func Danger(b *Board) map[Pos]struct{} {
	out := make(map[Pos]struct{})
	for _, bc := range b.Blasts {
		out[Pos{bc.X, bc.Y}] = struct{}{}
	}
	for _, d := range b.Devices {
		walkBlast(b, Pos{d.X, d.Y}, d.Range, func(p Pos, c Cell) bool {
			out[p] = struct{}{}
			return c == CellDestructible
		})
	}
	return out
}

func adjacentDestructibles(b *Board, p Pos) int {
	n := 0
	for _, d := range rayDirs {
		if b.CellAt(p.X+d.X, p.Y+d.Y) == CellDestructible {
			n++
		}
	}
	return n
}

// ScoreStep rates standing on cell to; higher is better.
func ScoreStep(b *Board, to Pos, danger map[Pos]struct{}, w Weights) int {
	score := adjacentDestructibles(b, to) * w.Destructible
	if _, ok := danger[to]; ok {
		score -= w.Danger
	}
	if _, ok := b.PickupAt(to.X, to.Y); ok {
		score += w.Pickup
	}
	return score
}

// BestStep picks the enterable neighbour with the highest score. ok is false
// when staying put scores at least as well as every step.
func BestStep(b *Board, p *Player, w Weights) (dx, dy int, ok bool) {
	danger := Danger(b)
	best := ScoreStep(b, Pos{p.X, p.Y}, danger, w)
	for _, d := range rayDirs {
		to := Pos{p.X + d.X, p.Y + d.Y}
		if !p.Policy.CanEnter(b, to.X, to.Y) {
			continue
		}
		if s := ScoreStep(b, to, danger, w); s > best {
			best, dx, dy, ok = s, d.X, d.Y, true
		}
	}
	return dx, dy, ok
}

// ShouldPlace reports whether placing a device where p stands hits something
// and still leaves a neighbouring cell outside the resulting danger zone.
func ShouldPlace(b *Board, p *Player) bool {
	if b.LiveDevicesFor(p.ID) >= p.Stats.Capacity {
		return false
	}
	if _, taken := b.DeviceAt(p.X, p.Y); taken {
		return false
	}
	here := Pos{p.X, p.Y}
	if adjacentDestructibles(b, here) == 0 {
		return false
	}
	probe := b.Clone()
	probe.AddDevice(Device{ID: "probe", X: p.X, Y: p.Y, OwnerID: p.ID, Range: p.Stats.Range})
	danger := Danger(probe)
	for _, d := range rayDirs {
		to := Pos{p.X + d.X, p.Y + d.Y}
		if !b.IsPassable(to.X, to.Y) {
			continue
		}
		if _, hot := danger[to]; !hot {
			return true
		}
		// one more step sideways out of the ray
		for _, side := range rayDirs {
			if side == d || (side.X == -d.X && side.Y == -d.Y) {
				continue
			}
			next := Pos{to.X + side.X, to.Y + side.Y}
			if _, hot := danger[next]; !hot && b.IsPassable(next.X, next.Y) {
				return true
			}
		}
	}
	return false
}

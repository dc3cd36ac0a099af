package game

// PlayerSpec describes a player about to be seated.
type PlayerSpec struct {
	ID     string
	Name   string
	Role   string
	Color  string
	Spawn  Pos
	Stats  Stats
	Policy MovementPolicy
	// Owner is the room holding the player's cooldown entry.
	Owner string
}

// NewPlayer creates a living player and registers its cooldown entry under
// spec.Owner.
func NewPlayer(spec PlayerSpec, t *CooldownTracker) *Player {
	p := &Player{
		ID:     spec.ID,
		Name:   spec.Name,
		Role:   spec.Role,
		Color:  spec.Color,
		X:      spec.Spawn.X,
		Y:      spec.Spawn.Y,
		Alive:  true,
		Stats:  spec.Stats,
		Policy: spec.Policy,
	}
	t.Reset(p.ID, spec.Owner)
	p.RefreshSpeed(t)
	return p
}

// ApplyPickup applies the effect of one pickup to p.
func ApplyPickup(p *Player, kind PickupKind, t *CooldownTracker) {
	switch kind {
	case PickupCapacityUp:
		p.Stats.Capacity++
	case PickupRangeUp:
		p.Stats.Range++
	case PickupSpeedUp:
		p.Policy = p.Policy.Faster(Policy(PolicySpeedBoost))
		t.AddBoost(p.ID)
		p.RefreshSpeed(t)
	}
}

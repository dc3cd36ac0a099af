package game

import (
	"fmt"
	"math"
	"sync"
	"time"
)

type PolicyKind int

const (
	PolicyNormal PolicyKind = iota
	PolicySpeedBoost
	PolicySlow
	PolicySuperFast
)

var policyNames = map[PolicyKind]string{
	PolicyNormal:     "normal",
	PolicySpeedBoost: "speed_boost",
	PolicySlow:       "slow",
	PolicySuperFast:  "super_fast",
}

func (k PolicyKind) String() string {
	if name, ok := policyNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k PolicyKind) MarshalText() ([]byte, error) {
	if _, ok := policyNames[k]; !ok {
		return nil, fmt.Errorf("unknown policy kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *PolicyKind) UnmarshalText(text []byte) error {
	parsed, ok := ParsePolicyKind(string(text))
	if !ok {
		return fmt.Errorf("unknown policy kind %q", text)
	}
	*k = parsed
	return nil
}

func ParsePolicyKind(name string) (PolicyKind, bool) {
	for k, n := range policyNames {
		if n == name {
			return k, true
		}
	}
	return PolicyNormal, false
}

// Capability flags change how the engine treats a movement policy.
type Capability uint8

const (
	// CapCollectPickups applies the pickup on a cell the player enters.
	CapCollectPickups Capability = 1 << iota
	// CapBoostable lets stacked speed boosts shorten the cooldown.
	CapBoostable
)

const (
	BoostStep   = 20 * time.Millisecond
	MinCooldown = 50 * time.Millisecond
)

// MovementPolicy is the movement rule of a player. Kinds differ only by their
// base cooldown and capability flags; passability is shared.
type MovementPolicy struct {
	Kind         PolicyKind    `json:"kind"`
	BaseCooldown time.Duration `json:"-"`
	Caps         Capability    `json:"caps"`
}

var policies = map[PolicyKind]MovementPolicy{
	PolicyNormal:     {Kind: PolicyNormal, BaseCooldown: 200 * time.Millisecond, Caps: CapCollectPickups | CapBoostable},
	PolicySpeedBoost: {Kind: PolicySpeedBoost, BaseCooldown: 150 * time.Millisecond, Caps: CapCollectPickups | CapBoostable},
	PolicySlow:       {Kind: PolicySlow, BaseCooldown: 300 * time.Millisecond, Caps: CapCollectPickups | CapBoostable},
	PolicySuperFast:  {Kind: PolicySuperFast, BaseCooldown: 100 * time.Millisecond, Caps: CapCollectPickups | CapBoostable},
}

// Policy returns the built-in policy for kind and panics on an unknown kind.
func Policy(kind PolicyKind) MovementPolicy {
	p, ok := policies[kind]
	if !ok {
		panic(fmt.Sprintf("game: unknown movement policy %d", int(kind)))
	}
	return p
}

func (p MovementPolicy) Has(c Capability) bool { return p.Caps&c != 0 }

func (p MovementPolicy) CanEnter(b *Board, x, y int) bool {
	return b.IsPassable(x, y)
}

// Faster returns whichever of p and other has the shorter base cooldown,
// keeping p on a tie.
func (p MovementPolicy) Faster(other MovementPolicy) MovementPolicy {
	if other.BaseCooldown < p.BaseCooldown {
		return other
	}
	return p
}

func EffectiveCooldown(base time.Duration, boosts int) time.Duration {
	cd := base - time.Duration(boosts)*BoostStep
	if cd < MinCooldown {
		return MinCooldown
	}
	return cd
}

// DisplaySpeed is round(100 / cooldownMs, 2).
func DisplaySpeed(cooldown time.Duration) float64 {
	ms := float64(cooldown) / float64(time.Millisecond)
	if ms <= 0 {
		return 0
	}
	return math.Round(100/ms*100) / 100
}

type cooldownEntry struct {
	lastMove time.Time
	boosts   int
	// holders are the rooms currently seating a player under this id.
	holders map[string]struct{}
}

func (e *cooldownEntry) heldByOther(owner string) bool {
	for h := range e.holders {
		if h != owner {
			return true
		}
	}
	return false
}

// CooldownTracker rate-limits moves per player id. It is shared by every
// room of a process and safe for concurrent use.
type CooldownTracker struct {
	mu      sync.Mutex
	entries map[string]*cooldownEntry
}

func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{entries: make(map[string]*cooldownEntry)}
}

func (t *CooldownTracker) entryLocked(id string) *cooldownEntry {
	e, ok := t.entries[id]
	if !ok {
		e = &cooldownEntry{}
		t.entries[id] = e
	}
	return e
}

func (t *CooldownTracker) effectiveLocked(id string, p MovementPolicy) time.Duration {
	if !p.Has(CapBoostable) {
		return p.BaseCooldown
	}
	boosts := 0
	if e, ok := t.entries[id]; ok {
		boosts = e.boosts
	}
	return EffectiveCooldown(p.BaseCooldown, boosts)
}

func (t *CooldownTracker) Effective(id string, p MovementPolicy) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.effectiveLocked(id, p)
}

// TryMove accepts the move and stamps now iff the effective cooldown has
// elapsed since the last accepted move. A rejected attempt changes nothing.
func (t *CooldownTracker) TryMove(id string, p MovementPolicy, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	cd := t.effectiveLocked(id, p)
	e, ok := t.entries[id]
	if ok && !e.lastMove.IsZero() && now.Sub(e.lastMove) < cd {
		return false
	}
	t.entryLocked(id).lastMove = now
	return true
}

// AddBoost stacks one speed boost and returns the new count.
func (t *CooldownTracker) AddBoost(id string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.entryLocked(id)
	e.boosts++
	return e.boosts
}

func (t *CooldownTracker) Boosts(id string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[id]; ok {
		return e.boosts
	}
	return 0
}

func (t *CooldownTracker) LastMove(id string) time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[id]; ok {
		return e.lastMove
	}
	return time.Time{}
}

// Reset registers owner as a holder of id. The entry starts fresh unless a
// different owner still holds it, so a live player's boosts and last move
// are never wiped by another room.
func (t *CooldownTracker) Reset(id, owner string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	if !ok || !e.heldByOther(owner) {
		e = &cooldownEntry{}
		t.entries[id] = e
	}
	if e.holders == nil {
		e.holders = make(map[string]struct{})
	}
	e.holders[owner] = struct{}{}
}

// Forget releases owner's hold on id. The entry is dropped once nobody holds
// it; a release by a non-holder changes nothing.
func (t *CooldownTracker) Forget(id, owner string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	if !ok {
		return
	}
	if len(e.holders) > 0 {
		if _, held := e.holders[owner]; !held {
			return
		}
		delete(e.holders, owner)
	}
	if len(e.holders) == 0 {
		delete(t.entries, id)
	}
}

// RefreshSpeed recomputes the displayed speed after a policy or boost change.
func (p *Player) RefreshSpeed(t *CooldownTracker) {
	p.Speed = DisplaySpeed(t.Effective(p.ID, p.Policy))
}

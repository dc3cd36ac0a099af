package room

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/CloSpex/bomberman/internal/config"
	"github.com/CloSpex/bomberman/internal/game"
	"github.com/CloSpex/bomberman/internal/shared"
	"github.com/google/uuid"
)

type Store interface {
	GetRoom(id string) (*Room, bool)
	// AddRoom stores r unless a room with the same id exists, in which case
	// the existing room is returned with added == false.
	AddRoom(r *Room) (stored *Room, added bool)
	DeleteRoom(id string) bool
	ListRooms() []*Room
}

// env is what every room of a manager shares.
type env struct {
	cfg     config.Game
	tracker *game.CooldownTracker
	publish func(Event) bool
	logger  Logger
	debug   bool
}

func (e *env) debugf(format string, args ...any) {
	if e.debug {
		e.logger.Printf(format, args...)
	}
}

// Room is one game session. Every exported method and the tick take mu for
// the whole logical operation, so intents and the tick never interleave.
type Room struct {
	ID string

	mu         sync.Mutex
	players    []*game.Player
	board      *game.Board
	phase      game.Phase
	winnerID   *string
	draw       bool
	createdAt  time.Time
	lastUpdate time.Time
	finishedAt time.Time
	closed     bool
	rng        *rand.Rand
	env        *env

	// final holds the player views frozen when the room finished.
	final []shared.PlayerView
}

func newRoom(id string, e *env, rng *rand.Rand, now time.Time) *Room {
	r := &Room{
		ID:         id,
		phase:      game.PhaseWaiting,
		createdAt:  now,
		lastUpdate: now,
		rng:        rng,
		env:        e,
	}
	r.board = r.generateBoard()
	return r
}

func (r *Room) generateBoard() *game.Board {
	c := r.env.cfg
	return game.GenerateBoard(c.BoardWidth, c.BoardHeight, c.DestructibleChance, r.rng)
}

func (r *Room) Phase() game.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

func (r *Room) Snapshot() shared.RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Room) snapshotLocked() shared.RoomSnapshot {
	s := shared.RoomSnapshot{
		ID:         r.ID,
		Phase:      r.phase,
		Players:    make([]shared.PlayerView, 0, len(r.players)),
		Board:      r.board.Clone(),
		Draw:       r.draw,
		CreatedAt:  r.createdAt,
		LastUpdate: r.lastUpdate,
	}
	if r.winnerID != nil {
		w := *r.winnerID
		s.WinnerID = &w
	}
	if r.final != nil {
		s.Players = append(s.Players, r.final...)
		return s
	}
	for _, p := range r.players {
		s.Players = append(s.Players, shared.NewPlayerView(p, r.env.tracker))
	}
	return s
}

func (r *Room) playerLocked(id string) *game.Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) emitLocked(e Event) {
	e.RoomID = r.ID
	r.env.publish(e)
}

func (r *Room) playerEventLocked(kind EventKind, p *game.Player, now time.Time) Event {
	v := shared.NewPlayerView(p, r.env.tracker)
	return Event{Kind: kind, At: now, Player: &v}
}

func (r *Room) transitionLocked(to game.Phase) {
	next, err := r.phase.Transition(to)
	if err != nil {
		panic(fmt.Sprintf("room %s: %v", r.ID, err))
	}
	r.phase = next
}

func (r *Room) join(playerID, name string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	if r.playerLocked(playerID) != nil {
		// reconnect under the same session id
		return true
	}
	cfg := r.env.cfg
	if !r.phase.CanJoin(len(r.players), cfg.MaxPlayers) {
		r.env.debugf("room %s: join of %s rejected in phase %s with %d players", r.ID, playerID, r.phase, len(r.players))
		return false
	}
	if name == "" {
		name = "Player"
	}

	idx := len(r.players) % len(cfg.Roles)
	role := cfg.Roles[idx]
	kind, ok := game.ParsePolicyKind(role.Policy)
	if !ok {
		panic(fmt.Sprintf("room %s: role %s has unknown policy %q", r.ID, role.Name, role.Policy))
	}
	p := game.NewPlayer(game.PlayerSpec{
		ID:    playerID,
		Name:  name,
		Role:  role.Name,
		Color: role.Color,
		Spawn: r.board.Spawn(role.Corner),
		Stats: game.Stats{
			Capacity: cfg.DefaultCapacity + role.CapacityBonus,
			Range:    cfg.DefaultRange + role.RangeBonus,
		},
		Policy: game.Policy(kind),
		Owner:  r.ID,
	}, r.env.tracker)
	r.players = append(r.players, p)
	r.lastUpdate = now

	e := r.playerEventLocked(EventPlayerJoined, p, now)
	snap := r.snapshotLocked()
	e.Snapshot = &snap
	r.emitLocked(e)
	return true
}

func (r *Room) start(now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || !r.phase.CanStart(len(r.players), r.env.cfg.MinPlayers) {
		return false
	}
	r.board = r.generateBoard()
	r.transitionLocked(game.PhaseActive)
	r.lastUpdate = now

	snap := r.snapshotLocked()
	r.emitLocked(Event{Kind: EventGameStarted, At: now, Snapshot: &snap})
	return true
}

func validStep(dx, dy int) bool {
	return (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1))
}

func (r *Room) move(playerID string, dx, dy int, now time.Time) bool {
	if !validStep(dx, dy) {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || !r.phase.CanMove() {
		return false
	}
	p := r.playerLocked(playerID)
	if p == nil {
		r.env.debugf("room %s: move from unknown player %s", r.ID, playerID)
		return false
	}
	if !p.Alive {
		return false
	}
	nx, ny := p.X+dx, p.Y+dy
	if !p.Policy.CanEnter(r.board, nx, ny) {
		return false
	}
	if !r.env.tracker.TryMove(p.ID, p.Policy, now) {
		return false
	}
	p.X, p.Y = nx, ny
	if p.Policy.Has(game.CapCollectPickups) {
		if pu, ok := r.board.RemovePickupAt(nx, ny); ok {
			game.ApplyPickup(p, pu.Kind, r.env.tracker)
			r.env.debugf("room %s: player %s collected %s", r.ID, p.ID, pu.Kind)
		}
	}
	r.lastUpdate = now
	r.emitLocked(r.playerEventLocked(EventPlayerMoved, p, now))
	return true
}

func (r *Room) placeDevice(playerID string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || !r.phase.CanPlace() {
		return false
	}
	p := r.playerLocked(playerID)
	if p == nil {
		r.env.debugf("room %s: placement from unknown player %s", r.ID, playerID)
		return false
	}
	if !p.Alive {
		return false
	}
	if r.board.LiveDevicesFor(p.ID) >= p.Stats.Capacity {
		return false
	}
	if _, taken := r.board.DeviceAt(p.X, p.Y); taken {
		return false
	}
	d := game.Device{
		ID:       uuid.NewString(),
		X:        p.X,
		Y:        p.Y,
		OwnerID:  p.ID,
		PlacedAt: now,
		Range:    p.Stats.Range,
	}
	r.board.AddDevice(d)
	r.lastUpdate = now
	r.emitLocked(Event{Kind: EventDevicePlaced, At: now, Device: &d})
	return true
}

// tick advances the simulation to now. It reports whether anything changed.
func (r *Room) tick(now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.phase != game.PhaseActive {
		return false
	}
	cfg := r.env.cfg
	changed := false

	for _, d := range r.board.DueDevices(now, cfg.Fuse()) {
		det := game.Detonate(r.board, d, r.players, r.rng, cfg.DropChance, now)
		dev := det.Device
		r.emitLocked(Event{
			Kind:       EventDeviceDetonated,
			At:         now,
			Device:     &dev,
			Blasts:     det.Blasts,
			Eliminated: det.Eliminated,
		})
		changed = true
	}

	if r.board.ExpireBlasts(now, cfg.BlastLifetime()) > 0 {
		changed = true
	}

	if winner, over := game.Outcome(r.players); over {
		r.transitionLocked(game.PhaseFinished)
		if winner != "" {
			r.winnerID = &winner
		} else {
			r.draw = true
		}
		r.finishedAt = now
		r.releaseLocked()
		changed = true
	}

	if changed {
		r.lastUpdate = now
		snap := r.snapshotLocked()
		r.emitLocked(Event{Kind: EventRoomUpdated, At: now, Snapshot: &snap})
	}
	return changed
}

// releaseLocked freezes the player views and hands the players' cooldown
// entries back to the tracker, so the same ids start fresh in their next room.
func (r *Room) releaseLocked() {
	r.final = make([]shared.PlayerView, 0, len(r.players))
	for _, p := range r.players {
		r.final = append(r.final, shared.NewPlayerView(p, r.env.tracker))
	}
	for _, p := range r.players {
		r.env.tracker.Forget(p.ID, r.ID)
	}
}

// expired reports whether a finished room has outlived ttl.
func (r *Room) expired(now time.Time, ttl time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase == game.PhaseFinished && !r.finishedAt.IsZero() && now.Sub(r.finishedAt) >= ttl
}

func (r *Room) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// close marks the room dead and returns its player ids. Once close returns
// no tick or intent will touch the room again.
func (r *Room) close() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	ids := make([]string, 0, len(r.players))
	for _, p := range r.players {
		ids = append(ids, p.ID)
	}
	return ids
}

package room

import (
	"context"
	"hash/fnv"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/CloSpex/bomberman/internal/config"
	"github.com/CloSpex/bomberman/internal/game"
	"github.com/CloSpex/bomberman/internal/shared"
	"golang.org/x/sync/errgroup"
)

// Manager is the room registry and the scheduler that ticks every room.
type Manager struct {
	store   Store
	cfg     config.Config
	env     *env
	bus     *Bus
	logger  Logger
	clock   Clock
	tracker *game.CooldownTracker

	// createMu serialises room creation and removal so two joins racing on an
	// unknown id end up in the same room, and a join never lands in a room that
	// is being removed.
	createMu sync.Mutex
}

type Option func(*Manager)

func WithLogger(l Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

func WithClock(c Clock) Option {
	return func(m *Manager) {
		if c != nil {
			m.clock = c
		}
	}
}

func WithTracker(t *game.CooldownTracker) Option {
	return func(m *Manager) {
		if t != nil {
			m.tracker = t
		}
	}
}

func NewManager(s Store, cfg config.Config, opts ...Option) *Manager {
	m := &Manager{
		store:  s,
		cfg:    cfg,
		logger: defaultLogger(),
		clock:  ClockFunc(time.Now),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.tracker == nil {
		m.tracker = game.NewCooldownTracker()
	}
	m.bus = NewBus(cfg.Server.EventBuffer, m.logger)
	m.env = &env{
		cfg:     cfg.Game,
		tracker: m.tracker,
		publish: m.bus.Publish,
		logger:  m.logger,
		debug:   cfg.Server.Debug,
	}
	return m
}

func (m *Manager) Subscribe(s Sink) { m.bus.Subscribe(s) }

// Flush delivers queued notifications synchronously. Run does this on its own;
// Flush is for callers driving Tick by hand.
func (m *Manager) Flush() { m.bus.Flush() }

func (m *Manager) DroppedEvents() uint64 { return m.bus.Dropped() }

func (m *Manager) Tracker() *game.CooldownTracker { return m.tracker }

func (m *Manager) Config() config.Config { return m.cfg }

func (m *Manager) roomRand(id string) *rand.Rand {
	seed := m.cfg.Game.Seed
	if seed == 0 {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	h := fnv.New64a()
	h.Write([]byte(id))
	return rand.New(rand.NewSource(seed ^ int64(h.Sum64())))
}

// CreateRoom returns the room with id, creating it if needed. An empty id
// gets a random room code.
func (m *Manager) CreateRoom(id string) *Room {
	m.createMu.Lock()
	defer m.createMu.Unlock()
	if id == "" {
		for {
			id = randCode(6)
			if _, taken := m.store.GetRoom(id); !taken {
				break
			}
		}
	}
	if r, ok := m.store.GetRoom(id); ok {
		return r
	}
	now := m.clock.Now()
	r, added := m.store.AddRoom(newRoom(id, m.env, m.roomRand(id), now))
	if added {
		m.bus.Publish(Event{Kind: EventRoomCreated, RoomID: id, At: now})
	}
	return r
}

func (m *Manager) GetRoom(id string) (*Room, bool) {
	return m.store.GetRoom(id)
}

func (m *Manager) ListRooms() []*Room {
	return m.store.ListRooms()
}

func (m *Manager) Snapshot(id string) (shared.RoomSnapshot, bool) {
	r, ok := m.store.GetRoom(id)
	if !ok {
		return shared.RoomSnapshot{}, false
	}
	return r.Snapshot(), true
}

// RemoveRoom closes the room and drops it from the registry. It waits for an
// in-flight tick or intent on that room to finish.
func (m *Manager) RemoveRoom(id string) bool {
	m.createMu.Lock()
	defer m.createMu.Unlock()
	r, ok := m.store.GetRoom(id)
	if !ok {
		return false
	}
	for _, pid := range r.close() {
		m.tracker.Forget(pid, r.ID)
	}
	return m.store.DeleteRoom(id)
}

func (m *Manager) lookup(roomID, intent string) (*Room, bool) {
	r, ok := m.store.GetRoom(roomID)
	if !ok && m.cfg.Server.Debug {
		m.logger.Printf("%s: unknown room %s", intent, roomID)
	}
	return r, ok
}

// Join seats playerID in roomID, creating the room on first use.
func (m *Manager) Join(roomID, playerID, name string) bool {
	if roomID == "" || playerID == "" {
		return false
	}
	for {
		r := m.CreateRoom(roomID)
		if r.join(playerID, name, m.clock.Now()) {
			return true
		}
		// removed between lookup and join: the next CreateRoom waits for the
		// removal to finish and yields a fresh room
		if !r.isClosed() {
			return false
		}
	}
}

func (m *Manager) Start(roomID string) bool {
	r, ok := m.lookup(roomID, "start")
	if !ok {
		return false
	}
	return r.start(m.clock.Now())
}

// Move steps the player one cell; exactly one of dx, dy must be ±1.
func (m *Manager) Move(roomID, playerID string, dx, dy int) bool {
	r, ok := m.lookup(roomID, "move")
	if !ok {
		return false
	}
	return r.move(playerID, dx, dy, m.clock.Now())
}

func (m *Manager) PlaceDevice(roomID, playerID string) bool {
	r, ok := m.lookup(roomID, "place")
	if !ok {
		return false
	}
	return r.placeDevice(playerID, m.clock.Now())
}

// Tick advances every room to now. Rooms tick in parallel; a fault in one
// room is logged and does not stop the others.
func (m *Manager) Tick(now time.Time) {
	rooms := m.store.ListRooms()
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, r := range rooms {
		g.Go(func() error {
			m.tickRoom(r, now)
			return nil
		})
	}
	_ = g.Wait()

	if ttl := m.cfg.Game.FinishedRoomTTL(); ttl > 0 {
		for _, r := range rooms {
			if r.expired(now, ttl) {
				m.RemoveRoom(r.ID)
				if m.cfg.Server.Debug {
					m.logger.Printf("room %s removed after finishing", r.ID)
				}
			}
		}
	}
}

func (m *Manager) tickRoom(r *Room, now time.Time) {
	defer func() {
		if rec := recover(); rec != nil {
			m.logger.Printf("room %s: tick failed: %v", r.ID, rec)
		}
	}()
	r.tick(now)
}

// Run ticks all rooms at the configured interval and dispatches notifications
// until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return m.bus.Run(ctx) })
	g.Go(func() error {
		ticker := time.NewTicker(m.cfg.Game.TickInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				start := time.Now()
				m.Tick(m.clock.Now())
				if elapsed := time.Since(start); elapsed > m.cfg.Game.TickInterval() {
					m.logger.Printf("tick took %v, over the %v budget", elapsed, m.cfg.Game.TickInterval())
				}
			}
		}
	})
	return g.Wait()
}

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(n int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[r.Intn(len(letters))]
	}
	return string(b)
}

package room_test

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/CloSpex/bomberman/internal/config"
	"github.com/CloSpex/bomberman/internal/game"
	"github.com/CloSpex/bomberman/internal/room"
	"github.com/CloSpex/bomberman/internal/store"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...any) {
	l.mu.Lock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
	l.mu.Unlock()
}

func (l *recordingLogger) contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

type recordingSink struct {
	mu     sync.Mutex
	events []room.Event
}

func (s *recordingSink) Deliver(e room.Event) {
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
}

func (s *recordingSink) kinds() []room.EventKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]room.EventKind, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Kind)
	}
	return out
}

type fixture struct {
	m      *room.Manager
	clock  *fakeClock
	logger *recordingLogger
	sink   *recordingSink
}

// testConfig yields a 7x7 arena with no destructible cells. Spawns are
// (1,1), (5,1), (1,5) and (5,5); walls sit on the border and at even/even.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.Game.BoardWidth = 7
	cfg.Game.BoardHeight = 7
	cfg.Game.DestructibleChance = 0
	cfg.Game.DropChance = 0
	cfg.Game.Seed = 42
	return cfg
}

func newFixture(t *testing.T, cfg config.Config) *fixture {
	t.Helper()
	f := &fixture{
		clock:  newFakeClock(),
		logger: &recordingLogger{},
		sink:   &recordingSink{},
	}
	f.m = room.NewManager(store.NewMemoryStore(), cfg, room.WithClock(f.clock), room.WithLogger(f.logger))
	f.m.Subscribe(f.sink)
	return f
}

func (f *fixture) seat(t *testing.T, roomID string, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if !f.m.Join(roomID, id, strings.ToUpper(id)) {
			t.Fatalf("join %s to %s failed", id, roomID)
		}
	}
}

func (f *fixture) startWith(t *testing.T, roomID string, ids ...string) {
	t.Helper()
	f.seat(t, roomID, ids...)
	if !f.m.Start(roomID) {
		t.Fatalf("start %s failed", roomID)
	}
}

func (f *fixture) mustRoom(t *testing.T, id string) *room.Room {
	t.Helper()
	r, ok := f.m.GetRoom(id)
	if !ok {
		t.Fatalf("room %s not found", id)
	}
	return r
}

func TestJoinAssignsRolesInOrder(t *testing.T) {
	f := newFixture(t, testConfig())
	f.seat(t, "r1", "a", "b", "c", "d")

	snap, _ := f.m.Snapshot("r1")
	want := []struct {
		role          string
		color         string
		x, y          int
		capacity, rng int
		policy        game.PolicyKind
	}{
		{"power", "#ff0000", 1, 1, 1, 4, game.PolicySlow},
		{"speed", "#00ff00", 5, 1, 1, 2, game.PolicySpeedBoost},
		{"bomber", "#ffff00", 1, 5, 2, 2, game.PolicyNormal},
		{"balanced", "#0000ff", 5, 5, 2, 3, game.PolicyNormal},
	}
	if len(snap.Players) != len(want) {
		t.Fatalf("expected %d players, got %d", len(want), len(snap.Players))
	}
	for i, w := range want {
		p := snap.Players[i]
		if p.Role != w.role || p.Color != w.color || p.X != w.x || p.Y != w.y {
			t.Fatalf("player %d: unexpected seat %+v", i, p)
		}
		if p.Capacity != w.capacity || p.Range != w.rng || p.Policy != w.policy {
			t.Fatalf("player %d: unexpected stats %+v", i, p)
		}
		if !p.Alive {
			t.Fatalf("player %d should start alive", i)
		}
	}
	if snap.Players[0].Speed != 0.33 {
		t.Fatalf("expected slow speed 0.33, got %v", snap.Players[0].Speed)
	}
}

func TestJoinRejectsWhenFull(t *testing.T) {
	f := newFixture(t, testConfig())
	f.seat(t, "r1", "a", "b", "c", "d")
	if f.m.Join("r1", "e", "E") {
		t.Fatalf("fifth player should be rejected")
	}
	if n := f.mustRoom(t, "r1").PlayerCount(); n != 4 {
		t.Fatalf("expected 4 players, got %d", n)
	}
}

func TestJoinSameIDIsReconnect(t *testing.T) {
	f := newFixture(t, testConfig())
	f.seat(t, "r1", "a", "b", "c", "d")
	if !f.m.Join("r1", "a", "renamed") {
		t.Fatalf("rejoin with a seated id should succeed")
	}
	snap, _ := f.m.Snapshot("r1")
	if len(snap.Players) != 4 || snap.Players[0].Name != "A" {
		t.Fatalf("rejoin must not change the room: %+v", snap.Players)
	}
}

func TestJoinDefaultsAndValidation(t *testing.T) {
	f := newFixture(t, testConfig())
	if f.m.Join("", "a", "A") || f.m.Join("r1", "", "A") {
		t.Fatalf("empty ids must be rejected")
	}
	if !f.m.Join("r1", "a", "") {
		t.Fatalf("join failed")
	}
	snap, ok := f.m.Snapshot("r1")
	if !ok {
		t.Fatalf("join should create the room")
	}
	if snap.Players[0].Name != "Player" {
		t.Fatalf("expected default name, got %q", snap.Players[0].Name)
	}
}

func TestCreateRoom(t *testing.T) {
	f := newFixture(t, testConfig())
	r := f.m.CreateRoom("")
	if len(r.ID) != 6 {
		t.Fatalf("expected a six letter code, got %q", r.ID)
	}
	if again := f.m.CreateRoom(r.ID); again != r {
		t.Fatalf("create with an existing id must return the same room")
	}
	if r.Phase() != game.PhaseWaiting {
		t.Fatalf("new room should be waiting, got %s", r.Phase())
	}
	f.m.Flush()
	if kinds := f.sink.kinds(); len(kinds) != 1 || kinds[0] != room.EventRoomCreated {
		t.Fatalf("expected one room_created event, got %v", kinds)
	}
}

func TestStartRequiresEnoughPlayers(t *testing.T) {
	f := newFixture(t, testConfig())
	if f.m.Start("nope") {
		t.Fatalf("start of unknown room should fail")
	}
	f.seat(t, "r1", "a")
	if f.m.Start("r1") {
		t.Fatalf("start with one player should fail")
	}
	f.seat(t, "r1", "b")
	if !f.m.Start("r1") {
		t.Fatalf("start with two players should succeed")
	}
	if f.m.Start("r1") {
		t.Fatalf("second start should fail")
	}
	if f.m.Join("r1", "c", "C") {
		t.Fatalf("join after start should fail")
	}
	if got := f.mustRoom(t, "r1").Phase(); got != game.PhaseActive {
		t.Fatalf("expected active, got %s", got)
	}
}

func TestIntentsRejectedBeforeStart(t *testing.T) {
	f := newFixture(t, testConfig())
	f.seat(t, "r1", "a", "b")
	if f.m.Move("r1", "a", 1, 0) {
		t.Fatalf("move before start should fail")
	}
	if f.m.PlaceDevice("r1", "a") {
		t.Fatalf("placement before start should fail")
	}
}

func TestMoveHonoursCooldownAndTerrain(t *testing.T) {
	f := newFixture(t, testConfig())
	f.startWith(t, "r1", "a", "b")

	if f.m.Move("r1", "a", 0, -1) {
		t.Fatalf("move into the border wall should fail")
	}
	if f.m.Move("r1", "a", 1, 1) || f.m.Move("r1", "a", 2, 0) || f.m.Move("r1", "a", 0, 0) {
		t.Fatalf("only unit orthogonal steps are allowed")
	}
	if f.m.Move("r1", "ghost", 1, 0) {
		t.Fatalf("move of unknown player should fail")
	}
	if !f.m.Move("r1", "a", 1, 0) {
		t.Fatalf("first move should succeed")
	}
	if f.m.Move("r1", "a", 1, 0) {
		t.Fatalf("second move inside the cooldown should fail")
	}
	f.clock.Advance(299 * time.Millisecond)
	if f.m.Move("r1", "a", 1, 0) {
		t.Fatalf("slow policy needs 300ms between moves")
	}
	f.clock.Advance(time.Millisecond)
	if !f.m.Move("r1", "a", 1, 0) {
		t.Fatalf("move after the cooldown should succeed")
	}
	snap, _ := f.m.Snapshot("r1")
	if p, _ := snap.Player("a"); p.X != 3 || p.Y != 1 {
		t.Fatalf("expected player at (3,1), got (%d,%d)", p.X, p.Y)
	}
}

func TestPlaceDeviceRespectsCapacity(t *testing.T) {
	f := newFixture(t, testConfig())
	f.startWith(t, "r1", "a", "b", "c")

	if !f.m.PlaceDevice("r1", "a") {
		t.Fatalf("first placement should succeed")
	}
	if !f.m.Move("r1", "a", 1, 0) {
		t.Fatalf("move off the device failed")
	}
	if f.m.PlaceDevice("r1", "a") {
		t.Fatalf("power role has capacity 1")
	}

	// bomber has capacity 2 but one device per cell
	if !f.m.PlaceDevice("r1", "c") {
		t.Fatalf("bomber placement failed")
	}
	if f.m.PlaceDevice("r1", "c") {
		t.Fatalf("second device on the same cell should fail")
	}
	if !f.m.Move("r1", "c", 1, 0) || !f.m.PlaceDevice("r1", "c") {
		t.Fatalf("bomber should place a second device elsewhere")
	}

	snap, _ := f.m.Snapshot("r1")
	if len(snap.Board.Devices) != 3 {
		t.Fatalf("expected 3 devices, got %d", len(snap.Board.Devices))
	}
	d := snap.Board.Devices[0]
	if d.OwnerID != "a" || d.X != 1 || d.Y != 1 || d.Range != 4 || !d.PlacedAt.Equal(f.clock.Now()) {
		t.Fatalf("unexpected device %+v", d)
	}
}

func TestConcurrentPlacementSingleWinner(t *testing.T) {
	f := newFixture(t, testConfig())
	f.startWith(t, "r1", "a", "b")

	var wg sync.WaitGroup
	var ok atomic.Int32
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if f.m.PlaceDevice("r1", "a") {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()
	if ok.Load() != 1 {
		t.Fatalf("expected exactly one accepted placement, got %d", ok.Load())
	}
	snap, _ := f.m.Snapshot("r1")
	if len(snap.Board.Devices) != 1 {
		t.Fatalf("expected one device, got %d", len(snap.Board.Devices))
	}
}

func TestPickupAffectsLaterPlacement(t *testing.T) {
	f := newFixture(t, testConfig())
	f.startWith(t, "r1", "a", "b")
	f.mustRoom(t, "r1").Mutate(func(b *game.Board, _ []*game.Player) {
		b.Pickups = append(b.Pickups,
			game.Pickup{X: 2, Y: 1, Kind: game.PickupRangeUp},
			game.Pickup{X: 3, Y: 1, Kind: game.PickupSpeedUp},
		)
	})

	if !f.m.Move("r1", "a", 1, 0) || !f.m.PlaceDevice("r1", "a") {
		t.Fatalf("move and place failed")
	}
	snap, _ := f.m.Snapshot("r1")
	if d := snap.Board.Devices[0]; d.Range != 5 {
		t.Fatalf("device should carry the post-pickup range 5, got %d", d.Range)
	}
	if len(snap.Board.Pickups) != 1 {
		t.Fatalf("collected pickup should be removed, got %+v", snap.Board.Pickups)
	}

	f.clock.Advance(300 * time.Millisecond)
	if !f.m.Move("r1", "a", 1, 0) {
		t.Fatalf("move onto speed pickup failed")
	}
	snap, _ = f.m.Snapshot("r1")
	p, _ := snap.Player("a")
	if p.Policy != game.PolicySpeedBoost || p.Boosts != 1 || p.CooldownMs != 130 {
		t.Fatalf("unexpected player after speed pickup %+v", p)
	}
	f.clock.Advance(130 * time.Millisecond)
	if !f.m.Move("r1", "a", 1, 0) {
		t.Fatalf("boosted cooldown should allow a move after 130ms")
	}
}

func TestDetonationEliminatesAndFinishes(t *testing.T) {
	f := newFixture(t, testConfig())
	f.startWith(t, "r1", "a", "b", "c")
	stats := room.NewStats()
	f.m.Subscribe(stats)

	r := f.mustRoom(t, "r1")
	r.Mutate(func(b *game.Board, players []*game.Player) {
		players[0].X, players[0].Y = 5, 5
		players[1].X, players[1].Y = 3, 1
		players[2].X, players[2].Y = 1, 3
		b.AddDevice(game.Device{ID: "d1", X: 1, Y: 1, OwnerID: "a", PlacedAt: f.clock.Now(), Range: 2})
	})

	f.m.Tick(f.clock.Advance(2999 * time.Millisecond))
	if r.Phase() != game.PhaseActive {
		t.Fatalf("device must not go off before the fuse")
	}
	f.m.Tick(f.clock.Advance(time.Millisecond))
	f.m.Flush()

	snap := r.Snapshot()
	if snap.Phase != game.PhaseFinished {
		t.Fatalf("expected finished, got %s", snap.Phase)
	}
	if snap.WinnerID == nil || *snap.WinnerID != "a" || snap.Draw {
		t.Fatalf("expected a to win, got %v draw=%v", snap.WinnerID, snap.Draw)
	}
	if len(snap.Board.Devices) != 0 {
		t.Fatalf("device should be gone")
	}
	if len(snap.Board.Blasts) != 5 {
		t.Fatalf("expected 5 blast cells, got %d", len(snap.Board.Blasts))
	}

	var det *room.Event
	for i := range f.sink.events {
		if f.sink.events[i].Kind == room.EventDeviceDetonated {
			det = &f.sink.events[i]
		}
	}
	if det == nil || len(det.Eliminated) != 2 {
		t.Fatalf("expected detonation event eliminating two players, got %+v", det)
	}
	kinds := f.sink.kinds()
	if kinds[len(kinds)-1] != room.EventRoomUpdated {
		t.Fatalf("last event should be room_updated, got %v", kinds)
	}

	st := stats.Snapshot()
	if st.GamesFinished != 1 || st.Wins["a"] != 1 || st.Eliminations != 2 || st.Detonations != 1 {
		t.Fatalf("unexpected stats %+v", st)
	}

	// finished rooms accept nothing and tick no further
	if f.m.Move("r1", "a", -1, 0) || f.m.PlaceDevice("r1", "a") || f.m.Start("r1") {
		t.Fatalf("finished room must reject intents")
	}
	f.m.Tick(f.clock.Advance(2 * time.Second))
	if snap := r.Snapshot(); len(snap.Board.Blasts) != 5 {
		t.Fatalf("finished room must not tick")
	}
}

func TestDetonationDraw(t *testing.T) {
	f := newFixture(t, testConfig())
	f.startWith(t, "r1", "a", "b")
	r := f.mustRoom(t, "r1")
	r.Mutate(func(b *game.Board, players []*game.Player) {
		players[1].X, players[1].Y = 2, 1
		b.AddDevice(game.Device{ID: "d1", X: 1, Y: 1, OwnerID: "a", PlacedAt: f.clock.Now(), Range: 1})
	})
	f.m.Tick(f.clock.Advance(3 * time.Second))

	snap := r.Snapshot()
	if snap.Phase != game.PhaseFinished || !snap.Draw || snap.WinnerID != nil {
		t.Fatalf("expected a draw, got phase=%s draw=%v winner=%v", snap.Phase, snap.Draw, snap.WinnerID)
	}
	if snap.Alive() != 0 {
		t.Fatalf("nobody should survive")
	}
}

func TestBlastsExpire(t *testing.T) {
	f := newFixture(t, testConfig())
	f.startWith(t, "r1", "a", "b")
	r := f.mustRoom(t, "r1")
	r.Mutate(func(b *game.Board, _ []*game.Player) {
		b.AddDevice(game.Device{ID: "d1", X: 3, Y: 3, OwnerID: "a", PlacedAt: f.clock.Now(), Range: 1})
	})
	f.m.Tick(f.clock.Advance(3 * time.Second))
	if n := len(r.Snapshot().Board.Blasts); n != 5 {
		t.Fatalf("expected 5 blast cells, got %d", n)
	}
	f.m.Tick(f.clock.Advance(999 * time.Millisecond))
	if n := len(r.Snapshot().Board.Blasts); n != 5 {
		t.Fatalf("blasts expired early")
	}
	f.m.Tick(f.clock.Advance(time.Millisecond))
	if n := len(r.Snapshot().Board.Blasts); n != 0 {
		t.Fatalf("expected blasts to expire, %d left", n)
	}
	if r.Phase() != game.PhaseActive {
		t.Fatalf("nobody was hit, room should stay active")
	}
}

func TestTickIsolatesFaultyRoom(t *testing.T) {
	f := newFixture(t, testConfig())
	f.startWith(t, "bad", "a", "b")
	f.startWith(t, "good", "c", "d")

	f.mustRoom(t, "bad").Corrupt()
	good := f.mustRoom(t, "good")
	good.Mutate(func(b *game.Board, _ []*game.Player) {
		b.AddDevice(game.Device{ID: "d1", X: 3, Y: 3, OwnerID: "c", PlacedAt: f.clock.Now(), Range: 1})
	})
	f.m.Tick(f.clock.Advance(3 * time.Second))

	if n := len(good.Snapshot().Board.Devices); n != 0 {
		t.Fatalf("healthy room should still tick, %d devices left", n)
	}
	if !f.logger.contains("room bad: tick failed") {
		t.Fatalf("expected the fault to be logged, got %v", f.logger.lines)
	}
}

func TestRemoveRoom(t *testing.T) {
	f := newFixture(t, testConfig())
	f.startWith(t, "r1", "a", "b")
	if !f.m.Move("r1", "a", 1, 0) {
		t.Fatalf("move failed")
	}
	if !f.m.RemoveRoom("r1") {
		t.Fatalf("remove should succeed")
	}
	if f.m.RemoveRoom("r1") {
		t.Fatalf("second remove should report false")
	}
	if _, ok := f.m.GetRoom("r1"); ok {
		t.Fatalf("room still registered")
	}
	if !f.m.Tracker().LastMove("a").IsZero() {
		t.Fatalf("cooldown state of removed players should be dropped")
	}
	if f.m.Move("r1", "a", 1, 0) {
		t.Fatalf("move in removed room should fail")
	}
}

func TestFinishedRoomsAreReaped(t *testing.T) {
	cfg := testConfig()
	cfg.Game.FinishedRoomTTLSec = 60
	f := newFixture(t, cfg)
	f.startWith(t, "r1", "a", "b")
	f.startWith(t, "r2", "c", "d")
	f.mustRoom(t, "r1").Mutate(func(_ *game.Board, players []*game.Player) {
		players[1].Alive = false
	})
	f.m.Tick(f.clock.Now())
	if got := f.mustRoom(t, "r1").Phase(); got != game.PhaseFinished {
		t.Fatalf("expected finished, got %s", got)
	}

	f.m.Tick(f.clock.Advance(59 * time.Second))
	if _, ok := f.m.GetRoom("r1"); !ok {
		t.Fatalf("room reaped before its ttl")
	}
	f.m.Tick(f.clock.Advance(time.Second))
	if _, ok := f.m.GetRoom("r1"); ok {
		t.Fatalf("finished room should be reaped after its ttl")
	}
	if _, ok := f.m.GetRoom("r2"); !ok {
		t.Fatalf("active room must not be reaped")
	}
}

func collectSpeedUp(t *testing.T, f *fixture, roomID, playerID string) {
	t.Helper()
	f.mustRoom(t, roomID).Mutate(func(b *game.Board, _ []*game.Player) {
		b.Pickups = append(b.Pickups, game.Pickup{X: 2, Y: 1, Kind: game.PickupSpeedUp})
	})
	if !f.m.Move(roomID, playerID, 1, 0) {
		t.Fatalf("move onto speed pickup failed")
	}
}

func TestReapKeepsBoostsEarnedInNextRoom(t *testing.T) {
	cfg := testConfig()
	cfg.Game.FinishedRoomTTLSec = 60
	f := newFixture(t, cfg)
	f.startWith(t, "old", "a", "b")
	old := f.mustRoom(t, "old")
	old.Mutate(func(_ *game.Board, players []*game.Player) {
		players[1].Alive = false
	})
	f.m.Tick(f.clock.Now())
	if old.Phase() != game.PhaseFinished {
		t.Fatalf("expected old room to finish, got %s", old.Phase())
	}

	f.startWith(t, "new", "a", "c")
	collectSpeedUp(t, f, "new", "a")

	// the finished room keeps showing the state it ended with
	if p, _ := old.Snapshot().Player("a"); p.Boosts != 0 || p.CooldownMs != 300 {
		t.Fatalf("finished room view changed: %+v", p)
	}

	f.m.Tick(f.clock.Advance(60 * time.Second))
	if _, ok := f.m.GetRoom("old"); ok {
		t.Fatalf("old room should be reaped")
	}
	if n := f.m.Tracker().Boosts("a"); n != 1 {
		t.Fatalf("reaping the old room wiped live boosts, got %d", n)
	}
	snap, _ := f.m.Snapshot("new")
	p, _ := snap.Player("a")
	if p.Boosts != 1 || p.CooldownMs != 130 || p.Speed != game.DisplaySpeed(130*time.Millisecond) {
		t.Fatalf("unexpected player after reap %+v", p)
	}
}

func TestLobbyJoinKeepsActiveBoosts(t *testing.T) {
	f := newFixture(t, testConfig())
	f.startWith(t, "r1", "a", "b")
	collectSpeedUp(t, f, "r1", "a")
	moved := f.m.Tracker().LastMove("a")

	f.seat(t, "lobby", "a")
	if n := f.m.Tracker().Boosts("a"); n != 1 {
		t.Fatalf("joining another room reset boosts to %d", n)
	}
	if !f.m.Tracker().LastMove("a").Equal(moved) {
		t.Fatalf("joining another room reset the last move")
	}
	if f.m.Move("r1", "a", 1, 0) {
		t.Fatalf("cooldown must still apply after joining another room")
	}

	// removing the lobby leaves the active room's entry alone
	f.m.RemoveRoom("lobby")
	if n := f.m.Tracker().Boosts("a"); n != 1 {
		t.Fatalf("removing the lobby wiped boosts, got %d", n)
	}
}

func TestJoinAfterRemoveCreatesFreshRoom(t *testing.T) {
	f := newFixture(t, testConfig())
	f.startWith(t, "r1", "a", "b")
	before := f.mustRoom(t, "r1")
	if !f.m.RemoveRoom("r1") {
		t.Fatalf("remove failed")
	}
	f.seat(t, "r1", "a")
	after := f.mustRoom(t, "r1")
	if after == before {
		t.Fatalf("join should create a new room")
	}
	if after.Phase() != game.PhaseWaiting || after.PlayerCount() != 1 {
		t.Fatalf("expected a fresh waiting room, got %s with %d players", after.Phase(), after.PlayerCount())
	}
}

func TestJoinRacingRemoveNeverFails(t *testing.T) {
	f := newFixture(t, testConfig())
	var wg sync.WaitGroup
	var failed atomic.Int32
	for _, id := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if !f.m.Join("hot", id, id) {
					failed.Add(1)
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			f.m.RemoveRoom("hot")
		}
	}()
	wg.Wait()
	if n := failed.Load(); n != 0 {
		t.Fatalf("%d joins failed while the room was being removed", n)
	}
}

func TestSeededRoomsAreReproducible(t *testing.T) {
	cfg := config.Default()
	cfg.Game.Seed = 7
	a := newFixture(t, cfg)
	b := newFixture(t, cfg)
	ra := a.m.CreateRoom("same")
	rb := b.m.CreateRoom("same")
	ca, cb := ra.Snapshot().Board.Cells, rb.Snapshot().Board.Cells
	for y := range ca {
		for x := range ca[y] {
			if ca[y][x] != cb[y][x] {
				t.Fatalf("boards differ at (%d,%d)", x, y)
			}
		}
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	f := newFixture(t, testConfig())
	f.startWith(t, "r1", "a", "b")
	snap, _ := f.m.Snapshot("r1")
	snap.Board.Cells[1][1] = game.CellWall
	snap.Players[0].X = 4
	again, _ := f.m.Snapshot("r1")
	if again.Board.Cells[1][1] != game.CellEmpty || again.Players[0].X != 1 {
		t.Fatalf("snapshot aliases live state")
	}
}

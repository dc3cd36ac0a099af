package room

import (
	"sort"
	"sync"
)

// StatsSnapshot is a point-in-time copy of the aggregate counters.
type StatsSnapshot struct {
	RoomsCreated    int            `json:"roomsCreated"`
	PlayersJoined   int            `json:"playersJoined"`
	GamesStarted    int            `json:"gamesStarted"`
	GamesFinished   int            `json:"gamesFinished"`
	Draws           int            `json:"draws"`
	DevicesPlaced   int            `json:"devicesPlaced"`
	Detonations     int            `json:"detonations"`
	Eliminations    int            `json:"eliminations"`
	Wins            map[string]int `json:"wins"`
	FinishedRoomIDs []string       `json:"finishedRoomIds"`
}

// Stats aggregates gameplay counters from the event stream. Subscribe it on a
// Manager to keep it current.
type Stats struct {
	mu       sync.Mutex
	s        StatsSnapshot
	finished map[string]struct{}
}

func NewStats() *Stats {
	return &Stats{
		s:        StatsSnapshot{Wins: map[string]int{}},
		finished: map[string]struct{}{},
	}
}

func (st *Stats) Deliver(e Event) {
	st.mu.Lock()
	defer st.mu.Unlock()
	switch e.Kind {
	case EventRoomCreated:
		st.s.RoomsCreated++
	case EventPlayerJoined:
		st.s.PlayersJoined++
	case EventGameStarted:
		st.s.GamesStarted++
	case EventDevicePlaced:
		st.s.DevicesPlaced++
	case EventDeviceDetonated:
		st.s.Detonations++
		st.s.Eliminations += len(e.Eliminated)
	case EventRoomUpdated:
		snap := e.Snapshot
		if snap == nil || (snap.WinnerID == nil && !snap.Draw) {
			return
		}
		if _, seen := st.finished[e.RoomID]; seen {
			return
		}
		st.finished[e.RoomID] = struct{}{}
		st.s.GamesFinished++
		if snap.Draw {
			st.s.Draws++
		} else {
			st.s.Wins[*snap.WinnerID]++
		}
	}
}

func (st *Stats) Snapshot() StatsSnapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := st.s
	out.Wins = make(map[string]int, len(st.s.Wins))
	for k, v := range st.s.Wins {
		out.Wins[k] = v
	}
	out.FinishedRoomIDs = make([]string, 0, len(st.finished))
	for id := range st.finished {
		out.FinishedRoomIDs = append(out.FinishedRoomIDs, id)
	}
	sort.Strings(out.FinishedRoomIDs)
	return out
}

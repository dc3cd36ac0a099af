package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/CloSpex/bomberman/internal/config"
	"github.com/CloSpex/bomberman/internal/game"
	"github.com/CloSpex/bomberman/internal/room"
	"github.com/CloSpex/bomberman/internal/shared"
	"github.com/CloSpex/bomberman/internal/store"

	"github.com/urfave/cli/v2"
)

const simRoom = "sim"

func main() {
	app := &cli.App{
		Name:  "sim",
		Usage: "run a headless arena match between bots on a manual clock",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "players", Value: 4, Usage: "number of players"},
			&cli.Int64Flag{Name: "seed", Value: 0, Usage: "rng seed, 0 picks one from the clock"},
			&cli.IntFlag{Name: "max-ticks", Value: 3000, Usage: "stop after this many ticks"},
			&cli.IntFlag{Name: "every", Value: 10, Usage: "print the board every n ticks, 0 disables"},
			&cli.BoolFlag{Name: "human", Usage: "control the first player from stdin (w/a/s/d to move, b to place)"},
			&cli.BoolFlag{Name: "verbose", Usage: "log every engine event"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time { return c.now }

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	seed := c.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg.Game.Seed = seed
	cfg.Game.FinishedRoomTTLSec = 0
	if n := c.Int("players"); n > 0 {
		cfg.Game.MaxPlayers = n
		if cfg.Game.MinPlayers > n {
			cfg.Game.MinPlayers = n
		}
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	out := io.Discard
	if c.Bool("verbose") {
		out = os.Stderr
	}
	logger := log.New(out, "sim ", log.Lmicroseconds)
	clock := &manualClock{now: time.Unix(0, 0).UTC()}
	rm := room.NewManager(store.NewMemoryStore(), cfg, room.WithClock(clock), room.WithLogger(logger))
	rm.Subscribe(room.LogSink(logger, true))

	human := c.Bool("human")
	ids := make([]string, 0, cfg.Game.MaxPlayers)
	for i := 0; i < cfg.Game.MaxPlayers; i++ {
		id := fmt.Sprintf("bot-%d", i+1)
		name := id
		if human && i == 0 {
			id, name = "you", "You"
		}
		if !rm.Join(simRoom, id, name) {
			return fmt.Errorf("join %s failed", id)
		}
		ids = append(ids, id)
	}
	if !rm.Start(simRoom) {
		return fmt.Errorf("start failed")
	}

	rng := rand.New(rand.NewSource(seed))
	reader := bufio.NewReader(os.Stdin)
	every := c.Int("every")
	var snap shared.RoomSnapshot
	for tick := 1; tick <= c.Int("max-ticks"); tick++ {
		clock.now = clock.now.Add(cfg.Game.TickInterval())
		snap, _ = rm.Snapshot(simRoom)
		for _, id := range ids {
			if human && id == "you" {
				continue
			}
			act(rm, snap, id, rng)
		}
		if human {
			printBoard(snap)
			humanTurn(rm, reader)
		}
		rm.Tick(clock.now)
		rm.Flush()

		snap, _ = rm.Snapshot(simRoom)
		if every > 0 && tick%every == 0 && !human {
			fmt.Printf("\ntick %d (%s)\n", tick, clock.now.Sub(time.Unix(0, 0).UTC()))
			printBoard(snap)
		}
		if snap.Phase == game.PhaseFinished {
			break
		}
	}

	fmt.Println("\nmatch over")
	printBoard(snap)
	js, _ := json.MarshalIndent(snap, "", "  ")
	fmt.Println(string(js))
	return nil
}

// act plays one bot intent: place when it pays off and an escape exists,
// otherwise step toward the best scored neighbour or wander.
func act(rm *room.Manager, snap shared.RoomSnapshot, id string, rng *rand.Rand) {
	v, ok := snap.Player(id)
	if !ok || !v.Alive {
		return
	}
	p := &game.Player{
		ID:     v.ID,
		X:      v.X,
		Y:      v.Y,
		Alive:  true,
		Stats:  game.Stats{Capacity: v.Capacity, Range: v.Range},
		Policy: game.Policy(v.Policy),
	}
	if game.ShouldPlace(snap.Board, p) && rm.PlaceDevice(simRoom, id) {
		return
	}
	if dx, dy, ok := game.BestStep(snap.Board, p, game.DefaultWeights); ok {
		rm.Move(simRoom, id, dx, dy)
		return
	}
	dirs := [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	d := dirs[rng.Intn(len(dirs))]
	rm.Move(simRoom, id, d[0], d[1])
}

func humanTurn(rm *room.Manager, reader *bufio.Reader) {
	fmt.Print("> ")
	line, _ := reader.ReadString('\n')
	switch strings.TrimSpace(line) {
	case "w":
		rm.Move(simRoom, "you", 0, -1)
	case "s":
		rm.Move(simRoom, "you", 0, 1)
	case "a":
		rm.Move(simRoom, "you", -1, 0)
	case "d":
		rm.Move(simRoom, "you", 1, 0)
	case "b":
		rm.PlaceDevice(simRoom, "you")
	}
}

func printBoard(s shared.RoomSnapshot) {
	b := s.Board
	grid := make([][]byte, b.Height)
	for y := range grid {
		grid[y] = make([]byte, b.Width)
		for x := range grid[y] {
			switch b.Cells[y][x] {
			case game.CellWall:
				grid[y][x] = '#'
			case game.CellDestructible:
				grid[y][x] = '+'
			default:
				grid[y][x] = '.'
			}
		}
	}
	for _, p := range b.Pickups {
		grid[p.Y][p.X] = "crs"[p.Kind]
	}
	for _, bc := range b.Blasts {
		grid[bc.Y][bc.X] = '*'
	}
	for _, d := range b.Devices {
		grid[d.Y][d.X] = 'o'
	}
	for i, p := range s.Players {
		if p.Alive {
			grid[p.Y][p.X] = byte('1' + i)
		}
	}
	for _, row := range grid {
		fmt.Println(string(row))
	}
	for i, p := range s.Players {
		state := "alive"
		if !p.Alive {
			state = "out"
		}
		fmt.Printf("%d %-8s %-9s cap=%d range=%d speed=%.2f %s\n", i+1, p.Name, p.Role, p.Capacity, p.Range, p.Speed, state)
	}
}

package game

import (
	"math/rand"
	"testing"
	"time"
)

func TestIsPassableBoundsAndCells(t *testing.T) {
	b := GenerateBoard(15, 13, 0.6, rand.New(rand.NewSource(7)))

	for _, p := range []Pos{{-1, 0}, {0, -1}, {15, 5}, {5, 13}, {-3, -3}, {100, 100}} {
		if b.IsPassable(p.X, p.Y) {
			t.Fatalf("out of bounds %v reported passable", p)
		}
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			switch b.Cells[y][x] {
			case CellWall, CellDestructible:
				if b.IsPassable(x, y) {
					t.Fatalf("blocked cell (%d,%d) reported passable", x, y)
				}
			case CellEmpty:
				if !b.IsPassable(x, y) {
					t.Fatalf("empty cell (%d,%d) reported blocked", x, y)
				}
			}
		}
	}
}

func TestIsPassableDevice(t *testing.T) {
	b := NewBoard(5, 5)
	if !b.IsPassable(2, 2) {
		t.Fatalf("empty cell should be passable")
	}
	b.AddDevice(Device{ID: "d1", X: 2, Y: 2, Range: 1})
	if b.IsPassable(2, 2) {
		t.Fatalf("cell with device should be blocked")
	}
	b.RemoveDevice("d1")
	if !b.IsPassable(2, 2) {
		t.Fatalf("cell should be passable once the device is gone")
	}
}

func TestGenerateBoardSkeletonAndPockets(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		b := GenerateBoard(15, 13, 1.0, rand.New(rand.NewSource(seed)))
		for y := 0; y < b.Height; y++ {
			for x := 0; x < b.Width; x++ {
				border := x == 0 || y == 0 || x == b.Width-1 || y == b.Height-1
				lattice := x%2 == 0 && y%2 == 0
				if (border || lattice) && b.Cells[y][x] != CellWall {
					t.Fatalf("seed %d: (%d,%d) should be wall, got %s", seed, x, y, b.Cells[y][x])
				}
			}
		}
		for corner := 0; corner < 4; corner++ {
			for _, p := range b.SafePocket(corner) {
				if b.Cells[p.Y][p.X] != CellEmpty {
					t.Fatalf("seed %d: safe pocket cell %v of corner %d is %s", seed, p, corner, b.Cells[p.Y][p.X])
				}
			}
		}
	}
}

func TestGenerateBoardEvenSizeKeepsSpawnsOpen(t *testing.T) {
	b := GenerateBoard(8, 6, 1.0, rand.New(rand.NewSource(3)))
	for corner := 0; corner < 4; corner++ {
		s := b.Spawn(corner)
		if !b.IsPassable(s.X, s.Y) {
			t.Fatalf("corner %d spawn %v is blocked: %s", corner, s, b.Cells[s.Y][s.X])
		}
		for _, p := range b.SafePocket(corner) {
			if b.Cells[p.Y][p.X] != CellEmpty {
				t.Fatalf("corner %d pocket cell %v is %s", corner, p, b.Cells[p.Y][p.X])
			}
		}
	}
	if b.Cells[2][2] != CellWall {
		t.Fatalf("lattice outside the pockets should stay wall")
	}
}

func TestGenerateBoardDeterministic(t *testing.T) {
	a := GenerateBoard(15, 13, 0.6, rand.New(rand.NewSource(42)))
	b := GenerateBoard(15, 13, 0.6, rand.New(rand.NewSource(42)))
	for y := range a.Cells {
		for x := range a.Cells[y] {
			if a.Cells[y][x] != b.Cells[y][x] {
				t.Fatalf("same seed produced different cell at (%d,%d)", x, y)
			}
		}
	}
}

func TestGenerateBoardNoDestructiblesAtZeroChance(t *testing.T) {
	b := GenerateBoard(15, 13, 0, rand.New(rand.NewSource(1)))
	for y := range b.Cells {
		for x := range b.Cells[y] {
			if b.Cells[y][x] == CellDestructible {
				t.Fatalf("unexpected destructible at (%d,%d)", x, y)
			}
		}
	}
}

func TestSpawnCorners(t *testing.T) {
	b := NewBoard(15, 13)
	want := []Pos{{1, 1}, {13, 1}, {1, 11}, {13, 11}}
	for i, w := range want {
		if got := b.Spawn(i); got != w {
			t.Fatalf("corner %d: expected %v, got %v", i, w, got)
		}
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for corner 4")
		}
	}()
	b.Spawn(4)
}

func TestClearCellIdempotent(t *testing.T) {
	b := NewBoard(5, 5)
	b.Cells[1][1] = CellDestructible
	b.Cells[2][2] = CellWall

	b.ClearCell(1, 1)
	b.ClearCell(1, 1)
	b.ClearCell(2, 2)
	b.ClearCell(-1, 9)

	if b.Cells[1][1] != CellEmpty {
		t.Fatalf("destructible should be cleared")
	}
	if b.Cells[2][2] != CellWall {
		t.Fatalf("wall must not be cleared")
	}
}

func TestExpireBlasts(t *testing.T) {
	now := time.Unix(1000, 0)
	b := NewBoard(5, 5)
	b.Blasts = []BlastCell{
		{X: 1, Y: 1, CreatedAt: now.Add(-2 * time.Second)},
		{X: 2, Y: 1, CreatedAt: now.Add(-time.Second)},
		{X: 3, Y: 1, CreatedAt: now.Add(-999 * time.Millisecond)},
	}
	if removed := b.ExpireBlasts(now, time.Second); removed != 2 {
		t.Fatalf("expected 2 expired blasts, got %d", removed)
	}
	if len(b.Blasts) != 1 || b.Blasts[0].X != 3 {
		t.Fatalf("unexpected remaining blasts: %+v", b.Blasts)
	}
}

func TestCloneIsDeep(t *testing.T) {
	b := NewBoard(5, 5)
	b.AddDevice(Device{ID: "d", X: 1, Y: 1})
	c := b.Clone()
	c.Cells[0][0] = CellWall
	c.Devices[0].X = 4
	if b.Cells[0][0] != CellEmpty || b.Devices[0].X != 1 {
		t.Fatalf("clone shares state with its source")
	}
}

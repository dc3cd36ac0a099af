package room

import "github.com/CloSpex/bomberman/internal/game"

// Mutate runs fn against the live board and players under the room lock.
func (r *Room) Mutate(fn func(b *game.Board, players []*game.Player)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.board, r.players)
}

// Corrupt leaves the room in a state that makes the next tick panic.
func (r *Room) Corrupt() {
	r.mu.Lock()
	r.board = nil
	r.mu.Unlock()
}

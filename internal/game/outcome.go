package game

func LivingPlayers(players []*Player) []*Player {
	var alive []*Player
	for _, p := range players {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	return alive
}

// Outcome reports whether the round is over. A round ends once at most one
// player is alive; winnerID is empty on a draw.
func Outcome(players []*Player) (winnerID string, over bool) {
	alive := LivingPlayers(players)
	switch len(alive) {
	case 0:
		return "", true
	case 1:
		return alive[0].ID, true
	}
	return "", false
}

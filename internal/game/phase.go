package game

import "fmt"

// Phase gates which intents a room accepts.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseActive
	PhaseFinished
)

var phaseNames = [...]string{"waiting", "active", "finished"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

func (p Phase) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= len(phaseNames) {
		return nil, fmt.Errorf("unknown phase %d", int(p))
	}
	return []byte(phaseNames[p]), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

func (p Phase) CanJoin(players, max int) bool {
	return p == PhaseWaiting && players < max
}

func (p Phase) CanStart(players, min int) bool {
	return p == PhaseWaiting && players >= min
}

func (p Phase) CanMove() bool  { return p == PhaseActive }
func (p Phase) CanPlace() bool { return p == PhaseActive }

// Transition validates a phase change. Only Waiting->Active and
// Active->Finished exist; Finished is terminal.
func (p Phase) Transition(to Phase) (Phase, error) {
	switch {
	case p == PhaseWaiting && to == PhaseActive,
		p == PhaseActive && to == PhaseFinished:
		return to, nil
	}
	return p, fmt.Errorf("illegal phase transition %s -> %s", p, to)
}

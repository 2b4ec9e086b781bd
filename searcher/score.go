package searcher

import "fmt"

// Outcome tags what a Score stands for. Outcomes are ordered from worst to best
// for the agent that owns the search.
type Outcome int8

const (
	minusInf Outcome = iota // Initial bound of a maximizing node
	Loss
	Draw
	Heuristic
	Win
	plusInf // Initial bound of a minimizing node
)

// Score is the value of a position from the owning agent's point of view.
// Value is only meaningful for Heuristic scores.
type Score struct {
	Outcome Outcome
	Value   int
}

func WinScore() Score  { return Score{Outcome: Win} }
func LossScore() Score { return Score{Outcome: Loss} }
func DrawScore() Score { return Score{Outcome: Draw} }

func HeuristicScore(value int) Score {
	return Score{Outcome: Heuristic, Value: value}
}

// Compare returns -1, 0 or +1 when s is worse than, equal to or better than other.
func (s Score) Compare(other Score) int {
	switch {
	case s.Outcome < other.Outcome:
		return -1
	case s.Outcome > other.Outcome:
		return 1
	case s.Outcome != Heuristic || s.Value == other.Value:
		return 0
	case s.Value < other.Value:
		return -1
	default:
		return 1
	}
}

func (s Score) Less(other Score) bool {
	return s.Compare(other) < 0
}

func maxScore(a, b Score) Score {
	if a.Less(b) {
		return b
	}
	return a
}

func minScore(a, b Score) Score {
	if b.Less(a) {
		return b
	}
	return a
}

func (s Score) String() string {
	switch s.Outcome {
	case minusInf:
		return "-inf"
	case Loss:
		return "loss"
	case Draw:
		return "draw"
	case Heuristic:
		return fmt.Sprintf("%d", s.Value)
	case Win:
		return "win"
	case plusInf:
		return "+inf"
	default:
		return "unknown"
	}
}

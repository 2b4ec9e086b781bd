package game

import "errors"

// Mark is the content of a single grid cell.
type Mark int8

const (
	Empty Mark = iota
	X          // Always moves first
	O
)

func (m Mark) Opponent() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "."
	}
}

// Result is the status reported by Board.CheckWin.
type Result int8

const (
	Pending Result = iota
	XWin
	OWin
	Draw
)

// Winner returns the winning mark, or Empty for a draw or an unfinished game.
func (r Result) Winner() Mark {
	switch r {
	case XWin:
		return X
	case OWin:
		return O
	default:
		return Empty
	}
}

func (r Result) String() string {
	switch r {
	case XWin:
		return "X wins"
	case OWin:
		return "O wins"
	case Draw:
		return "Draw"
	default:
		return "Pending"
	}
}

func winFor(m Mark) Result {
	if m == X {
		return XWin
	}
	return OWin
}

// Direction is one of the four line orientations a run can follow.
type Direction int8

const (
	Horizontal Direction = iota
	Vertical
	MainDiagonal // top-left to bottom-right
	AntiDiagonal // top-right to bottom-left
)

var Directions = [...]Direction{Horizontal, Vertical, MainDiagonal, AntiDiagonal}

// Step returns the unit offset that walks "after" the cell along the direction.
func (d Direction) Step() (dRow, dCol int) {
	switch d {
	case Horizontal:
		return 0, 1
	case Vertical:
		return 1, 0
	case MainDiagonal:
		return 1, 1
	case AntiDiagonal:
		return 1, -1
	default:
		panic("unknown direction")
	}
}

var (
	ErrOutOfBounds = errors.New("cell is out of bounds")
	ErrOccupied    = errors.New("cell is already occupied")
	ErrGameOver    = errors.New("game is over")
)

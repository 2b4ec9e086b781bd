package game

import (
	"fmt"
	"strings"
)

// Board is a square Caro grid together with the mark to move next.
// It is mutated in place and is not safe for concurrent use: every goroutine
// that needs to simulate play works on its own Clone.
type Board struct {
	size      int
	sizeToWin int
	cells     []Mark // Row-major
	turn      Mark
	free      int
}

// NewBoard returns an empty size×size board where X moves first.
func NewBoard(size, sizeToWin int) *Board {
	if size < 1 {
		panic(fmt.Sprintf("board size must be positive, got %d", size))
	}
	if sizeToWin < 1 || sizeToWin > size {
		panic(fmt.Sprintf("size to win must be in [1, %d], got %d", size, sizeToWin))
	}
	return &Board{
		size:      size,
		sizeToWin: sizeToWin,
		cells:     make([]Mark, size*size),
		turn:      X,
		free:      size * size,
	}
}

// ParseBoard builds a board from one string per row using "X", "O" and "." cells.
// The mark to move is X unless X already has more marks than O.
func ParseBoard(sizeToWin int, rows ...string) (*Board, error) {
	size := len(rows)
	if size == 0 {
		return nil, fmt.Errorf("cannot parse board: no rows")
	}
	if sizeToWin < 1 || sizeToWin > size {
		return nil, fmt.Errorf("cannot parse board: size to win %d out of [1, %d]", sizeToWin, size)
	}

	b := NewBoard(size, sizeToWin)
	counts := map[Mark]int{}
	for row, line := range rows {
		if len(line) != size {
			return nil, fmt.Errorf("cannot parse board: row %d has %d cells, want %d", row, len(line), size)
		}
		for col, ch := range line {
			var m Mark
			switch ch {
			case 'X', 'x':
				m = X
			case 'O', 'o':
				m = O
			case '.':
				continue
			default:
				return nil, fmt.Errorf("cannot parse board: unexpected %q at (%d, %d)", ch, row, col)
			}
			b.cells[row*size+col] = m
			b.free--
			counts[m]++
		}
	}
	if counts[X] > counts[O] {
		b.turn = O
	}
	return b, nil
}

func (b *Board) Size() int      { return b.size }
func (b *Board) SizeToWin() int { return b.sizeToWin }
func (b *Board) Turn() Mark     { return b.turn }

// Remaining returns the number of empty cells.
func (b *Board) Remaining() int { return b.free }

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < b.size && col < b.size
}

// At returns the mark at a cell. Out-of-range access panics.
func (b *Board) At(row, col int) Mark {
	return b.cells[b.index(row, col)]
}

func (b *Board) index(row, col int) int {
	if !b.InBounds(row, col) {
		panic(fmt.Sprintf("cell (%d, %d) out of bounds for board size %d", row, col, b.size))
	}
	return row*b.size + col
}

// Move places the mark to move on an empty cell and passes the turn.
// It does not check whose turn it is or whether the game is over, so search
// can explore hypothetical moves for either side.
func (b *Board) Move(row, col int) {
	i := b.index(row, col)
	if b.cells[i] != Empty {
		panic(fmt.Sprintf("cannot move on occupied cell (%d, %d)", row, col))
	}
	b.cells[i] = b.turn
	b.turn = b.turn.Opponent()
	b.free--
}

// Unmove reverts Move on the same cell, handing the turn back to the mark removed.
func (b *Board) Unmove(row, col int) {
	i := b.index(row, col)
	if b.cells[i] == Empty {
		panic(fmt.Sprintf("cannot unmove empty cell (%d, %d)", row, col))
	}
	b.turn = b.cells[i]
	b.cells[i] = Empty
	b.free++
}

// Play validates and applies a move for the mark to move.
func (b *Board) Play(m Move) error {
	if b.CheckWin() != Pending {
		return fmt.Errorf("cannot play %s: %w", m, ErrGameOver)
	}
	if !b.InBounds(m.Row, m.Col) {
		return fmt.Errorf("cannot play %s: %w", m, ErrOutOfBounds)
	}
	if b.At(m.Row, m.Col) != Empty {
		return fmt.Errorf("cannot play %s: %w", m, ErrOccupied)
	}
	b.Move(m.Row, m.Col)
	return nil
}

// CheckWin reports a win when any run reaches the size to win, a draw when the
// grid is full, and Pending otherwise.
func (b *Board) CheckWin() Result {
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			m := b.cells[row*b.size+col]
			if m == Empty {
				continue
			}
			for _, d := range Directions {
				dr, dc := d.Step()
				// Only count from the first cell of a run
				if b.InBounds(row-dr, col-dc) && b.At(row-dr, col-dc) == m {
					continue
				}
				length := 1
				r, c := row+dr, col+dc
				for b.InBounds(r, c) && b.At(r, c) == m {
					length++
					r, c = r+dr, c+dc
				}
				if length >= b.sizeToWin {
					return winFor(m)
				}
			}
		}
	}
	if b.free == 0 {
		return Draw
	}
	return Pending
}

// RunConsecutive returns how far the run of the cell's mark extends on each
// side of the cell along d, excluding the cell itself.
func (b *Board) RunConsecutive(row, col int, d Direction) (before, after int) {
	m := b.At(row, col)
	dr, dc := d.Step()
	for r, c := row-dr, col-dc; b.InBounds(r, c) && b.At(r, c) == m; r, c = r-dr, c-dc {
		before++
	}
	for r, c := row+dr, col+dc; b.InBounds(r, c) && b.At(r, c) == m; r, c = r+dr, c+dc {
		after++
	}
	return before, after
}

// Surroundings returns the empty cells within Chebyshev distance radius of any
// occupied cell, in row-major order. An empty board yields the center cell so
// the first move always has a candidate.
func (b *Board) Surroundings(radius int) []Move {
	if b.free == len(b.cells) {
		return []Move{{Row: b.size / 2, Col: b.size / 2}}
	}

	near := make([]bool, len(b.cells))
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if b.cells[row*b.size+col] == Empty {
				continue
			}
			for r := row - radius; r <= row+radius; r++ {
				for c := col - radius; c <= col+radius; c++ {
					if b.InBounds(r, c) && b.cells[r*b.size+c] == Empty {
						near[r*b.size+c] = true
					}
				}
			}
		}
	}

	moves := []Move{}
	for i, ok := range near {
		if ok {
			moves = append(moves, Move{Row: i / b.size, Col: i % b.size})
		}
	}
	return moves
}

// EmptyCells returns every empty cell in row-major order.
func (b *Board) EmptyCells() []Move {
	moves := make([]Move, 0, b.free)
	for i, m := range b.cells {
		if m == Empty {
			moves = append(moves, Move{Row: i / b.size, Col: i % b.size})
		}
	}
	return moves
}

// Clone returns a deep copy that shares nothing with b.
func (b *Board) Clone() *Board {
	cells := make([]Mark, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		size:      b.size,
		sizeToWin: b.sizeToWin,
		cells:     cells,
		turn:      b.turn,
		free:      b.free,
	}
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.cells[row*b.size+col].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

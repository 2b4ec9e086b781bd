package searcher

import "caro/game"

// Evaluate statically scores a position for mark. Positive values favor mark.
type Evaluate func(b *game.Board, mark game.Mark) int

// EvaluateRuns sums the line strength of every run on the board, adding runs of
// mark and subtracting runs of its opponent. It ignores whose turn it is.
func EvaluateRuns(b *game.Board, mark game.Mark) int {
	size := b.Size()
	visited := make([]bool, size*size)
	score := 0
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if visited[row*size+col] {
				continue
			}
			switch b.At(row, col) {
			case game.Empty:
				continue
			case mark:
				score += lineStrength(b, row, col, visited)
			default:
				score -= lineStrength(b, row, col, visited)
			}
		}
	}
	return score
}

// lineStrength scores the runs through an occupied cell in all four directions
// as length² × open ends, so a run blocked on both sides is worth nothing.
// Every cell of a scored run is marked visited.
func lineStrength(b *game.Board, row, col int, visited []bool) int {
	size := b.Size()
	visited[row*size+col] = true

	score := 0
	for _, d := range game.Directions {
		before, after := b.RunConsecutive(row, col, d)
		dr, dc := d.Step()
		firstRow, firstCol := row-before*dr, col-before*dc
		lastRow, lastCol := row+after*dr, col+after*dc

		open := 2
		if isBlocked(b, firstRow-dr, firstCol-dc) {
			open--
		}
		if isBlocked(b, lastRow+dr, lastCol+dc) {
			open--
		}
		length := before + after + 1
		score += length * length * open

		for i := -before; i <= after; i++ {
			visited[(row+i*dr)*size+col+i*dc] = true
		}
	}
	return score
}

// isBlocked reports whether a run ending next to (row, col) cannot grow there:
// the cell is off the grid or holds a mark. Runs are maximal, so a mark past
// the end always belongs to the opponent.
func isBlocked(b *game.Board, row, col int) bool {
	return !b.InBounds(row, col) || b.At(row, col) != game.Empty
}

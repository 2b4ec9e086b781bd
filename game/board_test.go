package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, sizeToWin int, rows ...string) *Board {
	t.Helper()
	b, err := ParseBoard(sizeToWin, rows...)
	require.NoError(t, err)
	return b
}

func TestBoardMoveUnmove(t *testing.T) {
	t.Run("move places the mark to move and passes the turn", func(t *testing.T) {
		b := NewBoard(3, 3)

		b.Move(1, 1)

		require.Equal(t, X, b.At(1, 1), "First move should be X")
		require.Equal(t, O, b.Turn(), "Turn should pass to O")
		require.Equal(t, 8, b.Remaining(), "One cell should be taken")
	})

	t.Run("unmove restores the exact previous board", func(t *testing.T) {
		b := mustParse(t, 4,
			"X.O..",
			".X...",
			"..O..",
			".....",
			".....",
		)
		for _, m := range b.EmptyCells() {
			before := b.Clone()

			b.Move(m.Row, m.Col)
			b.Unmove(m.Row, m.Col)

			require.Equal(t, before, b, "Unmove should revert move at %s", m)
		}
	})

	t.Run("move on an occupied cell panics", func(t *testing.T) {
		b := NewBoard(3, 3)
		b.Move(0, 0)

		require.Panics(t, func() { b.Move(0, 0) }, "Should panic on occupied cell")
	})

	t.Run("out of range access panics", func(t *testing.T) {
		b := NewBoard(3, 3)

		require.Panics(t, func() { b.Move(3, 0) }, "Should panic past the last row")
		require.Panics(t, func() { b.At(0, -1) }, "Should panic before the first column")
	})
}

func TestBoardPlay(t *testing.T) {
	t.Run("rejects out of bounds moves", func(t *testing.T) {
		b := NewBoard(3, 3)

		err := b.Play(Move{Row: 5, Col: 0})

		require.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("rejects occupied cells", func(t *testing.T) {
		b := NewBoard(3, 3)
		require.NoError(t, b.Play(Move{Row: 0, Col: 0}))

		err := b.Play(Move{Row: 0, Col: 0})

		require.ErrorIs(t, err, ErrOccupied)
	})

	t.Run("rejects moves after the game is decided", func(t *testing.T) {
		b := mustParse(t, 3,
			"XXX",
			"OO.",
			"...",
		)

		err := b.Play(Move{Row: 1, Col: 2})

		require.ErrorIs(t, err, ErrGameOver)
	})

	t.Run("players alternate starting with X", func(t *testing.T) {
		b := NewBoard(3, 3)
		for i, m := range []Move{{0, 0}, {1, 1}, {2, 2}} {
			require.NoError(t, b.Play(m))
			want := X
			if i%2 == 1 {
				want = O
			}
			require.Equal(t, want, b.At(m.Row, m.Col))
		}
	})
}

func TestBoardCheckWin(t *testing.T) {
	cases := []struct {
		name string
		rows []string
		want Result
	}{
		{"empty board is pending", []string{".....", ".....", ".....", ".....", "....."}, Pending},
		{"row", []string{".....", "XXXX.", "OOO..", ".....", "....."}, XWin},
		{"column", []string{"..O..", "X.O..", "X.O..", "X.O..", "....X"}, OWin},
		{"main diagonal", []string{"X....", ".X...", "..X..", "...XO", "OOO.."}, XWin},
		{"anti diagonal", []string{"....O", "...O.", "..O..", ".O.XX", "X.X.X"}, OWin},
		{"run longer than size to win", []string{"XXXXX", "OOO..", ".....", ".....", "....."}, XWin},
		{"three is not enough", []string{"XXX..", "OOO..", ".....", ".....", "....."}, Pending},
		{"full board without a line is a draw", []string{
			"XXXOX",
			"OOOXO",
			"XXXOX",
			"OOOXO",
			"XXXOX",
		}, Draw},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustParse(t, 4, tc.rows...)

			require.Equal(t, tc.want, b.CheckWin())
		})
	}
}

func TestBoardRunConsecutive(t *testing.T) {
	b := mustParse(t, 4,
		"XXX.O",
		".X.O.",
		"..XO.",
		"...O.",
		".....",
	)

	t.Run("horizontal run counts both sides", func(t *testing.T) {
		before, after := b.RunConsecutive(0, 1, Horizontal)
		require.Equal(t, 1, before)
		require.Equal(t, 1, after)
	})

	t.Run("vertical run stops at a different mark", func(t *testing.T) {
		before, after := b.RunConsecutive(2, 3, Vertical)
		require.Equal(t, 1, before)
		require.Equal(t, 1, after)
	})

	t.Run("main diagonal", func(t *testing.T) {
		before, after := b.RunConsecutive(1, 1, MainDiagonal)
		require.Equal(t, 1, before)
		require.Equal(t, 1, after)
	})

	t.Run("anti diagonal is clamped to the grid", func(t *testing.T) {
		before, after := b.RunConsecutive(0, 4, AntiDiagonal)
		require.Equal(t, 0, before, "Nothing above the first row")
		require.Equal(t, 1, after, "O at (1, 3) continues the run")
	})
}

func TestBoardSurroundings(t *testing.T) {
	t.Run("empty board proposes the center", func(t *testing.T) {
		b := NewBoard(5, 4)

		require.Equal(t, []Move{{Row: 2, Col: 2}}, b.Surroundings(1))
	})

	t.Run("radius one around a corner mark", func(t *testing.T) {
		b := mustParse(t, 3,
			"X..",
			"...",
			"...",
		)

		require.Equal(t, []Move{{0, 1}, {1, 0}, {1, 1}}, b.Surroundings(1), "Should list neighbors in row-major order")
	})

	t.Run("only empty cells near occupied ones", func(t *testing.T) {
		b := mustParse(t, 4,
			".....",
			".XO..",
			".....",
			".....",
			".....",
		)

		got := b.Surroundings(1)

		require.Len(t, got, 10)
		for _, m := range got {
			require.Equal(t, Empty, b.At(m.Row, m.Col), "Candidate %s should be empty", m)
		}
		require.NotContains(t, got, Move{Row: 4, Col: 4})
	})

	t.Run("full board has no candidates", func(t *testing.T) {
		b := mustParse(t, 3,
			"XOX",
			"XOO",
			"OXX",
		)

		require.Empty(t, b.Surroundings(1))
	})
}

func TestBoardClone(t *testing.T) {
	b := NewBoard(3, 3)
	b.Move(0, 0)

	clone := b.Clone()
	clone.Move(1, 1)

	require.Equal(t, Empty, b.At(1, 1), "Clone should not alias the original grid")
	require.Equal(t, O, b.Turn(), "Clone should not alias the original turn")
	require.Equal(t, 8, b.Remaining())
}

func TestParseBoard(t *testing.T) {
	t.Run("infers the mark to move", func(t *testing.T) {
		require.Equal(t, O, mustParse(t, 3, "X..", "...", "...").Turn())
		require.Equal(t, X, mustParse(t, 3, "XO.", "...", "...").Turn())
	})

	t.Run("rejects ragged rows", func(t *testing.T) {
		_, err := ParseBoard(3, "X..", "..", "...")
		require.Error(t, err)
	})

	t.Run("rejects unknown cells", func(t *testing.T) {
		_, err := ParseBoard(3, "X..", ".?.", "...")
		require.Error(t, err)
	})

	t.Run("renders back to text", func(t *testing.T) {
		b := mustParse(t, 3, "X..", ".O.", "...")
		require.Equal(t, "X . .\n. O .\n. . .\n", b.String())
	})
}

package engine

import (
	"bytes"
	"caro/experiments/metrics"
	"caro/game"
	"caro/searcher"
	"caro/searcher/agent"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedAgent plays a fixed list of moves, then reports an error
type scriptedAgent struct {
	mark  game.Mark
	moves []game.Move
	err   error
}

func (s *scriptedAgent) Mark() game.Mark { return s.mark }

func (s *scriptedAgent) FindMove() (game.Move, metrics.SearchMetric, error) {
	if s.err != nil {
		return game.Move{}, metrics.SearchMetric{}, s.err
	}
	if len(s.moves) == 0 {
		return game.Move{}, metrics.SearchMetric{}, errors.New("out of moves")
	}
	move := s.moves[0]
	s.moves = s.moves[1:]
	return move, metrics.SearchMetric{Depth: 1}, nil
}

func TestEngineRun(t *testing.T) {
	t.Run("plays until a line is completed", func(t *testing.T) {
		b := game.NewBoard(3, 3)
		x := &scriptedAgent{mark: game.X, moves: []game.Move{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}}
		o := &scriptedAgent{mark: game.O, moves: []game.Move{{Row: 1, Col: 0}, {Row: 1, Col: 1}}}
		var out bytes.Buffer

		result, gameMetric, moveMetrics := LocalEngine(b, []agent.Agent{o, x}, WithOutput(&out)).Run()

		require.Equal(t, game.XWin, result)
		require.Equal(t, game.X, gameMetric.StartingPlayer)
		require.Equal(t, game.XWin, gameMetric.Result)
		require.Equal(t, 5, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 5)
		require.Equal(t, game.O, moveMetrics[1].Player)
		require.Equal(t, game.Move{Row: 0, Col: 2}, moveMetrics[4].Move)
		require.Equal(t, 5, moveMetrics[4].Step)
		require.Equal(t, 5, strings.Count(out.String(), separator), "Board should be rendered after every move")
	})

	t.Run("replaces an invalid move with the first empty cell", func(t *testing.T) {
		b := game.NewBoard(3, 3)
		x := &scriptedAgent{mark: game.X, moves: []game.Move{{Row: 1, Col: 1}, {Row: 1, Col: 1}, {Row: 9, Col: 9}}}
		o := &scriptedAgent{mark: game.O, moves: []game.Move{{Row: 2, Col: 2}, {Row: 2, Col: 1}}}

		// X plays (1, 1), then twice the first empty cell: (0, 0) and (0, 1)
		_, _, moveMetrics := LocalEngine(b, []agent.Agent{x, o}).Run()

		require.Equal(t, game.Move{Row: 0, Col: 0}, moveMetrics[2].Move)
		require.Equal(t, game.X, b.At(0, 0))
		require.Equal(t, game.Move{Row: 0, Col: 1}, moveMetrics[4].Move)
	})

	t.Run("agent errors fall back to the first empty cell", func(t *testing.T) {
		b := game.NewBoard(3, 3)
		x := &scriptedAgent{mark: game.X, err: errors.New("boom")}
		o := &scriptedAgent{mark: game.O, moves: []game.Move{{Row: 2, Col: 0}, {Row: 2, Col: 1}}}

		result, _, _ := LocalEngine(b, []agent.Agent{x, o}).Run()

		require.Equal(t, game.XWin, result, "X fills the top row")
	})

	t.Run("search agents finish a game", func(t *testing.T) {
		b := game.NewBoard(5, 4)
		x := agent.NewSearchAgent(searcher.NewMinimax(b, game.X, searcher.WithDepth(2), searcher.WithMetrics()))
		o := agent.NewRandomAgent(searcher.NewMinimax(b, game.O, searcher.WithSeed(3)))

		result, gameMetric, moveMetrics := LocalEngine(b, []agent.Agent{x, o}).Run()

		require.NotEqual(t, game.Pending, result)
		require.Equal(t, result, b.CheckWin())
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.Equal(t, 25-b.Remaining(), gameMetric.TotalMoves)
		require.Positive(t, moveMetrics[0].Nodes, "Search metrics should be recorded")
	})

	t.Run("requires one agent per mark", func(t *testing.T) {
		b := game.NewBoard(3, 3)
		x1 := &scriptedAgent{mark: game.X}
		x2 := &scriptedAgent{mark: game.X}

		require.Panics(t, func() { LocalEngine(b, []agent.Agent{x1, x2}) })
		require.Panics(t, func() { LocalEngine(b, []agent.Agent{x1}) })
	})
}

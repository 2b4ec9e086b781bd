package searcher

import (
	"caro/experiments/metrics"
	"caro/game"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	DefaultDepth  = 3
	DefaultRadius = 1
)

var ErrNoEmptyCells = errors.New("no empty cells left")

type Option func(m *Minimax)

// Minimax searches a board in place on behalf of one mark. The board is
// mutated during a search and restored before the search returns, so it must
// not be shared with another goroutine while searching.
type Minimax struct {
	board    *game.Board
	mark     game.Mark
	depth    int
	radius   int
	pruning  bool
	evaluate Evaluate
	rng      *rand.Rand
	metrics  metrics.Collector
	last     metrics.SearchMetric
}

// WithDepth sets the search depth. Depth 0 never yields a move, so the agent
// always falls back to a random one.
func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth >= 0 {
			m.depth = depth
		}
	}
}

// WithRadius sets how far from occupied cells candidate moves may be.
func WithRadius(radius int) Option {
	return func(m *Minimax) {
		if radius > 0 {
			m.radius = radius
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *Minimax) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithEvaluationFn(evaluate Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// WithoutPruning turns the search into plain full-width minimax.
func WithoutPruning() Option {
	return func(m *Minimax) {
		m.pruning = false
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(board *game.Board, mark game.Mark, options ...Option) *Minimax {
	if board == nil {
		panic("Must search a board")
	}
	if mark != game.X && mark != game.O {
		panic(fmt.Sprintf("Must search for X or O, got %s", mark))
	}
	m := &Minimax{ // Default values
		board:    board,
		mark:     mark,
		depth:    DefaultDepth,
		radius:   DefaultRadius,
		pruning:  true,
		evaluate: EvaluateRuns,
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Mark() game.Mark { return m.mark }
func (m *Minimax) Depth() int      { return m.depth }

// Metrics returns the metrics of the last OptimalMove call.
func (m *Minimax) Metrics() metrics.SearchMetric { return m.last }

// OptimalMove searches to the configured depth and returns the best move for
// the agent's mark, or a random empty cell when the search proposes none.
func (m *Minimax) OptimalMove() (game.Move, error) {
	if result := m.board.CheckWin(); result != game.Pending {
		return game.Move{}, fmt.Errorf("cannot search %s: %w", result, game.ErrGameOver)
	}
	if turn := m.board.Turn(); turn != m.mark {
		log.Warn().Msgf("searching for %s while %s is to move", m.mark, turn)
	}

	m.metrics.Start(m.depth)
	score, move, ok := m.Search()
	if !ok {
		m.metrics.SetFallback(true)
		var err error
		move, err = m.RandomMove()
		if err != nil {
			m.last = m.metrics.Complete(score.String())
			return game.Move{}, err
		}
	}
	m.last = m.metrics.Complete(score.String())

	log.Debug().
		Str("mark", m.mark.String()).
		Int("depth", m.depth).
		Str("score", score.String()).
		Bool("fallback", !ok).
		Msgf("picked %s", move)
	return move, nil
}

// Search runs alpha-beta from the current position with the agent maximizing.
// The returned flag is false when no move was expanded: the position is
// terminal, the depth is 0, or there are no candidates.
func (m *Minimax) Search() (Score, game.Move, bool) {
	return m.search(m.depth, Score{Outcome: minusInf}, Score{Outcome: plusInf}, true)
}

func (m *Minimax) search(depth int, alpha, beta Score, maximizing bool) (Score, game.Move, bool) {
	m.metrics.AddNode()

	// Outcomes are judged for the agent's mark, whichever side is maximizing here
	switch result := m.board.CheckWin(); result {
	case game.Pending:
	case game.Draw:
		return DrawScore(), game.Move{}, false
	default:
		if result.Winner() == m.mark {
			return WinScore(), game.Move{}, false
		}
		return LossScore(), game.Move{}, false
	}

	if depth == 0 {
		m.metrics.AddEvaluation()
		return HeuristicScore(m.evaluate(m.board, m.mark)), game.Move{}, false
	}

	best := Score{Outcome: minusInf}
	if !maximizing {
		best = Score{Outcome: plusInf}
	}
	var bestMove game.Move
	found := false

	for _, move := range m.board.Surroundings(m.radius) {
		m.board.Move(move.Row, move.Col)
		value, _, _ := m.search(depth-1, alpha, beta, !maximizing)
		m.board.Unmove(move.Row, move.Col)

		// Strict comparisons keep the first of equally valued moves
		if maximizing {
			if best.Less(value) {
				best, bestMove, found = value, move, true
			}
			alpha = maxScore(alpha, best)
		} else {
			if value.Less(best) {
				best, bestMove, found = value, move, true
			}
			beta = minScore(beta, best)
		}

		if m.pruning && !alpha.Less(beta) {
			m.metrics.AddCutoff()
			break
		}
	}
	return best, bestMove, found
}

// RandomMove picks uniformly among the empty cells.
func (m *Minimax) RandomMove() (game.Move, error) {
	cells := m.board.EmptyCells()
	if len(cells) == 0 {
		return game.Move{}, ErrNoEmptyCells
	}
	return cells[m.rng.Intn(len(cells))], nil
}

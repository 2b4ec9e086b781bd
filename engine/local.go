package engine

import (
	"caro/experiments/metrics"
	"caro/game"
	"caro/searcher/agent"
	"caro/utils"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
)

const separator = "========="

type Engine struct {
	Board  *game.Board
	Agents map[game.Mark]agent.Agent
	output io.Writer
}

type Option func(e *Engine)

// WithOutput renders the board to w after every move.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.output = w
	}
}

// LocalEngine plays agents against each other on board. There must be exactly
// one agent for X and one for O.
func LocalEngine(board *game.Board, agents []agent.Agent, options ...Option) *Engine {
	if board == nil {
		panic("need a board to play on")
	}
	if len(agents) != 2 {
		panic(fmt.Sprintf("need two agents, got %d", len(agents)))
	}

	byMark := make(map[game.Mark]agent.Agent, len(agents))
	for _, a := range agents {
		if _, ok := byMark[a.Mark()]; ok {
			panic(fmt.Sprintf("two agents play %s", a.Mark()))
		}
		byMark[a.Mark()] = a
	}

	e := &Engine{
		Board:  board,
		Agents: byMark,
		output: io.Discard,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until the game is decided.
func (e *Engine) Run() (game.Result, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Board.Turn(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", e.Board.Turn())

	step := 1
	result := e.Board.CheckWin()
	for result == game.Pending {
		mark := e.Board.Turn()
		a, ok := e.Agents[mark]
		if !ok {
			panic(fmt.Sprintf("no agent plays %s", mark))
		}

		move, searchMetric, err := a.FindMove()
		if err != nil {
			log.Warn().Err(err).Msgf("%s failed to find a move", mark)
		}
		move = e.validate(mark, move, err)

		if err := e.Board.Play(move); err != nil {
			// validate only returns empty cells of an undecided game
			panic(err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       mark,
			Move:         move,
			SearchMetric: searchMetric,
		})
		log.Debug().Int("step", step).Str("player", mark.String()).Msgf("played %s", move)

		fmt.Fprintln(e.output, e.Board)
		fmt.Fprintln(e.output, separator)

		result = e.Board.CheckWin()
		step++
	}

	gameMetric.Result = result
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	log.Info().Msgf("game over after %d moves: %s", gameMetric.TotalMoves, result)
	return result, gameMetric, moveMetrics
}

// validate replaces a move that is not an empty cell with the first empty one.
func (e *Engine) validate(mark game.Mark, move game.Move, err error) game.Move {
	legal := e.Board.EmptyCells()
	if err == nil && utils.FindIndex(legal, move) >= 0 {
		return move
	}
	if len(legal) == 0 {
		panic("no empty cells in an undecided game")
	}
	log.Warn().Msgf("%s returned invalid move %s, playing %s instead", mark, move, legal[0])
	return legal[0]
}

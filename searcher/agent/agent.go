package agent

import (
	"caro/experiments/metrics"
	"caro/game"
	"caro/searcher"
)

type Agent interface {
	// Mark returns the mark the agent plays
	Mark() game.Mark
	// FindMove returns the agent's next move and the metrics (if collected) of finding it
	FindMove() (game.Move, metrics.SearchMetric, error)
}

// FromConfig builds the agent described by config for mark on board. Depth 0
// gives a random agent.
func FromConfig(board *game.Board, mark game.Mark, config metrics.AgentConfig, seed uint64) Agent {
	options := []searcher.Option{
		searcher.WithDepth(config.Depth),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	}
	if config.Radius > 0 {
		options = append(options, searcher.WithRadius(config.Radius))
	}
	if !config.Pruning {
		options = append(options, searcher.WithoutPruning())
	}

	minimax := searcher.NewMinimax(board, mark, options...)
	if config.Depth == 0 {
		return NewRandomAgent(minimax)
	}
	return NewSearchAgent(minimax)
}

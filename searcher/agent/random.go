package agent

import (
	"caro/experiments/metrics"
	"caro/game"
	"caro/searcher"
)

type randomAgent struct {
	minimax *searcher.Minimax
}

// NewRandomAgent returns a deliberately weak agent that plays uniformly random
// empty cells, using the random fallback of minimax.
func NewRandomAgent(minimax *searcher.Minimax) Agent {
	return randomAgent{minimax: minimax}
}

func (a randomAgent) Mark() game.Mark {
	return a.minimax.Mark()
}

func (a randomAgent) FindMove() (game.Move, metrics.SearchMetric, error) {
	move, err := a.minimax.RandomMove()
	return move, metrics.SearchMetric{Fallback: true}, err
}

package agent

import (
	"caro/experiments/metrics"
	"caro/game"
	"caro/searcher"
)

type searchAgent struct {
	minimax *searcher.Minimax
}

// NewSearchAgent returns an agent that plays the alpha-beta move of minimax.
func NewSearchAgent(minimax *searcher.Minimax) Agent {
	return searchAgent{minimax: minimax}
}

func (a searchAgent) Mark() game.Mark {
	return a.minimax.Mark()
}

func (a searchAgent) FindMove() (game.Move, metrics.SearchMetric, error) {
	move, err := a.minimax.OptimalMove()
	return move, a.minimax.Metrics(), err
}

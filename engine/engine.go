package engine

import (
	"caro/experiments/metrics"
	"caro/game"
)

type Runner interface {
	// Run plays a game till there's a winner or the board is full
	Run() (result game.Result, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

var _ Runner = (*Engine)(nil)

package experiments

import (
	"caro/experiments/metrics"
	"caro/meta"
)

// DepthSetup pairs every depth from 1 to the configured one against the
// random baseline (depth 0).
func DepthSetup(c meta.Config) Setup {
	baseline := metrics.AgentConfig{ID: 0, Depth: 0, Radius: c.Radius, Pruning: c.Pruning}
	configs := []metrics.AgentConfig{baseline}
	matchUps := []MatchUp{}
	for depth := 1; depth <= c.Depth; depth++ {
		config := metrics.AgentConfig{ID: depth, Depth: depth, Radius: c.Radius, Pruning: c.Pruning}
		configs = append(configs, config)
		matchUps = append(matchUps, MatchUp{First: baseline, Second: config})
	}

	return Setup{
		Name:      "depth",
		BoardSize: c.BoardSize,
		SizeToWin: c.SizeToWin,
		Configs:   configs,
		MatchUps:  matchUps,
		Games:     c.Games,
		Workers:   c.Workers,
		Seed:      c.Seed,
	}
}

// Setups lists the experiments runnable by name.
var Setups = map[string]func(meta.Config) Setup{
	"depth":   DepthSetup,
	"pruning": PruningSetup,
}

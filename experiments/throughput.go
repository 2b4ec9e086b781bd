package experiments

import (
	"caro/experiments/metrics"
	"caro/game"
	"caro/meta"
	"time"
)

// PruningSetup pits alpha-beta against full-width search at the same depth, so
// both play the same moves and only the work per move differs.
func PruningSetup(c meta.Config) Setup {
	pruned := metrics.AgentConfig{ID: 1, Depth: c.Depth, Radius: c.Radius, Pruning: true}
	full := metrics.AgentConfig{ID: 2, Depth: c.Depth, Radius: c.Radius, Pruning: false}

	return Setup{
		Name:      "pruning",
		BoardSize: c.BoardSize,
		SizeToWin: c.SizeToWin,
		Configs:   []metrics.AgentConfig{pruned, full},
		MatchUps:  []MatchUp{{First: pruned, Second: full}},
		Games:     c.Games,
		Workers:   c.Workers,
		Seed:      c.Seed,
	}
}

type Throughput struct {
	Moves          int
	Nodes          int
	Cutoffs        int
	Duration       time.Duration
	NodesPerMove   float64
	NodesPerSecond float64
}

// MeasureThroughput aggregates the search work of the moves played by each
// agent config. Fallback moves did not search and are skipped.
func MeasureThroughput(games []metrics.GameRecord, moves []metrics.MoveRecord) map[int]Throughput {
	agentOf := make(map[int]map[game.Mark]int, len(games))
	for _, g := range games {
		agentOf[g.ID] = map[game.Mark]int{game.X: g.AgentX, game.O: g.AgentO}
	}

	out := map[int]Throughput{}
	for _, m := range moves {
		if m.Fallback {
			continue
		}
		players, ok := agentOf[m.Game]
		if !ok {
			continue
		}
		id := players[m.Player]
		t := out[id]
		t.Moves++
		t.Nodes += m.Nodes
		t.Cutoffs += m.Cutoffs
		t.Duration += m.Duration
		out[id] = t
	}

	for id, t := range out {
		t.NodesPerMove = float64(t.Nodes) / float64(t.Moves)
		if t.Duration > 0 {
			t.NodesPerSecond = float64(t.Nodes) / t.Duration.Seconds()
		}
		out[id] = t
	}
	return out
}

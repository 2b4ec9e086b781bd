package experiments

import (
	"caro/engine"
	"caro/experiments/metrics"
	"caro/game"
	"caro/searcher/agent"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// MatchUp pairs two agent configs. First plays X in odd games, Second in even ones.
type MatchUp struct {
	First  metrics.AgentConfig
	Second metrics.AgentConfig
}

type Setup struct {
	Name      string
	BoardSize int
	SizeToWin int
	Configs   []metrics.AgentConfig
	MatchUps  []MatchUp
	Games     int    // Per match up
	Workers   int    // Games played in parallel
	Seed      uint64 // 0 seeds from the clock
}

type Summary struct {
	Games int
	Draws int
	Wins  map[int]int // AgentConfig.ID -> games won

	Throughput map[int]Throughput // AgentConfig.ID -> search work
}

var ErrNoGames = errors.New("experiment has no games to play")

type job struct {
	id      int
	matchUp int
	agentX  metrics.AgentConfig
	agentO  metrics.AgentConfig
	seed    uint64
	index   int // Game within its match up
}

type outcome struct {
	result      game.Result
	gameMetric  metrics.GameMetric
	moveMetrics []metrics.MoveMetric
}

// Run plays every match up of setup on a pool of workers, each game on its own
// board, and stores configs and records with writer once all games are done.
func Run(ctx context.Context, setup Setup, writer metrics.RecordWriter) (Summary, error) {
	jobs := plan(setup)
	if len(jobs) == 0 {
		return Summary{}, ErrNoGames
	}
	workers := max(1, min(setup.Workers, len(jobs)))

	log.Info().Msgf("starting %s experiment: %d games on %d workers...", setup.Name, len(jobs), workers)

	outcomes := make([]outcome, len(jobs))
	queue := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				if ctx.Err() != nil {
					continue
				}
				outcomes[j.id-1] = runGame(setup, j)
				log.Info().Msgf("completed matchup %d of %d game %d of %d: %s",
					j.matchUp+1, len(setup.MatchUps), j.index+1, setup.Games, outcomes[j.id-1].result)
			}
		}()
	}

	var err error
feed:
	for _, j := range jobs {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case queue <- j:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(queue)
	wg.Wait()
	if err == nil {
		// Workers skip queued games once canceled
		err = ctx.Err()
	}
	if err != nil {
		return Summary{}, fmt.Errorf("%s experiment interrupted: %w", setup.Name, err)
	}

	log.Info().Msgf("completed %s experiment", setup.Name)

	summary := Summary{Games: len(jobs), Wins: map[int]int{}}
	gameRecords := make([]metrics.GameRecord, 0, len(jobs))
	moveRecords := []metrics.MoveRecord{}
	for _, j := range jobs {
		o := outcomes[j.id-1]
		switch o.result {
		case game.XWin:
			summary.Wins[j.agentX.ID]++
		case game.OWin:
			summary.Wins[j.agentO.ID]++
		default:
			summary.Draws++
		}

		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         j.id,
			AgentX:     j.agentX.ID,
			AgentO:     j.agentO.ID,
			GameMetric: o.gameMetric,
		})
		for _, mm := range o.moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       j.id,
				MoveMetric: mm,
			})
		}
	}

	summary.Throughput = MeasureThroughput(gameRecords, moveRecords)

	if err := writer.WriteAgentConfigs(setup.Configs); err != nil {
		return summary, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summary, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summary, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return summary, nil
}

// plan numbers the games from 1 in match up order, alternating the first mover.
func plan(setup Setup) []job {
	seed := setup.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	jobs := []job{}
	for mi, matchUp := range setup.MatchUps {
		for i := 0; i < setup.Games; i++ {
			j := job{
				id:      len(jobs) + 1,
				matchUp: mi,
				agentX:  matchUp.First,
				agentO:  matchUp.Second,
				index:   i,
			}
			if i%2 == 1 {
				j.agentX, j.agentO = matchUp.Second, matchUp.First
			}
			j.seed = seed + uint64(2*j.id)
			jobs = append(jobs, j)
		}
	}
	return jobs
}

// runGame executes a single game between two agents on a fresh board
func runGame(setup Setup, j job) outcome {
	b := game.NewBoard(setup.BoardSize, setup.SizeToWin)
	agents := []agent.Agent{
		agent.FromConfig(b, game.X, j.agentX, j.seed),
		agent.FromConfig(b, game.O, j.agentO, j.seed+1),
	}
	e := engine.LocalEngine(b, agents)

	result, gameMetric, moveMetrics := e.Run()
	return outcome{result: result, gameMetric: gameMetric, moveMetrics: moveMetrics}
}

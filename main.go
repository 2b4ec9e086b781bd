package main

import (
	"caro/engine"
	"caro/experiments"
	"caro/experiments/metrics"
	"caro/game"
	"caro/meta"
	"caro/searcher/agent"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := meta.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	mode := flag.String("mode", "play", "play a single game or run an experiment")
	experiment := flag.String("experiment", "depth", fmt.Sprintf("experiment to run (%s)", strings.Join(setupNames(), ", ")))
	opponentDepth := flag.Int("opponent-depth", 0, "search depth of O, 0 plays random moves")
	flag.IntVar(&config.BoardSize, "size", config.BoardSize, "side length of the grid")
	flag.IntVar(&config.SizeToWin, "k", config.SizeToWin, "marks in a line needed to win")
	flag.IntVar(&config.Depth, "depth", config.Depth, "search depth of X (max depth for experiments)")
	flag.IntVar(&config.Radius, "radius", config.Radius, "neighborhood radius of candidate moves")
	flag.BoolVar(&config.Pruning, "pruning", config.Pruning, "use alpha-beta pruning")
	flag.Uint64Var(&config.Seed, "seed", config.Seed, "random seed, 0 seeds from the clock")
	flag.IntVar(&config.Games, "games", config.Games, "games per experiment matchup")
	flag.IntVar(&config.Workers, "workers", config.Workers, "games played in parallel")
	flag.StringVar(&config.OutputDir, "out", config.OutputDir, "directory for experiment CSV files")
	flag.StringVar(&config.Database, "db", config.Database, "SQLite file for experiment records")
	flag.StringVar(&config.LogLevel, "log-level", config.LogLevel, "zerolog level")
	flag.Parse()

	setupLogging(config.LogLevel)
	if err := config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid flags")
	}

	switch *mode {
	case "play":
		play(config, *opponentDepth)
	case "experiment":
		runExperiment(config, *experiment)
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

func setupLogging(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Msgf("unknown log level %q, keeping %s", level, zerolog.GlobalLevel())
	}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// play runs one game between a searching X and O, rendering every move
func play(config meta.Config, opponentDepth int) {
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	b := game.NewBoard(config.BoardSize, config.SizeToWin)
	x := metrics.AgentConfig{ID: 1, Depth: config.Depth, Radius: config.Radius, Pruning: config.Pruning}
	o := metrics.AgentConfig{ID: 2, Depth: opponentDepth, Radius: config.Radius, Pruning: config.Pruning}
	agents := []agent.Agent{
		agent.FromConfig(b, game.X, x, seed),
		agent.FromConfig(b, game.O, o, seed+1),
	}

	fmt.Println(b)
	fmt.Println("=========")
	result, _, _ := engine.LocalEngine(b, agents, engine.WithOutput(os.Stdout)).Run()
	fmt.Println(result)
}

func runExperiment(config meta.Config, name string) {
	newSetup, ok := experiments.Setups[name]
	if !ok {
		log.Fatal().Msgf("unknown experiment %q, want one of %s", name, strings.Join(setupNames(), ", "))
	}
	setup := newSetup(config)

	csvWriter, err := metrics.NewWriter(config.OutputDir, setup.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create experiment writer")
	}
	var writer metrics.RecordWriter = csvWriter
	if config.Database != "" {
		sqliteWriter, err := metrics.NewSQLiteWriter(config.Database, setup.Name)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open experiment database")
		}
		writer = metrics.NewMultiWriter(csvWriter, sqliteWriter)
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := experiments.Run(ctx, setup, writer)
	if err != nil {
		log.Error().Err(err).Msg("experiment failed")
		return
	}

	log.Info().Str("dir", csvWriter.Dir()).Msgf("%d games, %d draws", summary.Games, summary.Draws)
	for _, c := range setup.Configs {
		t := summary.Throughput[c.ID]
		log.Info().
			Int("agent", c.ID).
			Int("depth", c.Depth).
			Bool("pruning", c.Pruning).
			Int("wins", summary.Wins[c.ID]).
			Float64("nodes_per_move", t.NodesPerMove).
			Float64("nodes_per_second", t.NodesPerSecond).
			Msg("agent summary")
	}
}

func setupNames() []string {
	names := make([]string, 0, len(experiments.Setups))
	for name := range experiments.Setups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

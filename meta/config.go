package meta

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const envPrefix = "CARO_"

type Config struct {
	BoardSize int
	SizeToWin int
	Depth     int
	Radius    int
	Pruning   bool
	Seed      uint64 // 0 seeds from the clock
	Games     int    // Per matchup
	Workers   int
	LogLevel  string
	OutputDir string
	Database  string // SQLite file, empty writes CSV only
}

func Defaults() Config {
	return Config{
		BoardSize: BOARD_SIZE,
		SizeToWin: SIZE_TO_WIN,
		Depth:     DEPTH,
		Radius:    RADIUS,
		Pruning:   true,
		Games:     GAMES,
		Workers:   GO_ROUTINES,
		LogLevel:  "info",
		OutputDir: OUTPUT_DIR,
	}
}

// Load reads the defaults overridden by the dotenv files (".env" when none are
// given) and then by CARO_* environment variables. Missing files are ignored.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	dotenv := map[string]string{}
	for _, file := range files {
		values, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("failed to read %s: %w", file, err)
		}
		for k, v := range values {
			dotenv[k] = v
		}
	}

	env := func(key string) (string, bool) {
		if v := os.Getenv(envPrefix + key); v != "" {
			return v, true
		}
		v, ok := dotenv[envPrefix+key]
		return v, ok && v != ""
	}

	c := Defaults()
	var err error
	c.BoardSize, err = intEnv(env, "BOARD_SIZE", c.BoardSize)
	if err != nil {
		return Config{}, err
	}
	c.SizeToWin, err = intEnv(env, "SIZE_TO_WIN", c.SizeToWin)
	if err != nil {
		return Config{}, err
	}
	c.Depth, err = intEnv(env, "DEPTH", c.Depth)
	if err != nil {
		return Config{}, err
	}
	c.Radius, err = intEnv(env, "RADIUS", c.Radius)
	if err != nil {
		return Config{}, err
	}
	c.Games, err = intEnv(env, "GAMES", c.Games)
	if err != nil {
		return Config{}, err
	}
	c.Workers, err = intEnv(env, "WORKERS", c.Workers)
	if err != nil {
		return Config{}, err
	}
	if v, ok := env("PRUNING"); ok {
		c.Pruning, err = strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %sPRUNING: %w", envPrefix, err)
		}
	}
	if v, ok := env("SEED"); ok {
		c.Seed, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %sSEED: %w", envPrefix, err)
		}
	}
	if v, ok := env("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := env("OUTPUT_DIR"); ok {
		c.OutputDir = v
	}
	if v, ok := env("DATABASE"); ok {
		c.Database = v
	}

	return c, c.Validate()
}

func intEnv(env func(string) (string, bool), key string, def int) (int, error) {
	v, ok := env(key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %w", envPrefix, key, err)
	}
	return n, nil
}

var ErrInvalidConfig = errors.New("invalid config")

func (c Config) Validate() error {
	switch {
	case c.BoardSize < 1:
		return fmt.Errorf("%w: board size %d must be positive", ErrInvalidConfig, c.BoardSize)
	case c.SizeToWin < 1 || c.SizeToWin > c.BoardSize:
		return fmt.Errorf("%w: size to win %d must be in [1, %d]", ErrInvalidConfig, c.SizeToWin, c.BoardSize)
	case c.Depth < 0:
		return fmt.Errorf("%w: depth %d must not be negative", ErrInvalidConfig, c.Depth)
	case c.Radius < 1:
		return fmt.Errorf("%w: radius %d must be positive", ErrInvalidConfig, c.Radius)
	case c.Games < 1:
		return fmt.Errorf("%w: games %d must be positive", ErrInvalidConfig, c.Games)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers %d must be positive", ErrInvalidConfig, c.Workers)
	}
	return nil
}

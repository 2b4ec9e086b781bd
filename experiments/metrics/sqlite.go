package metrics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS experiments (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	started_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS agent_configs (
	run     INTEGER NOT NULL REFERENCES experiments(id),
	id      INTEGER NOT NULL,
	depth   INTEGER NOT NULL,
	radius  INTEGER NOT NULL,
	pruning BOOLEAN NOT NULL,
	PRIMARY KEY (run, id)
);
CREATE TABLE IF NOT EXISTS game_records (
	run             INTEGER NOT NULL REFERENCES experiments(id),
	id              INTEGER NOT NULL,
	agent_x         INTEGER NOT NULL,
	agent_o         INTEGER NOT NULL,
	starting_player TEXT NOT NULL,
	result          TEXT NOT NULL,
	start_time      TEXT NOT NULL,
	end_time        TEXT NOT NULL,
	duration_ns     INTEGER NOT NULL,
	total_moves     INTEGER NOT NULL,
	PRIMARY KEY (run, id),
	FOREIGN KEY (run, agent_x) REFERENCES agent_configs(run, id),
	FOREIGN KEY (run, agent_o) REFERENCES agent_configs(run, id)
);
CREATE TABLE IF NOT EXISTS move_records (
	run         INTEGER NOT NULL,
	game        INTEGER NOT NULL,
	step        INTEGER NOT NULL,
	player      TEXT NOT NULL,
	move_row    INTEGER NOT NULL,
	move_col    INTEGER NOT NULL,
	depth       INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL,
	nodes       INTEGER NOT NULL,
	evaluations INTEGER NOT NULL,
	cutoffs     INTEGER NOT NULL,
	score       TEXT NOT NULL,
	fallback    BOOLEAN NOT NULL,
	PRIMARY KEY (run, game, step),
	FOREIGN KEY (run, game) REFERENCES game_records(run, id)
);`

// SQLiteWriter stores the records of one experiment run in a SQLite database
// shared by every run. Config and game IDs are only unique within a run.
type SQLiteWriter struct {
	db  *sql.DB
	run int64
}

// NewSQLiteWriter opens (creating if missing) the database at dsn, applies the
// schema and starts a new run of the named experiment.
func NewSQLiteWriter(dsn, name string) (*SQLiteWriter, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	res, err := db.Exec(`INSERT INTO experiments (name, started_at) VALUES (?, ?)`,
		name, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("start run of %s: %w", name, err)
	}
	run, err := res.LastInsertId()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("start run of %s: %w", name, err)
	}
	return &SQLiteWriter{db: db, run: run}, nil
}

// Run returns the id of the run the writer records.
func (w *SQLiteWriter) Run() int64 {
	return w.run
}

func (w *SQLiteWriter) WriteAgentConfigs(configs []AgentConfig) error {
	return w.inTx(func(tx *sql.Tx) error {
		for _, c := range configs {
			_, err := tx.Exec(`INSERT INTO agent_configs (run, id, depth, radius, pruning) VALUES (?, ?, ?, ?, ?)`,
				w.run, c.ID, c.Depth, c.Radius, c.Pruning)
			if err != nil {
				return fmt.Errorf("insert agent config %d: %w", c.ID, err)
			}
		}
		return nil
	})
}

func (w *SQLiteWriter) WriteGameRecords(records []GameRecord) error {
	return w.inTx(func(tx *sql.Tx) error {
		for _, r := range records {
			_, err := tx.Exec(`INSERT INTO game_records
				(run, id, agent_x, agent_o, starting_player, result, start_time, end_time, duration_ns, total_moves)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				w.run, r.ID, r.AgentX, r.AgentO, r.StartingPlayer.String(), r.Result.String(),
				r.StartTime.Format(time.RFC3339Nano), r.EndTime.Format(time.RFC3339Nano),
				r.Duration.Nanoseconds(), r.TotalMoves)
			if err != nil {
				return fmt.Errorf("insert game record %d: %w", r.ID, err)
			}
		}
		return nil
	})
}

func (w *SQLiteWriter) WriteMoveRecords(records []MoveRecord) error {
	return w.inTx(func(tx *sql.Tx) error {
		for _, r := range records {
			_, err := tx.Exec(`INSERT INTO move_records
				(run, game, step, player, move_row, move_col, depth, duration_ns, nodes, evaluations, cutoffs, score, fallback)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				w.run, r.Game, r.Step, r.Player.String(), r.Move.Row, r.Move.Col, r.Depth,
				r.Duration.Nanoseconds(), r.Nodes, r.Evaluations, r.Cutoffs, r.Score, r.Fallback)
			if err != nil {
				return fmt.Errorf("insert move record %d/%d: %w", r.Game, r.Step, err)
			}
		}
		return nil
	})
}

// CountGames returns how many game records are stored for run.
func (w *SQLiteWriter) CountGames(run int64) (int, error) {
	var n int
	if err := w.db.QueryRow(`SELECT COUNT(*) FROM game_records WHERE run = ?`, run).Scan(&n); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}

func (w *SQLiteWriter) Close() error {
	return w.db.Close()
}

func (w *SQLiteWriter) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

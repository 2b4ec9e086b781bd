package metrics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one contestant of an experiment. Depth 0 plays random moves.
type AgentConfig struct {
	ID      int
	Depth   int
	Radius  int
	Pruning bool
}

type GameRecord struct {
	ID     int
	AgentX int // AgentConfig.ID
	AgentO int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// RecordWriter stores the outcome of an experiment.
type RecordWriter interface {
	WriteAgentConfigs(configs []AgentConfig) error
	WriteGameRecords(records []GameRecord) error
	WriteMoveRecords(records []MoveRecord) error
	Close() error
}

type Writer struct {
	baseDir string
}

// NewWriter creates a fresh folder under baseDir/name for CSV output, named
// after the start time and unique even for runs started together.
func NewWriter(baseDir, name string) (*Writer, error) {
	parent := filepath.Join(baseDir, name)
	err := os.MkdirAll(parent, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	dir, err := os.MkdirTemp(parent, timestamp+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: dir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "depth", "radius", "pruning"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Depth),
			strconv.Itoa(config.Radius),
			strconv.FormatBool(config.Pruning),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent_x", "agent_o", "starting_player", "result", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.AgentX),
			strconv.Itoa(record.AgentO),
			record.StartingPlayer.String(),
			record.Result.String(),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "row", "col", "depth", "duration", "nodes", "evaluations", "cutoffs", "score", "fallback"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			strconv.Itoa(record.Move.Row),
			strconv.Itoa(record.Move.Col),
			strconv.Itoa(record.Depth),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Evaluations),
			strconv.Itoa(record.Cutoffs),
			record.Score,
			strconv.FormatBool(record.Fallback),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) Close() error {
	return nil
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) (err error) {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", name, cerr)
		}
	}()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

type multiWriter []RecordWriter

// NewMultiWriter duplicates every write to all writers, stopping at the first error.
func NewMultiWriter(writers ...RecordWriter) RecordWriter {
	return multiWriter(writers)
}

func (m multiWriter) WriteAgentConfigs(configs []AgentConfig) error {
	for _, w := range m {
		if err := w.WriteAgentConfigs(configs); err != nil {
			return err
		}
	}
	return nil
}

func (m multiWriter) WriteGameRecords(records []GameRecord) error {
	for _, w := range m {
		if err := w.WriteGameRecords(records); err != nil {
			return err
		}
	}
	return nil
}

func (m multiWriter) WriteMoveRecords(records []MoveRecord) error {
	for _, w := range m {
		if err := w.WriteMoveRecords(records); err != nil {
			return err
		}
	}
	return nil
}

func (m multiWriter) Close() error {
	var errs []error
	for _, w := range m {
		errs = append(errs, w.Close())
	}
	return errors.Join(errs...)
}

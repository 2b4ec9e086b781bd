package metrics

import (
	"caro/game"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth       int
	Duration    time.Duration
	Nodes       int // Positions visited, including leaves
	Evaluations int // Static evaluations at the depth cutoff
	Cutoffs     int // Sibling loops cut short by alpha-beta
	Score       string
	Fallback    bool // Move came from the random fallback
}

type MoveMetric struct {
	Step   int
	Player game.Mark
	Move   game.Move
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Mark
	Result         game.Result
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(depth int)
	AddNode()
	AddEvaluation()
	AddCutoff()
	SetFallback(value bool)
	Complete(score string) SearchMetric
}

type collector struct {
	depth       int
	startTime   time.Time
	nodes       atomic.Int64
	evaluations atomic.Int64
	cutoffs     atomic.Int64
	fallback    atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int) {
	m.depth = depth
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.evaluations.Store(0)
	m.cutoffs.Store(0)
	m.fallback.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) SetFallback(value bool) {
	m.fallback.Store(value)
}

func (m *collector) Complete(score string) SearchMetric {
	return SearchMetric{
		Depth:       m.depth,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		Evaluations: int(m.evaluations.Load()),
		Cutoffs:     int(m.cutoffs.Load()),
		Score:       score,
		Fallback:    m.fallback.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int)                    {}
func (m *dummyCollector) AddNode()                           {}
func (m *dummyCollector) AddEvaluation()                     {}
func (m *dummyCollector) AddCutoff()                         {}
func (m *dummyCollector) SetFallback(value bool)             {}
func (m *dummyCollector) Complete(score string) SearchMetric { return SearchMetric{} }

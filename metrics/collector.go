package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes one root-level move decision.
type SearchMetric struct {
	Strategy string
	Duration time.Duration
	Nodes    int64 // Positions expanded (moves generated)
	Leaves   int64 // Terminal positions scored by the evaluator
}

type MoveMetric struct {
	Step int
	Side int
	SearchMetric
}

type GameMetric struct {
	StartingSide int
	Winner       int // -1 for a draw
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
}

type Collector interface {
	Start(strategy string)
	AddNode()
	AddLeaf()
	Complete() SearchMetric
	Last() SearchMetric // Result of the latest Complete
}

type collector struct {
	strategy  string
	startTime time.Time
	nodes     atomic.Int64
	leaves    atomic.Int64
	last      SearchMetric
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new decision.
func (m *collector) Start(strategy string) {
	m.strategy = strategy
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.leaves.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) Complete() SearchMetric {
	m.last = SearchMetric{
		Strategy: m.strategy,
		Duration: time.Since(m.startTime),
		Nodes:    m.nodes.Load(),
		Leaves:   m.leaves.Load(),
	}
	return m.last
}

func (m *collector) Last() SearchMetric {
	return m.last
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string)  {}
func (m *dummyCollector) AddNode()               {}
func (m *dummyCollector) AddLeaf()               {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
func (m *dummyCollector) Last() SearchMetric     { return SearchMetric{} }

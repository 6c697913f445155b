package experiments

import (
	"fmt"
	"io"
	"sort"
	"time"

	"tabletop/engine"
	"tabletop/metrics"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"gopkg.in/yaml.v3"
)

// GameResult describes one finished game. Results stay in memory; only the
// aggregated summary is reported.
type GameResult struct {
	ID      uuid.UUID
	Matchup string
	Seating [2]string // Contender names by side
	Status  engine.Status
	metrics.GameMetric
	Moves []metrics.MoveMetric
}

// WinnerName returns the winning contender, "draw", or the stop status of a
// game that never reached a terminal position.
func (r GameResult) WinnerName() string {
	if r.Status != engine.Terminal {
		return r.Status.String()
	}
	if r.Winner < 0 {
		return "draw"
	}
	return r.Seating[r.Winner]
}

type Standing struct {
	Games      int `yaml:"games"`
	Wins       int `yaml:"wins"`
	Losses     int `yaml:"losses"`
	Draws      int `yaml:"draws"`
	Unfinished int `yaml:"unfinished"`
}

// SearchTotals adds up the search metrics of every move a contender made.
type SearchTotals struct {
	Moves    int           `yaml:"moves"`
	Nodes    int64         `yaml:"nodes"`
	Leaves   int64         `yaml:"leaves"`
	Duration time.Duration `yaml:"duration"`
}

// MeanNodes returns the average number of expanded nodes per move.
func (t SearchTotals) MeanNodes() float64 {
	if t.Moves == 0 {
		return 0
	}
	return float64(t.Nodes) / float64(t.Moves)
}

type Summary struct {
	Game       string                  `yaml:"game"`
	Games      int                     `yaml:"games"`
	Draws      int                     `yaml:"draws"`
	Unfinished int                     `yaml:"unfinished"` // Stopped before a terminal position
	Standings  map[string]Standing     `yaml:"standings"`
	Searches   map[string]SearchTotals `yaml:"searches"`
	Results    []GameResult            `yaml:"-"`
}

func newSummary(name string, results []GameResult, standings *xsync.MapOf[string, Standing], searches *xsync.MapOf[string, SearchTotals]) *Summary {
	s := &Summary{
		Game:      name,
		Games:     len(results),
		Standings: map[string]Standing{},
		Searches:  map[string]SearchTotals{},
		Results:   results,
	}
	for _, r := range results {
		if r.Status != engine.Terminal {
			s.Unfinished++
		} else if r.Winner < 0 {
			s.Draws++
		}
	}
	standings.Range(func(name string, standing Standing) bool {
		s.Standings[name] = standing
		return true
	})
	searches.Range(func(name string, totals SearchTotals) bool {
		s.Searches[name] = totals
		return true
	})
	return s
}

// Contenders returns the contender names in alphabetical order.
func (s *Summary) Contenders() []string {
	names := make([]string, 0, len(s.Standings))
	for name := range s.Standings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteYAML encodes the summary as a YAML document.
func (s *Summary) WriteYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return encoder.Close()
}

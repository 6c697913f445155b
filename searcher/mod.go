package searcher

import (
	"errors"

	"tabletop/game"
	"tabletop/metrics"

	"github.com/rs/zerolog"
)

var (
	// ErrNoLegalMoves means the move generator returned nothing for a position
	// the oracle considers non-terminal. The two disagree, so the rule pack is
	// broken and the search is abandoned.
	ErrNoLegalMoves = errors.New("no legal moves at a non-terminal position")
	// ErrTerminalPosition is returned when a move is requested for a position
	// where play has already ended.
	ErrTerminalPosition = errors.New("cannot choose a move at a terminal position")
)

// MoveStrategy chooses one move for the side to move at position.
// Strategies hold only their rule pack collaborators and never cache results
// between calls.
type MoveStrategy[P game.Position[P, M], M game.Move] interface {
	ChooseMove(position P) (M, error)
}

type Option func(s *settings)

type settings struct {
	metrics metrics.Collector
	logger  *zerolog.Logger
}

func newSettings(options []Option) settings {
	s := settings{ // Default values
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&s)
	}
	return s
}

// WithMetrics records node and leaf counts of every root decision in c.
func WithMetrics(c metrics.Collector) Option {
	return func(s *settings) {
		if c != nil {
			s.metrics = c
		}
	}
}

// WithLogger logs each root decision at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = &logger
	}
}

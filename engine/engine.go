package engine

import (
	"errors"
	"fmt"

	"tabletop/game"
	"tabletop/player"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrInvalidSide is returned when the oracle names a side other than 0 or 1.
var ErrInvalidSide = errors.New("oracle returned an invalid side")

// Status tells why Run stopped.
type Status int

const (
	// Terminal means the oracle declared the current position over.
	Terminal Status = iota
	// Indeterminate means the oracle could not name the next player at a
	// non-terminal position. Play stops, but the rule pack is inconsistent.
	Indeterminate
	// PlyLimit means the configured maximum number of plies was reached.
	PlyLimit
	// Aborted means a player failed to produce a move.
	Aborted
)

func (s Status) String() string {
	switch s {
	case Terminal:
		return "terminal"
	case Indeterminate:
		return "indeterminate"
	case PlyLimit:
		return "ply limit"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Ply is one applied move, handed to observers after the position advanced.
type Ply[P game.Position[P, M], M game.Move] struct {
	Number   int // 1-based
	Side     game.Side
	Move     M
	Position P // Position after the move
}

type Option func(s *settings)

type settings struct {
	maxPlies int
	logger   zerolog.Logger
}

// WithMaxPlies stops Run after n applied moves. Zero means no limit.
func WithMaxPlies(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.maxPlies = n
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// Engine alternates the two players until the oracle ends the game. The
// move history is kept as an audit trail only; positions are never rebuilt
// from it.
type Engine[P game.Position[P, M], M game.Move] struct {
	initial   P
	current   P
	moves     []M
	players   [2]player.Player[P, M]
	oracle    game.Oracle[P]
	observers []func(Ply[P, M])
	settings
}

func New[P game.Position[P, M], M game.Move](
	initial P,
	player0, player1 player.Player[P, M],
	oracle game.Oracle[P],
	options ...Option,
) *Engine[P, M] {
	s := settings{ // Default values
		logger: log.Logger,
	}
	for _, option := range options {
		option(&s)
	}
	return &Engine[P, M]{
		initial:  initial,
		current:  initial,
		players:  [2]player.Player[P, M]{player0, player1},
		oracle:   oracle,
		settings: s,
	}
}

// OnMove registers f to be called after every applied move, in order.
func (e *Engine[P, M]) OnMove(f func(Ply[P, M])) {
	e.observers = append(e.observers, f)
}

// Run plays from the current position until it is terminal, the next player
// is indeterminate, or the ply limit is hit. A player error aborts the run
// and is returned wrapped with the ply and side.
func (e *Engine[P, M]) Run() (Status, error) {
	e.logger.Info().Msgf("starting game at ply %d", len(e.moves))

	for !e.oracle.IsTerminal(e.current) {
		if e.maxPlies > 0 && len(e.moves) >= e.maxPlies {
			e.logger.Info().Msgf("stopped after %d plies without a result", len(e.moves))
			return PlyLimit, nil
		}

		side, ok := e.oracle.NextPlayer(e.current)
		if !ok {
			e.logger.Warn().
				Int("ply", len(e.moves)).
				Msgf("next player is indeterminate at a non-terminal position:\n%v", e.current)
			return Indeterminate, nil
		}
		if !side.Valid() {
			return Aborted, fmt.Errorf("%w: %d", ErrInvalidSide, side)
		}

		ply := len(e.moves) + 1
		move, err := e.players[side].PickMove(e.current)
		if err != nil {
			return Aborted, fmt.Errorf("ply %d (side %d): %w", ply, side, err)
		}

		e.current = e.current.Apply(move)
		e.moves = append(e.moves, move)

		e.logger.Debug().
			Int("ply", ply).
			Int("side", int(side)).
			Msgf("played %v\n%v", move, e.current)

		for _, f := range e.observers {
			f(Ply[P, M]{Number: ply, Side: side, Move: move, Position: e.current})
		}
	}

	e.logger.Info().Msgf("game over after %d plies", len(e.moves))
	return Terminal, nil
}

// Position returns the current position.
func (e *Engine[P, M]) Position() P {
	return e.current
}

func (e *Engine[P, M]) Initial() P {
	return e.initial
}

// Moves returns a copy of the moves applied so far.
func (e *Engine[P, M]) Moves() []M {
	moves := make([]M, len(e.moves))
	copy(moves, e.moves)
	return moves
}

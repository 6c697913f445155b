package searcher

import (
	"fmt"

	"tabletop/game"

	"golang.org/x/exp/rand"
)

// Random picks a uniformly random legal move. The sequence of choices is fixed
// by the seed. Not safe for concurrent use.
type Random[P game.Position[P, M], M game.Move] struct {
	generator game.MoveGenerator[P, M]
	oracle    game.Oracle[P]
	rng       *rand.Rand
	settings
}

func NewRandom[P game.Position[P, M], M game.Move](
	generator game.MoveGenerator[P, M],
	oracle game.Oracle[P],
	seed uint64,
	options ...Option,
) *Random[P, M] {
	return &Random[P, M]{
		generator: generator,
		oracle:    oracle,
		rng:       rand.New(rand.NewSource(seed)),
		settings:  newSettings(options),
	}
}

func (s *Random[P, M]) ChooseMove(position P) (M, error) {
	var none M
	if s.oracle.IsTerminal(position) {
		return none, ErrTerminalPosition
	}

	s.metrics.Start("random")
	moves := s.generator.Moves(position)
	if len(moves) == 0 {
		s.metrics.Complete()
		return none, fmt.Errorf("random search: %w (depth 0)", ErrNoLegalMoves)
	}
	s.metrics.AddNode()
	move := moves[s.rng.Intn(len(moves))]
	s.metrics.Complete()

	if s.logger != nil {
		s.logger.Debug().
			Str("strategy", "random").
			Str("move", fmt.Sprint(move)).
			Int("candidates", len(moves)).
			Msg("chose move")
	}
	return move, nil
}

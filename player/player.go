package player

import (
	"fmt"

	"tabletop/game"
	"tabletop/searcher"
)

// Player picks the move for one side of a game.
type Player[P game.Position[P, M], M game.Move] interface {
	PickMove(position P) (M, error)
}

// StrategyPlayer hands every decision to its strategy and keeps no state of
// its own.
type StrategyPlayer[P game.Position[P, M], M game.Move] struct {
	name     string
	strategy searcher.MoveStrategy[P, M]
}

func New[P game.Position[P, M], M game.Move](name string, strategy searcher.MoveStrategy[P, M]) *StrategyPlayer[P, M] {
	return &StrategyPlayer[P, M]{
		name:     name,
		strategy: strategy,
	}
}

func (p *StrategyPlayer[P, M]) PickMove(position P) (M, error) {
	return p.strategy.ChooseMove(position)
}

func (p *StrategyPlayer[P, M]) Name() string {
	return p.name
}

func (p *StrategyPlayer[P, M]) String() string {
	return fmt.Sprintf("player %s", p.name)
}

package searcher

import (
	"fmt"

	"tabletop/game"
)

// treeSearch explores the whole game tree below a position, depth first, with
// no depth limit and no pruning. Leaves are the positions the oracle declares
// terminal; they are scored by the evaluator, whose perspective never changes.
//
// When alternate is false every level maximizes (the Max strategy). When it is
// true the levels alternate between maximizing and minimizing, starting with
// maximizing at the root (the Minimax strategy).
type treeSearch[P game.Position[P, M], M game.Move] struct {
	name      string
	evaluator game.PositionEvaluator[P]
	generator game.MoveGenerator[P, M]
	oracle    game.Oracle[P]
	alternate bool
	settings
}

func (t *treeSearch[P, M]) root(position P) (M, game.Evaluation, error) {
	var none M
	if t.oracle.IsTerminal(position) {
		return none, game.Evaluation{}, ErrTerminalPosition
	}

	t.metrics.Start(t.name)
	move, evaluation, err := t.best(position, true, 0)
	metric := t.metrics.Complete()
	if err != nil {
		return none, game.Evaluation{}, fmt.Errorf("%s search: %w", t.name, err)
	}

	if t.logger != nil {
		t.logger.Debug().
			Str("strategy", t.name).
			Str("move", fmt.Sprint(move)).
			Stringer("evaluation", evaluation).
			Int64("nodes", metric.Nodes).
			Int64("leaves", metric.Leaves).
			Dur("duration", metric.Duration).
			Msg("chose move")
	}
	return move, evaluation, nil
}

// best picks a move at a non-terminal position. The first legal move seeds the
// choice; later moves replace it only on strict improvement, so ties keep the
// earliest move in generator order.
func (t *treeSearch[P, M]) best(position P, maximizing bool, depth int) (M, game.Evaluation, error) {
	var bestMove M
	var bestEvaluation game.Evaluation

	moves := t.generator.Moves(position)
	if len(moves) == 0 {
		return bestMove, bestEvaluation, fmt.Errorf("%w (depth %d)", ErrNoLegalMoves, depth)
	}
	t.metrics.AddNode()

	next := maximizing
	if t.alternate {
		next = !maximizing
	}

	for i, move := range moves {
		evaluation, err := t.line(position.Apply(move), next, depth+1)
		if err != nil {
			return bestMove, bestEvaluation, err
		}

		if i == 0 ||
			(maximizing && evaluation.Greater(bestEvaluation)) ||
			(!maximizing && evaluation.Less(bestEvaluation)) {
			bestMove = move
			bestEvaluation = evaluation
		}
	}
	return bestMove, bestEvaluation, nil
}

// line returns the backed-up evaluation of the line starting at position.
func (t *treeSearch[P, M]) line(position P, maximizing bool, depth int) (game.Evaluation, error) {
	if t.oracle.IsTerminal(position) {
		t.metrics.AddLeaf()
		return t.evaluator.Evaluate(position), nil
	}
	_, evaluation, err := t.best(position, maximizing, depth)
	return evaluation, err
}

// Max picks the move whose line ends in the best evaluation for its own side,
// assuming every later move (including the opponent's) is chosen the same
// way. It ignores how well the opponent could reply, so it is a baseline and
// not a sound adversarial strategy.
type Max[P game.Position[P, M], M game.Move] struct {
	search treeSearch[P, M]
}

func NewMax[P game.Position[P, M], M game.Move](
	evaluator game.PositionEvaluator[P],
	generator game.MoveGenerator[P, M],
	oracle game.Oracle[P],
	options ...Option,
) *Max[P, M] {
	return &Max[P, M]{search: treeSearch[P, M]{
		name:      "max",
		evaluator: evaluator,
		generator: generator,
		oracle:    oracle,
		alternate: false,
		settings:  newSettings(options),
	}}
}

func (s *Max[P, M]) ChooseMove(position P) (M, error) {
	move, _, err := s.search.root(position)
	return move, err
}

// Search returns the chosen move together with the evaluation of its line.
func (s *Max[P, M]) Search(position P) (M, game.Evaluation, error) {
	return s.search.root(position)
}

// Minimax always picks the move that maximizes the worst case for its side,
// assuming the opponent also plays to its own advantage.
type Minimax[P game.Position[P, M], M game.Move] struct {
	search treeSearch[P, M]
}

func NewMinimax[P game.Position[P, M], M game.Move](
	evaluator game.PositionEvaluator[P],
	generator game.MoveGenerator[P, M],
	oracle game.Oracle[P],
	options ...Option,
) *Minimax[P, M] {
	return &Minimax[P, M]{search: treeSearch[P, M]{
		name:      "minimax",
		evaluator: evaluator,
		generator: generator,
		oracle:    oracle,
		alternate: true,
		settings:  newSettings(options),
	}}
}

func (s *Minimax[P, M]) ChooseMove(position P) (M, error) {
	move, _, err := s.search.root(position)
	return move, err
}

// Search returns the chosen move together with its backed-up minimax value.
func (s *Minimax[P, M]) Search(position P) (M, game.Evaluation, error) {
	return s.search.root(position)
}

package game

// Side identifies one of the two players. The first player to move in a fresh
// game is not implied by the value; each rule pack decides who opens.
type Side int

const (
	First  Side = 0
	Second Side = 1
)

// Other returns the opposing side.
func (s Side) Other() Side {
	return 1 - s
}

// Valid reports whether s is one of the two sides.
func (s Side) Valid() bool {
	return s == First || s == Second
}

// Move is a fully self-describing action: who acts and where. Moves are plain
// values and carry no legality check of their own.
type Move interface {
	comparable
}

// Position is an immutable snapshot of a game. Apply must not mutate the
// receiver; it returns an independent successor.
type Position[P any, M any] interface {
	Apply(move M) P
}

// MoveGenerator enumerates the legal moves for the side to move, in the order
// a strategy should try them. It returns an empty slice exactly when the
// position is terminal.
type MoveGenerator[P any, M any] interface {
	Moves(position P) []M
}

// Oracle is the rules authority consulted by the engine and the strategies.
type Oracle[P any] interface {
	// IsTerminal reports whether play should stop at position, including
	// drawn positions with no slots left.
	IsTerminal(position P) bool
	// NextPlayer returns the side to move. ok is false when the next player
	// cannot be determined, which is only expected at terminal positions.
	NextPlayer(position P) (side Side, ok bool)
}

// PositionEvaluator scores a single position from one fixed side's
// perspective without looking ahead.
type PositionEvaluator[P any] interface {
	Evaluate(position P) Evaluation
}

// MoveGeneratorFunc adapts a plain function to a MoveGenerator.
type MoveGeneratorFunc[P any, M any] func(position P) []M

func (f MoveGeneratorFunc[P, M]) Moves(position P) []M {
	return f(position)
}

// EvaluatorFunc adapts a plain function to a PositionEvaluator.
type EvaluatorFunc[P any] func(position P) Evaluation

func (f EvaluatorFunc[P]) Evaluate(position P) Evaluation {
	return f(position)
}

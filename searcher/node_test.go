package searcher

import (
	"tabletop/game"
)

// mockNode is a hand-built game tree. A move is the index of a child.
type mockNode struct {
	children []*mockNode
	terminal bool
	value    game.Evaluation
}

func (n *mockNode) Apply(move int) *mockNode {
	return n.children[move]
}

func leaf(value game.Evaluation) *mockNode {
	return &mockNode{terminal: true, value: value}
}

func branch(children ...*mockNode) *mockNode {
	return &mockNode{children: children}
}

// broken is non-terminal yet has no moves.
func broken() *mockNode {
	return &mockNode{}
}

type mockOracle struct{}

func (mockOracle) IsTerminal(n *mockNode) bool {
	return n.terminal
}

func (mockOracle) NextPlayer(n *mockNode) (game.Side, bool) {
	return game.First, !n.terminal
}

var mockGenerator = game.MoveGeneratorFunc[*mockNode, int](func(n *mockNode) []int {
	moves := make([]int, len(n.children))
	for i := range n.children {
		moves[i] = i
	}
	return moves
})

var mockEvaluator = game.EvaluatorFunc[*mockNode](func(n *mockNode) game.Evaluation {
	return n.value
})

func newMockMax(options ...Option) *Max[*mockNode, int] {
	return NewMax[*mockNode, int](mockEvaluator, mockGenerator, mockOracle{}, options...)
}

func newMockMinimax(options ...Option) *Minimax[*mockNode, int] {
	return NewMinimax[*mockNode, int](mockEvaluator, mockGenerator, mockOracle{}, options...)
}

var (
	_ MoveStrategy[*mockNode, int] = (*Max[*mockNode, int])(nil)
	_ MoveStrategy[*mockNode, int] = (*Minimax[*mockNode, int])(nil)
	_ MoveStrategy[*mockNode, int] = (*Random[*mockNode, int])(nil)
)

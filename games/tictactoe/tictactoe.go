// Package tictactoe is a 3x3 noughts and crosses rule pack for the search
// core. X always opens the game.
package tictactoe

import (
	"fmt"
	"strings"

	"tabletop/game"
)

type Piece uint8

const (
	Empty Piece = iota
	X
	O
)

func (p Piece) String() string {
	switch p {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

// Opponent returns the other piece. Empty has no opponent.
func (p Piece) Opponent() Piece {
	switch p {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// PieceFor returns the piece played by side: the first side plays X.
func PieceFor(side game.Side) Piece {
	if side == game.First {
		return X
	}
	return O
}

// Move places Piece on Cell, counted row by row from the top left (0..8).
type Move struct {
	Cell  int
	Piece Piece
}

func (m Move) String() string {
	return fmt.Sprintf("%s@%d", m.Piece, m.Cell)
}

type Board [9]Piece

// lines are the eight three-in-a-row patterns.
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// HasLine reports whether piece holds any three cells in a row.
func (b Board) HasLine(piece Piece) bool {
	if piece == Empty {
		return false
	}
	for _, line := range lines {
		if b[line[0]] == piece && b[line[1]] == piece && b[line[2]] == piece {
			return true
		}
	}
	return false
}

// Winner returns the piece holding a line, or Empty.
func (b Board) Winner() Piece {
	for _, piece := range []Piece{X, O} {
		if b.HasLine(piece) {
			return piece
		}
	}
	return Empty
}

// IsFull reports whether every cell is occupied (a cat's game when nobody won).
func (b Board) IsFull() bool {
	for _, piece := range b {
		if piece == Empty {
			return false
		}
	}
	return true
}

// ParseBoard reads nine cells from s using X, O and '.' (or '_') for empty.
// Whitespace and the separators '|' and '-' are ignored.
func ParseBoard(s string) (Board, error) {
	var b Board
	i := 0
	for _, r := range s {
		var piece Piece
		switch r {
		case 'X', 'x':
			piece = X
		case 'O', 'o':
			piece = O
		case '.', '_':
			piece = Empty
		case ' ', '\t', '\n', '|', '-':
			continue
		default:
			return Board{}, fmt.Errorf("unexpected cell %q", r)
		}
		if i == len(b) {
			return Board{}, fmt.Errorf("too many cells in %q", s)
		}
		b[i] = piece
		i++
	}
	if i != len(b) {
		return Board{}, fmt.Errorf("expected 9 cells, got %d", i)
	}
	return b, nil
}

// Position is a board plus the side that made the last move.
type Position struct {
	Board Board
	Last  game.Side
}

// NewPosition returns the empty board with X to move.
func NewPosition() Position {
	return Position{Last: game.Second}
}

// Apply places the move's piece and hands the turn over.
func (p Position) Apply(m Move) Position {
	next := p
	next.Board[m.Cell] = m.Piece
	next.Last = p.Last.Other()
	return next
}

func (p Position) String() string {
	var s strings.Builder
	for r := 0; r < 3; r++ {
		if r > 0 {
			s.WriteString("\n-----------\n")
		}
		for c := 0; c < 3; c++ {
			if c > 0 {
				s.WriteString("|")
			}
			s.WriteString(" ")
			s.WriteString(p.Board[r*3+c].String())
			s.WriteString(" ")
		}
	}
	return s.String()
}

type Oracle struct{}

func (Oracle) IsTerminal(p Position) bool {
	return p.Board.Winner() != Empty || p.Board.IsFull()
}

func (o Oracle) NextPlayer(p Position) (game.Side, bool) {
	if o.IsTerminal(p) || !p.Last.Valid() {
		return 0, false
	}
	return p.Last.Other(), true
}

// Generator lists the empty cells in ascending order for the side to move.
type Generator struct{}

func (Generator) Moves(p Position) []Move {
	if (Oracle{}).IsTerminal(p) {
		return nil
	}
	piece := PieceFor(p.Last.Other())
	moves := make([]Move, 0, len(p.Board))
	for cell, occupant := range p.Board {
		if occupant == Empty {
			moves = append(moves, Move{Cell: cell, Piece: piece})
		}
	}
	return moves
}

// Evaluator scores a position for Piece by the lines already on the board.
type Evaluator struct {
	Piece Piece
}

func NewEvaluator(side game.Side) Evaluator {
	return Evaluator{Piece: PieceFor(side)}
}

func (e Evaluator) Evaluate(p Position) game.Evaluation {
	if p.Board.HasLine(e.Piece) {
		return game.Winning()
	}
	if p.Board.HasLine(e.Piece.Opponent()) {
		return game.Losing()
	}
	return game.Estimate(0.0)
}

// Package connectfour is a gravity connection game rule pack: pieces drop to
// the lowest free row of a column and the first side to line up Connect
// pieces wins. Board dimensions are configurable so that small variants stay
// within reach of an exhaustive search. Red always opens.
package connectfour

import (
	"errors"
	"fmt"
	"strings"

	"tabletop/game"
)

type Piece uint8

const (
	Empty Piece = iota
	Red
	Yellow
)

func (p Piece) String() string {
	switch p {
	case Red:
		return "R"
	case Yellow:
		return "Y"
	default:
		return "."
	}
}

func (p Piece) Opponent() Piece {
	switch p {
	case Red:
		return Yellow
	case Yellow:
		return Red
	default:
		return Empty
	}
}

// PieceFor returns the piece played by side: the first side plays Red.
func PieceFor(side game.Side) Piece {
	if side == game.First {
		return Red
	}
	return Yellow
}

// Rules fixes the board size and the winning run length.
type Rules struct {
	Rows    int
	Cols    int
	Connect int
}

// Standard is the classic 6x7 board with four in a row.
var Standard = Rules{Rows: 6, Cols: 7, Connect: 4}

func (r Rules) Validate() error {
	if r.Rows <= 0 || r.Cols <= 0 {
		return fmt.Errorf("board must have positive dimensions, got %dx%d", r.Rows, r.Cols)
	}
	if r.Connect <= 1 {
		return errors.New("connect length must be at least 2")
	}
	if r.Connect > r.Rows && r.Connect > r.Cols {
		return fmt.Errorf("connect length %d does not fit a %dx%d board", r.Connect, r.Rows, r.Cols)
	}
	return nil
}

// Move drops Piece into Column.
type Move struct {
	Column int
	Piece  Piece
}

func (m Move) String() string {
	return fmt.Sprintf("%s@%d", m.Piece, m.Column)
}

// Position is a board plus the side that made the last move. Cells are stored
// row-major with row 0 at the bottom. Apply copies the cells, so positions
// never share state.
type Position struct {
	rules Rules
	cells []Piece
	last  game.Side
}

// NewPosition returns an empty board with Red to move.
func NewPosition(rules Rules) Position {
	return Position{
		rules: rules,
		cells: make([]Piece, rules.Rows*rules.Cols),
		last:  game.Second,
	}
}

// FromRows builds a position from rows listed top to bottom, using R, Y and
// '.' for empty. last is the side that moved most recently.
func FromRows(rules Rules, last game.Side, rows ...string) (Position, error) {
	if len(rows) != rules.Rows {
		return Position{}, fmt.Errorf("expected %d rows, got %d", rules.Rows, len(rows))
	}
	p := NewPosition(rules)
	p.last = last
	for i, row := range rows {
		if len(row) != rules.Cols {
			return Position{}, fmt.Errorf("row %d: expected %d cells, got %d", i, rules.Cols, len(row))
		}
		r := rules.Rows - 1 - i
		for c, ch := range row {
			switch ch {
			case 'R', 'r':
				p.cells[p.index(r, c)] = Red
			case 'Y', 'y':
				p.cells[p.index(r, c)] = Yellow
			case '.':
			default:
				return Position{}, fmt.Errorf("row %d: unexpected cell %q", i, ch)
			}
		}
	}
	return p, nil
}

func (p Position) Rules() Rules {
	return p.rules
}

// Last returns the side that made the most recent move.
func (p Position) Last() game.Side {
	return p.last
}

func (p Position) index(row, col int) int {
	return row*p.rules.Cols + col
}

// At returns the piece at row (0 is the bottom) and col.
func (p Position) At(row, col int) Piece {
	if row < 0 || row >= p.rules.Rows || col < 0 || col >= p.rules.Cols {
		return Empty
	}
	return p.cells[p.index(row, col)]
}

// Height returns the number of pieces in col.
func (p Position) Height(col int) int {
	h := 0
	for h < p.rules.Rows && p.At(h, col) != Empty {
		h++
	}
	return h
}

// Apply drops the move's piece into its column. Dropping into a full or
// missing column is a caller bug and panics.
func (p Position) Apply(m Move) Position {
	if m.Column < 0 || m.Column >= p.rules.Cols {
		panic(fmt.Sprintf("column %d is off the board", m.Column))
	}
	row := p.Height(m.Column)
	if row == p.rules.Rows {
		panic(fmt.Sprintf("column %d is full", m.Column))
	}

	cells := make([]Piece, len(p.cells))
	copy(cells, p.cells)
	next := Position{rules: p.rules, cells: cells, last: p.last.Other()}
	next.cells[next.index(row, m.Column)] = m.Piece
	return next
}

// directions scanned for runs: right, up, up-right, up-left.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// HasLine reports whether piece holds Connect cells in a row anywhere.
func (p Position) HasLine(piece Piece) bool {
	if piece == Empty {
		return false
	}
	for r := 0; r < p.rules.Rows; r++ {
		for c := 0; c < p.rules.Cols; c++ {
			if p.At(r, c) != piece {
				continue
			}
			for _, d := range directions {
				if p.runLength(r, c, d, piece) >= p.rules.Connect {
					return true
				}
			}
		}
	}
	return false
}

func (p Position) runLength(row, col int, d [2]int, piece Piece) int {
	n := 0
	for p.At(row, col) == piece {
		n++
		row += d[0]
		col += d[1]
	}
	return n
}

func (p Position) Winner() Piece {
	for _, piece := range []Piece{Red, Yellow} {
		if p.HasLine(piece) {
			return piece
		}
	}
	return Empty
}

func (p Position) IsFull() bool {
	for c := 0; c < p.rules.Cols; c++ {
		if p.Height(c) < p.rules.Rows {
			return false
		}
	}
	return true
}

func (p Position) String() string {
	var s strings.Builder
	for r := p.rules.Rows - 1; r >= 0; r-- {
		for c := 0; c < p.rules.Cols; c++ {
			s.WriteString(p.At(r, c).String())
		}
		if r > 0 {
			s.WriteByte('\n')
		}
	}
	return s.String()
}

type Oracle struct{}

func (Oracle) IsTerminal(p Position) bool {
	return p.Winner() != Empty || p.IsFull()
}

func (o Oracle) NextPlayer(p Position) (game.Side, bool) {
	if o.IsTerminal(p) || !p.last.Valid() {
		return 0, false
	}
	return p.last.Other(), true
}

// Generator lists the open columns from left to right.
type Generator struct{}

func (Generator) Moves(p Position) []Move {
	if (Oracle{}).IsTerminal(p) {
		return nil
	}
	piece := PieceFor(p.last.Other())
	moves := make([]Move, 0, p.rules.Cols)
	for c := 0; c < p.rules.Cols; c++ {
		if p.Height(c) < p.rules.Rows {
			moves = append(moves, Move{Column: c, Piece: piece})
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
	if p.HasLine(e.Piece) {
		return game.Winning()
	}
	if p.HasLine(e.Piece.Opponent()) {
		return game.Losing()
	}
	return game.Estimate(0.0)
}

package tictactoe

import (
	"testing"

	"tabletop/game"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) Board {
	t.Helper()
	b, err := ParseBoard(s)
	require.NoError(t, err)
	return b
}

func TestApply(t *testing.T) {
	t.Run("placing a piece on an empty board", func(t *testing.T) {
		p := NewPosition()

		next := p.Apply(Move{Cell: 0, Piece: X})

		require.Equal(t, X, next.Board[0], "Cell 0 should hold X")
		for i := 1; i < 9; i++ {
			require.Equal(t, Empty, next.Board[i], "Cell %d should stay empty", i)
		}
		require.Equal(t, game.First, next.Last, "X's side should be recorded as last to move")
	})

	t.Run("receiver is never mutated", func(t *testing.T) {
		p := NewPosition()
		before := p

		_ = p.Apply(Move{Cell: 4, Piece: X})

		require.Equal(t, before, p, "Apply should return a new position")
	})
}

func TestOracleIsTerminal(t *testing.T) {
	oracle := Oracle{}

	require.False(t, oracle.IsTerminal(NewPosition()), "Empty board is not terminal")

	terminal := map[string]string{
		"top row":       "XXX......",
		"middle row":    "...XXX...",
		"bottom row":    "......XXX",
		"left column":   "X..X..X..",
		"middle column": ".X..X..X.",
		"right column":  "..X..X..X",
		"main diagonal": "X...X...X",
		"anti diagonal": "..X.X.X..",
		"O wins too":    "OOOXX.X..",
		"cat's game":    "XOXXOOOXO",
	}
	for name, board := range terminal {
		t.Run(name, func(t *testing.T) {
			p := Position{Board: mustParse(t, board), Last: game.First}
			require.True(t, oracle.IsTerminal(p))
		})
	}

	t.Run("two in a row is not terminal", func(t *testing.T) {
		p := Position{Board: mustParse(t, "XX.OO...."), Last: game.Second}
		require.False(t, oracle.IsTerminal(p))
	})
}

func TestOracleNextPlayer(t *testing.T) {
	oracle := Oracle{}

	t.Run("X opens", func(t *testing.T) {
		side, ok := oracle.NextPlayer(NewPosition())
		require.True(t, ok)
		require.Equal(t, game.First, side)
	})

	t.Run("indeterminate at terminal positions", func(t *testing.T) {
		p := Position{Board: mustParse(t, "XXXOO...."), Last: game.First}
		_, ok := oracle.NextPlayer(p)
		require.False(t, ok)
	})
}

func TestGenerator(t *testing.T) {
	t.Run("moves are the empty cells in order for the side to move", func(t *testing.T) {
		p := Position{Board: mustParse(t, "X...O...."), Last: game.Second}

		moves := Generator{}.Moves(p)

		require.Equal(t, []Move{
			{Cell: 1, Piece: X}, {Cell: 2, Piece: X}, {Cell: 3, Piece: X},
			{Cell: 5, Piece: X}, {Cell: 6, Piece: X}, {Cell: 7, Piece: X}, {Cell: 8, Piece: X},
		}, moves)
	})

	t.Run("no moves once someone has won", func(t *testing.T) {
		p := Position{Board: mustParse(t, "XXXOO...."), Last: game.First}
		require.Empty(t, Generator{}.Moves(p))
	})
}

// Walks every position reachable from the empty board.
func TestRulesConsistency(t *testing.T) {
	oracle := Oracle{}
	generator := Generator{}
	seen := map[Position]bool{}

	var walk func(p Position)
	walk = func(p Position) {
		if seen[p] {
			return
		}
		seen[p] = true

		moves := generator.Moves(p)
		require.Equal(t, oracle.IsTerminal(p), len(moves) == 0,
			"Generator and oracle should agree on terminality of\n%v", p)

		if oracle.IsTerminal(p) {
			return
		}
		mover, ok := oracle.NextPlayer(p)
		require.True(t, ok, "Non-terminal position should have a next player")
		for _, move := range moves {
			require.Equal(t, PieceFor(mover), move.Piece, "Moves should be for the side to move")
			child := p.Apply(move)
			if next, ok := oracle.NextPlayer(child); ok {
				require.Equal(t, mover.Other(), next, "Turn should alternate")
			}
			walk(child)
		}
	}
	walk(NewPosition())

	require.Equal(t, 5478, len(seen), "Should visit every legal tic-tac-toe position")
}

func TestEvaluator(t *testing.T) {
	p := Position{Board: mustParse(t, "XXXOO...."), Last: game.First}

	require.True(t, NewEvaluator(game.First).Evaluate(p).IsWinning(), "X holds a line")
	require.True(t, NewEvaluator(game.Second).Evaluate(p).IsLosing(), "O faces X's line")

	open := Position{Board: mustParse(t, "X...O...."), Last: game.Second}
	require.True(t, NewEvaluator(game.First).Evaluate(open).Equal(game.Estimate(0)),
		"Undecided positions are neutral")
}

func TestParseBoard(t *testing.T) {
	t.Run("separators are ignored", func(t *testing.T) {
		b, err := ParseBoard("X|O|.\n.|.|X\no|o|o")
		require.NoError(t, err)
		require.Equal(t, Board{X, O, Empty, Empty, Empty, X, O, O, O}, b)
	})

	t.Run("unknown characters", func(t *testing.T) {
		_, err := ParseBoard("X|O|. / ..X ooo")
		require.Error(t, err, "Slash is not a valid cell")
	})

	t.Run("wrong cell counts", func(t *testing.T) {
		_, err := ParseBoard("XO")
		require.Error(t, err)
		_, err = ParseBoard("XOXOXOXOXO")
		require.Error(t, err)
	})
}

func TestPositionString(t *testing.T) {
	p := Position{Board: mustParse(t, "XO.......")}

	require.Equal(t, " X | O |   \n-----------\n   |   |   \n-----------\n   |   |   ", p.String())
}

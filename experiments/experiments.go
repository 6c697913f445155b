package experiments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tabletop/engine"
	"tabletop/game"
	"tabletop/metrics"
	"tabletop/player"
	"tabletop/searcher"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// RulePack bundles what the runner needs to play one game.
type RulePack[P game.Position[P, M], M game.Move] struct {
	Name      string
	New       func() P
	Generator game.MoveGenerator[P, M]
	Oracle    game.Oracle[P]
	Evaluator func(side game.Side) game.PositionEvaluator[P]
}

// Contender is one strategy configuration taking part in an experiment.
type Contender struct {
	Name     string `yaml:"name"`
	Strategy string `yaml:"strategy"`
	Seed     uint64 `yaml:"seed"`
}

type Matchup struct {
	Name       string
	Contenders [2]Contender
}

// NewStrategy builds the named strategy playing side.
func NewStrategy[P game.Position[P, M], M game.Move](
	pack RulePack[P, M],
	strategy string,
	side game.Side,
	seed uint64,
	options ...searcher.Option,
) (searcher.MoveStrategy[P, M], error) {
	switch strategy {
	case "max":
		return searcher.NewMax[P, M](pack.Evaluator(side), pack.Generator, pack.Oracle, options...), nil
	case "minimax":
		return searcher.NewMinimax[P, M](pack.Evaluator(side), pack.Generator, pack.Oracle, options...), nil
	case "random":
		return searcher.NewRandom[P, M](pack.Generator, pack.Oracle, seed, options...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

type Option func(s *settings)

type settings struct {
	games    int
	parallel int
	maxPlies int
	logger   zerolog.Logger
}

// WithGames sets the number of games per matchup.
func WithGames(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.games = n
		}
	}
}

// WithParallel bounds the number of games played at once.
func WithParallel(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.parallel = n
		}
	}
}

func WithMaxPlies(n int) Option {
	return func(s *settings) {
		s.maxPlies = n
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// Runner plays every matchup a number of times and tallies the results.
type Runner[P game.Position[P, M], M game.Move] struct {
	pack RulePack[P, M]
	settings
}

func NewRunner[P game.Position[P, M], M game.Move](pack RulePack[P, M], options ...Option) *Runner[P, M] {
	s := settings{ // Default values
		games:    10,
		parallel: 1,
		logger:   log.Logger,
	}
	for _, option := range options {
		option(&s)
	}
	return &Runner[P, M]{pack: pack, settings: s}
}

// Run plays all games, at most parallel at a time, and returns the summary.
// Contenders swap sides every game so each one opens half of the games.
// The first failing game cancels the games not yet started.
func (r *Runner[P, M]) Run(ctx context.Context, matchups []Matchup) (*Summary, error) {
	for _, m := range matchups {
		if m.Contenders[0].Name == m.Contenders[1].Name {
			return nil, fmt.Errorf("matchup %s: contenders share the name %q", m.Name, m.Contenders[0].Name)
		}
	}

	r.logger.Info().Msgf("starting %s experiment with %d matchups of %d games...", r.pack.Name, len(matchups), r.games)

	standings := xsync.NewMapOf[string, Standing]()
	searches := xsync.NewMapOf[string, SearchTotals]()
	results := make([]GameResult, len(matchups)*r.games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallel)
	for mi, matchup := range matchups {
		for i := 0; i < r.games; i++ {
			index := mi*r.games + i
			// Swap sides on odd games
			seating := matchup.Contenders
			if i%2 == 1 {
				seating[0], seating[1] = seating[1], seating[0]
			}

			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				result, err := r.playGame(matchup.Name, seating, uint64(i))
				if err != nil {
					return fmt.Errorf("matchup %s game %d: %w", matchup.Name, i+1, err)
				}
				results[index] = result
				record(standings, searches, seating, result)
				r.logger.Info().Msgf("completed matchup %s game %d of %d with winner: %s",
					matchup.Name, i+1, r.games, result.WinnerName())
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Info().Msgf("completed %s experiment", r.pack.Name)
	return newSummary(r.pack.Name, results, standings, searches), nil
}

// playGame plays one game between the two seated contenders, the first one
// on side 0. offset varies random seeds between games of a matchup.
func (r *Runner[P, M]) playGame(matchup string, seating [2]Contender, offset uint64) (GameResult, error) {
	var moves []metrics.MoveMetric
	var players [2]player.Player[P, M]
	for s, c := range seating {
		side := game.Side(s)
		collector := metrics.NewCollector()
		strategy, err := NewStrategy[P, M](r.pack, c.Strategy, side, c.Seed+offset, searcher.WithMetrics(collector))
		if err != nil {
			return GameResult{}, err
		}
		players[s] = &meteredPlayer[P, M]{
			Player:    player.New[P, M](c.Name, strategy),
			side:      side,
			collector: collector,
			moves:     &moves,
		}
	}

	e := engine.New[P, M](r.pack.New(), players[0], players[1], r.pack.Oracle,
		engine.WithMaxPlies(r.maxPlies), engine.WithLogger(r.logger))

	start := time.Now()
	status, err := e.Run()
	if err != nil {
		return GameResult{}, err
	}
	end := time.Now()

	winner := -1
	if status == engine.Terminal {
		switch evaluation := r.pack.Evaluator(game.First).Evaluate(e.Position()); {
		case evaluation.IsWinning():
			winner = int(game.First)
		case evaluation.IsLosing():
			winner = int(game.Second)
		}
	}

	return GameResult{
		ID:      uuid.New(),
		Matchup: matchup,
		Seating: [2]string{seating[0].Name, seating[1].Name},
		Status:  status,
		GameMetric: metrics.GameMetric{
			StartingSide: int(game.First),
			Winner:       winner,
			StartTime:    start,
			EndTime:      end,
			Duration:     end.Sub(start),
			TotalMoves:   len(e.Moves()),
		},
		Moves: moves,
	}, nil
}

// meteredPlayer records the search metrics of every move it picks.
type meteredPlayer[P game.Position[P, M], M game.Move] struct {
	player.Player[P, M]
	side      game.Side
	collector metrics.Collector
	moves     *[]metrics.MoveMetric
}

func (p *meteredPlayer[P, M]) PickMove(position P) (M, error) {
	move, err := p.Player.PickMove(position)
	if err != nil {
		return move, err
	}
	*p.moves = append(*p.moves, metrics.MoveMetric{
		Step:         len(*p.moves) + 1,
		Side:         int(p.side),
		SearchMetric: p.collector.Last(),
	})
	return move, nil
}

func record(standings *xsync.MapOf[string, Standing], searches *xsync.MapOf[string, SearchTotals], seating [2]Contender, result GameResult) {
	for s, c := range seating {
		standings.Compute(c.Name, func(old Standing, _ bool) (Standing, bool) {
			old.Games++
			switch {
			case result.Status != engine.Terminal:
				old.Unfinished++
			case result.Winner < 0:
				old.Draws++
			case result.Winner == s:
				old.Wins++
			default:
				old.Losses++
			}
			return old, false
		})
	}
	for _, m := range result.Moves {
		name := seating[m.Side].Name
		searches.Compute(name, func(old SearchTotals, _ bool) (SearchTotals, bool) {
			old.Moves++
			old.Nodes += m.Nodes
			old.Leaves += m.Leaves
			old.Duration += m.Duration
			return old, false
		})
	}
}

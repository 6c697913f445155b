package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"tabletop/config"
	"tabletop/engine"
	"tabletop/experiments"
	"tabletop/game"
	"tabletop/games/connectfour"
	"tabletop/games/tictactoe"
	"tabletop/player"
	"tabletop/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

var (
	configPath     string
	mode           = "play"
	gameName       string
	logLevel       string
	firstStrategy  string
	secondStrategy string
)

func init() {
	pflag.StringVarP(&configPath, "config", "c", configPath, "path to a config file")
	pflag.StringVarP(&mode, "mode", "m", mode, "play a single game or run an experiment (play|experiment)")
	pflag.StringVarP(&gameName, "game", "g", gameName, "game to play (tictactoe|connectfour)")
	pflag.StringVar(&logLevel, "log-level", logLevel, "log level (debug|info|warn|error)")
	pflag.StringVar(&firstStrategy, "first", firstStrategy, "strategy of the opening player (max|minimax|random)")
	pflag.StringVar(&secondStrategy, "second", secondStrategy, "strategy of the other player (max|minimax|random)")
	pflag.Parse()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	log.Logger = log.Logger.Level(cfg.Level())

	var code int
	switch cfg.Game {
	case config.GameTicTacToe:
		code = start(ctx, cfg, ticTacToePack())
	case config.GameConnectFour:
		code = start(ctx, cfg, connectFourPack(cfg.Rules()))
	}
	os.Exit(code)
}

// loadConfig reads the config and applies the command line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if gameName != "" {
		cfg.Game = gameName
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if firstStrategy != "" {
		cfg.Players[0] = config.PlayerConfig{Name: firstStrategy + "-0", Strategy: firstStrategy, Seed: cfg.Players[0].Seed}
	}
	if secondStrategy != "" {
		cfg.Players[1] = config.PlayerConfig{Name: secondStrategy + "-1", Strategy: secondStrategy, Seed: cfg.Players[1].Seed}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ticTacToePack() experiments.RulePack[tictactoe.Position, tictactoe.Move] {
	return experiments.RulePack[tictactoe.Position, tictactoe.Move]{
		Name:      config.GameTicTacToe,
		New:       tictactoe.NewPosition,
		Generator: tictactoe.Generator{},
		Oracle:    tictactoe.Oracle{},
		Evaluator: func(side game.Side) game.PositionEvaluator[tictactoe.Position] {
			return tictactoe.NewEvaluator(side)
		},
	}
}

func connectFourPack(rules connectfour.Rules) experiments.RulePack[connectfour.Position, connectfour.Move] {
	return experiments.RulePack[connectfour.Position, connectfour.Move]{
		Name:      config.GameConnectFour,
		New:       func() connectfour.Position { return connectfour.NewPosition(rules) },
		Generator: connectfour.Generator{},
		Oracle:    connectfour.Oracle{},
		Evaluator: func(side game.Side) game.PositionEvaluator[connectfour.Position] {
			return connectfour.NewEvaluator(side)
		},
	}
}

func start[P game.Position[P, M], M game.Move](ctx context.Context, cfg *config.Config, pack experiments.RulePack[P, M]) int {
	var err error
	switch mode {
	case "play":
		err = play(cfg, pack)
	case "experiment":
		err = experiment(ctx, cfg, pack)
	default:
		err = fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		log.Error().Err(err).Msgf("%s failed", mode)
		return 1
	}
	return 0
}

func play[P game.Position[P, M], M game.Move](cfg *config.Config, pack experiments.RulePack[P, M]) error {
	var players [2]player.Player[P, M]
	for s, pc := range cfg.Players {
		strategy, err := experiments.NewStrategy[P, M](pack, pc.Strategy, game.Side(s), pc.Seed,
			searcher.WithLogger(log.Logger))
		if err != nil {
			return err
		}
		players[s] = player.New[P, M](pc.Name, strategy)
	}

	e := engine.New[P, M](pack.New(), players[0], players[1], pack.Oracle, engine.WithMaxPlies(cfg.MaxPlies))
	status, err := e.Run()
	if err != nil {
		return err
	}

	fmt.Println(e.Position())

	result := "draw"
	switch evaluation := pack.Evaluator(game.First).Evaluate(e.Position()); {
	case status != engine.Terminal:
		result = status.String()
	case evaluation.IsWinning():
		result = cfg.Players[0].Name + " wins"
	case evaluation.IsLosing():
		result = cfg.Players[1].Name + " wins"
	}
	log.Info().Msgf("%s after %d plies", result, len(e.Moves()))
	return nil
}

func experiment[P game.Position[P, M], M game.Move](ctx context.Context, cfg *config.Config, pack experiments.RulePack[P, M]) error {
	var matchups []experiments.Matchup
	for _, m := range cfg.Matchups() {
		matchup := experiments.Matchup{Name: m.Name}
		for s, pc := range m.Players {
			matchup.Contenders[s] = experiments.Contender{Name: pc.Name, Strategy: pc.Strategy, Seed: pc.Seed}
		}
		matchups = append(matchups, matchup)
	}

	runner := experiments.NewRunner[P, M](pack,
		experiments.WithGames(cfg.Experiment.Games),
		experiments.WithParallel(cfg.Experiment.Parallel),
		experiments.WithMaxPlies(cfg.MaxPlies))
	summary, err := runner.Run(ctx, matchups)
	if err != nil {
		return err
	}
	return summary.WriteYAML(os.Stdout)
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"tabletop/games/connectfour"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	GameTicTacToe   = "tictactoe"
	GameConnectFour = "connectfour"

	StrategyMax     = "max"
	StrategyMinimax = "minimax"
	StrategyRandom  = "random"
)

type PlayerConfig struct {
	Name     string `mapstructure:"name"`
	Strategy string `mapstructure:"strategy"`
	Seed     uint64 `mapstructure:"seed"`
}

// Board sizes a connect four game. Exhaustive search is only practical on
// small boards.
type BoardConfig struct {
	Rows    int `mapstructure:"rows"`
	Cols    int `mapstructure:"cols"`
	Connect int `mapstructure:"connect"`
}

type MatchupConfig struct {
	Name    string         `mapstructure:"name"`
	Players []PlayerConfig `mapstructure:"players"`
}

type ExperimentConfig struct {
	Games    int             `mapstructure:"games"` // Per matchup
	Parallel int             `mapstructure:"parallel"`
	Matchups []MatchupConfig `mapstructure:"matchups"`
}

type Config struct {
	Game       string           `mapstructure:"game"`
	Board      BoardConfig      `mapstructure:"board"`
	Players    []PlayerConfig   `mapstructure:"players"`
	MaxPlies   int              `mapstructure:"max_plies"`
	LogLevel   string           `mapstructure:"log_level"`
	Experiment ExperimentConfig `mapstructure:"experiment"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game", GameTicTacToe)
	v.SetDefault("board.rows", 4)
	v.SetDefault("board.cols", 4)
	v.SetDefault("board.connect", 3)
	v.SetDefault("players", []map[string]any{
		{"name": "minimax-x", "strategy": StrategyMinimax, "seed": 1},
		{"name": "minimax-o", "strategy": StrategyMinimax, "seed": 2},
	})
	v.SetDefault("max_plies", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("experiment.games", 10)
	v.SetDefault("experiment.parallel", 8)
	v.SetDefault("experiment.matchups", []map[string]any{})
}

// Load reads the config file at path, if any, on top of the defaults.
// Scalar settings can be overridden with TABLETOP_ environment variables,
// e.g. TABLETOP_BOARD_ROWS.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TABLETOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.fillNames()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) fillNames() {
	fill := func(players []PlayerConfig) {
		for i := range players {
			if players[i].Name == "" {
				players[i].Name = fmt.Sprintf("%s-%d", players[i].Strategy, i)
			}
		}
	}
	fill(c.Players)
	for i := range c.Experiment.Matchups {
		fill(c.Experiment.Matchups[i].Players)
		if c.Experiment.Matchups[i].Name == "" {
			c.Experiment.Matchups[i].Name = fmt.Sprintf("matchup-%d", i)
		}
	}
}

func (c *Config) Validate() error {
	switch c.Game {
	case GameTicTacToe:
	case GameConnectFour:
		if err := c.Rules().Validate(); err != nil {
			return fmt.Errorf("invalid board: %w", err)
		}
	default:
		return fmt.Errorf("unknown game %q", c.Game)
	}

	if err := validatePair(c.Players); err != nil {
		return fmt.Errorf("players: %w", err)
	}
	for _, m := range c.Experiment.Matchups {
		if err := validatePair(m.Players); err != nil {
			return fmt.Errorf("matchup %s: %w", m.Name, err)
		}
	}

	if c.MaxPlies < 0 {
		return errors.New("max_plies must not be negative")
	}
	if c.Experiment.Games <= 0 {
		return errors.New("experiment.games must be positive")
	}
	if c.Experiment.Parallel <= 0 {
		return errors.New("experiment.parallel must be positive")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

func validatePair(players []PlayerConfig) error {
	if len(players) != 2 {
		return fmt.Errorf("expected 2 players, got %d", len(players))
	}
	if players[0].Name == players[1].Name {
		return fmt.Errorf("player names must differ, both are %q", players[0].Name)
	}
	for _, p := range players {
		switch p.Strategy {
		case StrategyMax, StrategyMinimax, StrategyRandom:
		default:
			return fmt.Errorf("player %s: unknown strategy %q", p.Name, p.Strategy)
		}
	}
	return nil
}

// Rules returns the connect four board described by the config.
func (c *Config) Rules() connectfour.Rules {
	return connectfour.Rules{Rows: c.Board.Rows, Cols: c.Board.Cols, Connect: c.Board.Connect}
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Matchups returns the configured matchups, or the two players as the only
// matchup when none are listed.
func (c *Config) Matchups() []MatchupConfig {
	if len(c.Experiment.Matchups) > 0 {
		return c.Experiment.Matchups
	}
	return []MatchupConfig{{Name: "players", Players: c.Players}}
}

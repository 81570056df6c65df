package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"

	"othello_go/internal/game"
	"othello_go/internal/nnue"
)

var (
	ErrUnknownEvaluator = errors.New("unknown evaluator")
	ErrBadDepth         = errors.New("depth bounds must satisfy 1 <= min <= base <= max")
)

type Config struct {
	BaseDepth        int    `mapstructure:"SEARCH_BASE_DEPTH"`
	MinDepth         int    `mapstructure:"SEARCH_MIN_DEPTH"`
	MaxDepth         int    `mapstructure:"SEARCH_MAX_DEPTH"`
	ParallelRoot     bool   `mapstructure:"SEARCH_PARALLEL_ROOT"`
	ExactTermination bool   `mapstructure:"SEARCH_EXACT_TERMINATION"`
	PressureMs       int    `mapstructure:"SEARCH_PRESSURE_MS"`
	RelaxedMs        int    `mapstructure:"SEARCH_RELAXED_MS"`
	Evaluator        string `mapstructure:"EVALUATOR"`
	NetPath          string `mapstructure:"NNUE_PATH"`
	BookPath         string `mapstructure:"BOOK_PATH"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
}

func setDefaults(v *viper.Viper) {
	d := game.DefaultSearchConfig()
	v.SetDefault("SEARCH_BASE_DEPTH", d.BaseDepth)
	v.SetDefault("SEARCH_MIN_DEPTH", d.MinDepth)
	v.SetDefault("SEARCH_MAX_DEPTH", d.MaxDepth)
	v.SetDefault("SEARCH_PARALLEL_ROOT", d.Parallel)
	v.SetDefault("SEARCH_EXACT_TERMINATION", d.ExactTermination)
	v.SetDefault("SEARCH_PRESSURE_MS", d.PressureMs)
	v.SetDefault("SEARCH_RELAXED_MS", d.RelaxedMs)
	v.SetDefault("EVALUATOR", "weighted")
	v.SetDefault("NNUE_PATH", "")
	v.SetDefault("BOOK_PATH", "")
	v.SetDefault("LOG_LEVEL", "info")
}

// Setup reads cfgPath (optional) on top of the defaults. Environment
// variables prefixed with OTHELLO_ override both.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("OTHELLO")
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		err := v.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		if err != nil && !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if c.MinDepth < 1 || c.MinDepth > c.BaseDepth || c.BaseDepth > c.MaxDepth {
		return fmt.Errorf("%w: got %d/%d/%d", ErrBadDepth, c.MinDepth, c.BaseDepth, c.MaxDepth)
	}
	return nil
}

// Search converts the search keys.
func (c Config) Search() game.SearchConfig {
	return game.SearchConfig{
		BaseDepth:        c.BaseDepth,
		MinDepth:         c.MinDepth,
		MaxDepth:         c.MaxDepth,
		PressureMs:       c.PressureMs,
		RelaxedMs:        c.RelaxedMs,
		Parallel:         c.ParallelRoot,
		ExactTermination: c.ExactTermination,
	}
}

// NewEvaluator builds the evaluator named by EVALUATOR.
func (c Config) NewEvaluator() (game.Evaluator, error) {
	switch c.Evaluator {
	case "", "weighted":
		return game.DefaultEvaluator(), nil
	case "frontier":
		return game.NewFrontierEvaluator(game.DefaultPositionTable), nil
	case "discs":
		return game.DiscEvaluator{}, nil
	case "nnue":
		net, err := nnue.LoadFile(c.NetPath)
		if err != nil {
			return nil, err
		}
		return nnue.NewEvaluator(net)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluator, c.Evaluator)
}

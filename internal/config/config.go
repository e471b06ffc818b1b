// Package config loads the experiment configuration from an optional YAML
// file, IMBALANCE_* environment variables and built-in defaults, in that
// order of precedence.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/skylearn/imbalance/pkg/errors"
)

type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Split    SplitConfig    `mapstructure:"split"`
	Sampling SamplingConfig `mapstructure:"sampling"`
	Training TrainingConfig `mapstructure:"training"`
	LogLevel string         `mapstructure:"log_level"`
}

type DataConfig struct {
	Path        string `mapstructure:"path"`
	LabelColumn string `mapstructure:"label_column"`
	Delimiter   string `mapstructure:"delimiter"`
}

type SplitConfig struct {
	TestSize float64 `mapstructure:"test_size"`
	Seed     int64   `mapstructure:"seed"`
}

type SamplingConfig struct {
	Strategies     []string `mapstructure:"strategies"`
	SMOTENeighbors int      `mapstructure:"smote_neighbors"`
	ENNNeighbors   int      `mapstructure:"enn_neighbors"`
}

type TrainingConfig struct {
	MaxIter int     `mapstructure:"max_iter"`
	Tol     float64 `mapstructure:"tol"`
	C       float64 `mapstructure:"c"`
}

// DefaultStrategies is the strategy comparison run when none is configured.
var DefaultStrategies = []string{
	"baseline",
	"class_weight",
	"undersample",
	"oversample",
	"smote",
	"smoteenn",
}

// Load reads the configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data.label_column", "DEP_DEL15")
	v.SetDefault("data.delimiter", ",")
	v.SetDefault("split.test_size", 0.2)
	v.SetDefault("split.seed", 42)
	v.SetDefault("sampling.strategies", DefaultStrategies)
	v.SetDefault("sampling.smote_neighbors", 5)
	v.SetDefault("sampling.enn_neighbors", 3)
	v.SetDefault("training.max_iter", 1000)
	v.SetDefault("training.tol", 1e-4)
	v.SetDefault("training.c", 1.0)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("IMBALANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the value ranges a run depends on.
func (c *Config) Validate() error {
	if c.Split.TestSize <= 0 || c.Split.TestSize >= 1 {
		return errors.NewValueError("config.Validate", "split.test_size must be in (0, 1)")
	}
	if c.Sampling.SMOTENeighbors <= 0 {
		return errors.NewValueError("config.Validate", "sampling.smote_neighbors must be positive")
	}
	if c.Sampling.ENNNeighbors <= 0 {
		return errors.NewValueError("config.Validate", "sampling.enn_neighbors must be positive")
	}
	if c.Training.MaxIter <= 0 {
		return errors.NewValueError("config.Validate", "training.max_iter must be positive")
	}
	if c.Training.Tol <= 0 {
		return errors.NewValueError("config.Validate", "training.tol must be positive")
	}
	if c.Training.C <= 0 {
		return errors.NewValueError("config.Validate", "training.c must be positive")
	}
	if len(c.Sampling.Strategies) == 0 {
		return errors.NewValueError("config.Validate", "sampling.strategies must not be empty")
	}
	return nil
}

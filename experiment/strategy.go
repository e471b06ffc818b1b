// Package experiment runs the strategy comparison: one training-set
// treatment per strategy, one logistic regression per treated training set,
// every model evaluated against the same untouched test partition.
package experiment

import (
	"github.com/skylearn/imbalance/core/model"
	"github.com/skylearn/imbalance/internal/config"
	"github.com/skylearn/imbalance/pkg/errors"
	"github.com/skylearn/imbalance/resample"
)

// Strategy names one training-set treatment.
type Strategy string

const (
	// StrategyBaseline trains on the imbalanced data as-is.
	StrategyBaseline Strategy = "baseline"
	// StrategyClassWeight trains on the data as-is with balanced loss
	// weights instead of resampling.
	StrategyClassWeight Strategy = "class_weight"
	// StrategyUndersample randomly drops majority rows.
	StrategyUndersample Strategy = "undersample"
	// StrategyOversample randomly duplicates minority rows.
	StrategyOversample Strategy = "oversample"
	// StrategySMOTE synthesizes minority rows by interpolation.
	StrategySMOTE Strategy = "smote"
	// StrategySMOTEENN runs SMOTE then edited-nearest-neighbour cleaning.
	StrategySMOTEENN Strategy = "smoteenn"
)

// sampler returns the resampling step of the strategy, or nil for the
// strategies that train on the original rows.
func (s Strategy) sampler(cfg *config.Config) (model.Sampler, error) {
	seed := cfg.Split.Seed
	switch s {
	case StrategyBaseline, StrategyClassWeight:
		return nil, nil
	case StrategyUndersample:
		return resample.NewRandomUnderSampler(resample.WithUnderSeed(seed)), nil
	case StrategyOversample:
		return resample.NewRandomOverSampler(resample.WithOverSeed(seed)), nil
	case StrategySMOTE:
		return resample.NewSMOTE(
			resample.WithSMOTESeed(seed),
			resample.WithSMOTENeighbors(cfg.Sampling.SMOTENeighbors),
		), nil
	case StrategySMOTEENN:
		return resample.NewSMOTEENN(
			resample.WithSMOTEENNSamplers(
				resample.NewSMOTE(
					resample.WithSMOTESeed(seed),
					resample.WithSMOTENeighbors(cfg.Sampling.SMOTENeighbors),
				),
				resample.NewEditedNearestNeighbours(
					resample.WithENNNeighbors(cfg.Sampling.ENNNeighbors),
				),
			),
		), nil
	default:
		return nil, errors.NewValueError("Strategy.sampler", "unknown strategy "+string(s))
	}
}

// Strategies parses the configured strategy names.
func Strategies(names []string) ([]Strategy, error) {
	out := make([]Strategy, 0, len(names))
	for _, name := range names {
		s := Strategy(name)
		switch s {
		case StrategyBaseline, StrategyClassWeight, StrategyUndersample,
			StrategyOversample, StrategySMOTE, StrategySMOTEENN:
			out = append(out, s)
		default:
			return nil, errors.NewValueError("Strategies", "unknown strategy "+name)
		}
	}
	return out, nil
}

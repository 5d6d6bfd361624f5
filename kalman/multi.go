package kalman

import (
	"fmt"

	filter "github.com/statekit/go-filter"
	"gonum.org/v1/gonum/mat"
)

// PredictorFactory builds a predictor for a context key.
type PredictorFactory[K comparable] func(key K) (*Predictor, error)

// UpdaterFactory builds an updater for a context key.
type UpdaterFactory[K comparable] func(key K) (*Updater, error)

// MultiPredictor dispatches predictions to per-context predictors
// sharing a single estimate. A sub-predictor is built lazily by the
// factory on first use of its key and memoized: the same key always
// dispatches to the same sub-predictor instance afterwards, preserving
// any state it accumulates across calls.
//
// Key equality follows Go map semantics. Use a pointer key type when
// two equal-valued contexts must stay distinct.
//
// MultiPredictor mutates its context map on every call with a fresh
// key: it is not safe for concurrent use and must be confined to a
// single goroutine or synchronized externally.
type MultiPredictor[K comparable] struct {
	// factory builds sub-predictors on first use of a key
	factory PredictorFactory[K]
	// predictors maps context keys to memoized sub-predictors
	predictors map[K]*Predictor
}

// NewMultiPredictor creates a multi-model predictor dispatching to
// sub-predictors built by factory. It returns error if factory is nil.
func NewMultiPredictor[K comparable](factory PredictorFactory[K]) (*MultiPredictor[K], error) {
	if factory == nil {
		return nil, fmt.Errorf("predictor factory must be defined")
	}

	return &MultiPredictor[K]{
		factory:    factory,
		predictors: make(map[K]*Predictor),
	}, nil
}

// Predict propagates estimate est under control input u using the
// predictor registered for key, building it first if the key is new.
func (mp *MultiPredictor[K]) Predict(est filter.Estimate, key K, u mat.Vector) (filter.Estimate, error) {
	p, ok := mp.predictors[key]
	if !ok {
		var err error
		p, err = mp.factory(key)
		if err != nil {
			return nil, fmt.Errorf("failed to build predictor for context %v: %v", key, err)
		}
		mp.predictors[key] = p
	}

	return p.Predict(est, u)
}

// Predictor returns the memoized predictor for key, or nil if the key
// has not been seen yet.
func (mp *MultiPredictor[K]) Predictor(key K) *Predictor {
	return mp.predictors[key]
}

// Len returns the number of contexts seen so far.
func (mp *MultiPredictor[K]) Len() int {
	return len(mp.predictors)
}

// MultiUpdater dispatches corrections to per-context updaters sharing
// a single estimate, e.g. one observation model per landmark. It
// memoizes sub-updaters the same way MultiPredictor memoizes
// sub-predictors, which preserves per-context state such as the cached
// identity matrix and the last gain between calls.
//
// MultiUpdater is not safe for concurrent use.
type MultiUpdater[K comparable] struct {
	// factory builds sub-updaters on first use of a key
	factory UpdaterFactory[K]
	// updaters maps context keys to memoized sub-updaters
	updaters map[K]*Updater
}

// NewMultiUpdater creates a multi-model updater dispatching to
// sub-updaters built by factory. It returns error if factory is nil.
func NewMultiUpdater[K comparable](factory UpdaterFactory[K]) (*MultiUpdater[K], error) {
	if factory == nil {
		return nil, fmt.Errorf("updater factory must be defined")
	}

	return &MultiUpdater[K]{
		factory:  factory,
		updaters: make(map[K]*Updater),
	}, nil
}

// Update corrects estimate est with measurement z using the updater
// registered for key, building it first if the key is new.
func (mu *MultiUpdater[K]) Update(est filter.Estimate, key K, z mat.Vector) (filter.Estimate, error) {
	u, ok := mu.updaters[key]
	if !ok {
		var err error
		u, err = mu.factory(key)
		if err != nil {
			return nil, fmt.Errorf("failed to build updater for context %v: %v", key, err)
		}
		mu.updaters[key] = u
	}

	return u.Update(est, z)
}

// Updater returns the memoized updater for key, or nil if the key has
// not been seen yet.
func (mu *MultiUpdater[K]) Updater(key K) *Updater {
	return mu.updaters[key]
}

// Len returns the number of contexts seen so far.
func (mu *MultiUpdater[K]) Len() int {
	return len(mu.updaters)
}

// Package estimator turns a location and property features into a price
// estimate using the loaded artifacts.
package estimator

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ekisa-team/homeprice/internal/artifact"
	"github.com/ekisa-team/homeprice/internal/metrics"
	"github.com/ekisa-team/homeprice/internal/regression"
)

// Recorder receives estimator activity. *metrics.Prom implements it.
type Recorder interface {
	ObservePrediction(outcome string, knownLocation bool, d time.Duration)
	ObserveLoad(locations int, at time.Time, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObservePrediction(string, bool, time.Duration) {}
func (nopRecorder) ObserveLoad(int, time.Time, error)             {}

type cacheKey struct {
	location        string
	sqft, bhk, bath float64
}

// Estimator holds the loaded artifacts and serves predictions from them.
// It is safe for concurrent use; a load replaces the artifacts atomically.
type Estimator struct {
	artifacts *artifact.Artifacts
	index     map[string]int
	cache     *lru.Cache[cacheKey, float64]
	recorder  Recorder
	mu        sync.RWMutex
}

// Option configures an Estimator.
type Option func(*options)

type options struct {
	cacheSize int
	recorder  Recorder
}

// WithCacheSize bounds the prediction cache. Zero disables it.
func WithCacheSize(n int) Option {
	return func(o *options) { o.cacheSize = n }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

var _ Recorder = (*metrics.Prom)(nil)

// New creates an Estimator with no artifacts loaded.
func New(opts ...Option) (*Estimator, error) {
	o := options{recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Estimator{recorder: o.recorder}
	if o.cacheSize > 0 {
		cache, err := lru.New[cacheKey, float64](o.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("estimator: failed to create cache: %w", err)
		}
		e.cache = cache
	}

	return e, nil
}

// Load reads the artifacts at paths and replaces any previously loaded ones.
// On error the current artifacts are kept.
func (e *Estimator) Load(paths artifact.Paths) error {
	a, err := artifact.LoadSavedArtifacts(paths)
	if err != nil {
		e.recorder.ObserveLoad(0, time.Time{}, err)
		return err
	}

	e.Swap(a)
	return nil
}

// Swap installs already loaded artifacts, for example from a reload.
func (e *Estimator) Swap(a *artifact.Artifacts) {
	index := locationIndex(a.Columns)

	e.mu.Lock()
	e.artifacts = a
	e.index = index
	if e.cache != nil {
		e.cache.Purge()
	}
	e.mu.Unlock()

	e.recorder.ObserveLoad(len(a.Locations()), a.LoadedAt, nil)
}

// Loaded reports whether artifacts are available.
func (e *Estimator) Loaded() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.artifacts != nil
}

// LocationNames returns the known locations in schema order.
func (e *Estimator) LocationNames() ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.artifacts == nil {
		return nil, ErrNotInitialized
	}

	return slices.Clone(e.artifacts.Locations()), nil
}

// EstimatedPrice predicts the price of a property, rounded to two decimals.
// location is matched case-insensitively; an unknown location is not an
// error and is encoded with no location column set.
func (e *Estimator) EstimatedPrice(ctx context.Context, location string, sqft, bhk, bath float64) (float64, error) {
	start := time.Now()

	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.artifacts == nil {
		return 0, ErrNotInitialized
	}

	key := cacheKey{location: fold(location), sqft: sqft, bhk: bhk, bath: bath}
	if e.cache != nil {
		if price, ok := e.cache.Get(key); ok {
			_, known := e.index[key.location]
			e.recorder.ObservePrediction(metrics.OutcomeCached, known, time.Since(start))
			return price, nil
		}
	}

	x, known := encode(len(e.artifacts.Columns), e.index, location, sqft, bhk, bath)

	y, err := e.artifacts.Model.Predict(regression.SuppressWarnings(ctx, regression.CategoryFeatureNames), x)
	if err != nil {
		e.recorder.ObservePrediction(metrics.OutcomeError, known, time.Since(start))
		return 0, fmt.Errorf("estimator: prediction failed: %w", err)
	}

	price := Round2(y)
	if e.cache != nil {
		e.cache.Add(key, price)
	}

	e.recorder.ObservePrediction(metrics.OutcomeOK, known, time.Since(start))
	slog.DebugContext(ctx, "Price estimated",
		"location", location,
		"known_location", known,
		"total_sqft", sqft,
		"bhk", bhk,
		"bath", bath,
		"price", price,
	)

	return price, nil
}

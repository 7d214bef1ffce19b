// Package metrics exposes Prometheus collectors for artifact loads and
// price predictions.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for predictions.
const (
	OutcomeOK       = "ok"
	OutcomeCached   = "cached"
	OutcomeError    = "error"
	locationKnown   = "known"
	locationUnknown = "unknown"
)

// Prom records estimator activity in Prometheus metrics.
type Prom struct {
	predictions *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	loads       *prometheus.CounterVec
	locations   prometheus.Gauge
	loadedAt    prometheus.Gauge
}

// NewProm registers the collectors on reg. If reg is nil, the default
// registerer is used. Collectors already registered are reused.
func NewProm(reg prometheus.Registerer) (*Prom, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	predictions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "homeprice_predictions_total",
		Help: "Total number of price predictions",
	}, []string{"outcome", "location"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "homeprice_prediction_duration_seconds",
		Help:    "Time spent encoding features and querying the model",
		Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
	}, []string{"outcome"})
	loads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "homeprice_artifact_loads_total",
		Help: "Total number of artifact load attempts",
	}, []string{"outcome"})
	locations := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "homeprice_locations",
		Help: "Number of known locations in the loaded schema",
	})
	loadedAt := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "homeprice_artifacts_loaded_timestamp_seconds",
		Help: "Unix time of the last successful artifact load",
	})

	var err error
	if predictions, err = register(reg, predictions); err != nil {
		return nil, err
	}
	if latency, err = register(reg, latency); err != nil {
		return nil, err
	}
	if loads, err = register(reg, loads); err != nil {
		return nil, err
	}
	if locations, err = register(reg, locations); err != nil {
		return nil, err
	}
	if loadedAt, err = register(reg, loadedAt); err != nil {
		return nil, err
	}

	return &Prom{
		predictions: predictions,
		latency:     latency,
		loads:       loads,
		locations:   locations,
		loadedAt:    loadedAt,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObservePrediction records one prediction.
func (p *Prom) ObservePrediction(outcome string, knownLocation bool, d time.Duration) {
	loc := locationUnknown
	if knownLocation {
		loc = locationKnown
	}
	p.predictions.WithLabelValues(outcome, loc).Inc()
	p.latency.WithLabelValues(outcome).Observe(d.Seconds())
}

// ObserveLoad records an artifact load attempt.
func (p *Prom) ObserveLoad(locations int, at time.Time, err error) {
	if err != nil {
		p.loads.WithLabelValues(OutcomeError).Inc()
		return
	}
	p.loads.WithLabelValues(OutcomeOK).Inc()
	p.locations.Set(float64(locations))
	p.loadedAt.Set(float64(at.Unix()))
}

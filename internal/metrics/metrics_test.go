package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProm_ObservePrediction(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewProm(reg)
	require.NoError(t, err)

	p.ObservePrediction(OutcomeOK, true, time.Millisecond)
	p.ObservePrediction(OutcomeOK, false, time.Millisecond)
	p.ObservePrediction(OutcomeCached, true, time.Microsecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.predictions.WithLabelValues(OutcomeOK, locationKnown)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.predictions.WithLabelValues(OutcomeOK, locationUnknown)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.predictions.WithLabelValues(OutcomeCached, locationKnown)))
	assert.Equal(t, 2, testutil.CollectAndCount(p.latency))
}

func TestProm_ObserveLoad(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewProm(reg)
	require.NoError(t, err)

	at := time.Unix(1700000000, 0)
	p.ObserveLoad(240, at, nil)
	p.ObserveLoad(0, time.Time{}, errors.New("boom"))

	assert.Equal(t, 240.0, testutil.ToFloat64(p.locations))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(p.loadedAt))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.loads.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.loads.WithLabelValues(OutcomeError)))
}

func TestNewProm_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := NewProm(reg)
	require.NoError(t, err)
	second, err := NewProm(reg)
	require.NoError(t, err)

	first.ObservePrediction(OutcomeOK, true, time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(second.predictions.WithLabelValues(OutcomeOK, locationKnown)))
}

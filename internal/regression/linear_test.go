package regression

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(ctx context.Context, got *[]Warning) context.Context {
	return WithWarningHandler(ctx, func(_ context.Context, w Warning) {
		*got = append(*got, w)
	})
}

func TestLinearRegression_Predict(t *testing.T) {
	m := NewLinearRegression([]float64{2, 3, 0.5}, 10, nil)

	y, err := m.Predict(context.Background(), []float64{1, 2, 4})
	require.NoError(t, err)
	assert.InDelta(t, 10+2+6+2, y, 1e-12)
	assert.Equal(t, 3, m.NumFeatures())
}

func TestLinearRegression_PredictErrors(t *testing.T) {
	m := NewLinearRegression([]float64{1, 1}, 0, nil)

	_, err := m.Predict(context.Background(), []float64{1})
	assert.ErrorIs(t, err, ErrFeatureMismatch)

	_, err = m.Predict(context.Background(), []float64{1, math.NaN()})
	assert.ErrorIs(t, err, ErrNonFinite)

	_, err = m.Predict(context.Background(), []float64{math.Inf(1), 1})
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestLinearRegression_FeatureNamesWarning(t *testing.T) {
	var got []Warning
	ctx := collect(context.Background(), &got)

	named := NewLinearRegression([]float64{1}, 0, []string{"total_sqft"})
	_, err := named.Predict(ctx, []float64{1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, CategoryFeatureNames, got[0].Category)

	got = nil
	unnamed := NewLinearRegression([]float64{1}, 0, nil)
	_, err = unnamed.Predict(ctx, []float64{1})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSuppressWarnings(t *testing.T) {
	var got []Warning
	base := collect(context.Background(), &got)

	scoped := SuppressWarnings(base, CategoryFeatureNames)
	Warn(scoped, Warning{Category: CategoryFeatureNames, Message: "dropped"})
	Warn(scoped, Warning{Category: "other", Message: "kept"})

	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0].Message)

	// The parent context is unaffected once the scoped one goes out of use.
	Warn(base, Warning{Category: CategoryFeatureNames, Message: "restored"})
	require.Len(t, got, 2)
	assert.Equal(t, "restored", got[1].Message)
}

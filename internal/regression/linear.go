package regression

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// LinearRegression is an ordinary least squares model exported from training.
type LinearRegression struct {
	// FeatureNames is set when the model was fitted on named columns.
	FeatureNames []string
	Coefficients []float64
	Intercept    float64
}

// NewLinearRegression returns a linear model. names may be nil.
func NewLinearRegression(coefficients []float64, intercept float64, names []string) *LinearRegression {
	return &LinearRegression{
		FeatureNames: names,
		Coefficients: coefficients,
		Intercept:    intercept,
	}
}

// NumFeatures returns the number of coefficients.
func (m *LinearRegression) NumFeatures() int {
	return len(m.Coefficients)
}

// Predict returns intercept + coefficients·x.
func (m *LinearRegression) Predict(ctx context.Context, x []float64) (float64, error) {
	if len(x) != len(m.Coefficients) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureMismatch, len(x), len(m.Coefficients))
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: index %d", ErrNonFinite, i)
		}
	}

	if len(m.FeatureNames) > 0 {
		Warn(ctx, Warning{
			Category: CategoryFeatureNames,
			Message:  "X does not have valid feature names, but LinearRegression was fitted with feature names",
		})
	}

	return floats.Dot(m.Coefficients, x) + m.Intercept, nil
}

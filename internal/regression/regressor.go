// Package regression holds the capability interface the estimator predicts
// through and the regressors that can be decoded from a model artifact.
package regression

import (
	"context"
	"errors"
)

// Error definitions for the regression package.
var (
	ErrFeatureMismatch = errors.New("feature vector length does not match model")
	ErrNonFinite       = errors.New("feature vector contains a non-finite value")
)

// Regressor predicts a scalar from a single feature vector.
type Regressor interface {
	// Predict returns the model output for x. Implementations must not retain x.
	Predict(ctx context.Context, x []float64) (float64, error)

	// NumFeatures returns the vector length the model was trained on.
	NumFeatures() int
}

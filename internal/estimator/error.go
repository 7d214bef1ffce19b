package estimator

import "errors"

// Error definitions for the estimator package.
var (
	ErrNotInitialized = errors.New("estimator: artifacts not loaded")
)

package artifact

import "errors"

// Error definitions for the artifact package.
var (
	ErrInvalidArtifact  = errors.New("invalid artifact")
	ErrUnsupportedModel = errors.New("unsupported model type")
)

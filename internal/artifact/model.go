package artifact

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ekisa-team/homeprice/internal/regression"
)

const modelTypeLinearRegression = "linear_regression"

type modelFile struct {
	Type         string    `json:"type"`
	FeatureNames []string  `json:"feature_names,omitempty"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// LoadModel reads a serialized regressor.
func LoadModel(path string) (regression.Regressor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("artifact: failed to read model: %w", err)
	}

	if err := validate(modelSchema, data); err != nil {
		return nil, fmt.Errorf("artifact: model %s: %w", path, err)
	}

	var f modelFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("artifact: model %s: %w: %v", path, ErrInvalidArtifact, err)
	}

	switch f.Type {
	case modelTypeLinearRegression:
		if len(f.FeatureNames) > 0 && len(f.FeatureNames) != len(f.Coefficients) {
			return nil, fmt.Errorf("artifact: model %s: %w: %d feature names for %d coefficients",
				path, ErrInvalidArtifact, len(f.FeatureNames), len(f.Coefficients))
		}
		return regression.NewLinearRegression(f.Coefficients, f.Intercept, f.FeatureNames), nil
	default:
		return nil, fmt.Errorf("artifact: model %s: %w: %q", path, ErrUnsupportedModel, f.Type)
	}
}

package artifact

import (
	"encoding/json"
	"fmt"
	"os"
)

// NumericFeatures is the number of leading numeric columns in the schema:
// total_sqft, bath and bhk, in that order.
const NumericFeatures = 3

type columnsFile struct {
	DataColumns []string `json:"data_columns"`
}

// LoadColumns reads the column schema artifact.
func LoadColumns(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("artifact: failed to read columns: %w", err)
	}

	if err := validate(columnsSchema, data); err != nil {
		return nil, fmt.Errorf("artifact: columns %s: %w", path, err)
	}

	var f columnsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("artifact: columns %s: %w: %v", path, ErrInvalidArtifact, err)
	}

	return f.DataColumns, nil
}

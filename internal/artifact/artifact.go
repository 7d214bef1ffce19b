// Package artifact loads the trained column schema and model from disk.
package artifact

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ekisa-team/homeprice/internal/config"
	"github.com/ekisa-team/homeprice/internal/regression"
	"github.com/ekisa-team/homeprice/internal/xfs"
)

// Paths locates the two artifact files.
type Paths struct {
	Columns string
	Model   string
}

// DefaultPaths returns the artifact paths under dir using the default file names.
func DefaultPaths(dir string) Paths {
	return Paths{
		Columns: filepath.Join(dir, config.DefaultColumnsFile),
		Model:   filepath.Join(dir, config.DefaultModelFile),
	}
}

// PathsFromConfig resolves the artifact paths from configuration.
func PathsFromConfig(cfg config.ArtifactsConfig) Paths {
	return Paths{
		Columns: xfs.Resolve(cfg.Dir, cfg.ColumnsFile),
		Model:   xfs.Resolve(cfg.Dir, cfg.ModelFile),
	}
}

// Artifacts is an immutable snapshot of a successful load.
type Artifacts struct {
	Columns  []string
	Model    regression.Regressor
	LoadedAt time.Time
}

// New assembles artifacts from an in-memory schema and model, checking that
// they agree on the vector length.
func New(columns []string, model regression.Regressor) (*Artifacts, error) {
	if len(columns) < NumericFeatures {
		return nil, fmt.Errorf("%w: schema has %d columns, need at least %d",
			ErrInvalidArtifact, len(columns), NumericFeatures)
	}
	if model == nil {
		return nil, fmt.Errorf("%w: nil model", ErrInvalidArtifact)
	}
	if n := model.NumFeatures(); n != len(columns) {
		return nil, fmt.Errorf("%w: model expects %d features, schema has %d columns",
			ErrInvalidArtifact, n, len(columns))
	}

	return &Artifacts{
		Columns:  columns,
		Model:    model,
		LoadedAt: time.Now(),
	}, nil
}

// Locations returns the location columns, i.e. the schema from index 3 on.
func (a *Artifacts) Locations() []string {
	return a.Columns[NumericFeatures:]
}

// LoadSavedArtifacts reads the schema and model. It returns an error if either
// file is missing, malformed or inconsistent with the other.
func LoadSavedArtifacts(paths Paths) (*Artifacts, error) {
	slog.Info("Loading saved artifacts", "columns", paths.Columns, "model", paths.Model)

	columns, err := LoadColumns(paths.Columns)
	if err != nil {
		return nil, err
	}

	model, err := LoadModel(paths.Model)
	if err != nil {
		return nil, err
	}

	a, err := New(columns, model)
	if err != nil {
		return nil, fmt.Errorf("artifact: %w", err)
	}

	slog.Info("Saved artifacts loaded", "columns", len(a.Columns), "locations", len(a.Locations()))
	return a, nil
}

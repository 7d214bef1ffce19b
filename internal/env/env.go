package env

import (
	"os"
	"strings"

	"github.com/ekisa-team/homeprice/internal/envvar"
)

// Environment is the runtime environment the process runs in.
type Environment string

const (
	// Development enables human readable, coloured logs.
	Development Environment = "development"

	// Production enables JSON logs.
	Production Environment = "production"
)

// FromEnv reads the environment from HOMEPRICE_ENV. Unknown or empty values
// fall back to Development.
func FromEnv() Environment {
	return Parse(os.Getenv(envvar.HomepriceEnv))
}

// Parse converts a raw string into an Environment.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prod", "production":
		return Production
	default:
		return Development
	}
}

// IsProduction reports whether e is the production environment.
func (e Environment) IsProduction() bool {
	return e == Production
}

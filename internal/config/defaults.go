package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/ekisa-team/homeprice/internal/envvar"
)

const (
	// DefaultColumnsFile is the schema artifact name inside the artifacts directory.
	DefaultColumnsFile = "columns.json"

	// DefaultModelFile is the model artifact name inside the artifacts directory.
	DefaultModelFile = "banglore_home_prices_model.json"

	// DefaultCacheSize is the number of memoised predictions kept.
	DefaultCacheSize = 1024

	defaultArtifactsDir = "artifacts"
	defaultHTTPPort     = 5000
	defaultGRPCPort     = 5001
	defaultLogLevel     = "info"
)

// DefaultConfigPath returns the default path for the homeprice config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "homeprice", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "homeprice")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "homeprice")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "homeprice")
		}
		return filepath.Join(home, ".config", "homeprice")
	}
}

// Default returns a configuration populated with defaults only.
func Default() *Config {
	cfg := &Config{Version: "v1"}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Artifacts.Dir == "" {
		c.Artifacts.Dir = defaultArtifactsDir
	}
	if c.Artifacts.ColumnsFile == "" {
		c.Artifacts.ColumnsFile = DefaultColumnsFile
	}
	if c.Artifacts.ModelFile == "" {
		c.Artifacts.ModelFile = DefaultModelFile
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = defaultHTTPPort
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = defaultGRPCPort
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// ApplyEnv applies environment overrides.
// Precedence: environment variable, then config file, then default.
func (c *Config) ApplyEnv() {
	if dir := os.Getenv(envvar.HomepriceArtifactsDir); dir != "" {
		c.Artifacts.Dir = dir
	}
	c.Server.HTTPPort = portFromEnv(envvar.HomepriceServerHTTPPort, c.Server.HTTPPort)
	c.Server.GRPCPort = portFromEnv(envvar.HomepriceServerGRPCPort, c.Server.GRPCPort)
}

func portFromEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	port, err := strconv.Atoi(v)
	if err != nil || port <= 0 || port > 65535 {
		return fallback
	}
	return port
}

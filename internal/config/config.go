package config

// Config holds the main configuration for the application.
type Config struct {
	Version   string          `json:"version"             yaml:"version"`
	Artifacts ArtifactsConfig `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
	Server    ServerConfig    `json:"server,omitempty"    yaml:"server,omitempty"`
	Logging   LoggingConfig   `json:"logging,omitempty"   yaml:"logging,omitempty"`
	Cache     CacheConfig     `json:"cache,omitempty"     yaml:"cache,omitempty"`
}

// ArtifactsConfig locates the trained artifacts on disk.
type ArtifactsConfig struct {
	Dir         string `json:"dir,omitempty"          yaml:"dir,omitempty"`
	ColumnsFile string `json:"columns_file,omitempty" yaml:"columns_file,omitempty"`
	ModelFile   string `json:"model_file,omitempty"   yaml:"model_file,omitempty"`
	Watch       bool   `json:"watch,omitempty"        yaml:"watch,omitempty"`
}

// ServerConfig holds the listen ports.
type ServerConfig struct {
	HTTPPort int `json:"http_port,omitempty" yaml:"http_port,omitempty"`
	GRPCPort int `json:"grpc_port,omitempty" yaml:"grpc_port,omitempty"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	File  string `json:"file,omitempty"  yaml:"file,omitempty"`
}

// CacheConfig sizes the prediction cache. Zero disables caching.
type CacheConfig struct {
	Size *int `json:"size,omitempty" yaml:"size,omitempty"`
}

// CacheSize returns the configured cache size or the default.
func (c CacheConfig) CacheSize() int {
	if c.Size == nil {
		return DefaultCacheSize
	}
	return *c.Size
}

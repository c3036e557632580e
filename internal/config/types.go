// Package config loads sovstruct settings from defaults, a YAML file,
// environment variables and command-line flags.
package config

import "time"

// Default values.
const (
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultOutputFormat = "json"
	DefaultServerAddr   = ":8080"
	DefaultTimeout      = 60 * time.Second
	DefaultModel        = "o3-mini"
	DefaultMaxTokens    = 2000
	DefaultTemperature  = 0.1
)

// CompletionConfig configures the completion service client.
type CompletionConfig struct {
	// Endpoint is the completion proxy URL. Empty disables the AI path.
	Endpoint    string        `koanf:"endpoint"`
	APIKey      string        `koanf:"api_key"`
	Model       string        `koanf:"model"`
	MaxTokens   int           `koanf:"max_tokens"`
	Temperature float64       `koanf:"temperature"`
	Timeout     time.Duration `koanf:"timeout"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // text or json
}

// OutputConfig configures result rendering.
type OutputConfig struct {
	Format string `koanf:"format"` // json, yaml or table
	Pretty bool   `koanf:"pretty"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// Config holds all sovstruct configuration options.
type Config struct {
	Completion CompletionConfig `koanf:"completion"`
	Log        LogConfig        `koanf:"log"`
	Output     OutputConfig     `koanf:"output"`
	Server     ServerConfig     `koanf:"server"`
}

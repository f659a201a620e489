// Package config provides configuration management for the reposql CLI.
package config

import "time"

// Default configuration values.
const (
	DefaultStateFile    = ".reposql/history.db"
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultServerAddr   = "127.0.0.1:8080"
	DefaultMaxBodyBytes = 4 << 20
	DefaultDebounce     = 200 * time.Millisecond
)

// DefaultWatchExtensions are the file extensions watched for DDL changes.
var DefaultWatchExtensions = []string{".sql", ".ddl"}

// ConfigFileNames are searched, in order, in the project root.
var ConfigFileNames = []string{"reposql.yaml", "reposql.yml"}

// Config holds all CLI configuration options.
type Config struct {
	// Dialects lists candidate dialects in priority order; empty means every
	// built-in dialect.
	Dialects        []string     `koanf:"dialects" validate:"unique,dive,dialect"`
	ParallelScoring bool         `koanf:"parallel_scoring"`
	StatePath       string       `koanf:"state_path" validate:"required_if=History true"`
	History         bool         `koanf:"history"`
	OutputFormat    string       `koanf:"output" validate:"omitempty,oneof=auto text tty markdown md json yaml yml"`
	Verbose         bool         `koanf:"verbose"`
	Server          ServerConfig `koanf:"server"`
	Watch           WatchConfig  `koanf:"watch"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// ServerConfig holds configuration for the HTTP API.
type ServerConfig struct {
	Addr         string `koanf:"addr" validate:"required,hostname_port"`
	MaxBodyBytes int64  `koanf:"max_body_bytes" validate:"gt=0"`
}

// WatchConfig holds configuration for the watch command.
type WatchConfig struct {
	Debounce   time.Duration `koanf:"debounce" validate:"gte=0"`
	Extensions []string      `koanf:"extensions" validate:"min=1,dive,startswith=."`
}

// HistoryPath returns the state database path, or "" when history is off.
func (c *Config) HistoryPath() string {
	if !c.History {
		return ""
	}
	return c.StatePath
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		StatePath:    DefaultStateFile,
		History:      true,
		OutputFormat: DefaultOutput,
		Server: ServerConfig{
			Addr:         DefaultServerAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		Watch: WatchConfig{
			Debounce:   DefaultDebounce,
			Extensions: append([]string(nil), DefaultWatchExtensions...),
		},
	}
}

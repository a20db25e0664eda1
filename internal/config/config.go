// Package config holds socialmem configuration: types, defaults, loading,
// and validation. Configuration is loaded once and passed explicitly into
// each component at construction; nothing reads it from ambient state.
package config

import "fmt"

// Config holds all socialmem configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Storage StorageConfig `koanf:"storage"`
	Log     LogConfig     `koanf:"log"`
	Social  SocialConfig  `koanf:"social"`
}

type ServerConfig struct {
	Bind string `koanf:"bind" validate:"required"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`
}

type StorageConfig struct {
	// Backend selects the profile store adapter.
	Backend string      `koanf:"backend" validate:"oneof=memory sqlite badger redis"`
	Path    string      `koanf:"path"` // sqlite file or badger directory; empty = default
	Redis   RedisConfig `koanf:"redis"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"min=0"`
	Prefix   string `koanf:"prefix"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// SocialConfig carries the behavior knobs of the social-memory core.
type SocialConfig struct {
	// RetentionDays sets each memory's TTL at creation time.
	RetentionDays int `koanf:"retention_days" validate:"min=1"`
	// MaxInjectedMemories caps the memory section of the rendered context.
	MaxInjectedMemories int `koanf:"max_injected_memories" validate:"min=0"`
	// MinImportanceScore is the importance floor for injected memories.
	MinImportanceScore int `koanf:"min_importance_score" validate:"min=0,max=10"`
	// DefaultAffection seeds the ledger for first-seen users.
	DefaultAffection int `koanf:"default_affection" validate:"min=-100,max=100"`
	// MaxHistoryEvents caps the retained event history per user.
	MaxHistoryEvents int `koanf:"max_history_events" validate:"min=1"`
	// EnableBondSystem gates bond evaluation and the bonds context section.
	EnableBondSystem bool `koanf:"enable_bond_system"`
	// AffectionPromptLimit is the recent-events window in the rendered context.
	AffectionPromptLimit int `koanf:"affection_prompt_limit" validate:"min=0"`
}

// Default returns a Config with the stock defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 8750,
		},
		Storage: StorageConfig{
			Backend: "sqlite",
			Path:    "", // resolved at runtime via sqlite.DefaultPath()
			Redis: RedisConfig{
				Addr: "127.0.0.1:6379",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Social: SocialConfig{
			RetentionDays:        30,
			MaxInjectedMemories:  5,
			MinImportanceScore:   5,
			DefaultAffection:     0,
			MaxHistoryEvents:     20,
			EnableBondSystem:     true,
			AffectionPromptLimit: 3,
		},
	}
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}

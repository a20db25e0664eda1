package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "SOCIALMEM_"
	delimiter = "."
)

// Load builds the configuration from, in increasing priority: defaults,
// an optional YAML/JSON config file, and SOCIALMEM_* environment variables
// (SOCIALMEM_SERVER_PORT -> server.port). The result is validated before
// it is returned.
func Load(configPath string) (Config, error) {
	k := koanf.New(delimiter)

	defaults := Default()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"server.bind":                   defaults.Server.Bind,
		"server.port":                   defaults.Server.Port,
		"storage.backend":               defaults.Storage.Backend,
		"storage.path":                  defaults.Storage.Path,
		"storage.redis.addr":            defaults.Storage.Redis.Addr,
		"storage.redis.password":        defaults.Storage.Redis.Password,
		"storage.redis.db":              defaults.Storage.Redis.DB,
		"storage.redis.prefix":          defaults.Storage.Redis.Prefix,
		"log.level":                     defaults.Log.Level,
		"log.format":                    defaults.Log.Format,
		"social.retention_days":         defaults.Social.RetentionDays,
		"social.max_injected_memories":  defaults.Social.MaxInjectedMemories,
		"social.min_importance_score":   defaults.Social.MinImportanceScore,
		"social.default_affection":      defaults.Social.DefaultAffection,
		"social.max_history_events":     defaults.Social.MaxHistoryEvents,
		"social.enable_bond_system":     defaults.Social.EnableBondSystem,
		"social.affection_prompt_limit": defaults.Social.AffectionPromptLimit,
	}, delimiter), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := loadFile(k, configPath); err != nil {
			return Config{}, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, delimiter, func(s string) string {
		// SOCIALMEM_SOCIAL_RETENTION_DAYS -> social.retention_days
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		parts := strings.SplitN(s, "_", 2)
		if len(parts) == 2 {
			return parts[0] + delimiter + parts[1]
		}
		return s
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config file format: %s", path)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", path)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("load config file %s: %w", path, err)
	}
	return nil
}

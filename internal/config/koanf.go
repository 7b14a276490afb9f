package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are tried in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/datenight/config.yaml",
}

const ConfigPathEnvVar = "CONFIG_PATH"

// envAliases maps the flat variables a deployment already sets onto config keys.
var envAliases = map[string]string{
	"port":         "server.port",
	"gin_mode":     "server.mode",
	"postgres_url": "database.dsn",
	"database_url": "database.dsn",
	"jwt_secret":   "auth.jwt_secret",
	"log_level":    "logging.level",
	"log_format":   "logging.format",
}

// sections are the top-level keys an environment variable may address as
// SECTION_FIELD, e.g. SERVER_REQUEST_TIMEOUT -> server.request_timeout.
var sections = []string{"server", "database", "logging", "rate_limit", "auth", "catalog", "knowledge", "planner"}

// plannerGroups split PLANNER_<GROUP>_<FIELD> one level deeper.
var plannerGroups = []string{"fitness", "heuristic_weights", "heuristic", "genetic"}

// Load reads .env (when present), then layers defaults, config file and environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return load(findConfigFile())
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	// env values arrive as one comma separated string
	if origins, ok := k.Get("server.cors_origins").(string); ok {
		if err := k.Set("server.cors_origins", splitList(origins)); err != nil {
			return nil, fmt.Errorf("failed to split server.cors_origins: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransformFunc maps an environment variable to a config key. Variables that match
// neither an alias nor a section are dropped.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)
	if mapped, ok := envAliases[key]; ok {
		return mapped
	}
	for _, section := range sections {
		rest, ok := strings.CutPrefix(key, section+"_")
		if !ok || rest == "" {
			continue
		}
		if section != "planner" {
			return section + "." + rest
		}
		for _, group := range plannerGroups {
			field, ok := strings.CutPrefix(rest, group+"_")
			if !ok {
				continue
			}
			if group == "heuristic_weights" {
				return "planner.heuristic.weights." + field
			}
			return "planner." + group + "." + field
		}
		return "planner." + rest
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr               string   `json:"addr" yaml:"addr" toml:"addr"`
	UpstreamBaseURL    string   `json:"upstream_base_url" yaml:"upstream_base_url" toml:"upstream_base_url"`
	UpstreamToken      string   `json:"upstream_token" yaml:"upstream_token" toml:"upstream_token"`
	UpstreamTimeoutSec int      `json:"upstream_timeout_sec" yaml:"upstream_timeout_sec" toml:"upstream_timeout_sec"`
	RefreshIntervalSec int      `json:"refresh_interval_sec" yaml:"refresh_interval_sec" toml:"refresh_interval_sec"`
	AutoRefresh        *bool    `json:"auto_refresh" yaml:"auto_refresh" toml:"auto_refresh"`
	AuditDB            string   `json:"audit_db" yaml:"audit_db" toml:"audit_db"`
	LogLevel           string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	CORSEnabled        bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins        []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

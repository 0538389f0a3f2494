package appconf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk representation of Config. JSON and YAML files
// share the same keys.
type FileConfig struct {
	Port            int      `json:"port" yaml:"port" validate:"gte=0,lte=65535"`
	Env             string   `json:"env" yaml:"env" validate:"omitempty,oneof=development dev test production prod"`
	ApiKeys         []string `json:"api-keys" yaml:"api-keys" validate:"dive,required"`
	ExemptApiKeys   []string `json:"exempt-api-keys" yaml:"exempt-api-keys"`
	RateLimit       int      `json:"rate-limit" yaml:"rate-limit" validate:"gte=0"`
	Verbose         bool     `json:"verbose" yaml:"verbose"`
	SearchURL       string   `json:"search-url" yaml:"search-url" validate:"omitempty,url"`
	UpstreamTimeout string   `json:"upstream-timeout" yaml:"upstream-timeout"`
	SearchLogPath   string   `json:"search-log-path" yaml:"search-log-path"`
	AllowedOrigins  []string `json:"allowed-origins" yaml:"allowed-origins"`
	Language        string   `json:"language" yaml:"language" validate:"omitempty,oneof=de en"`
}

// LoadFromFile reads, parses and validates a JSON or YAML config file.
// The format is chosen by extension; anything but .yml/.yaml is JSON.
func LoadFromFile(path string) (*FileConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and that the timeout parses.
func (fc *FileConfig) Validate() error {
	if err := validator.New().Struct(fc); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if fc.UpstreamTimeout != "" {
		d, err := time.ParseDuration(fc.UpstreamTimeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid configuration: upstream-timeout %q", fc.UpstreamTimeout)
		}
	}
	return nil
}

// ToAppConfig overlays the file values on Default.
func (fc *FileConfig) ToAppConfig() Config {
	cfg := Default()

	if fc.Port != 0 {
		cfg.Port = fc.Port
	}
	if env, err := EnvFlagToEnvironment(fc.Env); err == nil {
		cfg.Env = env
	}
	if fc.ApiKeys != nil {
		cfg.ApiKeys = fc.ApiKeys
	}
	cfg.ExemptApiKeys = fc.ExemptApiKeys
	if fc.RateLimit != 0 {
		cfg.RateLimit = fc.RateLimit
	}
	cfg.Verbose = fc.Verbose
	if fc.SearchURL != "" {
		cfg.SearchURL = fc.SearchURL
	}
	if d, err := time.ParseDuration(fc.UpstreamTimeout); err == nil && d > 0 {
		cfg.UpstreamTimeout = d
	}
	if fc.SearchLogPath != "" {
		cfg.SearchLogPath = fc.SearchLogPath
	}
	if len(fc.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = fc.AllowedOrigins
	}
	if fc.Language != "" {
		cfg.Language = fc.Language
	}

	return cfg
}

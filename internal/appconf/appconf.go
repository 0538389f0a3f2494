// Package appconf holds the runtime configuration of the timetable service.
package appconf

import (
	"fmt"
	"strings"
	"time"
)

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps a command-line or file value to an Environment.
func EnvFlagToEnvironment(env string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "development", "dev":
		return Development, nil
	case "test":
		return Test, nil
	case "production", "prod":
		return Production, nil
	default:
		return Development, fmt.Errorf("unknown environment %q", env)
	}
}

const (
	DefaultSearchURL       = "https://search.ch/timetable/api/route.json"
	DefaultUpstreamTimeout = 15 * time.Second
	DefaultRateLimit       = 100
	DefaultSearchLogPath   = "./searchlog.db"
)

// Config holds the application configuration.
type Config struct {
	Port            int
	Env             Environment
	ApiKeys         []string
	ExemptApiKeys   []string
	RateLimit       int // requests per second per client
	Verbose         bool
	SearchURL       string
	UpstreamTimeout time.Duration
	SearchLogPath   string
	AllowedOrigins  []string
	Language        string
}

// Default returns a Config usable for local development.
func Default() Config {
	return Config{
		Port:            4000,
		Env:             Development,
		RateLimit:       DefaultRateLimit,
		SearchURL:       DefaultSearchURL,
		UpstreamTimeout: DefaultUpstreamTimeout,
		SearchLogPath:   DefaultSearchLogPath,
		AllowedOrigins:  []string{"*"},
		Language:        "de",
	}
}

// RequiresAPIKey reports whether API requests must carry a key.
func (c Config) RequiresAPIKey() bool {
	return len(c.ApiKeys) > 0
}

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"fahrplan.dev/internal/appconf"
	"fahrplan.dev/internal/logging"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	coreApp, err := BuildApplication(cfg)
	if err != nil {
		logging.LogError(slog.Default(), "failed to build application", err)
		os.Exit(1)
	}

	srv, api := CreateServer(coreApp, cfg)
	if err := Run(srv, coreApp, api); err != nil {
		logging.LogError(coreApp.Logger, "server error", err)
		os.Exit(1)
	}
}

// loadConfig reads a config file when -f is given. Otherwise flags are used,
// each defaulting to its FAHRPLAN_* environment variable.
func loadConfig(args []string) (appconf.Config, error) {
	def := appconf.Default()

	fs := flag.NewFlagSet("fahrplan", flag.ContinueOnError)
	configFile := fs.String("f", "", "Path to a JSON or YAML config file")
	port := fs.Int("port", envInt("FAHRPLAN_PORT", def.Port), "API server port")
	env := fs.String("env", envString("FAHRPLAN_ENV", "development"), "Environment (development|test|production)")
	apiKeys := fs.String("api-keys", envString("FAHRPLAN_API_KEYS", ""), "Comma separated API keys; empty disables key checks")
	exemptKeys := fs.String("exempt-api-keys", envString("FAHRPLAN_EXEMPT_API_KEYS", ""), "Comma separated API keys exempt from rate limiting")
	rateLimit := fs.Int("rate-limit", envInt("FAHRPLAN_RATE_LIMIT", def.RateLimit), "Requests per second per client")
	verbose := fs.Bool("verbose", envString("FAHRPLAN_VERBOSE", "") == "true", "Enable debug logging")
	searchURL := fs.String("search-url", envString("FAHRPLAN_SEARCH_URL", def.SearchURL), "Timetable route API endpoint")
	timeout := fs.Duration("upstream-timeout", envDuration("FAHRPLAN_UPSTREAM_TIMEOUT", def.UpstreamTimeout), "Timeout for one timetable API call")
	searchLog := fs.String("search-log", envString("FAHRPLAN_SEARCH_LOG", def.SearchLogPath), "SQLite path of the search log")
	origins := fs.String("allowed-origins", envString("FAHRPLAN_ALLOWED_ORIGINS", "*"), "Comma separated CORS origins")
	language := fs.String("language", envString("FAHRPLAN_LANGUAGE", def.Language), "Default header language (de|en)")

	if err := fs.Parse(args); err != nil {
		return appconf.Config{}, err
	}

	if *configFile != "" {
		fileCfg, err := appconf.LoadFromFile(*configFile)
		if err != nil {
			return appconf.Config{}, err
		}
		return fileCfg.ToAppConfig(), nil
	}

	environment, err := appconf.EnvFlagToEnvironment(*env)
	if err != nil {
		return appconf.Config{}, err
	}
	if *timeout <= 0 {
		return appconf.Config{}, fmt.Errorf("upstream-timeout must be positive, got %s", *timeout)
	}

	return appconf.Config{
		Port:            *port,
		Env:             environment,
		ApiKeys:         nonEmpty(ParseAPIKeys(*apiKeys)),
		ExemptApiKeys:   nonEmpty(ParseAPIKeys(*exemptKeys)),
		RateLimit:       *rateLimit,
		Verbose:         *verbose,
		SearchURL:       *searchURL,
		UpstreamTimeout: *timeout,
		SearchLogPath:   *searchLog,
		AllowedOrigins:  nonEmpty(ParseAPIKeys(*origins)),
		Language:        *language,
	}, nil
}

func nonEmpty(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

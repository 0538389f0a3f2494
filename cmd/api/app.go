package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fahrplan.dev/internal/app"
	"fahrplan.dev/internal/appconf"
	"fahrplan.dev/internal/clock"
	"fahrplan.dev/internal/logging"
	"fahrplan.dev/internal/metrics"
	"fahrplan.dev/internal/restapi"
	"fahrplan.dev/internal/searchch"
	"fahrplan.dev/internal/timetable"
	"fahrplan.dev/internal/webui"
	"fahrplan.dev/searchlog"
)

// pinnedClockEnv pins the server clock, e.g. for reproducible default dates.
const pinnedClockEnv = "FAHRPLAN_NOW"

// ParseAPIKeys splits a comma separated key list, trimming whitespace.
func ParseAPIKeys(apiKeysFlag string) []string {
	if apiKeysFlag == "" {
		return []string{}
	}
	keys := strings.Split(apiKeysFlag, ",")
	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
	}
	return keys
}

// BuildApplication wires the logger, clock, metrics, upstream client and
// search log for cfg.
func BuildApplication(cfg appconf.Config) (*app.Application, error) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewLogger(os.Stdout, level, cfg.Env == appconf.Development)

	m := metrics.NewWithLogger(logger)

	searchLogPath := cfg.SearchLogPath
	if cfg.Env == appconf.Test {
		searchLogPath = ":memory:"
	}
	log, err := searchlog.NewClient(searchlog.Config{DBPath: searchLogPath, Env: cfg.Env}, logger)
	if err != nil {
		m.Shutdown()
		return nil, fmt.Errorf("failed to open search log: %w", err)
	}
	m.StartDBStatsCollector(log.DB, 15*time.Second)

	coreApp := &app.Application{
		Config:    cfg,
		Logger:    logger,
		Clock:     clock.NewEnvironmentClock(pinnedClockEnv, timetable.SwissLocation),
		Metrics:   m,
		Fetcher:   searchch.NewClient(cfg.SearchURL, cfg.UpstreamTimeout, m, logger),
		SearchLog: log,
	}

	return coreApp, nil
}

// CreateServer builds the HTTP server serving the API and the web UI.
func CreateServer(coreApp *app.Application, cfg appconf.Config) (*http.Server, *restapi.RestAPI) {
	api := restapi.NewRestAPI(coreApp)

	webUI := &webui.WebUI{Application: coreApp, RateLimit: api.RateLimited}

	mux := http.NewServeMux()
	api.SetRoutes(mux)
	webUI.SetWebUIRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Handler(mux),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 10*time.Second,
		ErrorLog:     slog.NewLogLogger(coreApp.Logger.Handler(), slog.LevelError),
	}

	return srv, api
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests and
// closes the search log.
func Run(srv *http.Server, coreApp *app.Application, api *restapi.RestAPI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, srv, coreApp, api)
}

func serve(ctx context.Context, srv *http.Server, coreApp *app.Application, api *restapi.RestAPI) error {
	logger := coreApp.Logger

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.String("addr", srv.Addr),
			slog.String("env", coreApp.Config.Env.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case err := <-serverErr:
		runErr = err
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			runErr = fmt.Errorf("server shutdown failed: %w", err)
		}
	}

	api.Shutdown()
	coreApp.Metrics.Shutdown()
	if coreApp.SearchLog != nil {
		logging.SafeCloseWithLogging(coreApp.SearchLog, logger, "search_log")
	}

	return runErr
}

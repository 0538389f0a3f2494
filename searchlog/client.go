// Package searchlog keeps a SQLite record of timetable searches: who asked
// for which route and how it went. Built grids are never stored.
package searchlog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fahrplan.dev/internal/appconf"
	"fahrplan.dev/internal/logging"
	_ "github.com/mattn/go-sqlite3" // CGo-based SQLite driver
)

//go:embed schema.sql
var ddl string

// Outcome values stored with each search.
const (
	OutcomeOK               = "ok"
	OutcomeMissingParameter = "missing_parameter"
	OutcomeFetchFailed      = "fetch_failed"
)

type Config struct {
	DBPath string
	Env    appconf.Environment
}

// Client is the entry point to the search log database.
type Client struct {
	config Config
	DB     *sql.DB
	logger *slog.Logger
}

// NewClient opens the database and applies the schema.
func NewClient(config Config, logger *slog.Logger) (*Client, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		return nil, fmt.Errorf("test database must use in-memory storage, got path: %s", config.DBPath)
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open search log: %w", err)
	}

	// A single connection keeps :memory: databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := performDatabaseMigration(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error performing database migration: %w", err)
	}

	logging.LogOperation(logger, "searchlog_opened", slog.String("path", config.DBPath))

	return &Client{config: config, DB: db, logger: logger}, nil
}

func performDatabaseMigration(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(ddl, "-- migrate") {
		trimmed := strings.TrimSpace(stmt)
		if trimmed == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, trimmed); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", trimmed, err)
		}
	}
	return nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.DB == nil {
		return errors.New("search log not initialized")
	}
	return c.DB.PingContext(ctx)
}

func (c *Client) GetDBPath() string {
	return c.config.DBPath
}

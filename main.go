// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/inct-panel/auth"
	"github.com/danielhkuo/inct-panel/cliparse"
	"github.com/danielhkuo/inct-panel/dataset"
	"github.com/danielhkuo/inct-panel/db"
	"github.com/danielhkuo/inct-panel/metrics"
	"github.com/danielhkuo/inct-panel/router"
	"github.com/danielhkuo/inct-panel/session"
)

func main() {
	var err error

	// Load .env before reading the environment
	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if cfg.HashPassword != "" {
		if err := printPasswordHash(os.Stdout, cfg.HashPassword); err != nil {
			slog.Error("password hashing failed", "error", err)
			os.Exit(1)
		}
		return
	}

	sessions, closeStore, err := openSessionStore(cfg)
	if err != nil {
		slog.Error("session store failed", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Load the dataset once; pages read from memory afterwards
	manifest := dataset.DefaultManifest()
	if cfg.ManifestPath != "" {
		manifest, err = dataset.LoadManifest(cfg.ManifestPath)
		if err != nil {
			slog.Error("manifest load failed", "error", err)
			os.Exit(1)
		}
	}
	repo := dataset.NewRepository(manifest.Resolve(cfg.DataDir))
	if err := repo.Load(); err != nil {
		slog.Error("dataset load failed", "error", err)
		os.Exit(1)
	}
	cat, _ := repo.Catalog()
	slog.Info("Dataset ready",
		"dir", cfg.DataDir,
		"entries", cat.Len(),
		"institutes", len(cat.UniqueInstitutes()),
		"areas", len(cat.UniqueAreas()),
	)

	m := metrics.New()
	repo.OnReload = m.Reload

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.WatchData {
		watcher, err := dataset.NewWatcher(repo, repo.Manifest().Dirs(), 0)
		if err != nil {
			slog.Error("data watcher failed", "error", err)
			os.Exit(1)
		}
		watcher.Start(ctx)
		defer watcher.Stop()
	}

	// Create router
	mux := router.NewRouter(sessions, repo, m, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// printPasswordHash writes the bcrypt hash of password to w.
func printPasswordHash(w io.Writer, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, hash)
	return err
}

// openSessionStore opens the configured session store. The returned func
// releases it.
func openSessionStore(cfg cliparse.Config) (session.Store, func(), error) {
	if !cfg.UsesSQL() {
		slog.Info("Sessions kept in memory")
		return session.NewMemoryStore(), func() {}, nil
	}

	// Connect to the session database
	driver, err := db.DriverName(cfg.DatabaseType)
	if err != nil {
		return nil, nil, err
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		dbConn.Close()
		return nil, nil, fmt.Errorf("database ping failed: %w", err)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		dbConn.Close()
		return nil, nil, err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	return session.NewSQLStore(dbConn, cfg.DatabaseType), func() { dbConn.Close() }, nil
}

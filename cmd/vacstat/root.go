package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/avdonin/vacstat/internal/config"
	"github.com/avdonin/vacstat/internal/hh"
	"github.com/avdonin/vacstat/internal/pipeline"
	"github.com/avdonin/vacstat/internal/ratelimit"
	"github.com/avdonin/vacstat/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "vacstat",
	Short: "Vacancy ingestion and salary analytics",
	Long:  "vacstat ingests job vacancies for a roster of employers, normalizes salaries against the current currency rates, and reports salary analytics.",
	// Default to `run` so that `vacstat` with no args refreshes and reports.
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: VACSTAT_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > VACSTAT_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("VACSTAT_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// openStore opens the configured store. The caller owns the handle and must
// close it.
func openStore(cfg *config.Config) (*store.SQLStore, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return store.NewPostgresStore(cfg.Database.DSN, cfg.Database.Table)
	default:
		return store.NewSQLiteStore(cfg.Database.DSN, cfg.Database.Table)
	}
}

// buildPipeline wires the listing client and the store into one ingestion
// pipeline. The same client serves as both rate provider and fetcher.
func buildPipeline(cfg *config.Config, st *store.SQLStore, logger *slog.Logger) *pipeline.Pipeline {
	httpClient := &http.Client{Timeout: cfg.Source.Timeout}
	limiter := ratelimit.New(cfg.Source.MinDelay)
	client := hh.NewClient(cfg.Source.BaseURL, cfg.Source.PerPage, httpClient, limiter)
	return pipeline.New(cfg.Employers, client, client, st, logger)
}

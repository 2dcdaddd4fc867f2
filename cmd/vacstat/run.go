package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/avdonin/vacstat/internal/report"
)

var runKeyword string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Refresh the vacancy table and print the full report",
	Long:  "One full ingestion pass (rates, fetch, normalize, replace) followed by the analytics report.",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runKeyword, "keyword", "k", "разработчик", "keyword for the title-search report section")
	rootCmd.Flags().StringVarP(&runKeyword, "keyword", "k", "разработчик", "keyword for the title-search report section")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"employers", len(cfg.Employers),
		"driver", cfg.Database.Driver,
		"table", cfg.Database.Table,
	)

	st, err := openStore(cfg)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := st.EnsureSchema(ctx); err != nil {
		logger.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	if err := buildPipeline(cfg, st, logger).Run(ctx); err != nil {
		logger.Error("ingestion failed, previous dataset untouched", "error", err)
		os.Exit(1)
	}

	if err := report.NewRenderer(os.Stdout).Full(ctx, st, runKeyword); err != nil {
		logger.Error("report failed", "error", err)
		os.Exit(1)
	}
	return nil
}

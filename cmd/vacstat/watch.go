package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/avdonin/vacstat/internal/scheduler"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Refresh the vacancy table on an interval",
	Long:  "Runs the full-refresh pipeline immediately and then on every refresh_interval tick; blocks until SIGINT/SIGTERM.",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"employers", len(cfg.Employers),
		"interval", cfg.RefreshInterval.String(),
		"driver", cfg.Database.Driver,
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

	sched := scheduler.NewScheduler(buildPipeline(cfg, st, logger), cfg.RefreshInterval, logger)
	if err := sched.Run(ctx); err != nil {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/avdonin/vacstat/internal/browse"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse stored vacancies interactively",
	Long:  "Opens a terminal browser over the current vacancy table. Does not refresh the data.",
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

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

	rows, err := st.ListAll(ctx)
	if err != nil {
		logger.Error("failed to list vacancies", "error", err)
		os.Exit(1)
	}

	return browse.Run(rows)
}

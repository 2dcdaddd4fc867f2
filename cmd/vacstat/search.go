package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/avdonin/vacstat/internal/report"
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search stored vacancies by title substring",
	Long:  "Queries the current vacancy table without refreshing it. The keyword is matched as a literal substring.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	keyword := args[0]

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

	rows, err := st.SearchTitle(ctx, keyword)
	if err != nil {
		logger.Error("search failed", "error", err)
		os.Exit(1)
	}

	report.NewRenderer(os.Stdout).Vacancies(fmt.Sprintf("Vacancies matching %q", keyword), rows)
	return nil
}

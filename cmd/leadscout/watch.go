package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"leadscout/internal/config"
	"leadscout/internal/lifecycle"
	"leadscout/internal/scheduler"
	"leadscout/internal/store"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically search and import new leads",
	Long: "Runs the search on an interval, imports postings not seen before, and\n" +
		"announces new leads via the configured notifier. Stops on Ctrl-C.",
	RunE: runWatch,
}

func init() {
	addSearchFlags(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "time between search runs (default from config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	return withService(func(cfg *config.Config, svc *lifecycle.Service, st *store.SQLiteStore, logger *slog.Logger) error {
		params, err := searchParams(cfg)
		if err != nil {
			return err
		}

		interval := cfg.WatchInterval
		if watchInterval != 0 {
			interval = watchInterval
		}
		if interval < time.Minute {
			return fmt.Errorf("--interval must be at least 1m, got %v", interval)
		}

		client := buildScraper(cfg, logger)
		notifyClient := &http.Client{Timeout: 30 * time.Second}
		n := setupNotifier(cfg, notifyClient, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sched := scheduler.NewScheduler(client, svc, n, params, interval, logger)
		return sched.Run(ctx)
	})
}

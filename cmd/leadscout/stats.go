package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"leadscout/internal/config"
	"leadscout/internal/lifecycle"
	"leadscout/internal/model"
	"leadscout/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lead counts per status",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	return withService(func(cfg *config.Config, svc *lifecycle.Service, st *store.SQLiteStore, logger *slog.Logger) error {
		counts, err := st.CountByStatus()
		if err != nil {
			return err
		}

		total := 0
		for _, status := range model.AllStatuses() {
			n := counts[status]
			total += n
			fmt.Printf("%-15s %d\n", status, n)
		}
		fmt.Printf("%-15s %d\n", "total", total)
		return nil
	})
}

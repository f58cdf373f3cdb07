package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"leadscout/internal/config"
	"leadscout/internal/lifecycle"
	"leadscout/internal/model"
	"leadscout/internal/picker"
	"leadscout/internal/stepstone"
	"leadscout/internal/store"
)

var (
	importAll     bool
	importDetails bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Search StepStone and import postings as leads",
	Long: "Runs a StepStone search, lets you pick postings interactively, and saves\n" +
		"the selection as new leads. Postings already known (by URL or title) are skipped.",
	RunE: runImport,
}

func init() {
	addSearchFlags(importCmd)
	importCmd.Flags().BoolVar(&importAll, "all", false, "import every result without the interactive picker")
	importCmd.Flags().BoolVar(&importDetails, "details", false, "also fetch each posting's full text after import")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	return withService(func(cfg *config.Config, svc *lifecycle.Service, st *store.SQLiteStore, logger *slog.Logger) error {
		params, err := searchParams(cfg)
		if err != nil {
			return err
		}

		client := buildScraper(cfg, logger)
		jobs, err := client.Search(cmd.Context(), params)
		if err != nil {
			logger.Error("search failed", "error", err, "partial_results", len(jobs))
		}
		if len(jobs) == 0 {
			fmt.Println("No postings found.")
			return nil
		}

		if !importAll {
			jobs, err = picker.Run(jobs)
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				fmt.Println("Nothing selected.")
				return nil
			}
		}

		res, err := svc.Import(jobs)
		if err != nil {
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				fmt.Println("Nothing to import.")
				return nil
			}
			return err
		}
		fmt.Printf("Imported %d leads, skipped %d already known.\n", res.Imported, res.Skipped)

		if importDetails {
			fetchDetails(cmd, client, svc, res.Leads, logger)
		}
		return nil
	})
}

// fetchDetails pulls the full posting page for each new lead. Failures are
// logged and skipped; the leads stay imported either way.
func fetchDetails(cmd *cobra.Command, client *stepstone.Client, svc *lifecycle.Service, leads []model.Lead, logger *slog.Logger) {
	for _, l := range leads {
		if l.SourceURL == "" {
			continue
		}
		detail, err := client.FetchJobDetail(cmd.Context(), l.SourceURL)
		if err != nil {
			logger.Error("detail fetch failed", "id", l.ID, "url", l.SourceURL, "error", err)
			continue
		}
		if _, err := svc.AttachDetail(l.ID, detail); err != nil {
			logger.Error("attach detail failed", "id", l.ID, "error", err)
		}
	}
}

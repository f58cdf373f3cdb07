package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"leadscout/internal/config"
	"leadscout/internal/stepstone"
)

var (
	searchKeywords string
	searchLocation string
	searchRadius   int
	searchPages    int
	searchDays     int
	searchTitle    string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search StepStone and print matching postings",
	Long:  "Runs a StepStone search with the given parameters and prints the results without importing anything.",
	RunE:  runSearch,
}

func init() {
	addSearchFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

// addSearchFlags registers the shared search parameters on a command.
// Used by search, import, and watch.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&searchKeywords, "keywords", "k", "", "search terms, e.g. \"AI Engineer\"")
	cmd.Flags().StringVarP(&searchLocation, "location", "l", "", "city or region")
	cmd.Flags().IntVar(&searchRadius, "radius", 0, "search radius in km")
	cmd.Flags().IntVar(&searchPages, "pages", 0, "result pages to fetch (1-3)")
	cmd.Flags().IntVar(&searchDays, "days", 0, "only postings from the last N days (1, 3, 7, 14, 30)")
	cmd.Flags().StringVar(&searchTitle, "title", "", "only postings whose title contains this text")
}

// searchParams merges the command-line flags with the configured defaults.
func searchParams(cfg *config.Config) (stepstone.SearchParams, error) {
	p := stepstone.SearchParams{
		SearchQuery: stepstone.SearchQuery{
			Keywords:   cfg.Search.Keywords,
			Location:   cfg.Search.Location,
			Radius:     cfg.Search.Radius,
			DateFilter: cfg.Search.DateFilter,
		},
		MaxPages:    cfg.Search.MaxPages,
		TitleFilter: cfg.Search.TitleFilter,
	}
	if searchKeywords != "" {
		p.Keywords = searchKeywords
	}
	if searchLocation != "" {
		p.Location = searchLocation
	}
	if searchRadius != 0 {
		p.Radius = searchRadius
	}
	if searchPages != 0 {
		p.MaxPages = searchPages
	}
	if searchDays != 0 {
		p.DateFilter = searchDays
	}
	if searchTitle != "" {
		p.TitleFilter = searchTitle
	}

	if p.Keywords == "" {
		return p, fmt.Errorf("no search keywords: pass --keywords or set search.keywords in the config")
	}
	if !stepstone.ValidDateFilter(p.DateFilter) {
		return p, fmt.Errorf("--days must be one of 1, 3, 7, 14, 30")
	}
	return p, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

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

	fmt.Printf("Found %d postings:\n\n", len(jobs))
	for i, j := range jobs {
		fmt.Printf("%2d. %s\n", i+1, j.Title)
		if j.Company != "" || j.Location != "" {
			fmt.Printf("    %s | %s\n", orDash(j.Company), orDash(j.Location))
		}
		if len(j.Keywords) > 0 {
			fmt.Printf("    keywords: %s\n", strings.Join(j.Keywords, ", "))
		}
		fmt.Printf("    %s\n", j.URL)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

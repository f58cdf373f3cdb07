package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"leadscout/internal/config"
	"leadscout/internal/lifecycle"
	"leadscout/internal/model"
	"leadscout/internal/store"
)

var (
	leadsStatus  string
	leadsKeyword string
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List tracked leads",
	RunE:  runLeads,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one lead in full, including its cover letter",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	leadsCmd.Flags().StringVar(&leadsStatus, "status", "", "only leads in this status")
	leadsCmd.Flags().StringVar(&leadsKeyword, "keyword", "", "only leads tagged with this keyword")
	rootCmd.AddCommand(leadsCmd)
	rootCmd.AddCommand(showCmd)
}

// parseLeadID converts a positional argument into a lead ID.
func parseLeadID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid lead id %q", arg)
	}
	return id, nil
}

func runLeads(cmd *cobra.Command, args []string) error {
	return withService(func(cfg *config.Config, svc *lifecycle.Service, st *store.SQLiteStore, logger *slog.Logger) error {
		filter := model.ListFilter{Keyword: leadsKeyword}
		if leadsStatus != "" {
			status, err := model.ParseStatus(leadsStatus)
			if err != nil {
				return err
			}
			filter.Status = status
		}

		leads, err := st.List(filter)
		if err != nil {
			return err
		}
		if len(leads) == 0 {
			fmt.Println("No leads.")
			return nil
		}

		fmt.Printf("%-5s %-15s %-35s %-25s %-12s\n", "ID", "STATUS", "TITLE", "COMPANY", "CREATED")
		for _, l := range leads {
			fmt.Printf("%-5d %-15s %-35s %-25s %-12s\n",
				l.ID, l.Status, clip(l.Title, 35), clip(orDash(l.CompanyName), 25),
				l.CreatedAt.Format(time.DateOnly))
		}
		return nil
	})
}

func runShow(cmd *cobra.Command, args []string) error {
	return withService(func(cfg *config.Config, svc *lifecycle.Service, st *store.SQLiteStore, logger *slog.Logger) error {
		id, err := parseLeadID(args[0])
		if err != nil {
			return err
		}
		lead, err := st.Get(id)
		if err != nil {
			return err
		}

		fmt.Printf("Lead #%d: %s\n", lead.ID, lead.Title)
		fmt.Printf("  Status:    %s\n", lead.Status)
		fmt.Printf("  Source:    %s (%s)\n", lead.Source, orDash(lead.SourceURL))
		fmt.Printf("  Location:  %s\n", orDash(lead.Location))
		fmt.Printf("  Keywords:  %s\n", orDash(lead.Keywords))
		fmt.Printf("  Company:   %s\n", orDash(lead.CompanyName))
		fmt.Printf("  Website:   %s\n", orDash(lead.CompanyWebsite))
		fmt.Printf("  Address:   %s\n", orDash(lead.CompanyAddress))
		fmt.Printf("  Email:     %s\n", orDash(lead.CompanyEmail))
		fmt.Printf("  Contact:   %s", orDash(lead.ContactName))
		if lead.ContactRole != "" {
			fmt.Printf(" (%s)", lead.ContactRole)
		}
		fmt.Println()
		if lead.ContactProfileURL != "" {
			fmt.Printf("  Profile:   %s\n", lead.ContactProfileURL)
		}
		fmt.Printf("  Created:   %s\n", lead.CreatedAt.Format(time.RFC3339))
		fmt.Printf("  Updated:   %s\n", lead.UpdatedAt.Format(time.RFC3339))
		if lead.Preview != "" {
			fmt.Printf("\n%s\n", lead.Preview)
		}
		if lead.CoverLetter != "" {
			fmt.Printf("\n--- Cover letter ---\n%s\n", lead.CoverLetter)
		}
		return nil
	})
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

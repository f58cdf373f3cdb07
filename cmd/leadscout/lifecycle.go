package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"leadscout/internal/config"
	"leadscout/internal/lifecycle"
	"leadscout/internal/model"
	"leadscout/internal/store"
)

var (
	letterSenderName    string
	letterSenderCompany string
)

var activateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Activate a new lead for outreach",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivate,
}

var researchCmd = &cobra.Command{
	Use:   "research <id>",
	Short: "Research company and contact data for an activated lead",
	Args:  cobra.ExactArgs(1),
	RunE:  runResearch,
}

var letterCmd = &cobra.Command{
	Use:   "letter <id>",
	Short: "Generate a cover letter for a researched lead",
	Args:  cobra.ExactArgs(1),
	RunE:  runLetter,
}

var statusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Set a lead's status directly",
	Long:  "Overrides the lead status. Valid values: " + statusList() + ".",
	Args:  cobra.ExactArgs(2),
	RunE:  runStatus,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a lead permanently",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	letterCmd.Flags().StringVar(&letterSenderName, "sender-name", "", "your name for the letter signature")
	letterCmd.Flags().StringVar(&letterSenderCompany, "sender-company", "", "your company for the letter signature")
	rootCmd.AddCommand(activateCmd, researchCmd, letterCmd, statusCmd, deleteCmd)
}

func statusList() string {
	var names []string
	for _, s := range model.AllStatuses() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

func runActivate(cmd *cobra.Command, args []string) error {
	return withService(func(cfg *config.Config, svc *lifecycle.Service, st *store.SQLiteStore, logger *slog.Logger) error {
		id, err := parseLeadID(args[0])
		if err != nil {
			return err
		}
		lead, err := svc.Activate(id)
		if err != nil {
			return err
		}
		fmt.Printf("Lead #%d (%s) is now %s.\n", lead.ID, lead.Title, lead.Status)
		return nil
	})
}

func runResearch(cmd *cobra.Command, args []string) error {
	return withService(func(cfg *config.Config, svc *lifecycle.Service, st *store.SQLiteStore, logger *slog.Logger) error {
		id, err := parseLeadID(args[0])
		if err != nil {
			return err
		}
		lead, err := svc.Research(cmd.Context(), id)
		if errors.Is(err, model.ErrNotConfigured) {
			return fmt.Errorf("research needs an API key: set PERPLEXITY_API_KEY or research.api_key in the config")
		}
		if err != nil {
			return err
		}

		fmt.Printf("Lead #%d researched.\n", lead.ID)
		fmt.Printf("  Website:  %s\n", orDash(lead.CompanyWebsite))
		fmt.Printf("  Address:  %s\n", orDash(lead.CompanyAddress))
		fmt.Printf("  Email:    %s\n", orDash(lead.CompanyEmail))
		fmt.Printf("  Contact:  %s", orDash(lead.ContactName))
		if lead.ContactRole != "" {
			fmt.Printf(" (%s)", lead.ContactRole)
		}
		fmt.Println()
		return nil
	})
}

func runLetter(cmd *cobra.Command, args []string) error {
	return withService(func(cfg *config.Config, svc *lifecycle.Service, st *store.SQLiteStore, logger *slog.Logger) error {
		id, err := parseLeadID(args[0])
		if err != nil {
			return err
		}

		name := letterSenderName
		if name == "" {
			name = cfg.Sender.Name
		}
		company := letterSenderCompany
		if company == "" {
			company = cfg.Sender.Company
		}

		lead, err := svc.GenerateLetter(id, name, company)
		if err != nil {
			return err
		}
		fmt.Println(lead.CoverLetter)
		return nil
	})
}

func runStatus(cmd *cobra.Command, args []string) error {
	return withService(func(cfg *config.Config, svc *lifecycle.Service, st *store.SQLiteStore, logger *slog.Logger) error {
		id, err := parseLeadID(args[0])
		if err != nil {
			return err
		}
		lead, err := svc.SetStatus(id, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Lead #%d is now %s.\n", lead.ID, lead.Status)
		return nil
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	return withService(func(cfg *config.Config, svc *lifecycle.Service, st *store.SQLiteStore, logger *slog.Logger) error {
		id, err := parseLeadID(args[0])
		if err != nil {
			return err
		}
		if err := svc.Delete(id); err != nil {
			return err
		}
		fmt.Printf("Lead #%d deleted.\n", id)
		return nil
	})
}

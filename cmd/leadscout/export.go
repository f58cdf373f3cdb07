package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"leadscout/internal/config"
	"leadscout/internal/export"
	"leadscout/internal/lifecycle"
	"leadscout/internal/model"
	"leadscout/internal/store"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all leads as CSV",
	Long:  "Writes every lead to a semicolon-delimited CSV file, or to stdout with --output -.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "leads.csv", "output file, or - for stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	return withService(func(cfg *config.Config, svc *lifecycle.Service, st *store.SQLiteStore, logger *slog.Logger) error {
		leads, err := st.List(model.ListFilter{})
		if err != nil {
			return err
		}

		if exportOutput == "-" {
			return export.WriteCSV(os.Stdout, leads)
		}

		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()

		if err := export.WriteCSV(f, leads); err != nil {
			return err
		}
		fmt.Printf("Exported %d leads to %s.\n", len(leads), exportOutput)
		return nil
	})
}

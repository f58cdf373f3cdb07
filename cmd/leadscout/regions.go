package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"leadscout/internal/stepstone"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the German regions usable as search locations",
	Run:   runRegions,
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}

func runRegions(cmd *cobra.Command, args []string) {
	regions := stepstone.Regions()

	keys := make([]string, 0, len(regions))
	for k := range regions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%-25s %s\n", k, regions[k])
	}
}

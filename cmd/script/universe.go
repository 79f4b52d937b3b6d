package main

import (
	"finplan/internal/domain"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "Fetch the fund universe and show how it was categorized",
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot := handler.RankedUniverseService.GetRankedUniverse(commandContext())
		if snapshot.Empty() {
			return fmt.Errorf("fund universe unavailable")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d funds fetched at %s (live=%t)\n", len(snapshot.Instruments), snapshot.FetchedAt.Format(time.RFC3339), snapshot.IsLive)

		counts := map[domain.Category]int{}
		for _, in := range snapshot.Instruments {
			counts[in.CategoryOrOther()]++
		}
		for _, c := range domain.AllCategories {
			fmt.Fprintf(out, "  %-10s %d\n", c, counts[c])
		}
		return nil
	},
}

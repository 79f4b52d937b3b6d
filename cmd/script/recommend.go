package main

import (
	"encoding/json"
	"finplan/internal/calculator"
	"finplan/internal/domain"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var recommendFlags struct {
	riskScore  float64
	allocation string
	risk       string
	csvPath    string
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Suggest one fund per allocation bucket",
	Long: `Suggest funds for an allocation. Either pass --risk-score to use the model
allocation for that score, or --allocation with a JSON object such as
'{"Equity - Large Cap": 60, "Debt": 40}' together with --risk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		allocation, risk, err := resolveAllocation()
		if err != nil {
			return err
		}

		recs, isLive := handler.RecommendationService.SuggestFunds(commandContext(), allocation, risk)
		printRecommendations(cmd.OutOrStdout(), recs, isLive)

		if recommendFlags.csvPath != "" {
			return writeFile(recommendFlags.csvPath, func(w io.Writer) error {
				return writeRecommendationsCSV(w, recs)
			})
		}
		return nil
	},
}

func resolveAllocation() (domain.Allocation, string, error) {
	if recommendFlags.allocation == "" {
		result := calculator.AssetAllocation(recommendFlags.riskScore)
		return result.Allocation, result.Category, nil
	}

	allocation := domain.Allocation{}
	if err := json.Unmarshal([]byte(recommendFlags.allocation), &allocation); err != nil {
		return nil, "", fmt.Errorf("failed to parse --allocation: %w", err)
	}
	return allocation, recommendFlags.risk, nil
}

func init() {
	recommendCmd.Flags().Float64Var(&recommendFlags.riskScore, "risk-score", 6, "risk score used to pick the model allocation")
	recommendCmd.Flags().StringVar(&recommendFlags.allocation, "allocation", "", "allocation as a JSON object of label to weight")
	recommendCmd.Flags().StringVar(&recommendFlags.risk, "risk", calculator.RiskModerate, "risk profile label used with --allocation")
	recommendCmd.Flags().StringVar(&recommendFlags.csvPath, "csv", "", "write recommendations as csv to this path, - for stdout")
}

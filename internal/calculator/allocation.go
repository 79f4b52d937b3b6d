package calculator

import "finplan/internal/domain"

type AllocationResult struct {
	Category   string            `json:"category"`
	Allocation domain.Allocation `json:"allocation"`
}

// AssetAllocation returns the model allocation for a risk score. Every
// table sums to exactly 100 and lists the same labels in the same order
func AssetAllocation(riskScore float64) AllocationResult {
	category := RiskCategory(riskScore)

	var weights [5]float64
	switch category {
	case RiskConservative:
		weights = [5]float64{15, 5, 0, 70, 10}
	case RiskModerate:
		weights = [5]float64{30, 20, 10, 30, 10}
	default:
		weights = [5]float64{40, 30, 10, 10, 10}
	}

	return AllocationResult{
		Category: category,
		Allocation: domain.Allocation{
			{Label: "Equity - Large Cap", Weight: weights[0]},
			{Label: "Equity - Flexi Cap", Weight: weights[1]},
			{Label: "Equity - Hybrid", Weight: weights[2]},
			{Label: "Debt", Weight: weights[3]},
			{Label: "Gold", Weight: weights[4]},
		},
	}
}

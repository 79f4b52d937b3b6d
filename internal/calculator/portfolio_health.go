package calculator

import (
	"finplan/internal/domain"
	"finplan/internal/util"
	"fmt"
)

const (
	breakdownFixedDeposits = "Fixed Deposits / Bonds"
	breakdownSavings       = "Savings / Cash"
	breakdownGold          = "Gold"
	breakdownEquity        = "Mutual Funds / Equity"
)

type ExistingAssets struct {
	FixedDeposits float64 `json:"existingFd"`
	Savings       float64 `json:"existingSavings"`
	Gold          float64 `json:"existingGold"`
	MutualFunds   float64 `json:"existingMutualFunds"`
}

func (a ExistingAssets) Validate() error {
	if a.FixedDeposits < 0 || a.Savings < 0 || a.Gold < 0 || a.MutualFunds < 0 {
		return fmt.Errorf("%w: existing assets must be non-negative", ErrInvalidProfile)
	}
	return nil
}

func (a ExistingAssets) Total() float64 {
	return a.FixedDeposits + a.Savings + a.Gold + a.MutualFunds
}

type PortfolioHealth struct {
	TotalCorpus          float64           `json:"totalCorpus"`
	DiversificationScore int               `json:"diversificationScore"`
	RiskExposure         string            `json:"riskExposure,omitempty"`
	Insights             []string          `json:"insights"`
	Breakdown            domain.Allocation `json:"breakdown"`
}

// AnalyzePortfolio scores how well the existing assets are spread on a
// 0-10 scale, penalizing cash drag, low equity, heavy gold and heavy FDs
func AnalyzePortfolio(assets ExistingAssets) PortfolioHealth {
	total := assets.Total()
	if total == 0 {
		return PortfolioHealth{
			Insights:  []string{"Start investing to build a portfolio."},
			Breakdown: domain.Allocation{},
		}
	}

	pct := func(v float64) float64 {
		return util.Round2(v / total * 100)
	}
	fdPct := pct(assets.FixedDeposits)
	savingsPct := pct(assets.Savings)
	goldPct := pct(assets.Gold)
	equityPct := pct(assets.MutualFunds)
	breakdown := domain.NewAllocation(
		domain.AllocationEntry{Label: breakdownFixedDeposits, Weight: fdPct},
		domain.AllocationEntry{Label: breakdownSavings, Weight: savingsPct},
		domain.AllocationEntry{Label: breakdownGold, Weight: goldPct},
		domain.AllocationEntry{Label: breakdownEquity, Weight: equityPct},
	)

	score := 10
	insights := []string{}

	if savingsPct > 20 {
		score -= 2
		insights = append(insights, "High cash drag. Consider moving excess savings to liquid funds or short-term debt.")
	}
	if equityPct < 20 {
		score -= 2
		insights = append(insights, "Low equity exposure limits long-term wealth creation. Increase SIPs in equity funds.")
	}
	if goldPct > 15 {
		score -= 1
		insights = append(insights, "Gold allocation is slightly high. Limit to 5-10% for optimal hedging.")
	}
	if fdPct > 60 {
		score -= 2
		insights = append(insights, "Heavy reliance on FDs. Tax-inefficient and may underperform inflation.")
	}
	if score == 10 {
		insights = append(insights, "Your existing portfolio is well-diversified!")
	}

	return PortfolioHealth{
		TotalCorpus:          total,
		DiversificationScore: max(0, score),
		RiskExposure:         riskExposure(equityPct),
		Insights:             insights,
		Breakdown:            breakdown,
	}
}

func riskExposure(equityPct float64) string {
	if equityPct < 30 {
		return "Conservative (Low Equity)"
	} else if equityPct <= 60 {
		return "Moderate (Balanced Equity)"
	}
	return "Aggressive (High Equity)"
}

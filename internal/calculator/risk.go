package calculator

import (
	"errors"
	"finplan/internal/util"
	"fmt"
	"strings"
)

const (
	RiskConservative = "Conservative"
	RiskModerate     = "Moderate"
	RiskAggressive   = "Aggressive"
)

const (
	ageWeight        = 0.30
	dependentsWeight = 0.20
	behaviorWeight   = 0.30
	incomeWeight     = 0.20
)

var ErrInvalidProfile = errors.New("invalid client profile")

// ClientProfile is what an investor tells us about themselves
type ClientProfile struct {
	Age                    int     `json:"age"`
	MonthlyIncome          float64 `json:"monthlyIncome"`
	MonthlySavingsCapacity float64 `json:"monthlySavingsCapacity"`
	Dependents             int     `json:"dependents"`
	MaritalStatus          string  `json:"maritalStatus"`
	RiskAppetite           string  `json:"riskAppetite"`
	BehaviorTraits         string  `json:"behaviorTraits"`
	ExistingAssets
}

func (p ClientProfile) Validate() error {
	if p.Age <= 18 {
		return fmt.Errorf("%w: age must be > 18, got %d", ErrInvalidProfile, p.Age)
	}
	if p.MonthlyIncome < 0 || p.MonthlySavingsCapacity < 0 || p.Dependents < 0 {
		return fmt.Errorf("%w: income, savings and dependents must be non-negative", ErrInvalidProfile)
	}
	if p.MonthlySavingsCapacity > p.MonthlyIncome {
		return fmt.Errorf("%w: savings capacity cannot exceed monthly income", ErrInvalidProfile)
	}
	if err := p.ExistingAssets.Validate(); err != nil {
		return err
	}
	return nil
}

type RiskScoreExplanation struct {
	AgeContribution             float64 `json:"ageContribution"`
	DependentsContribution      float64 `json:"dependentsContribution"`
	IncomeStabilityContribution float64 `json:"incomeStabilityContribution"`
	BehavioralContribution      float64 `json:"behavioralContribution"`
	TotalScore                  float64 `json:"totalScore"`
}

type RiskScoreResult struct {
	Score       float64              `json:"score"`
	Category    string               `json:"category"`
	Explanation RiskScoreExplanation `json:"explanation"`
}

// RiskCategory buckets a 0-10 score. Both bounds of Moderate are inclusive
func RiskCategory(score float64) string {
	if score < 5 {
		return RiskConservative
	} else if score <= 7 {
		return RiskModerate
	}
	return RiskAggressive
}

func ageFactor(age int) float64 {
	switch {
	case age < 35:
		return 8
	case age <= 45:
		return 7
	case age <= 55:
		return 5
	default:
		return 3
	}
}

func dependentsFactor(dependents int) float64 {
	switch dependents {
	case 0:
		return 8
	case 1:
		return 6
	default:
		return 4
	}
}

func behaviorFactor(behavior string) float64 {
	lower := strings.ToLower(behavior)
	switch {
	case strings.Contains(lower, "stability") || strings.Contains(lower, "low"):
		return 5
	case strings.Contains(lower, "moderate"):
		return 7
	case strings.Contains(lower, "high") || strings.Contains(lower, "aggressive"):
		return 9
	default:
		return 7
	}
}

// incomeFactor infers income stability from the savings ratio
func incomeFactor(monthlyIncome, monthlySavings float64) float64 {
	ratio := 0.0
	if monthlyIncome > 0 {
		ratio = monthlySavings / monthlyIncome
	}
	switch {
	case ratio >= 0.3:
		return 9
	case ratio >= 0.1:
		return 7
	default:
		return 5
	}
}

// RiskScore computes an explainable 0-10 score from four weighted factors
func RiskScore(p ClientProfile) (*RiskScoreResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	age := ageFactor(p.Age) * ageWeight
	dependents := dependentsFactor(p.Dependents) * dependentsWeight
	income := incomeFactor(p.MonthlyIncome, p.MonthlySavingsCapacity) * incomeWeight
	behavior := behaviorFactor(p.BehaviorTraits) * behaviorWeight

	score := age + dependents + income + behavior

	return &RiskScoreResult{
		Score:    util.Round2(score),
		Category: RiskCategory(util.Round2(score)),
		Explanation: RiskScoreExplanation{
			AgeContribution:             util.Round2(age),
			DependentsContribution:      util.Round2(dependents),
			IncomeStabilityContribution: util.Round2(income),
			BehavioralContribution:      util.Round2(behavior),
			TotalScore:                  util.Round2(score),
		},
	}, nil
}

package l3_service

import (
	"context"
	"finplan/internal/calculator"
	"finplan/internal/domain"
	"finplan/internal/logger"
	"fmt"
)

type EducationGoalRequest struct {
	PresentCost float64 `json:"presentCost"`
	YearsToGoal int     `json:"yearsToGoal"`
}

type PlanRequest struct {
	calculator.ClientProfile
	CurrentMonthlyExpense float64               `json:"currentMonthlyExpense"`
	RetirementAge         int                   `json:"retirementAge"`
	Education             *EducationGoalRequest `json:"education"`
}

type Plan struct {
	RiskProfile     calculator.RiskScoreResult  `json:"riskProfile"`
	PortfolioHealth calculator.PortfolioHealth  `json:"portfolioHealth"`
	Allocation      calculator.AllocationResult `json:"allocation"`
	Recommendations []domain.Recommendation     `json:"recommendations"`
	IsLiveData      bool                        `json:"isLiveData"`
	Retirement      calculator.GoalResult       `json:"retirement"`
	Education       *calculator.GoalResult      `json:"education,omitempty"`
	Projection      []calculator.ProjectionRow  `json:"projection"`
	MonteCarlo      calculator.MonteCarloResult `json:"monteCarlo"`
}

// PlanAssumptions are the market assumptions every plan is built on
type PlanAssumptions struct {
	ExpectedReturn float64
	Volatility     float64
}

type PlanService interface {
	BuildPlan(ctx context.Context, req PlanRequest) (*Plan, error)
}

type planServiceHandler struct {
	RecommendationService RecommendationService
	Assumptions           PlanAssumptions
}

func NewPlanService(recommendationService RecommendationService, assumptions PlanAssumptions) PlanService {
	return planServiceHandler{
		RecommendationService: recommendationService,
		Assumptions:           assumptions,
	}
}

// BuildPlan runs the whole pipeline for one client: risk score, allocation,
// fund picks, goals, a projection to retirement and the odds of getting
// there. Only an invalid profile is an error; a missing fund universe just
// leaves the recommendations empty
func (h planServiceHandler) BuildPlan(ctx context.Context, req PlanRequest) (*Plan, error) {
	if err := validatePlanRequest(req); err != nil {
		return nil, err
	}
	expectedReturn := h.Assumptions.ExpectedReturn
	profile := domain.ProfileFromContext(ctx)

	_, endSpan := profile.StartNewSpan("risk score")
	risk, err := calculator.RiskScore(req.ClientProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to compute risk score: %w", err)
	}

	endSpan()

	_, endSpan = profile.StartNewSpan("fund selection")
	allocation := calculator.AssetAllocation(risk.Score)
	recommendations, isLive := h.RecommendationService.SuggestFunds(ctx, allocation.Allocation, risk.Category)

	endSpan()

	_, endSpan = profile.StartNewSpan("goals")
	existingCorpus := req.ExistingAssets.Total()
	retirement := calculator.RetirementGoal(calculator.RetirementGoalInput{
		CurrentAge:            req.Age,
		CurrentMonthlyExpense: req.CurrentMonthlyExpense,
		ExpectedReturnRate:    expectedReturn,
		RetirementAge:         req.RetirementAge,
		ExistingCorpus:        existingCorpus,
	})

	var education *calculator.GoalResult
	if req.Education != nil {
		result := calculator.EducationGoal(req.Education.PresentCost, req.Education.YearsToGoal, expectedReturn)
		education = &result
	}

	endSpan()

	_, endSpan = profile.StartNewSpan("monte carlo")
	monteCarlo, err := calculator.RunMonteCarlo(calculator.MonteCarloInput{
		InitialCorpus:        existingCorpus,
		MonthlySip:           req.MonthlySavingsCapacity,
		Years:                retirement.YearsToGoal,
		TargetCorpus:         retirement.FutureCorpus,
		ExpectedAnnualReturn: expectedReturn,
		AnnualVolatility:     h.Assumptions.Volatility,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run monte carlo: %w", err)
	}
	endSpan()

	logger.FromContext(ctx).Infof(
		"built %s plan: %d funds, retirement in %d years, %.2f%% success",
		risk.Category,
		len(recommendations),
		retirement.YearsToGoal,
		monteCarlo.SuccessProbability,
	)

	return &Plan{
		RiskProfile:     *risk,
		PortfolioHealth: calculator.AnalyzePortfolio(req.ExistingAssets),
		Allocation:      allocation,
		Recommendations: recommendations,
		IsLiveData:      isLive,
		Retirement:      retirement,
		Education:       education,
		Projection:      calculator.ProjectionTable(existingCorpus, req.MonthlySavingsCapacity, expectedReturn, retirement.YearsToGoal),
		MonteCarlo:      *monteCarlo,
	}, nil
}

func validatePlanRequest(req PlanRequest) error {
	if req.Age > calculator.MaxAge {
		return fmt.Errorf("%w: age must be at most %d, got %d", calculator.ErrInvalidProfile, calculator.MaxAge, req.Age)
	}
	if err := calculator.ValidateAmount("current monthly expense", req.CurrentMonthlyExpense); err != nil {
		return err
	}
	if err := calculator.ValidateRetirementAge(req.RetirementAge); err != nil {
		return err
	}
	for name, amount := range map[string]float64{
		"monthly income":           req.MonthlyIncome,
		"monthly savings capacity": req.MonthlySavingsCapacity,
		"existing assets":          req.ExistingAssets.Total(),
	} {
		if err := calculator.ValidateAmount(name, amount); err != nil {
			return err
		}
	}
	if req.Education != nil {
		return calculator.ValidateEducationGoal(req.Education.PresentCost, req.Education.YearsToGoal, 0)
	}
	return nil
}

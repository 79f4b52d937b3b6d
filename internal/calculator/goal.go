package calculator

import (
	"finplan/internal/util"
	"math"
)

const (
	RetirementInflation  = 0.065
	EducationInflation   = 0.09
	DefaultRetirementAge = 60
	// corpus needed at retirement as a multiple of annual expense
	retirementCorpusMultiple = 25
)

type RetirementGoalInput struct {
	CurrentAge            int     `json:"currentAge"`
	CurrentMonthlyExpense float64 `json:"currentMonthlyExpense"`
	ExpectedReturnRate    float64 `json:"expectedReturnRate"`
	RetirementAge         int     `json:"retirementAge"`
	ExistingCorpus        float64 `json:"existingCorpus"`
}

type GoalResult struct {
	GoalName          string  `json:"goalName"`
	YearsToGoal       int     `json:"yearsToGoal"`
	FutureCorpus      float64 `json:"futureCorpus"`
	RequiredSip       float64 `json:"requiredSip"`
	TotalFutureCorpus float64 `json:"totalFutureCorpus,omitempty"`
	FvExistingCorpus  float64 `json:"fvExistingCorpus,omitempty"`
	ShortfallCorpus   float64 `json:"shortfallCorpus,omitempty"`
}

// RetirementGoal sizes the retirement corpus as 25 years of the monthly
// expense inflated to the retirement date, nets out what the existing
// corpus grows to and returns the SIP needed to close the gap
func RetirementGoal(in RetirementGoalInput) GoalResult {
	retirementAge := in.RetirementAge
	if retirementAge == 0 {
		retirementAge = DefaultRetirementAge
	}
	years := retirementAge - in.CurrentAge
	if years <= 0 {
		return GoalResult{GoalName: "Retirement"}
	}

	// years is positive so this cannot fail
	futureMonthlyExpense, _ := FutureValue(in.CurrentMonthlyExpense, RetirementInflation, years)
	totalCorpus := futureMonthlyExpense * 12 * retirementCorpusMultiple

	fvExisting := in.ExistingCorpus * math.Pow(1+in.ExpectedReturnRate, float64(years))
	shortfall := math.Max(0, totalCorpus-fvExisting)

	return GoalResult{
		GoalName:          "Retirement",
		YearsToGoal:       years,
		FutureCorpus:      util.Round2(totalCorpus),
		RequiredSip:       util.Round2(RequiredSip(shortfall, in.ExpectedReturnRate, years)),
		TotalFutureCorpus: util.Round2(totalCorpus),
		FvExistingCorpus:  util.Round2(fvExisting),
		ShortfallCorpus:   util.Round2(shortfall),
	}
}

// EducationGoal inflates today's cost at education inflation. A goal that
// is already due needs the present cost and no SIP
func EducationGoal(presentCost float64, yearsToGoal int, expectedReturnRate float64) GoalResult {
	if yearsToGoal <= 0 {
		return GoalResult{
			GoalName:     "Child Education",
			FutureCorpus: presentCost,
		}
	}

	futureCorpus, _ := FutureValue(presentCost, EducationInflation, yearsToGoal)
	return GoalResult{
		GoalName:     "Child Education",
		YearsToGoal:  yearsToGoal,
		FutureCorpus: util.Round2(futureCorpus),
		RequiredSip:  util.Round2(RequiredSip(futureCorpus, expectedReturnRate, yearsToGoal)),
	}
}

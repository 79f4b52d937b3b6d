package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRetirementGoal(t *testing.T) {
	t.Run("baseline", func(t *testing.T) {
		res := RetirementGoal(RetirementGoalInput{
			CurrentAge:            30,
			CurrentMonthlyExpense: 50000,
			ExpectedReturnRate:    0.12,
		})
		expectedCorpus := 50000 * math.Pow(1.065, 30) * 12 * 25

		require.Equal(t, "Retirement", res.GoalName)
		require.Equal(t, 30, res.YearsToGoal)
		require.InDelta(t, expectedCorpus, res.FutureCorpus, 0.01)
		require.Equal(t, res.FutureCorpus, res.TotalFutureCorpus)
		require.Equal(t, res.FutureCorpus, res.ShortfallCorpus)
		require.InDelta(t, RequiredSip(expectedCorpus, 0.12, 30), res.RequiredSip, 0.01)
		require.Greater(t, res.RequiredSip, 0.0)
	})

	t.Run("existing corpus reduces the sip", func(t *testing.T) {
		base := RetirementGoal(RetirementGoalInput{CurrentAge: 35, CurrentMonthlyExpense: 40000, ExpectedReturnRate: 0.12, RetirementAge: 55})
		withCorpus := RetirementGoal(RetirementGoalInput{CurrentAge: 35, CurrentMonthlyExpense: 40000, ExpectedReturnRate: 0.12, RetirementAge: 55, ExistingCorpus: 1000000})

		require.Equal(t, 20, withCorpus.YearsToGoal)
		require.Equal(t, base.FutureCorpus, withCorpus.FutureCorpus)
		require.InDelta(t, 1000000*math.Pow(1.12, 20), withCorpus.FvExistingCorpus, 0.01)
		require.Less(t, withCorpus.RequiredSip, base.RequiredSip)
	})

	t.Run("existing corpus covers everything", func(t *testing.T) {
		res := RetirementGoal(RetirementGoalInput{CurrentAge: 50, CurrentMonthlyExpense: 10000, ExpectedReturnRate: 0.1, ExistingCorpus: 1e9})
		require.Equal(t, 0.0, res.ShortfallCorpus)
		require.Equal(t, 0.0, res.RequiredSip)
	})

	t.Run("already retired", func(t *testing.T) {
		res := RetirementGoal(RetirementGoalInput{CurrentAge: 65, CurrentMonthlyExpense: 10000, ExpectedReturnRate: 0.1})
		require.Equal(t, GoalResult{GoalName: "Retirement"}, res)
	})
}

func TestEducationGoal(t *testing.T) {
	t.Run("baseline", func(t *testing.T) {
		res := EducationGoal(2000000, 12, 0.12)
		require.Equal(t, 12, res.YearsToGoal)
		require.Greater(t, res.FutureCorpus, 2000000.0)
		require.InDelta(t, 2000000*math.Pow(1.09, 12), res.FutureCorpus, 0.01)
		require.Greater(t, res.RequiredSip, 0.0)
	})

	t.Run("goal already due", func(t *testing.T) {
		res := EducationGoal(500000, 0, 0.12)
		require.Equal(t, GoalResult{GoalName: "Child Education", FutureCorpus: 500000}, res)
	})
}

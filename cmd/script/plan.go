package main

import (
	"finplan/internal/calculator"
	l3_service "finplan/internal/service/l3"
	"finplan/internal/util"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type planInput struct {
	req            l3_service.PlanRequest
	educationCost  float64
	educationYears int
}

func (in planInput) request() l3_service.PlanRequest {
	req := in.req
	if in.educationYears > 0 {
		req.Education = &l3_service.EducationGoalRequest{
			PresentCost: in.educationCost,
			YearsToGoal: in.educationYears,
		}
	}
	return req
}

var planFlags struct {
	planInput
	projectionCSV string
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a full financial plan for one client",
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := handler.PlanService.BuildPlan(commandContext(), planFlags.request())
		if err != nil {
			return err
		}
		printPlan(cmd.OutOrStdout(), plan)

		if planFlags.projectionCSV != "" {
			return writeFile(planFlags.projectionCSV, func(w io.Writer) error {
				return writeProjectionCSV(w, plan.Projection)
			})
		}
		return nil
	},
}

func printPlan(w io.Writer, plan *l3_service.Plan) {
	fmt.Fprintf(w, "Risk profile: %s (%.2f / 10)\n", plan.RiskProfile.Category, plan.RiskProfile.Score)

	health := plan.PortfolioHealth
	fmt.Fprintf(w, "Existing corpus: %s, diversification %d / 10\n", util.FormatINR(health.TotalCorpus), health.DiversificationScore)
	for _, insight := range health.Insights {
		fmt.Fprintf(w, "  - %s\n", insight)
	}

	fmt.Fprintln(w, "Allocation:")
	for _, e := range plan.Allocation.Allocation {
		fmt.Fprintf(w, "  %-20s %5.1f%%\n", e.Label, e.Weight)
	}

	printRecommendations(w, plan.Recommendations, plan.IsLiveData)
	printGoal(w, plan.Retirement)
	if plan.Education != nil {
		printGoal(w, *plan.Education)
	}

	fmt.Fprintf(w, "Monte Carlo: %.2f%% chance of reaching the retirement corpus (median %s)\n",
		plan.MonteCarlo.SuccessProbability, util.FormatINR(plan.MonteCarlo.MedianCorpus))
}

func printGoal(w io.Writer, goal calculator.GoalResult) {
	fmt.Fprintf(w, "%s in %d years: corpus %s, monthly SIP %s\n",
		goal.GoalName, goal.YearsToGoal, util.FormatINR(goal.FutureCorpus), util.FormatINR(goal.RequiredSip))
}

// bindPlanFlags registers the client profile and goal flags shared by plan and report
func bindPlanFlags(cmd *cobra.Command, in *planInput) {
	flags := cmd.Flags()
	flags.IntVar(&in.req.Age, "age", 30, "client age")
	flags.Float64Var(&in.req.MonthlyIncome, "income", 100000, "monthly income")
	flags.Float64Var(&in.req.MonthlySavingsCapacity, "savings", 30000, "monthly savings capacity")
	flags.IntVar(&in.req.Dependents, "dependents", 0, "number of dependents")
	flags.StringVar(&in.req.BehaviorTraits, "behavior", "moderate", "behavior traits, e.g. stability, moderate, high risk")
	flags.Float64Var(&in.req.CurrentMonthlyExpense, "expense", 50000, "current monthly expense")
	flags.IntVar(&in.req.RetirementAge, "retirement-age", calculator.DefaultRetirementAge, "target retirement age")
	flags.Float64Var(&in.req.FixedDeposits, "fd", 0, "existing fixed deposits")
	flags.Float64Var(&in.req.Savings, "cash", 0, "existing savings account balance")
	flags.Float64Var(&in.req.Gold, "gold", 0, "existing gold")
	flags.Float64Var(&in.req.MutualFunds, "mutual-funds", 0, "existing mutual funds and equity")
	flags.Float64Var(&in.educationCost, "education-cost", 0, "present cost of a child's education")
	flags.IntVar(&in.educationYears, "education-years", 0, "years until the education goal")
}

func init() {
	bindPlanFlags(planCmd, &planFlags.planInput)
	planCmd.Flags().StringVar(&planFlags.projectionCSV, "projection-csv", "", "write the yearly projection as csv to this path, - for stdout")
}

package l3_service

import (
	"bytes"
	"context"
	"finplan/internal/calculator"
	"finplan/internal/domain"
	"finplan/internal/logger"
	"finplan/internal/util"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/go-pdf/fpdf"
)

type ReportRequest struct {
	ClientName string `json:"clientName"`
	PlanRequest
}

type ReportService interface {
	GeneratePlanReport(ctx context.Context, req ReportRequest) ([]byte, error)
}

type reportServiceHandler struct {
	PlanService PlanService
	Disclaimer  string
	Compress    bool
	Now         func() time.Time
}

func NewReportService(planService PlanService, disclaimer string) ReportService {
	return reportServiceHandler{
		PlanService: planService,
		Disclaimer:  disclaimer,
		Compress:    true,
		Now:         time.Now,
	}
}

// GeneratePlanReport builds the client's plan and renders it as an A4 pdf
func (h reportServiceHandler) GeneratePlanReport(ctx context.Context, req ReportRequest) ([]byte, error) {
	plan, err := h.PlanService.BuildPlan(ctx, req.PlanRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to build plan: %w", err)
	}

	_, endSpan := domain.ProfileFromContext(ctx).StartNewSpan("render report")
	out, err := h.render(req, plan)
	endSpan()
	if err != nil {
		return nil, fmt.Errorf("failed to render plan report: %w", err)
	}

	logger.FromContext(ctx).Infof("rendered %d byte plan report", len(out))
	return out, nil
}

const (
	reportFont       = "Arial"
	reportLineHeight = 6.0
	reportWidth      = 190.0
)

type planReport struct {
	pdf *fpdf.Fpdf
	// core fonts are cp1252
	tr func(string) string
}

func (h reportServiceHandler) render(req ReportRequest, plan *Plan) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(h.Compress)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.SetTitle("Financial Plan Report", true)
	pdf.SetCreator("finplan", true)
	pdf.AddPage()

	r := planReport{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}

	clientName := strings.TrimSpace(req.ClientName)
	if clientName == "" {
		clientName = "Client"
	}
	r.title("Financial Plan Report")
	r.line(fmt.Sprintf("Prepared for %s on %s", clientName, h.Now().Format("02 Jan 2006")))

	r.section("Client Profile")
	r.keyValues([][2]string{
		{"Age", strconv.Itoa(req.Age)},
		{"Monthly income", reportINR(req.MonthlyIncome)},
		{"Monthly savings capacity", reportINR(req.MonthlySavingsCapacity)},
		{"Current monthly expense", reportINR(req.CurrentMonthlyExpense)},
		{"Dependents", strconv.Itoa(req.Dependents)},
	})

	risk := plan.RiskProfile
	r.section("Risk Profile")
	r.keyValues([][2]string{
		{"Risk score", fmt.Sprintf("%.2f / 10", risk.Score)},
		{"Risk category", risk.Category},
		{"Age contribution", fmt.Sprintf("%.2f", risk.Explanation.AgeContribution)},
		{"Dependents contribution", fmt.Sprintf("%.2f", risk.Explanation.DependentsContribution)},
		{"Income stability contribution", fmt.Sprintf("%.2f", risk.Explanation.IncomeStabilityContribution)},
		{"Behavioral contribution", fmt.Sprintf("%.2f", risk.Explanation.BehavioralContribution)},
	})

	r.section("Goals")
	r.goal(plan.Retirement)
	if plan.Education != nil {
		r.goal(*plan.Education)
	}

	r.section("Recommended Asset Allocation")
	rows := [][]string{}
	for _, e := range plan.Allocation.Allocation {
		rows = append(rows, []string{e.Label, fmt.Sprintf("%.1f%%", e.Weight)})
	}
	rows = append(rows, []string{"Total", fmt.Sprintf("%.1f%%", plan.Allocation.Allocation.Total())})
	r.table([]string{"Asset class", "Weight"}, []float64{120, 40}, rows)

	health := plan.PortfolioHealth
	r.section("Existing Portfolio Health")
	r.keyValues([][2]string{
		{"Total corpus", reportINR(health.TotalCorpus)},
		{"Diversification score", fmt.Sprintf("%d / 10", health.DiversificationScore)},
		{"Risk exposure", health.RiskExposure},
	})
	for _, insight := range health.Insights {
		r.line("- " + insight)
	}

	r.section("Recommended Funds")
	if len(plan.Recommendations) == 0 {
		r.line("No fund data is available right now.")
	} else {
		rows = [][]string{}
		for _, rec := range plan.Recommendations {
			rows = append(rows, []string{
				rec.AssetClass,
				fmt.Sprintf("%.1f%%", rec.Weight),
				rec.Name,
				rec.NAV.StringFixed(2),
				fmt.Sprintf("%.2f%%", rec.CAGR3Y),
			})
		}
		r.table([]string{"Asset class", "Weight", "Fund", "NAV", "3y CAGR"}, []float64{32, 18, 100, 20, 20}, rows)
		if !plan.IsLiveData {
			r.line("Fund data is from the last successful refresh and may be out of date.")
		}
	}

	mc := plan.MonteCarlo
	r.section("Monte Carlo Simulation")
	r.keyValues([][2]string{
		{"Probability of reaching the retirement corpus", fmt.Sprintf("%.2f%%", mc.SuccessProbability)},
		{"Median corpus", reportINR(mc.MedianCorpus)},
		{"Pessimistic (10th percentile)", reportINR(mc.P10Corpus)},
		{"Optimistic (90th percentile)", reportINR(mc.P90Corpus)},
	})
	if n := len(plan.Projection); n > 0 {
		last := plan.Projection[n-1]
		r.line(fmt.Sprintf("Projected value after %d years: %s on %s invested", last.Year, reportINR(last.TotalValue), reportINR(last.Invested)))
	}

	disclaimer := h.Disclaimer
	if disclaimer == "" {
		disclaimer = "Market performance is not guaranteed."
	}
	r.section("Disclaimer")
	r.pdf.SetFont(reportFont, "I", 9)
	r.pdf.MultiCell(reportWidth, 5, r.tr(disclaimer), "", "L", false)

	if pdf.Err() {
		return nil, pdf.Error()
	}
	buf := bytes.Buffer{}
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// reportINR swaps the rupee sign for "Rs." since core fonts cannot draw it
func reportINR(amount float64) string {
	return strings.Replace(util.FormatINR(amount), money.GetCurrency(money.INR).Grapheme, "Rs. ", 1)
}

func (r planReport) title(text string) {
	r.pdf.SetFont(reportFont, "B", 16)
	r.pdf.CellFormat(reportWidth, 10, r.tr(text), "", 1, "L", false, 0, "")
}

func (r planReport) section(text string) {
	r.pdf.Ln(4)
	r.pdf.SetFont(reportFont, "B", 12)
	r.pdf.SetFillColor(230, 230, 230)
	r.pdf.CellFormat(reportWidth, 8, r.tr(text), "", 1, "L", true, 0, "")
	r.pdf.SetFont(reportFont, "", 10)
}

func (r planReport) line(text string) {
	r.pdf.SetFont(reportFont, "", 10)
	r.pdf.MultiCell(reportWidth, reportLineHeight, r.tr(text), "", "L", false)
}

func (r planReport) keyValues(rows [][2]string) {
	for _, kv := range rows {
		r.pdf.SetFont(reportFont, "", 10)
		r.pdf.CellFormat(95, reportLineHeight, r.tr(kv[0]), "", 0, "L", false, 0, "")
		r.pdf.SetFont(reportFont, "B", 10)
		r.pdf.CellFormat(95, reportLineHeight, r.tr(kv[1]), "", 1, "L", false, 0, "")
	}
	r.pdf.SetFont(reportFont, "", 10)
}

func (r planReport) goal(goal calculator.GoalResult) {
	r.pdf.SetFont(reportFont, "B", 10)
	r.pdf.CellFormat(reportWidth, reportLineHeight, r.tr(goal.GoalName), "", 1, "L", false, 0, "")
	rows := [][2]string{
		{"Years to goal", strconv.Itoa(goal.YearsToGoal)},
		{"Corpus needed", reportINR(goal.FutureCorpus)},
		{"Monthly SIP required", reportINR(goal.RequiredSip)},
	}
	if goal.FvExistingCorpus > 0 {
		rows = append(rows,
			[2]string{"Existing corpus at goal", reportINR(goal.FvExistingCorpus)},
			[2]string{"Shortfall", reportINR(goal.ShortfallCorpus)},
		)
	}
	r.keyValues(rows)
}

// table draws a bordered table, truncating cells that do not fit their column
func (r planReport) table(headers []string, widths []float64, rows [][]string) {
	r.pdf.SetFont(reportFont, "B", 9)
	r.pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		r.pdf.CellFormat(widths[i], 7, r.tr(h), "1", 0, "L", true, 0, "")
	}
	r.pdf.Ln(-1)

	r.pdf.SetFont(reportFont, "", 9)
	for _, row := range rows {
		for i, cell := range row {
			r.pdf.CellFormat(widths[i], 6, r.fit(r.tr(cell), widths[i]-2), "1", 0, "L", false, 0, "")
		}
		r.pdf.Ln(-1)
	}
}

func (r planReport) fit(text string, width float64) string {
	if r.pdf.GetStringWidth(text) <= width {
		return text
	}
	for len(text) > 0 && r.pdf.GetStringWidth(text+"...") > width {
		text = text[:len(text)-1]
	}
	return text + "..."
}

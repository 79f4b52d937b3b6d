package main

import (
	"finplan/internal/calculator"
	"finplan/internal/domain"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

type recommendationRow struct {
	AssetClass   string  `csv:"asset_class"`
	Weight       float64 `csv:"weight"`
	SchemeCode   string  `csv:"scheme_code"`
	Name         string  `csv:"name"`
	AMC          string  `csv:"amc"`
	Category     string  `csv:"category"`
	NAV          string  `csv:"nav"`
	NAVDate      string  `csv:"nav_date"`
	CAGR1Y       float64 `csv:"cagr_1y"`
	CAGR3Y       float64 `csv:"cagr_3y"`
	CAGR5Y       float64 `csv:"cagr_5y"`
	Volatility   float64 `csv:"volatility"`
	Sharpe       float64 `csv:"sharpe"`
	RankingScore float64 `csv:"ranking_score"`
}

func recommendationRows(recs []domain.Recommendation) []recommendationRow {
	out := []recommendationRow{}
	for _, r := range recs {
		out = append(out, recommendationRow{
			AssetClass:   r.AssetClass,
			Weight:       r.Weight,
			SchemeCode:   r.SchemeCode,
			Name:         r.Name,
			AMC:          r.AMC,
			Category:     r.Category.String(),
			NAV:          r.NAV.String(),
			NAVDate:      r.NAVDateRaw,
			CAGR1Y:       r.CAGR1Y,
			CAGR3Y:       r.CAGR3Y,
			CAGR5Y:       r.CAGR5Y,
			Volatility:   r.Volatility,
			Sharpe:       r.Sharpe,
			RankingScore: r.RankingScore,
		})
	}
	return out
}

func writeRecommendationsCSV(w io.Writer, recs []domain.Recommendation) error {
	rows := recommendationRows(recs)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write recommendations csv: %w", err)
	}
	return nil
}

func writeProjectionCSV(w io.Writer, rows []calculator.ProjectionRow) error {
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write projection csv: %w", err)
	}
	return nil
}

// writeFile opens path for writing, with "-" meaning stdout
func writeFile(path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return write(f)
}

func printRecommendations(w io.Writer, recs []domain.Recommendation, isLive bool) {
	source := "live"
	if !isLive {
		source = "stale or unavailable"
	}
	fmt.Fprintf(w, "%d recommendations (%s data)\n", len(recs), source)
	for _, r := range recs {
		fmt.Fprintf(w, "  %5.1f%%  %-20s %s [%s] nav %s, 3y %.2f%%, score %.2f\n",
			r.Weight, r.AssetClass, r.Name, r.SchemeCode, r.NAV.String(), r.CAGR3Y, r.RankingScore)
	}
}

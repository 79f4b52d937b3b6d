package calculator

import "finplan/internal/util"

type ProjectionRow struct {
	Year       int     `json:"year" csv:"year"`
	Invested   float64 `json:"invested" csv:"invested"`
	Returns    float64 `json:"returns" csv:"returns"`
	TotalValue float64 `json:"totalValue" csv:"total_value"`
}

// ProjectionTable tracks a lump sum plus a monthly SIP year by year. Each
// SIP instalment goes in at the start of the month and the balance then
// earns a month of interest
func ProjectionTable(initialInvestment, monthlySip, annualRate float64, years int) []ProjectionRow {
	monthlyRate := annualRate / 12

	rows := []ProjectionRow{}
	value := initialInvestment
	invested := initialInvestment

	for year := 1; year <= years; year++ {
		for month := 0; month < 12; month++ {
			value += monthlySip
			invested += monthlySip
			value += value * monthlyRate
		}
		rows = append(rows, ProjectionRow{
			Year:       year,
			Invested:   util.Round2(invested),
			Returns:    util.Round2(value - invested),
			TotalValue: util.Round2(value),
		})
	}

	return rows
}

package integration_tests

import (
	"context"
	"finplan/internal/domain"
	"finplan/internal/repository"
	"fmt"
	"math"
	"strings"
	"time"
)

// CannedNavFeed is a small NAVAll.txt covering every category the model
// allocations ask for
const CannedNavFeed = `Scheme Code;ISIN Div Payout/ ISIN Growth;ISIN Div Reinvestment;Scheme Name;Net Asset Value;Date

Open Ended Schemes(Equity Scheme - Large Cap Fund)

Aditya Birla Sun Life Mutual Fund

119551;INF209KA12Z1;-;Aditya Birla Sun Life Large Cap Fund - Direct Plan-Growth;512.3400;16-Oct-2026
119552;INF209K01YN0;-;Aditya Birla Sun Life Flexi Cap Fund - Direct Growth;1850.1200;16-Oct-2026
119553;INF209K01YN1;-;Aditya Birla Sun Life Balanced Advantage Fund;98.4400;16-Oct-2026

HDFC Mutual Fund

118989;INF179K01BB8;-;HDFC Gold ETF Fund of Fund - Growth;24.1187;16-Oct-2026
118990;INF179K01BB9;-;HDFC Liquid Fund - Direct Plan;4811.2200;16-Oct-2026
118991;INF179K01BC0;-;HDFC Large Cap Fund - Growth;1022.5000;16-Oct-2026
118992;INF179K01BC1;-;HDFC Flexi Cap Fund - Growth;1788.0100;16-Oct-2026
118993;INF179K01BC2;-;HDFC Hybrid Equity Fund - Growth;112.7000;16-Oct-2026
118994;INF179K01BC3;-;HDFC Mid Cap Opportunities Fund;190.0400;16-Oct-2026
118995;INF179K01BC4;-;HDFC Small Cap Fund - Growth;140.3300;16-Oct-2026
118996;INF179K01BC5;-;HDFC Corporate Bond Fund;31.0900;16-Oct-2026

SBI Mutual Fund

120001;INF200K01RJ1;-;SBI Gold Fund - Direct Growth;27.9100;16-Oct-2026
120002;INF200K01RJ2;-;SBI Technology Opportunities Fund - Sectoral;210.6600;16-Oct-2026
120003;INF200K01RJ3;-;SBI Magnum Gilt Fund;N.A.;16-Oct-2026
`

func NewMockNavFeedRepositoryForTests() repository.NavFeedRepository {
	return mockNavFeedForTestsHandler{}
}

type mockNavFeedForTestsHandler struct{}

func (m mockNavFeedForTestsHandler) FetchUniverse(ctx context.Context) ([]domain.Instrument, error) {
	instruments, _, err := repository.ParseNavFeed(strings.NewReader(CannedNavFeed))
	return instruments, err
}

// annual growth per proxy ticker; the wobble keeps volatility non-zero
var mockProxyGrowth = map[string]float64{
	"NIFTYBEES.NS":  0.12,
	"MID150BEES.NS": 0.18,
	"JUNIORBEES.NS": 0.15,
	"LIQUIDBEES.NS": 0.065,
	"GOLDBEES.NS":   0.10,
}

func NewMockPriceHistoryRepositoryForTests() repository.PriceHistoryRepository {
	return mockPriceHistoryForTestsHandler{}
}

type mockPriceHistoryForTestsHandler struct{}

// GetDailyPrices returns a smooth weekday series that is a pure function
// of the symbol and date, so overlapping windows agree
func (m mockPriceHistoryForTestsHandler) GetDailyPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.PricePoint, error) {
	growth, ok := mockProxyGrowth[symbol]
	if !ok {
		return nil, fmt.Errorf("no mock prices for %s", symbol)
	}
	epoch := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	dailyLog := math.Log(1+growth) / 365

	out := []domain.PricePoint{}
	for d := start.UTC().Truncate(24 * time.Hour); !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		days := d.Sub(epoch).Hours() / 24
		price := 100 * math.Exp(dailyLog*days) * (1 + 0.01*math.Sin(days/5))
		out = append(out, domain.PricePoint{
			Symbol: symbol,
			Date:   d,
			Close:  price,
		})
	}
	return out, nil
}

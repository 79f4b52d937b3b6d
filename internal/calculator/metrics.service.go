package calculator

import (
	"errors"
	"finplan/internal/domain"
	"finplan/internal/util"
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

var ErrNotEnoughPrices = errors.New("not enough prices to fit a trend")

const (
	daysPerYear     = 365.25
	tradingDays     = 252
	lowRiskVolLimit = 5.0
	modRiskVolLimit = 12.0
)

type ReturnForecast struct {
	Symbol     string  `json:"symbol"`
	Return1Y   float64 `json:"1y"`
	Return3Y   float64 `json:"3y"`
	Return5Y   float64 `json:"5y"`
	Volatility float64 `json:"volatility"`
	Risk       string  `json:"risk"`
}

// trend is a least-squares fit of log price against days since the first
// observation
type trend struct {
	slope     float64
	intercept float64
}

func (t trend) predict(day float64) float64 {
	return math.Exp(t.intercept + t.slope*day)
}

func fitLogTrend(days, logPrices []float64) (*trend, error) {
	variance, err := stats.SampleVariance(days)
	if err != nil {
		return nil, err
	}
	if variance == 0 {
		return nil, fmt.Errorf("%w: all prices on the same day", ErrNotEnoughPrices)
	}
	covariance, err := stats.Covariance(days, logPrices)
	if err != nil {
		return nil, err
	}
	meanDay, err := stats.Mean(days)
	if err != nil {
		return nil, err
	}
	meanLog, err := stats.Mean(logPrices)
	if err != nil {
		return nil, err
	}

	slope := covariance / variance
	return &trend{
		slope:     slope,
		intercept: meanLog - slope*meanDay,
	}, nil
}

// ForecastReturns extends the log-linear price trend 1, 3 and 5 years past
// the last observation and annualizes the move from currentNav. Volatility
// is the annualized stdev of daily returns, and buckets the risk label
func ForecastReturns(prices []domain.PricePoint, currentNav float64) (*ReturnForecast, error) {
	if len(prices) < 2 {
		return nil, ErrNotEnoughPrices
	}
	if currentNav <= 0 {
		return nil, fmt.Errorf("current nav must be positive, got %f", currentNav)
	}

	sorted := make([]domain.PricePoint, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	first := sorted[0].Date
	days := make([]float64, 0, len(sorted))
	logPrices := make([]float64, 0, len(sorted))
	for _, p := range sorted {
		price := p.Price()
		if price <= 0 {
			continue
		}
		days = append(days, p.Date.Sub(first).Hours()/24)
		logPrices = append(logPrices, math.Log(price))
	}
	if len(days) < 2 {
		return nil, ErrNotEnoughPrices
	}

	t, err := fitLogTrend(days, logPrices)
	if err != nil {
		return nil, fmt.Errorf("failed to fit trend: %w", err)
	}

	lastDay := days[len(days)-1]
	annualized := func(years int) float64 {
		projected := t.predict(lastDay + float64(years)*daysPerYear)
		totalReturn := (projected - currentNav) / currentNav
		return util.Round2((math.Pow(1+totalReturn, 1/float64(years)) - 1) * 100)
	}

	volatility, err := annualizedVolatility(logPrices)
	if err != nil {
		return nil, fmt.Errorf("failed to compute volatility: %w", err)
	}

	return &ReturnForecast{
		Symbol:     sorted[len(sorted)-1].Symbol,
		Return1Y:   annualized(1),
		Return3Y:   annualized(3),
		Return5Y:   annualized(5),
		Volatility: util.Round2(volatility),
		Risk:       volatilityRisk(volatility),
	}, nil
}

func annualizedVolatility(logPrices []float64) (float64, error) {
	if len(logPrices) < 3 {
		return 0, nil
	}
	returns := make([]float64, 0, len(logPrices)-1)
	for i := 1; i < len(logPrices); i++ {
		returns = append(returns, math.Exp(logPrices[i]-logPrices[i-1])-1)
	}
	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return 0, err
	}
	return stdev * math.Sqrt(tradingDays) * 100, nil
}

func volatilityRisk(volatility float64) string {
	if volatility < lowRiskVolLimit {
		return "Low"
	} else if volatility < modRiskVolLimit {
		return "Moderate"
	}
	return "High"
}

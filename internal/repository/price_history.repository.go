package repository

import (
	"context"
	"finplan/internal/domain"
	"fmt"
	"sort"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"golang.org/x/time/rate"
)

type PriceHistoryRepository interface {
	// GetDailyPrices returns daily bars between start and end, oldest first
	GetDailyPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.PricePoint, error)
}

type priceHistoryRepositoryHandler struct {
	Limiter *rate.Limiter
	Timeout time.Duration
}

func NewPriceHistoryRepository(requestsPerSecond int, timeout time.Duration) PriceHistoryRepository {
	return priceHistoryRepositoryHandler{
		Limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		Timeout: timeout,
	}
}

func (h priceHistoryRepositoryHandler) GetDailyPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.PricePoint, error) {
	if err := h.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait for %s: %w", symbol, err)
	}

	params := h.chartParams(ctx, symbol, start, end)
	defer params.cancel()
	iter := chart.Get(params.Params)

	bars := []finance.ChartBar{}
	for iter.Next() {
		bars = append(bars, *iter.Bar())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", symbol, err)
	}

	return pricePointsFromBars(symbol, bars), nil
}

type chartRequest struct {
	*chart.Params
	cancel context.CancelFunc
}

// chartParams bounds the chart request by the repository timeout and the
// caller's context
func (h priceHistoryRepositoryHandler) chartParams(ctx context.Context, symbol string, start, end time.Time) chartRequest {
	reqCtx, cancel := context.WithTimeout(ctx, h.Timeout)
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	params.Context = &reqCtx
	return chartRequest{Params: params, cancel: cancel}
}

// pricePointsFromBars drops bars without a usable price and truncates
// timestamps to the UTC trading day
func pricePointsFromBars(symbol string, bars []finance.ChartBar) []domain.PricePoint {
	out := []domain.PricePoint{}
	for _, bar := range bars {
		p := domain.PricePoint{
			Symbol:   symbol,
			Date:     time.Unix(int64(bar.Timestamp), 0).UTC().Truncate(24 * time.Hour),
			Close:    bar.Close.InexactFloat64(),
			AdjClose: bar.AdjClose.InexactFloat64(),
		}
		if p.Price() <= 0 {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

package l1_service

import (
	"context"
	"errors"
	"finplan/internal/cache"
	"finplan/internal/domain"
	"finplan/internal/logger"
	"finplan/internal/repository"
	"finplan/internal/util"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
)

// MinObservations is roughly one trading year of daily closes
const MinObservations = 252

var ErrInsufficientHistory = errors.New("insufficient price history")

var errNoCategoryPerformance = errors.New("no category had usable proxy history")

type CategoryPerformanceService interface {
	// GetCategoryPerformance never fails; categories without data are
	// simply missing from the map
	GetCategoryPerformance(ctx context.Context) domain.CategoryPerformance
}

type categoryPerformanceServiceHandler struct {
	PriceHistoryRepository repository.PriceHistoryRepository
	Proxies                []domain.BenchmarkProxy
	RiskFreeRate           float64
	Clock                  cache.Clock
	Cache                  *cache.TTLCache[domain.CategoryPerformance]
}

func NewCategoryPerformanceService(
	priceHistoryRepository repository.PriceHistoryRepository,
	riskFreeRate float64,
	ttl time.Duration,
	clock cache.Clock,
) CategoryPerformanceService {
	if clock == nil {
		clock = cache.SystemClock()
	}
	return categoryPerformanceServiceHandler{
		PriceHistoryRepository: priceHistoryRepository,
		Proxies:                domain.BenchmarkProxies,
		RiskFreeRate:           riskFreeRate,
		Clock:                  clock,
		Cache:                  cache.New[domain.CategoryPerformance]("category performance", ttl, cache.WithClock(clock)),
	}
}

func (h categoryPerformanceServiceHandler) GetCategoryPerformance(ctx context.Context) domain.CategoryPerformance {
	result, err := h.Cache.Get(ctx, h.computeCategoryPerformance)
	if err != nil {
		logger.FromContext(ctx).Warnf("category performance degraded: %s", err.Error())
	}
	if result.Value == nil {
		return domain.CategoryPerformance{}
	}
	return result.Value
}

type proxyHistory struct {
	prices []domain.PricePoint
	err    error
}

func (h categoryPerformanceServiceHandler) computeCategoryPerformance(ctx context.Context) (domain.CategoryPerformance, error) {
	log := logger.FromContext(ctx)
	log.Info("computing category performance using etf proxies")

	end := h.Clock.Now()
	start := end.AddDate(0, 0, -(365*5 + 30))

	histories := h.fetchProxyHistories(ctx, start, end)

	out := domain.CategoryPerformance{}
	for _, proxy := range h.Proxies {
		history := histories[proxy.Ticker]
		if history.err != nil {
			log.Errorf("failed to compute metrics for %s (%s): %s", proxy.Ticker, proxy.Category, history.err.Error())
			continue
		}
		snapshot, err := ComputePerformanceSnapshot(history.prices, end, h.RiskFreeRate)
		if err != nil {
			log.Warnf("skipping %s (%s): %s", proxy.Ticker, proxy.Category, err.Error())
			continue
		}
		out[proxy.Category] = *snapshot
	}

	if len(out) == 0 {
		return nil, errNoCategoryPerformance
	}
	return out, nil
}

// fetchProxyHistories loads each distinct ticker once. A few categories
// share a proxy
func (h categoryPerformanceServiceHandler) fetchProxyHistories(ctx context.Context, start, end time.Time) map[string]proxyHistory {
	tickers := []string{}
	seen := map[string]bool{}
	for _, p := range h.Proxies {
		if !seen[p.Ticker] {
			seen[p.Ticker] = true
			tickers = append(tickers, p.Ticker)
		}
	}

	numGoroutines := 4
	inputCh := make(chan string, len(tickers))
	for _, t := range tickers {
		inputCh <- t
	}
	close(inputCh)

	out := map[string]proxyHistory{}
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ticker := range inputCh {
				prices, err := h.PriceHistoryRepository.GetDailyPrices(ctx, ticker, start, end)
				mu.Lock()
				out[ticker] = proxyHistory{prices: prices, err: err}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return out
}

// ComputePerformanceSnapshot derives trailing CAGRs, annualized volatility
// and Sharpe ratio from a daily price series ending around asOf. When the
// series doesn't reach back far enough for a horizon, that horizon takes
// the next-shorter horizon's CAGR
func ComputePerformanceSnapshot(prices []domain.PricePoint, asOf time.Time, riskFreeRate float64) (*domain.PerformanceSnapshot, error) {
	if len(prices) < MinObservations {
		return nil, fmt.Errorf("%w: %d observations, need %d", ErrInsufficientHistory, len(prices), MinObservations)
	}

	sorted := make([]domain.PricePoint, len(prices))
	copy(sorted, prices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	current := sorted[len(sorted)-1].Price()

	cagr := func(years int, fallback float64) float64 {
		anchor, ok := priceAsOf(sorted, util.YearsAgo(asOf, years))
		if !ok || anchor <= 0 {
			return fallback
		}
		return (math.Pow(current/anchor, 1/float64(years)) - 1) * 100
	}
	cagr1y := cagr(1, 0)
	cagr3y := cagr(3, cagr1y)
	cagr5y := cagr(5, cagr3y)

	returns := dailyReturns(sorted)
	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate stdev: %w", err)
	}
	volatility := stdev * math.Sqrt(252) * 100

	sharpe := 0.0
	if volatility > 0 {
		sharpe = (cagr3y - riskFreeRate*100) / volatility
	}

	return &domain.PerformanceSnapshot{
		CAGR1Y:     util.Round2(cagr1y),
		CAGR3Y:     util.Round2(cagr3y),
		CAGR5Y:     util.Round2(cagr5y),
		Volatility: util.Round2(volatility),
		Sharpe:     util.Round2(sharpe),
	}, nil
}

// priceAsOf returns the last price dated on or before target. prices
// must be sorted ascending
func priceAsOf(prices []domain.PricePoint, target time.Time) (float64, bool) {
	idx := sort.Search(len(prices), func(i int) bool {
		return prices[i].Date.After(target)
	})
	if idx == 0 {
		return 0, false
	}
	return prices[idx-1].Price(), true
}

func dailyReturns(prices []domain.PricePoint) []float64 {
	out := make([]float64, 0, len(prices))
	for i := 1; i < len(prices); i++ {
		prev := prices[i-1].Price()
		if prev == 0 {
			continue
		}
		out = append(out, (prices[i].Price()-prev)/prev)
	}
	return out
}

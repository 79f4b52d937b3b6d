package l2_service

import (
	"context"
	"finplan/internal/domain"
	"finplan/internal/logger"
	l1_service "finplan/internal/service/l1"
	"sort"
)

const (
	weightCAGR3Y     = 0.40
	weightCAGR5Y     = 0.30
	weightSharpe     = 0.20
	weightVolatility = 0.10
)

// RankingScore = 0.4*CAGR3Y + 0.3*CAGR5Y + 0.2*Sharpe - 0.1*Volatility,
// with returns and volatility in percentage points
func RankingScore(p domain.PerformanceSnapshot) float64 {
	return p.CAGR3Y*weightCAGR3Y +
		p.CAGR5Y*weightCAGR5Y +
		p.Sharpe*weightSharpe -
		p.Volatility*weightVolatility
}

// ApplyPerformanceMetrics attaches each instrument's category performance
// and ranking score, returning a new slice sorted best first. Categories
// missing from perf get zeroed metrics
func ApplyPerformanceMetrics(instruments []domain.Instrument, perf domain.CategoryPerformance) []domain.Instrument {
	out := make([]domain.Instrument, 0, len(instruments))
	for _, in := range instruments {
		snapshot := perf.Get(in.CategoryOrOther())
		score := RankingScore(snapshot)
		in.Performance = &snapshot
		in.RankingScore = &score
		out = append(out, in)
	}

	SortByRank(out)
	return out
}

// SortByRank orders by ranking score, then NAV, both descending, then by
// scheme code so ties are broken the same way every time
func SortByRank(instruments []domain.Instrument) {
	sort.SliceStable(instruments, func(i, j int) bool {
		a, b := instruments[i], instruments[j]
		if a.Score() != b.Score() {
			return a.Score() > b.Score()
		}
		if c := a.NAV.Cmp(b.NAV); c != 0 {
			return c > 0
		}
		return a.SchemeCode < b.SchemeCode
	})
}

type RankedUniverseService interface {
	GetRankedUniverse(ctx context.Context) domain.UniverseSnapshot
}

type rankedUniverseServiceHandler struct {
	UniverseService            l1_service.UniverseService
	CategoryPerformanceService l1_service.CategoryPerformanceService
}

func NewRankedUniverseService(
	universeService l1_service.UniverseService,
	categoryPerformanceService l1_service.CategoryPerformanceService,
) RankedUniverseService {
	return rankedUniverseServiceHandler{
		UniverseService:            universeService,
		CategoryPerformanceService: categoryPerformanceService,
	}
}

func (h rankedUniverseServiceHandler) GetRankedUniverse(ctx context.Context) domain.UniverseSnapshot {
	snapshot := h.UniverseService.GetUniverse(ctx)
	if snapshot.Empty() {
		return snapshot
	}

	categorized := l1_service.CategorizeFunds(ctx, snapshot.Instruments)
	perf := h.CategoryPerformanceService.GetCategoryPerformance(ctx)
	if len(perf) == 0 {
		logger.FromContext(ctx).Warn("no category performance available, ranking by nav only")
	}

	return domain.UniverseSnapshot{
		Instruments: ApplyPerformanceMetrics(categorized, perf),
		FetchedAt:   snapshot.FetchedAt,
		IsLive:      snapshot.IsLive,
	}
}

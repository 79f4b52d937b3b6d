package l2_service

import (
	"context"
	"finplan/internal/domain"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRankingScore(t *testing.T) {
	t.Run("weights", func(t *testing.T) {
		score := RankingScore(domain.PerformanceSnapshot{
			CAGR1Y:     99,
			CAGR3Y:     15,
			CAGR5Y:     12,
			Volatility: 18,
			Sharpe:     0.5,
		})
		require.InDelta(t, 15*0.4+12*0.3+0.5*0.2-18*0.1, score, 1e-9)
	})
	t.Run("zero snapshot", func(t *testing.T) {
		require.Equal(t, 0.0, RankingScore(domain.PerformanceSnapshot{}))
	})
}

func instrument(code string, category domain.Category, nav float64) domain.Instrument {
	return domain.Instrument{
		SchemeCode: code,
		SchemeName: "fund " + code,
		NAV:        decimal.NewFromFloat(nav),
		Category:   domain.CategoryPtr(category),
	}
}

func TestApplyPerformanceMetrics(t *testing.T) {
	perf := domain.CategoryPerformance{
		domain.CategoryLargeCap: {CAGR1Y: 12, CAGR3Y: 14, CAGR5Y: 13, Volatility: 15, Sharpe: 0.53},
		domain.CategoryDebt:     {CAGR1Y: 7, CAGR3Y: 6.8, CAGR5Y: 6.5, Volatility: 0.5, Sharpe: 1.6},
	}

	t.Run("joins and sorts", func(t *testing.T) {
		universe := []domain.Instrument{
			instrument("debt", domain.CategoryDebt, 10),
			instrument("gold", domain.CategoryGold, 50),
			instrument("large", domain.CategoryLargeCap, 20),
		}

		out := ApplyPerformanceMetrics(universe, perf)

		require.Len(t, out, 3)
		require.Equal(t, "large", out[0].SchemeCode)
		require.Equal(t, "debt", out[1].SchemeCode)
		require.Equal(t, "gold", out[2].SchemeCode)

		require.Equal(t, perf[domain.CategoryLargeCap], *out[0].Performance)
		require.InDelta(t, RankingScore(perf[domain.CategoryLargeCap]), *out[0].RankingScore, 1e-9)

		// missing category is zero, not nil
		require.NotNil(t, out[2].Performance)
		require.Equal(t, domain.PerformanceSnapshot{}, *out[2].Performance)
		require.Equal(t, 0.0, *out[2].RankingScore)

		require.Nil(t, universe[0].RankingScore)
	})

	t.Run("nil performance map", func(t *testing.T) {
		out := ApplyPerformanceMetrics([]domain.Instrument{instrument("a", domain.CategoryGold, 1)}, nil)
		require.Equal(t, 0.0, *out[0].RankingScore)
	})

	t.Run("unclassified instruments count as other", func(t *testing.T) {
		in := instrument("x", domain.CategoryOther, 1)
		in.Category = nil
		out := ApplyPerformanceMetrics([]domain.Instrument{in}, domain.CategoryPerformance{
			domain.CategoryOther: {CAGR3Y: 10},
		})
		require.InDelta(t, 4.0, *out[0].RankingScore, 1e-9)
	})
}

func TestSortByRank(t *testing.T) {
	t.Run("nav breaks score ties", func(t *testing.T) {
		universe := []domain.Instrument{
			instrument("b", domain.CategoryDebt, 50),
			instrument("a", domain.CategoryDebt, 50),
			instrument("c", domain.CategoryDebt, 200),
		}
		SortByRank(universe)
		require.Equal(t, []string{"c", "a", "b"}, []string{universe[0].SchemeCode, universe[1].SchemeCode, universe[2].SchemeCode})
	})
}

type fakeUniverseService struct {
	snapshot domain.UniverseSnapshot
}

func (f fakeUniverseService) GetUniverse(ctx context.Context) domain.UniverseSnapshot {
	return f.snapshot
}

type fakeCategoryPerformanceService struct {
	perf  domain.CategoryPerformance
	calls *int
}

func (f fakeCategoryPerformanceService) GetCategoryPerformance(ctx context.Context) domain.CategoryPerformance {
	*f.calls++
	return f.perf
}

func TestRankedUniverseService_GetRankedUniverse(t *testing.T) {
	ctx := context.Background()
	fetchedAt := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)

	t.Run("classifies and ranks live universe", func(t *testing.T) {
		calls := 0
		handler := NewRankedUniverseService(
			fakeUniverseService{snapshot: domain.UniverseSnapshot{
				Instruments: []domain.Instrument{
					{SchemeCode: "1", SchemeName: "SBI Gold Fund", NAV: decimal.NewFromInt(20)},
					{SchemeCode: "2", SchemeName: "HDFC Large Cap Fund", NAV: decimal.NewFromInt(900)},
				},
				FetchedAt: fetchedAt,
				IsLive:    true,
			}},
			fakeCategoryPerformanceService{
				perf: domain.CategoryPerformance{
					domain.CategoryGold: {CAGR3Y: 20, CAGR5Y: 15},
				},
				calls: &calls,
			},
		)

		snapshot := handler.GetRankedUniverse(ctx)
		require.True(t, snapshot.IsLive)
		require.Equal(t, fetchedAt, snapshot.FetchedAt)
		require.Equal(t, "1", snapshot.Instruments[0].SchemeCode)
		require.Equal(t, domain.CategoryGold, *snapshot.Instruments[0].Category)
		require.Equal(t, domain.CategoryLargeCap, *snapshot.Instruments[1].Category)
		require.Equal(t, 1, calls)
	})

	t.Run("empty universe skips performance", func(t *testing.T) {
		calls := 0
		handler := NewRankedUniverseService(
			fakeUniverseService{},
			fakeCategoryPerformanceService{calls: &calls},
		)
		snapshot := handler.GetRankedUniverse(ctx)
		require.False(t, snapshot.IsLive)
		require.True(t, snapshot.Empty())
		require.Equal(t, 0, calls)
	})
}

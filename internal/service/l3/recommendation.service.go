package l3_service

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"finplan/internal/domain"
	"finplan/internal/logger"
	l1_service "finplan/internal/service/l1"
	l2_service "finplan/internal/service/l2"
	"fmt"
	"strconv"
	"strings"
)

// PoolSize bounds how far down the ranking a pick can land
const PoolSize = 30

type RecommendationService interface {
	// SuggestFunds picks one fund per positive-weight allocation entry.
	// The bool reports whether the universe came from a live fetch
	SuggestFunds(ctx context.Context, allocation domain.Allocation, riskProfile string) ([]domain.Recommendation, bool)
}

type recommendationServiceHandler struct {
	RankedUniverseService l2_service.RankedUniverseService
}

func NewRecommendationService(rankedUniverseService l2_service.RankedUniverseService) RecommendationService {
	return recommendationServiceHandler{
		RankedUniverseService: rankedUniverseService,
	}
}

func (h recommendationServiceHandler) SuggestFunds(ctx context.Context, allocation domain.Allocation, riskProfile string) ([]domain.Recommendation, bool) {
	log := logger.FromContext(ctx)

	snapshot := h.RankedUniverseService.GetRankedUniverse(ctx)
	if snapshot.Empty() {
		log.Warn("fund universe unavailable, returning no recommendations")
		return []domain.Recommendation{}, false
	}

	recommendations := SelectFunds(snapshot.Instruments, allocation, riskProfile)
	log.Infof("selected %d funds for %d allocation entries (live=%t)", len(recommendations), len(allocation), snapshot.IsLive)

	return recommendations, snapshot.IsLive
}

var equitySubCategories = []struct {
	term     string
	category domain.Category
}{
	{"large", domain.CategoryLargeCap},
	{"flexi", domain.CategoryFlexi},
	{"small", domain.CategorySmallCap},
	{"mid", domain.CategoryMidCap},
	{"hybrid", domain.CategoryHybrid},
	{"sectoral", domain.CategorySectoral},
}

// TargetCategories maps an allocation label such as "Equity - Large Cap"
// to the fund categories that can fill it. Nil means the label is not
// recognized
func TargetCategories(label string) []domain.Category {
	lower := strings.ToLower(label)
	if strings.Contains(lower, "equity") {
		for _, sub := range equitySubCategories {
			if strings.Contains(lower, sub.term) {
				return []domain.Category{sub.category}
			}
		}
	}
	if strings.Contains(lower, "debt") {
		return []domain.Category{domain.CategoryDebt}
	}
	if strings.Contains(lower, "gold") {
		return []domain.Category{domain.CategoryGold}
	}
	return nil
}

// SelectFunds is the pure part of SuggestFunds. For each allocation entry
// it takes the top PoolSize funds of the target category and picks one at
// an offset derived from the whole request, so the same request always
// gets the same funds and changing any part of it reshuffles every pick
func SelectFunds(universe []domain.Instrument, allocation domain.Allocation, riskProfile string) []domain.Recommendation {
	out := []domain.Recommendation{}
	if len(universe) == 0 {
		return out
	}

	fingerprint := allocation.Canonical()

	for _, entry := range allocation {
		if entry.Weight <= 0 {
			continue
		}
		targets := TargetCategories(entry.Label)
		if len(targets) == 0 {
			continue
		}

		pool := candidatePool(universe, targets)
		if len(pool) == 0 {
			continue
		}

		seed := selectionSeed(riskProfile, entry, fingerprint)
		pick := pool[seedOffset(seed, len(pool))]
		out = append(out, newRecommendation(pick, entry, riskProfile))
	}

	return out
}

func candidatePool(universe []domain.Instrument, targets []domain.Category) []domain.Instrument {
	filtered := []domain.Instrument{}
	for _, in := range universe {
		category := in.CategoryOrOther()
		if in.Category == nil {
			category = l1_service.ClassifySchemeName(in.SchemeName)
		}
		for _, target := range targets {
			if category == target {
				in.Category = domain.CategoryPtr(category)
				filtered = append(filtered, in)
				break
			}
		}
	}

	l2_service.SortByRank(filtered)
	if len(filtered) > PoolSize {
		filtered = filtered[:PoolSize]
	}
	return filtered
}

func selectionSeed(riskProfile string, entry domain.AllocationEntry, fingerprint string) string {
	return fmt.Sprintf(
		"%s|%s|%s|%s|%s",
		riskProfile,
		strings.ToLower(riskProfile),
		entry.Label,
		strconv.FormatFloat(entry.Weight, 'f', -1, 64),
		fingerprint,
	)
}

func seedOffset(seed string, poolSize int) int {
	sum := sha256.Sum256([]byte(seed))
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(poolSize))
}

func newRecommendation(in domain.Instrument, entry domain.AllocationEntry, riskProfile string) domain.Recommendation {
	perf := domain.PerformanceSnapshot{}
	if in.Performance != nil {
		perf = *in.Performance
	}
	return domain.Recommendation{
		Name:         in.SchemeName,
		SchemeCode:   in.SchemeCode,
		AMC:          in.AMC,
		Category:     in.CategoryOrOther(),
		AssetClass:   entry.Label,
		Weight:       entry.Weight,
		Risk:         riskProfile,
		CAGR1Y:       perf.CAGR1Y,
		CAGR3Y:       perf.CAGR3Y,
		CAGR5Y:       perf.CAGR5Y,
		Volatility:   perf.Volatility,
		Sharpe:       perf.Sharpe,
		RankingScore: in.Score(),
		NAV:          in.NAV,
		NAVDate:      in.NAVDate,
		NAVDateRaw:   in.NAVDateRaw,
	}
}

package cmd

import (
	"finplan/api"
	integration_tests "finplan/integration-tests"
	"finplan/internal/cache"
	"finplan/internal/config"
	"finplan/internal/logger"
	"finplan/internal/repository"
	l1_service "finplan/internal/service/l1"
	l2_service "finplan/internal/service/l2"
	l3_service "finplan/internal/service/l3"
	"strings"
)

// InitializeDependencies wires every service behind the api. With
// FINPLAN_ENV=test the NAV feed and price history come from canned data
// instead of the network
func InitializeDependencies(cfg config.Config) (*api.ApiHandler, error) {
	navFeedRepository := repository.NewNavFeedRepository(
		cfg.NavFeedURL,
		cfg.NavFeedTimeout,
		repository.WithNavFeedRetry(cfg.NavFeedMaxTries, repository.ExponentialBackOff(cfg.NavFeedBackoff)),
	)
	priceHistoryRepository := repository.NewPriceHistoryRepository(cfg.PriceRequestsPerS, cfg.PriceTimeout)

	if strings.EqualFold(cfg.Env, "test") {
		logger.New().Info("using canned nav feed and price history")
		navFeedRepository = integration_tests.NewMockNavFeedRepositoryForTests()
		priceHistoryRepository = integration_tests.NewMockPriceHistoryRepositoryForTests()
	}

	universeService := l1_service.NewUniverseService(
		navFeedRepository,
		cfg.UniverseTTL,
		cache.WithFailureTTL(cfg.UniverseFailureTTL),
	)
	categoryPerformanceService := l1_service.NewCategoryPerformanceService(
		priceHistoryRepository,
		cfg.RiskFreeRate,
		cfg.PerformanceTTL,
		nil,
	)
	rankedUniverseService := l2_service.NewRankedUniverseService(universeService, categoryPerformanceService)
	recommendationService := l3_service.NewRecommendationService(rankedUniverseService)
	planService := l3_service.NewPlanService(recommendationService, l3_service.PlanAssumptions{
		ExpectedReturn: cfg.PlanExpectedReturn,
		Volatility:     cfg.PlanVolatility,
	})

	return &api.ApiHandler{
		RankedUniverseService:  rankedUniverseService,
		RecommendationService:  recommendationService,
		PlanService:            planService,
		ReportService:          l3_service.NewReportService(planService, cfg.ReportDisclaimer),
		PriceHistoryRepository: priceHistoryRepository,
	}, nil
}

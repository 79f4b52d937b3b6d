package api

import (
	"context"
	"encoding/json"
	"errors"
	"finplan/internal/domain"
	mock_repository "finplan/internal/repository/mocks"
	l3_service "finplan/internal/service/l3"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeRankedUniverseService struct {
	snapshot domain.UniverseSnapshot
}

func (f fakeRankedUniverseService) GetRankedUniverse(ctx context.Context) domain.UniverseSnapshot {
	return f.snapshot
}

func testInstrument(code, name string, category domain.Category, nav int64) domain.Instrument {
	score := 5.0
	return domain.Instrument{
		SchemeCode:   code,
		SchemeName:   name,
		NAV:          decimal.NewFromInt(nav),
		NAVDateRaw:   "16-Oct-2026",
		Category:     domain.CategoryPtr(category),
		Performance:  &domain.PerformanceSnapshot{CAGR1Y: 4, CAGR3Y: 5, CAGR5Y: 6, Volatility: 10, Sharpe: 0.5},
		RankingScore: &score,
	}
}

func testUniverse() domain.UniverseSnapshot {
	return domain.UniverseSnapshot{
		Instruments: []domain.Instrument{
			testInstrument("L1", "Alpha Large Cap Fund", domain.CategoryLargeCap, 100),
			testInstrument("F1", "Beta Flexi Cap Fund", domain.CategoryFlexi, 80),
			testInstrument("H1", "Gamma Hybrid Fund", domain.CategoryHybrid, 40),
			testInstrument("D1", "Delta Liquid Fund", domain.CategoryDebt, 50),
			testInstrument("G1", "Epsilon Gold ETF", domain.CategoryGold, 200),
		},
		FetchedAt: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
		IsLive:    true,
	}
}

func newTestHandler(universe domain.UniverseSnapshot) ApiHandler {
	rankedUniverseService := fakeRankedUniverseService{snapshot: universe}
	recommendationService := l3_service.NewRecommendationService(rankedUniverseService)
	planService := l3_service.NewPlanService(recommendationService, l3_service.PlanAssumptions{
		ExpectedReturn: 0.13,
		Volatility:     0.15,
	})
	return ApiHandler{
		RankedUniverseService: rankedUniverseService,
		RecommendationService: recommendationService,
		PlanService:           planService,
		ReportService:         l3_service.NewReportService(planService, ""),
	}
}

func doRequest(t *testing.T, h ApiHandler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := h.InitializeRouterEngine()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}

func TestHealth(t *testing.T) {
	h := newTestHandler(testUniverse())

	t.Run("generates a request id", func(t *testing.T) {
		w := doRequest(t, h, http.MethodGet, "/", "")
		require.Equal(t, 200, w.Code)
		require.NotEmpty(t, w.Header().Get(requestIDHeader))

		body := map[string]string{}
		decodeBody(t, w, &body)
		require.Equal(t, "ok", body["status"])
	})

	t.Run("echoes a caller request id", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := h.InitializeRouterEngine()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
	})
}

func TestRiskProfile(t *testing.T) {
	h := newTestHandler(testUniverse())

	t.Run("happy path", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/risk-profile", `{
			"age": 25,
			"monthlyIncome": 100000,
			"monthlySavingsCapacity": 50000,
			"dependents": 0,
			"behaviorTraits": "high risk"
		}`)
		require.Equal(t, 200, w.Code)

		body := struct {
			Score    float64 `json:"score"`
			Category string  `json:"category"`
		}{}
		decodeBody(t, w, &body)
		require.Equal(t, 8.5, body.Score)
		require.Equal(t, "Aggressive", body.Category)
	})

	t.Run("invalid profile is a 400", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/risk-profile", `{"age": 17, "monthlyIncome": 100}`)
		require.Equal(t, 400, w.Code)
		require.Contains(t, w.Body.String(), "age must be")
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/risk-profile", `{"age": "old"`)
		require.Equal(t, 400, w.Code)
	})
}

func TestAllocation(t *testing.T) {
	h := newTestHandler(testUniverse())

	t.Run("keeps table order", func(t *testing.T) {
		w := doRequest(t, h, http.MethodGet, "/allocation?riskScore=6", "")
		require.Equal(t, 200, w.Code)
		require.Equal(
			t,
			`{"category":"Moderate","allocation":{"Equity - Large Cap":30,"Equity - Flexi Cap":20,"Equity - Hybrid":10,"Debt":30,"Gold":10}}`,
			w.Body.String(),
		)
	})

	t.Run("missing score", func(t *testing.T) {
		w := doRequest(t, h, http.MethodGet, "/allocation", "")
		require.Equal(t, 400, w.Code)
	})

	t.Run("bad score", func(t *testing.T) {
		w := doRequest(t, h, http.MethodGet, "/allocation?riskScore=high", "")
		require.Equal(t, 400, w.Code)
	})
}

func TestGoals(t *testing.T) {
	h := newTestHandler(testUniverse())

	t.Run("retirement", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/goal/retirement", `{"currentAge": 30, "currentMonthlyExpense": 50000, "expectedReturnRate": 0.12}`)
		require.Equal(t, 200, w.Code)

		body := struct {
			YearsToGoal  int     `json:"yearsToGoal"`
			FutureCorpus float64 `json:"futureCorpus"`
			RequiredSip  float64 `json:"requiredSip"`
		}{}
		decodeBody(t, w, &body)
		require.Equal(t, 30, body.YearsToGoal)
		require.InDelta(t, 50000*math.Pow(1.065, 30)*300, body.FutureCorpus, 0.01)
		require.Greater(t, body.RequiredSip, 0.0)
	})

	t.Run("education", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/goal/education", `{"presentCost": 2000000, "yearsToGoal": 12, "expectedReturnRate": 0.12}`)
		require.Equal(t, 200, w.Code)
		require.Contains(t, w.Body.String(), `"goalName":"Child Education"`)
	})

	t.Run("negative cost", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/goal/education", `{"presentCost": -1, "yearsToGoal": 12}`)
		require.Equal(t, 400, w.Code)
	})

	t.Run("out of range retirement age", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/goal/retirement", `{"currentAge": 30, "currentMonthlyExpense": 40000, "expectedReturnRate": 0.12, "retirementAge": 20000}`)
		require.Equal(t, 400, w.Code)
		require.Contains(t, w.Body.String(), "retirement age")
	})

	t.Run("out of range return rate", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/goal/retirement", `{"currentAge": 30, "currentMonthlyExpense": 40000, "expectedReturnRate": 1e6}`)
		require.Equal(t, 400, w.Code)

		w = doRequest(t, h, http.MethodPost, "/goal/education", `{"presentCost": 100000, "yearsToGoal": 10, "expectedReturnRate": -2}`)
		require.Equal(t, 400, w.Code)
	})
}

func TestSimulations(t *testing.T) {
	h := newTestHandler(testUniverse())

	t.Run("monte carlo", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/monte-carlo", `{"initialCorpus": 100000, "monthlySip": 10000, "years": 10, "targetCorpus": 1, "expectedAnnualReturn": 0.12}`)
		require.Equal(t, 200, w.Code)

		body := struct {
			SuccessProbability float64 `json:"successProbability"`
		}{}
		decodeBody(t, w, &body)
		require.Equal(t, 100.0, body.SuccessProbability)
	})

	t.Run("monte carlo bounds", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/monte-carlo", `{"years": 500, "targetCorpus": 1}`)
		require.Equal(t, 400, w.Code)
	})

	t.Run("monte carlo with a handful of simulations", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/monte-carlo", `{"initialCorpus": 100000, "monthlySip": 10000, "years": 10, "targetCorpus": 1, "expectedAnnualReturn": 0.12, "numSimulations": 5}`)
		require.Equal(t, 200, w.Code)

		body := struct {
			SuccessProbability float64 `json:"successProbability"`
			P10Corpus          float64 `json:"p10Corpus"`
		}{}
		decodeBody(t, w, &body)
		require.Equal(t, 100.0, body.SuccessProbability)
		require.Greater(t, body.P10Corpus, 0.0)
	})

	t.Run("monte carlo invalid input", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/monte-carlo", `{"years": 10, "targetCorpus": 1, "annualVolatility": 50}`)
		require.Equal(t, 400, w.Code)
	})

	t.Run("projection invalid rate", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/projection", `{"monthlySip": 10000, "annualReturnRate": 1e6, "years": 10}`)
		require.Equal(t, 400, w.Code)
	})

	t.Run("projection", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/projection", `{"initialInvestment": 0, "monthlySip": 10000, "annualReturnRate": 0.12, "years": 1}`)
		require.Equal(t, 200, w.Code)

		rows := []struct {
			Year       int     `json:"year"`
			Invested   float64 `json:"invested"`
			TotalValue float64 `json:"totalValue"`
		}{}
		decodeBody(t, w, &rows)
		require.Len(t, rows, 1)
		require.Equal(t, 120000.0, rows[0].Invested)
		require.InDelta(t, 128093.28, rows[0].TotalValue, 10)
	})

	t.Run("portfolio health", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/portfolio-health", `{"existingFd": 50000, "existingSavings": 50000}`)
		require.Equal(t, 200, w.Code)
		require.Contains(t, w.Body.String(), `"diversificationScore":6`)
		require.Contains(t, w.Body.String(), `"breakdown":{"Fixed Deposits / Bonds":50,"Savings / Cash":50,"Gold":0,"Mutual Funds / Equity":0}`)

		w = doRequest(t, h, http.MethodPost, "/portfolio-health", `{"existingGold": -1}`)
		require.Equal(t, 400, w.Code)
	})
}

func TestRecommendations(t *testing.T) {
	t.Run("follows allocation order", func(t *testing.T) {
		h := newTestHandler(testUniverse())
		w := doRequest(t, h, http.MethodPost, "/recommendations", `{
			"allocation": {"Gold": 10, "Debt": 30, "Equity - Large Cap": 60},
			"riskProfile": "Moderate"
		}`)
		require.Equal(t, 200, w.Code)

		body := RecommendationsResponse{}
		decodeBody(t, w, &body)
		require.True(t, body.IsLiveData)
		require.Len(t, body.Recommendations, 3)

		require.Equal(t, "G1", body.Recommendations[0].SchemeCode)
		require.Equal(t, 10.0, body.Recommendations[0].Weight)
		require.Equal(t, "D1", body.Recommendations[1].SchemeCode)
		require.Equal(t, "L1", body.Recommendations[2].SchemeCode)
		require.Equal(t, 60.0, body.Recommendations[2].Weight)
		require.True(t, decimal.NewFromInt(100).Equal(body.Recommendations[2].NAV))
	})

	t.Run("universe unavailable", func(t *testing.T) {
		h := newTestHandler(domain.UniverseSnapshot{})
		w := doRequest(t, h, http.MethodPost, "/recommendations", `{"allocation": {"Debt": 100}, "riskProfile": "Conservative"}`)
		require.Equal(t, 200, w.Code)
		require.Equal(t, `{"recommendations":[],"isLiveData":false}`, w.Body.String())
	})

	t.Run("empty allocation", func(t *testing.T) {
		h := newTestHandler(testUniverse())
		w := doRequest(t, h, http.MethodPost, "/recommendations", `{"allocation": {}, "riskProfile": "Conservative"}`)
		require.Equal(t, 400, w.Code)
	})
}

func TestPlan(t *testing.T) {
	h := newTestHandler(testUniverse())

	t.Run("full plan", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/plan", `{
			"age": 25,
			"monthlyIncome": 100000,
			"monthlySavingsCapacity": 50000,
			"dependents": 0,
			"behaviorTraits": "high risk",
			"existingMutualFunds": 500000,
			"currentMonthlyExpense": 40000,
			"education": {"presentCost": 1500000, "yearsToGoal": 10}
		}`)
		require.Equal(t, 200, w.Code)

		plan := l3_service.Plan{}
		decodeBody(t, w, &plan)

		require.Equal(t, "Aggressive", plan.RiskProfile.Category)
		require.Equal(t, "Aggressive", plan.Allocation.Category)
		require.Equal(t, 100.0, plan.Allocation.Allocation.Total())
		require.True(t, plan.IsLiveData)
		require.Len(t, plan.Recommendations, 5)
		for _, r := range plan.Recommendations {
			require.Equal(t, "Aggressive", r.Risk)
		}
		require.Equal(t, 35, plan.Retirement.YearsToGoal)
		require.Len(t, plan.Projection, 35)
		require.NotNil(t, plan.Education)
		require.Equal(t, 10, plan.Education.YearsToGoal)
		require.Equal(t, 500000.0, plan.PortfolioHealth.TotalCorpus)
		require.GreaterOrEqual(t, plan.MonteCarlo.SuccessProbability, 0.0)
		require.LessOrEqual(t, plan.MonteCarlo.SuccessProbability, 100.0)
	})

	t.Run("invalid profile", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/plan", `{"age": 30, "monthlyIncome": 1000, "monthlySavingsCapacity": 5000}`)
		require.Equal(t, 400, w.Code)
	})
}

func TestPlanReport(t *testing.T) {
	h := newTestHandler(testUniverse())

	t.Run("returns a pdf", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/plan/report", `{
			"clientName": "Asha Rao",
			"age": 40,
			"monthlyIncome": 100000,
			"monthlySavingsCapacity": 20000,
			"dependents": 1,
			"behaviorTraits": "moderate",
			"currentMonthlyExpense": 50000
		}`)
		require.Equal(t, 200, w.Code)
		require.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		require.Contains(t, w.Header().Get("Content-Disposition"), "financial-plan.pdf")
		require.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
	})

	t.Run("invalid profile", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/plan/report", `{"age": 30, "monthlyIncome": 1000, "monthlySavingsCapacity": 5000}`)
		require.Equal(t, 400, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := doRequest(t, h, http.MethodPost, "/plan/report", `{"age": "old"}`)
		require.Equal(t, 400, w.Code)
	})
}

func TestUniverse(t *testing.T) {
	t.Run("summarizes categories", func(t *testing.T) {
		h := newTestHandler(testUniverse())
		w := doRequest(t, h, http.MethodGet, "/universe", "")
		require.Equal(t, 200, w.Code)

		body := getUniverseResponse{}
		decodeBody(t, w, &body)
		require.True(t, body.IsLive)
		require.Equal(t, 5, body.NumInstruments)
		require.Len(t, body.Categories, len(domain.AllCategories))
		require.Equal(t, categorySummary{Category: domain.CategoryLargeCap, NumFunds: 1, TopScheme: "Alpha Large Cap Fund"}, body.Categories[0])
		require.Equal(t, categorySummary{Category: domain.CategoryMidCap}, body.Categories[1])
	})

	t.Run("no universe", func(t *testing.T) {
		h := newTestHandler(domain.UniverseSnapshot{})
		w := doRequest(t, h, http.MethodGet, "/universe", "")
		require.Equal(t, 200, w.Code)
		require.NotContains(t, w.Body.String(), "fetchedAt")
	})
}

func TestForecast(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prices := []domain.PricePoint{}
	for i := 0; i < 400; i++ {
		prices = append(prices, domain.PricePoint{
			Symbol: "GOLDBEES.NS",
			Date:   start.AddDate(0, 0, i),
			Close:  50 * math.Exp(math.Log(1.08)/365.25*float64(i)),
		})
	}

	t.Run("happy path", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		priceRepository := mock_repository.NewMockPriceHistoryRepository(ctrl)
		priceRepository.EXPECT().
			GetDailyPrices(gomock.Any(), "GOLDBEES.NS", gomock.Any(), gomock.Any()).
			Return(prices, nil)

		h := newTestHandler(testUniverse())
		h.PriceHistoryRepository = priceRepository

		w := doRequest(t, h, http.MethodGet, "/forecast/goldbees.ns", "")
		require.Equal(t, 200, w.Code)

		body := struct {
			Symbol   string  `json:"symbol"`
			Return1Y float64 `json:"1y"`
			Risk     string  `json:"risk"`
		}{}
		decodeBody(t, w, &body)
		require.Equal(t, "GOLDBEES.NS", body.Symbol)
		require.InDelta(t, 8.0, body.Return1Y, 0.01)
		require.Equal(t, "Low", body.Risk)
	})

	t.Run("upstream failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		priceRepository := mock_repository.NewMockPriceHistoryRepository(ctrl)
		priceRepository.EXPECT().
			GetDailyPrices(gomock.Any(), "X", gomock.Any(), gomock.Any()).
			Return(nil, errors.New("boom"))

		h := newTestHandler(testUniverse())
		h.PriceHistoryRepository = priceRepository

		w := doRequest(t, h, http.MethodGet, "/forecast/x", "")
		require.Equal(t, 500, w.Code)
		require.Contains(t, w.Body.String(), "boom")
	})

	t.Run("unknown symbol", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		priceRepository := mock_repository.NewMockPriceHistoryRepository(ctrl)
		priceRepository.EXPECT().
			GetDailyPrices(gomock.Any(), "NOPE", gomock.Any(), gomock.Any()).
			Return([]domain.PricePoint{}, nil)

		h := newTestHandler(testUniverse())
		h.PriceHistoryRepository = priceRepository

		w := doRequest(t, h, http.MethodGet, "/forecast/nope", "")
		require.Equal(t, 404, w.Code)
	})
}

package api

import (
	"errors"
	"finplan/internal/calculator"
	"finplan/internal/domain"
	"finplan/internal/logger"
	"finplan/internal/repository"
	l2_service "finplan/internal/service/l2"
	l3_service "finplan/internal/service/l3"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

type ApiHandler struct {
	RankedUniverseService  l2_service.RankedUniverseService
	RecommendationService  l3_service.RecommendationService
	PlanService            l3_service.PlanService
	ReportService          l3_service.ReportService
	PriceHistoryRepository repository.PriceHistoryRepository
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{
			"status":  "ok",
			"message": "finplan is running",
		})
	})
	router.POST("/risk-profile", m.riskProfile)
	router.GET("/allocation", m.allocation)
	router.POST("/goal/retirement", m.retirementGoal)
	router.POST("/goal/education", m.educationGoal)
	router.POST("/monte-carlo", m.monteCarlo)
	router.POST("/projection", m.projection)
	router.POST("/portfolio-health", m.portfolioHealth)
	router.POST("/recommendations", m.recommendations)
	router.POST("/plan", m.plan)
	router.POST("/plan/report", m.planReport)
	router.GET("/universe", m.universe)
	router.GET("/forecast/:symbol", m.forecast)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Errorf("request failed with %d: %s", code, err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

// returnCalculatorError maps bad client input to a 400
func returnCalculatorError(err error, c *gin.Context) {
	if errors.Is(err, calculator.ErrInvalidProfile) {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	}
	returnErrorJson(err, c)
}

// logRequestMiddleware tags each request with an id and attaches a logger
// carrying it, plus a timing profile, to the request context
func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	requestID := ctx.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.Writer.Header().Set(requestIDHeader, requestID)

	log := logger.FromContext(ctx.Request.Context()).With(
		"requestID", requestID,
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
	)
	profile, endProfile := domain.NewProfile()
	requestCtx := logger.WithContext(ctx.Request.Context(), log)
	requestCtx = domain.WithProfile(requestCtx, profile)
	ctx.Request = ctx.Request.WithContext(requestCtx)

	ctx.Next()
	endProfile()

	fields := []interface{}{
		"status", ctx.Writer.Status(),
		"durationMs", profile.TotalMs(),
	}
	if spans := profile.Spans(); len(spans) > 0 {
		fields = append(fields, "spans", spans)
	}
	log.Infow("request complete", fields...)
}

package api

import (
	"finplan/internal/calculator"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// keeps a single request from pinning a cpu
const (
	maxSimulationYears = 100
	maxSimulations     = 10000
)

func (h ApiHandler) monteCarlo(c *gin.Context) {
	var requestBody calculator.MonteCarloInput
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}
	if requestBody.Years > maxSimulationYears || requestBody.NumSimulations > maxSimulations {
		returnErrorJsonCode(fmt.Errorf("at most %d years and %d simulations are supported", maxSimulationYears, maxSimulations), c, http.StatusBadRequest)
		return
	}

	result, err := calculator.RunMonteCarlo(requestBody)
	if err != nil {
		returnCalculatorError(err, c)
		return
	}

	c.JSON(200, result)
}

type projectionRequest struct {
	InitialInvestment float64 `json:"initialInvestment"`
	MonthlySip        float64 `json:"monthlySip"`
	AnnualReturnRate  float64 `json:"annualReturnRate"`
	Years             int     `json:"years"`
}

func (h ApiHandler) projection(c *gin.Context) {
	var requestBody projectionRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}
	if requestBody.Years < 0 || requestBody.Years > maxSimulationYears {
		returnErrorJsonCode(fmt.Errorf("years must be between 0 and %d", maxSimulationYears), c, http.StatusBadRequest)
		return
	}
	if err := validateProjection(requestBody); err != nil {
		returnCalculatorError(err, c)
		return
	}

	c.JSON(200, calculator.ProjectionTable(
		requestBody.InitialInvestment,
		requestBody.MonthlySip,
		requestBody.AnnualReturnRate,
		requestBody.Years,
	))
}

func validateProjection(req projectionRequest) error {
	if err := calculator.ValidateAmount("initial investment", req.InitialInvestment); err != nil {
		return err
	}
	if err := calculator.ValidateAmount("monthly sip", req.MonthlySip); err != nil {
		return err
	}
	return calculator.ValidateRate("annual return rate", req.AnnualReturnRate)
}

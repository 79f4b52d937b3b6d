package api

import (
	"finplan/internal/calculator"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h ApiHandler) portfolioHealth(c *gin.Context) {
	var requestBody calculator.ExistingAssets
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}
	if err := requestBody.Validate(); err != nil {
		returnCalculatorError(err, c)
		return
	}

	c.JSON(200, calculator.AnalyzePortfolio(requestBody))
}

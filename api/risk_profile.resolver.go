package api

import (
	"finplan/internal/calculator"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h ApiHandler) riskProfile(c *gin.Context) {
	var requestBody calculator.ClientProfile
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}

	result, err := calculator.RiskScore(requestBody)
	if err != nil {
		returnCalculatorError(err, c)
		return
	}

	c.JSON(200, result)
}

package api

import (
	"finplan/internal/calculator"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h ApiHandler) retirementGoal(c *gin.Context) {
	var requestBody calculator.RetirementGoalInput
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}
	if err := requestBody.Validate(); err != nil {
		returnCalculatorError(err, c)
		return
	}

	c.JSON(200, calculator.RetirementGoal(requestBody))
}

type educationGoalRequest struct {
	PresentCost        float64 `json:"presentCost"`
	YearsToGoal        int     `json:"yearsToGoal"`
	ExpectedReturnRate float64 `json:"expectedReturnRate"`
}

func (h ApiHandler) educationGoal(c *gin.Context) {
	var requestBody educationGoalRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}
	err := calculator.ValidateEducationGoal(
		requestBody.PresentCost,
		requestBody.YearsToGoal,
		requestBody.ExpectedReturnRate,
	)
	if err != nil {
		returnCalculatorError(err, c)
		return
	}

	c.JSON(200, calculator.EducationGoal(
		requestBody.PresentCost,
		requestBody.YearsToGoal,
		requestBody.ExpectedReturnRate,
	))
}

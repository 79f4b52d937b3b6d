package api

import (
	l3_service "finplan/internal/service/l3"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h ApiHandler) plan(c *gin.Context) {
	var requestBody l3_service.PlanRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}

	out, err := h.PlanService.BuildPlan(c.Request.Context(), requestBody)
	if err != nil {
		returnCalculatorError(err, c)
		return
	}

	c.JSON(200, out)
}

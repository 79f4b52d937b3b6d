package api

import (
	l3_service "finplan/internal/service/l3"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h ApiHandler) planReport(c *gin.Context) {
	var requestBody l3_service.ReportRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}

	out, err := h.ReportService.GeneratePlanReport(c.Request.Context(), requestBody)
	if err != nil {
		returnCalculatorError(err, c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="financial-plan.pdf"`)
	c.Data(200, "application/pdf", out)
}

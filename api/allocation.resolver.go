package api

import (
	"finplan/internal/calculator"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h ApiHandler) allocation(c *gin.Context) {
	raw := c.Query("riskScore")
	if raw == "" {
		returnErrorJsonCode(fmt.Errorf("missing riskScore query param"), c, http.StatusBadRequest)
		return
	}
	riskScore, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse riskScore %q: %w", raw, err), c, http.StatusBadRequest)
		return
	}

	c.JSON(200, calculator.AssetAllocation(riskScore))
}

package api

import (
	"errors"
	"finplan/internal/calculator"
	"finplan/internal/util"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const forecastHistoryYears = 5

// forecast fits a trend to a ticker's price history and extrapolates it.
// The current nav defaults to the last close
func (h ApiHandler) forecast(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		returnErrorJsonCode(fmt.Errorf("missing symbol"), c, http.StatusBadRequest)
		return
	}

	end := time.Now().UTC()
	start := util.YearsAgo(end, forecastHistoryYears)
	prices, err := h.PriceHistoryRepository.GetDailyPrices(c.Request.Context(), symbol, start, end)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to get prices for %s: %w", symbol, err), c)
		return
	}
	if len(prices) == 0 {
		returnErrorJsonCode(fmt.Errorf("no prices found for %s", symbol), c, http.StatusNotFound)
		return
	}

	forecast, err := calculator.ForecastReturns(prices, prices[len(prices)-1].Price())
	if errors.Is(err, calculator.ErrNotEnoughPrices) {
		returnErrorJsonCode(err, c, http.StatusUnprocessableEntity)
		return
	} else if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, forecast)
}

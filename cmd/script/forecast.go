package main

import (
	"finplan/internal/calculator"
	"finplan/internal/util"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast SYMBOL",
	Short: "Extrapolate the price trend of a ticker such as NIFTYBEES.NS",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol := strings.ToUpper(args[0])
		end := time.Now().UTC()
		prices, err := handler.PriceHistoryRepository.GetDailyPrices(commandContext(), symbol, util.YearsAgo(end, 5), end)
		if err != nil {
			return err
		}
		if len(prices) == 0 {
			return fmt.Errorf("no prices for %s", symbol)
		}

		forecast, err := calculator.ForecastReturns(prices, prices[len(prices)-1].Price())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s risk, volatility %.2f%%): 1y %.2f%%, 3y %.2f%%, 5y %.2f%%\n",
			forecast.Symbol, forecast.Risk, forecast.Volatility, forecast.Return1Y, forecast.Return3Y, forecast.Return5Y)
		return nil
	},
}

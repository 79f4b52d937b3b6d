package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Recommendation struct {
	Name         string          `json:"name"`
	SchemeCode   string          `json:"schemeCode"`
	AMC          string          `json:"amc"`
	Category     Category        `json:"category"`
	AssetClass   string          `json:"assetClass"`
	Weight       float64         `json:"allocationWeight"`
	Risk         string          `json:"risk"`
	CAGR1Y       float64         `json:"1y"`
	CAGR3Y       float64         `json:"3y"`
	CAGR5Y       float64         `json:"5y"`
	Volatility   float64         `json:"volatility"`
	Sharpe       float64         `json:"sharpe"`
	RankingScore float64         `json:"rankingScore"`
	NAV          decimal.Decimal `json:"nav"`
	NAVDate      time.Time       `json:"navDate"`
	NAVDateRaw   string          `json:"navDateRaw"`
}

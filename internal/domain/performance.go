package domain

// PerformanceSnapshot holds trailing stats for one category. Returns and
// volatility are percentage points, Sharpe is a plain ratio
type PerformanceSnapshot struct {
	CAGR1Y     float64 `json:"1y"`
	CAGR3Y     float64 `json:"3y"`
	CAGR5Y     float64 `json:"5y"`
	Volatility float64 `json:"volatility"`
	Sharpe     float64 `json:"sharpe"`
}

type CategoryPerformance map[Category]PerformanceSnapshot

// Get returns the zero snapshot for categories without data
func (c CategoryPerformance) Get(category Category) PerformanceSnapshot {
	if c == nil {
		return PerformanceSnapshot{}
	}
	return c[category]
}

type BenchmarkProxy struct {
	Category Category
	Ticker   string
}

// BenchmarkProxies maps categories to the ETF used to estimate their
// historical risk and return
var BenchmarkProxies = []BenchmarkProxy{
	{Category: CategoryLargeCap, Ticker: "NIFTYBEES.NS"},
	{Category: CategoryMidCap, Ticker: "MID150BEES.NS"},
	{Category: CategorySmallCap, Ticker: "JUNIORBEES.NS"},
	{Category: CategoryFlexi, Ticker: "NIFTYBEES.NS"},
	{Category: CategoryHybrid, Ticker: "NIFTYBEES.NS"},
	{Category: CategoryDebt, Ticker: "LIQUIDBEES.NS"},
	{Category: CategoryGold, Ticker: "GOLDBEES.NS"},
	{Category: CategorySectoral, Ticker: "MID150BEES.NS"},
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	AmfiNavURL = "https://www.amfiindia.com/spages/NAVAll.txt"

	// RiskFreeRate is the annual Indian risk-free rate used for Sharpe ratios
	RiskFreeRate = 0.06

	DefaultReportDisclaimer = "Market performance is not guaranteed."
)

type Config struct {
	Env  string `env:"FINPLAN_ENV"`
	Port int    `env:"FINPLAN_PORT" envDefault:"3009"`

	NavFeedURL        string        `env:"FINPLAN_NAV_FEED_URL" envDefault:"https://www.amfiindia.com/spages/NAVAll.txt"`
	NavFeedTimeout    time.Duration `env:"FINPLAN_NAV_FEED_TIMEOUT" envDefault:"20s"`
	NavFeedMaxTries   uint          `env:"FINPLAN_NAV_FEED_MAX_TRIES" envDefault:"3"`
	NavFeedBackoff    time.Duration `env:"FINPLAN_NAV_FEED_BACKOFF" envDefault:"2s"`
	UniverseTTL       time.Duration `env:"FINPLAN_UNIVERSE_TTL" envDefault:"6h"`
	PerformanceTTL    time.Duration `env:"FINPLAN_PERFORMANCE_TTL" envDefault:"6h"`
	RiskFreeRate      float64       `env:"FINPLAN_RISK_FREE_RATE" envDefault:"0.06"`
	PriceRequestsPerS int           `env:"FINPLAN_PRICE_REQUESTS_PER_SECOND" envDefault:"2"`

	// how long a failed feed fetch is remembered before retrying
	UniverseFailureTTL time.Duration `env:"FINPLAN_UNIVERSE_FAILURE_TTL" envDefault:"1m"`

	// per proxy price history request
	PriceTimeout time.Duration `env:"FINPLAN_PRICE_TIMEOUT" envDefault:"30s"`

	// assumptions for the full plan endpoint
	PlanExpectedReturn float64 `env:"FINPLAN_PLAN_EXPECTED_RETURN" envDefault:"0.13"`
	PlanVolatility     float64 `env:"FINPLAN_PLAN_VOLATILITY" envDefault:"0.15"`

	ReportDisclaimer string `env:"FINPLAN_REPORT_DISCLAIMER" envDefault:"Market performance is not guaranteed."`
}

// Load reads the config from the environment, using compiled-in
// defaults for anything unset
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}
	if cfg.NavFeedMaxTries == 0 {
		return nil, fmt.Errorf("FINPLAN_NAV_FEED_MAX_TRIES must be positive")
	}
	if cfg.PriceRequestsPerS <= 0 {
		return nil, fmt.Errorf("FINPLAN_PRICE_REQUESTS_PER_SECOND must be positive")
	}
	if cfg.PriceTimeout <= 0 {
		return nil, fmt.Errorf("FINPLAN_PRICE_TIMEOUT must be positive")
	}
	if cfg.PlanExpectedReturn <= -1 || cfg.PlanExpectedReturn > 1 || cfg.PlanVolatility < 0 || cfg.PlanVolatility > 1 {
		return nil, fmt.Errorf("plan return must be in (-1, 1] and volatility in [0, 1]")
	}
	return &cfg, nil
}

func Default() Config {
	return Config{
		Port:              3009,
		NavFeedURL:        AmfiNavURL,
		NavFeedTimeout:    20 * time.Second,
		NavFeedMaxTries:   3,
		NavFeedBackoff:    2 * time.Second,
		UniverseTTL:       6 * time.Hour,
		PerformanceTTL:    6 * time.Hour,
		RiskFreeRate:      RiskFreeRate,
		PriceRequestsPerS: 2,

		UniverseFailureTTL: time.Minute,
		PriceTimeout:       30 * time.Second,

		PlanExpectedReturn: 0.13,
		PlanVolatility:     0.15,

		ReportDisclaimer: DefaultReportDisclaimer,
	}
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Instrument is one scheme row of the NAV feed. Category, Performance
// and RankingScore stay nil until the universe is classified and enriched
type Instrument struct {
	SchemeCode string          `json:"schemeCode"`
	ISIN       string          `json:"isin"`
	SchemeName string          `json:"schemeName"`
	NAV        decimal.Decimal `json:"nav"`
	// NAVDate is zero when the feed date could not be parsed; NAVDateRaw
	// always holds what the feed reported
	NAVDate    time.Time `json:"navDate"`
	NAVDateRaw string    `json:"navDateRaw"`
	AMC        string    `json:"amc"`

	Category     *Category            `json:"category,omitempty"`
	Performance  *PerformanceSnapshot `json:"performance,omitempty"`
	RankingScore *float64             `json:"rankingScore,omitempty"`
}

func (i Instrument) CategoryOrOther() Category {
	if i.Category == nil {
		return CategoryOther
	}
	return *i.Category
}

// Score treats a missing ranking score as zero
func (i Instrument) Score() float64 {
	if i.RankingScore == nil {
		return 0
	}
	return *i.RankingScore
}

type UniverseSnapshot struct {
	Instruments []Instrument
	FetchedAt   time.Time
	// IsLive is true only when the instruments came from a successful
	// fetch that is still within its TTL
	IsLive bool
}

func (u UniverseSnapshot) Empty() bool {
	return len(u.Instruments) == 0
}

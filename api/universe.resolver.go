package api

import (
	"finplan/internal/domain"
	"time"

	"github.com/gin-gonic/gin"
)

type categorySummary struct {
	Category  domain.Category `json:"category"`
	NumFunds  int             `json:"numFunds"`
	TopScheme string          `json:"topScheme,omitempty"`
}

type getUniverseResponse struct {
	IsLive         bool              `json:"isLive"`
	FetchedAt      *time.Time        `json:"fetchedAt,omitempty"`
	NumInstruments int               `json:"numInstruments"`
	Categories     []categorySummary `json:"categories"`
}

// universe reports the shape of the categorized fund universe. Categories are
// listed in their fixed order, including empty ones
func (h ApiHandler) universe(c *gin.Context) {
	snapshot := h.RankedUniverseService.GetRankedUniverse(c.Request.Context())

	out := getUniverseResponse{
		IsLive:         snapshot.IsLive,
		NumInstruments: len(snapshot.Instruments),
		Categories:     summarizeCategories(snapshot.Instruments),
	}
	if !snapshot.FetchedAt.IsZero() {
		out.FetchedAt = &snapshot.FetchedAt
	}

	c.JSON(200, out)
}

func summarizeCategories(instruments []domain.Instrument) []categorySummary {
	counts := map[domain.Category]int{}
	first := map[domain.Category]string{}
	for _, in := range instruments {
		category := in.CategoryOrOther()
		counts[category]++
		if _, ok := first[category]; !ok {
			first[category] = in.SchemeName
		}
	}

	out := []categorySummary{}
	for _, category := range domain.AllCategories {
		out = append(out, categorySummary{
			Category:  category,
			NumFunds:  counts[category],
			TopScheme: first[category],
		})
	}
	return out
}

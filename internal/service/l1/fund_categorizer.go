package l1_service

import (
	"context"
	"finplan/internal/domain"
	"finplan/internal/logger"
	"strings"
)

type categoryRule struct {
	category domain.Category
	keywords []string
}

// order matters: a later rule overrides an earlier match, so "HDFC Mid Cap
// Gold Fund" ends up in Gold
var categoryRules = []categoryRule{
	{domain.CategoryLargeCap, []string{"large cap"}},
	{domain.CategoryMidCap, []string{"mid cap"}},
	{domain.CategorySmallCap, []string{"small cap"}},
	{domain.CategoryFlexi, []string{"flexi cap"}},
	{domain.CategorySectoral, []string{"sector", "thematic"}},
	{domain.CategoryHybrid, []string{"hybrid", "balanced"}},
	{domain.CategoryDebt, []string{"liquid", "debt", "bond"}},
	{domain.CategoryGold, []string{"gold"}},
}

func ClassifySchemeName(name string) domain.Category {
	lower := strings.ToLower(name)
	category := domain.CategoryOther
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				category = rule.category
				break
			}
		}
	}
	return category
}

// CategorizeFunds returns a copy of the universe with every instrument
// assigned exactly one category. It only looks at the scheme name, so
// running it twice gives the same result
func CategorizeFunds(ctx context.Context, instruments []domain.Instrument) []domain.Instrument {
	out := make([]domain.Instrument, len(instruments))
	categorized := 0
	for i, in := range instruments {
		category := ClassifySchemeName(in.SchemeName)
		in.Category = domain.CategoryPtr(category)
		if category != domain.CategoryOther {
			categorized++
		}
		out[i] = in
	}

	if len(instruments) > 0 {
		logger.FromContext(ctx).Infof("categorization complete: %d funds categorized out of %d", categorized, len(instruments))
	}
	return out
}

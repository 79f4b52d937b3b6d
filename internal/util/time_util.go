package util

import (
	"time"
)

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// YearsAgo uses 365-day years, not calendar years
func YearsAgo(t time.Time, years int) time.Time {
	return t.AddDate(0, 0, -365*years)
}

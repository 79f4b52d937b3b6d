package calculator

import (
	"fmt"
	"math"
)

// FutureValue compounds a lump sum annually: pv * (1 + rate)^years
func FutureValue(presentValue, rate float64, years int) (float64, error) {
	if years < 0 {
		return 0, fmt.Errorf("years must be non-negative, got %d", years)
	}
	return presentValue * math.Pow(1+rate, float64(years)), nil
}

// annuityDueFactor is the value of one unit invested at the start of each
// month for the given number of months
func annuityDueFactor(monthlyRate float64, months int) float64 {
	return ((math.Pow(1+monthlyRate, float64(months)) - 1) / monthlyRate) * (1 + monthlyRate)
}

// SipFutureValue is the value of a monthly investment made at the beginning
// of every month, compounded monthly at annualRate/12
func SipFutureValue(monthlyInvestment, annualRate float64, years int) float64 {
	if years <= 0 {
		return 0
	}
	monthlyRate := annualRate / 12
	months := years * 12
	if monthlyRate == 0 {
		return monthlyInvestment * float64(months)
	}
	return monthlyInvestment * annuityDueFactor(monthlyRate, months)
}

// RequiredSip inverts SipFutureValue
func RequiredSip(futureValue, annualRate float64, years int) float64 {
	if years <= 0 {
		return 0
	}
	monthlyRate := annualRate / 12
	months := years * 12
	if monthlyRate == 0 {
		return futureValue / float64(months)
	}
	return futureValue / annuityDueFactor(monthlyRate, months)
}

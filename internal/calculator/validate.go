package calculator

import (
	"fmt"
	"math"
)

const (
	MaxAge = 120
	// annual rates are fractions, 0.12 is 12%
	MaxAnnualRate = 1.0
	// rupees; keeps every compounded result finite
	maxAmount = 1e15
)

// ValidateRate accepts finite rates in (-1, MaxAnnualRate]
func ValidateRate(name string, rate float64) error {
	if math.IsNaN(rate) || rate <= -1 || rate > MaxAnnualRate {
		return fmt.Errorf("%w: %s must be between -1 and %g, got %g", ErrInvalidProfile, name, MaxAnnualRate, rate)
	}
	return nil
}

// ValidateAmount accepts finite amounts in [0, 1e15]
func ValidateAmount(name string, amount float64) error {
	if math.IsNaN(amount) || amount < 0 || amount > maxAmount {
		return fmt.Errorf("%w: %s must be between 0 and %g, got %g", ErrInvalidProfile, name, maxAmount, amount)
	}
	return nil
}

// ValidateRetirementAge allows zero, which means DefaultRetirementAge. A
// retirement age at or below the current age is valid and gives an empty goal
func ValidateRetirementAge(retirementAge int) error {
	if retirementAge < 0 || retirementAge > MaxAge {
		return fmt.Errorf("%w: retirement age must be between 0 and %d, got %d", ErrInvalidProfile, MaxAge, retirementAge)
	}
	return nil
}

func (in RetirementGoalInput) Validate() error {
	if in.CurrentAge < 0 || in.CurrentAge > MaxAge {
		return fmt.Errorf("%w: current age must be between 0 and %d, got %d", ErrInvalidProfile, MaxAge, in.CurrentAge)
	}
	if err := ValidateRetirementAge(in.RetirementAge); err != nil {
		return err
	}
	if err := ValidateAmount("current monthly expense", in.CurrentMonthlyExpense); err != nil {
		return err
	}
	if err := ValidateAmount("existing corpus", in.ExistingCorpus); err != nil {
		return err
	}
	return ValidateRate("expected return rate", in.ExpectedReturnRate)
}

func ValidateEducationGoal(presentCost float64, yearsToGoal int, expectedReturnRate float64) error {
	if yearsToGoal > MaxAge {
		return fmt.Errorf("%w: years to goal must be at most %d, got %d", ErrInvalidProfile, MaxAge, yearsToGoal)
	}
	if err := ValidateAmount("present cost", presentCost); err != nil {
		return err
	}
	return ValidateRate("expected return rate", expectedReturnRate)
}

func (in MonteCarloInput) Validate() error {
	if in.Years > MaxAge {
		return fmt.Errorf("%w: years must be at most %d, got %d", ErrInvalidProfile, MaxAge, in.Years)
	}
	if in.NumSimulations < 0 {
		return fmt.Errorf("%w: number of simulations must be non-negative", ErrInvalidProfile)
	}
	if err := ValidateAmount("initial corpus", in.InitialCorpus); err != nil {
		return err
	}
	if err := ValidateAmount("monthly sip", in.MonthlySip); err != nil {
		return err
	}
	if err := ValidateAmount("target corpus", in.TargetCorpus); err != nil {
		return err
	}
	if err := ValidateRate("expected annual return", in.ExpectedAnnualReturn); err != nil {
		return err
	}
	if math.IsNaN(in.AnnualVolatility) || in.AnnualVolatility < 0 || in.AnnualVolatility > MaxAnnualRate {
		return fmt.Errorf("%w: annual volatility must be between 0 and %g", ErrInvalidProfile, MaxAnnualRate)
	}
	return nil
}

package service

import (
	"fmt"
	"math"

	"mortgage-afford/domain"
)

// presentValue discounts n end-of-period payments at the periodic rate.
func presentValue(rate float64, n int, payment float64) float64 {
	if rate == 0 {
		return payment * float64(n)
	}
	return payment * (1 - math.Pow(1+rate, -float64(n))) / rate
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MaxPurchasePrice returns the highest price the budget supports: the
// principal a level payment can amortize over the term, plus the down
// payment. It inverts Amortize exactly, so financing the result less the
// down payment reproduces the payment budget.
func MaxPurchasePrice(input domain.AffordabilityInput) (float64, error) {
	if err := validateTerm(input.TermYears); err != nil {
		return 0, err
	}
	if err := validateRate(input.AnnualRatePercent); err != nil {
		return 0, err
	}
	if !isFinite(input.MaxMonthlyPayment) || input.MaxMonthlyPayment < 0 {
		return 0, fmt.Errorf("%w: monthly payment must be a non-negative number", domain.ErrInvalidInput)
	}
	if !isFinite(input.DownPayment) || input.DownPayment < 0 {
		return 0, fmt.Errorf("%w: down payment must be a non-negative number", domain.ErrInvalidInput)
	}

	principal := presentValue(
		input.AnnualRatePercent/100/12,
		input.TermYears*12,
		input.MaxMonthlyPayment,
	)

	return math.Abs(principal) + input.DownPayment, nil
}

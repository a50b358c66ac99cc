package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"mortgage-afford/domain"
)

// roundTo2Decimals rounds half away from zero to two decimal places.
func roundTo2Decimals(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

func validateTerm(termYears int) error {
	if termYears <= 0 {
		return fmt.Errorf("%w: term must be a positive number of years, got %d", domain.ErrInvalidInput, termYears)
	}
	if termYears > MaxTermYears {
		return fmt.Errorf("%w: term exceeds the maximum of %d years", domain.ErrInvalidInput, MaxTermYears)
	}
	return nil
}

func validateRate(annualRatePercent float64) error {
	if math.IsNaN(annualRatePercent) || annualRatePercent < 0 {
		return fmt.Errorf("%w: interest rate must not be negative", domain.ErrInvalidInput)
	}
	if annualRatePercent > MaxInterestRatePercent {
		return fmt.Errorf("%w: interest rate exceeds %.0f%%", domain.ErrInvalidInput, MaxInterestRatePercent)
	}
	return nil
}

// Amortize computes the level monthly payment of a fully amortizing
// fixed-rate loan along with its total cost and interest. Payments fall at
// the end of each period. Figures are not rounded. A negative principal is
// not rejected and yields a mirrored negative payment.
func Amortize(
	principal float64,
	annualRatePercent float64,
	termYears int,
) (domain.AmortizationResult, error) {

	if err := validateTerm(termYears); err != nil {
		return domain.AmortizationResult{}, err
	}
	if err := validateRate(annualRatePercent); err != nil {
		return domain.AmortizationResult{}, err
	}

	monthlyRate := annualRatePercent / 100 / 12
	n := float64(termYears * 12)

	var payment float64
	if monthlyRate == 0 {
		// (1+r)^n - 1 is zero here
		payment = principal / n
	} else {
		growth := math.Pow(1+monthlyRate, n)
		payment = principal * (monthlyRate * growth) / (growth - 1)
	}

	totalCost := payment * n

	return domain.AmortizationResult{
		MonthlyPayment: payment,
		TotalCost:      totalCost,
		TotalInterest:  totalCost - principal,
	}, nil
}

// AmortizeLoan is Amortize over a LoanTerms value.
func AmortizeLoan(terms domain.LoanTerms) (domain.AmortizationResult, error) {
	return Amortize(terms.Principal, terms.AnnualRatePercent, terms.TermYears)
}

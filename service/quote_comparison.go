package service

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"mortgage-afford/domain"
	"mortgage-afford/obs"
)

// CompareQuotes prices the same principal under each quoted product and
// returns the cheapest offers by total cost. Quotes without a term are
// treated as 30-year loans; quotes the calculator rejects are skipped.
func CompareQuotes(
	principal float64,
	quotes []domain.RateQuote,
) ([]domain.QuoteCost, error) {

	if math.IsNaN(principal) || principal <= 0 {
		return nil, fmt.Errorf("%w: principal must be positive", domain.ErrInvalidInput)
	}
	if len(quotes) == 0 {
		return nil, errors.New("no rate quotes available")
	}

	costs := make([]domain.QuoteCost, 0, len(quotes))
	for _, quote := range quotes {
		term := quote.TermYears
		if term == 0 {
			term = DefaultTermYears
		}

		result, err := AmortizeLoan(domain.LoanTerms{
			Principal:         principal,
			AnnualRatePercent: quote.RatePercent,
			TermYears:         term,
		})
		if err != nil {
			obs.Logger.Warn().
				Err(err).
				Str("product", quote.ProductName).
				Msg("quote_skipped")
			continue
		}

		costs = append(costs, domain.QuoteCost{
			Quote:          quote,
			Principal:      roundTo2Decimals(principal),
			MonthlyPayment: roundTo2Decimals(result.MonthlyPayment),
			TotalCost:      roundTo2Decimals(result.TotalCost),
			TotalInterest:  roundTo2Decimals(result.TotalInterest),
		})
	}

	sort.SliceStable(costs, func(i, j int) bool {
		return costs[i].TotalCost < costs[j].TotalCost
	})

	if len(costs) > MaxQuoteComparisons {
		costs = costs[:MaxQuoteComparisons]
	}
	return costs, nil
}

// DefaultRate picks the first quote for the given term, rounded to two
// decimals, to seed a calculation that did not specify a rate.
func DefaultRate(quotes []domain.RateQuote, termYears int) (float64, bool) {
	for _, quote := range quotes {
		if quote.TermYears == termYears {
			return roundTo2Decimals(quote.RatePercent), true
		}
	}
	return 0, false
}

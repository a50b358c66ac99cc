package service

import (
	"fmt"

	"mortgage-afford/domain"
)

// BuildMatrix tabulates the 30-year monthly payment for purchase prices
// around centerPrice against rates around centerRatePercent. Each cell
// finances the price less the down payment and drops the cents.
func BuildMatrix(
	centerRatePercent float64,
	centerPrice float64,
	downPayment float64,
) (domain.SensitivityMatrix, error) {

	if err := validateRate(centerRatePercent); err != nil {
		return domain.SensitivityMatrix{}, err
	}

	prices, err := roundedPriceSteps(centerPrice)
	if err != nil {
		return domain.SensitivityMatrix{}, err
	}

	rates := rateAxis(
		MatrixRateStartBps, MatrixRateEndBps, MatrixRateStepBps,
		centerRatePercent, MatrixRateWindow,
	)

	payments := make([][]int64, len(prices))
	for i, price := range prices {
		row := make([]int64, len(rates))
		for j, rate := range rates {
			result, err := Amortize(float64(price)-downPayment, rate, MatrixTermYears)
			if err != nil {
				return domain.SensitivityMatrix{}, fmt.Errorf("price %d at %.2f%%: %w", price, rate, err)
			}
			row[j] = int64(result.MonthlyPayment)
		}
		payments[i] = row
	}

	return domain.SensitivityMatrix{
		Prices:      prices,
		Rates:       rates,
		Payments:    payments,
		DownPayment: downPayment,
		TermYears:   MatrixTermYears,
	}, nil
}

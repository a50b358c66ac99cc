package service

import (
	"fmt"
	"math"

	"mortgage-afford/domain"
)

// TableByPrice holds the rate fixed and varies the purchase price ±25%
// around centerPrice.
func TableByPrice(
	annualRatePercent float64,
	downPayment float64,
	termYears int,
	centerPrice float64,
) ([]domain.PriceRow, error) {

	if err := validateTerm(termYears); err != nil {
		return nil, err
	}
	if err := validateRate(annualRatePercent); err != nil {
		return nil, err
	}

	prices, err := priceSteps(centerPrice)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.PriceRow, 0, len(prices))
	for _, price := range prices {
		principal := float64(price) - downPayment
		result, err := Amortize(principal, annualRatePercent, termYears)
		if err != nil {
			return nil, err
		}
		rows = append(rows, domain.PriceRow{
			Price:          float64(price),
			Principal:      roundTo2Decimals(principal),
			MonthlyPayment: roundTo2Decimals(result.MonthlyPayment),
			TotalCost:      roundTo2Decimals(result.TotalCost),
			TotalInterest:  roundTo2Decimals(result.TotalInterest),
		})
	}
	return rows, nil
}

// TableByRate holds the price fixed and varies the rate ±3 points around
// centerRatePercent.
func TableByRate(
	centerRatePercent float64,
	downPayment float64,
	termYears int,
	price float64,
) ([]domain.RateRow, error) {

	if err := validateTerm(termYears); err != nil {
		return nil, err
	}
	if err := validateRate(centerRatePercent); err != nil {
		return nil, err
	}
	if math.IsNaN(price) || price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
	}
	if price > MaxPrice {
		return nil, fmt.Errorf("%w: price %.0f exceeds %.0f", domain.ErrInvalidInput, price, MaxPrice)
	}

	principal := price - downPayment
	rates := rateAxis(
		TableRateStartBps, TableRateEndBps, TableRateStepBps,
		centerRatePercent, TableRateWindow,
	)

	rows := make([]domain.RateRow, 0, len(rates))
	for _, rate := range rates {
		result, err := Amortize(principal, rate, termYears)
		if err != nil {
			return nil, err
		}
		rows = append(rows, domain.RateRow{
			RatePercent:    rate,
			Principal:      roundTo2Decimals(principal),
			MonthlyPayment: roundTo2Decimals(result.MonthlyPayment),
			TotalCost:      roundTo2Decimals(result.TotalCost),
			TotalInterest:  roundTo2Decimals(result.TotalInterest),
		})
	}
	return rows, nil
}

package service

import (
	"fmt"
	"math"
	"sort"

	"mortgage-afford/domain"
)

// priceSteps walks ±25% around center in 5% increments, truncating each
// bound and the step to whole currency units. The upper bound is exclusive.
func priceSteps(center float64) ([]int64, error) {
	if math.IsNaN(center) || center <= 0 {
		return nil, fmt.Errorf("%w: center price must be positive", domain.ErrInvalidInput)
	}
	if center > MaxPrice {
		return nil, fmt.Errorf("%w: center price %.0f exceeds %.0f", domain.ErrInvalidInput, center, MaxPrice)
	}

	start := int64(center * PriceWindowLow)
	stop := int64(center * PriceWindowHigh)
	step := int64(center * PriceStepRatio)
	if step <= 0 {
		return nil, fmt.Errorf("%w: center price %.2f too small to build a price axis", domain.ErrInvalidInput, center)
	}

	prices := make([]int64, 0, int((stop-start)/step)+1)
	for p := start; p < stop; p += step {
		prices = append(prices, p)
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: no price steps around %.2f", domain.ErrInvalidInput, center)
	}
	return prices, nil
}

// roundedPriceSteps rounds each price step to the nearest thousand (ties to
// even) and drops any duplicates the rounding produces.
func roundedPriceSteps(center float64) ([]int64, error) {
	steps, err := priceSteps(center)
	if err != nil {
		return nil, err
	}

	prices := make([]int64, 0, len(steps))
	for _, p := range steps {
		prices = append(prices, int64(math.RoundToEven(float64(p)/PriceRounding)*PriceRounding))
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i] < prices[j] })

	out := prices[:0]
	for i, p := range prices {
		if i > 0 && p == out[len(out)-1] {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// rateAxis merges center into the candidate rates [startBps, endBps) and
// keeps those within window points of center, ascending and unique.
func rateAxis(startBps, endBps, stepBps int, center, window float64) []float64 {
	rates := make([]float64, 0, (endBps-startBps)/stepBps+1)
	for bps := startBps; bps < endBps; bps += stepBps {
		rates = append(rates, float64(bps)/100)
	}
	rates = append(rates, center)
	sort.Float64s(rates)

	out := make([]float64, 0, len(rates))
	for _, r := range rates {
		if r < center-window || r > center+window {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == r {
			continue
		}
		out = append(out, r)
	}
	return out
}

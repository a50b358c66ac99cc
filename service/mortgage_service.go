package service

import (
	"context"
	"errors"
	"fmt"

	"mortgage-afford/config"
	"mortgage-afford/domain"
	"mortgage-afford/repository"
)

// MortgageService assembles the calculators into the reports served over
// HTTP. It keeps no state between calls.
type MortgageService struct {
	rates    repository.RateSource
	advisor  *AdvisorService
	defaults config.Defaults
}

// NewMortgageService creates a MortgageService. advisor may be nil.
func NewMortgageService(
	rates repository.RateSource,
	advisor *AdvisorService,
	defaults config.Defaults,
) *MortgageService {
	return &MortgageService{rates: rates, advisor: advisor, defaults: defaults}
}

// RateFeedError wraps failures from the rate source so callers can tell
// them apart from bad input.
type RateFeedError struct {
	Err error
}

func (e *RateFeedError) Error() string { return "rate feed: " + e.Err.Error() }
func (e *RateFeedError) Unwrap() error { return e.Err }

// Estimate computes the maximum purchase price and the sensitivity views
// centred on it.
func (s *MortgageService) Estimate(
	ctx context.Context,
	input domain.AffordabilityInput,
) (domain.AffordabilityReport, error) {

	if input.TermYears == 0 {
		input.TermYears = s.defaults.TermYears
	}

	maxPrice, err := MaxPurchasePrice(input)
	if err != nil {
		return domain.AffordabilityReport{}, err
	}

	report := domain.AffordabilityReport{
		Input:            input,
		MaxPurchasePrice: roundTo2Decimals(maxPrice),
	}

	// a zero budget and no down payment leave nothing to centre on
	if maxPrice <= 0 {
		return report, nil
	}

	report.Matrix, err = BuildMatrix(input.AnnualRatePercent, maxPrice, input.DownPayment)
	if err != nil {
		return domain.AffordabilityReport{}, fmt.Errorf("build matrix: %w", err)
	}
	report.ByPrice, err = TableByPrice(input.AnnualRatePercent, input.DownPayment, input.TermYears, maxPrice)
	if err != nil {
		return domain.AffordabilityReport{}, fmt.Errorf("price table: %w", err)
	}
	report.ByRate, err = TableByRate(input.AnnualRatePercent, input.DownPayment, input.TermYears, maxPrice)
	if err != nil {
		return domain.AffordabilityReport{}, fmt.Errorf("rate table: %w", err)
	}

	if s.advisor != nil {
		report.Explanation = s.advisor.ExplainAffordability(ctx, input, report.MaxPurchasePrice)
	}
	return report, nil
}

func (s *MortgageService) Rates(ctx context.Context) ([]domain.RateQuote, error) {
	quotes, err := s.rates.Quotes(ctx)
	if err != nil {
		return nil, &RateFeedError{Err: err}
	}
	return quotes, nil
}

// CompareRates prices principal under every current quote.
func (s *MortgageService) CompareRates(ctx context.Context, principal float64) ([]domain.QuoteCost, error) {
	quotes, err := s.Rates(ctx)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, &RateFeedError{Err: errors.New("no quotes available")}
	}
	return CompareQuotes(principal, quotes)
}

// ResolveRate returns rate when set, otherwise today's quote for the
// default term.
func (s *MortgageService) ResolveRate(ctx context.Context, rate *float64) (float64, error) {
	if rate != nil {
		return *rate, nil
	}

	quotes, err := s.Rates(ctx)
	if err != nil {
		return 0, err
	}
	r, ok := DefaultRate(quotes, s.defaults.TermYears)
	if !ok {
		return 0, &RateFeedError{Err: fmt.Errorf("no %d-year quote available", s.defaults.TermYears)}
	}
	return r, nil
}

func (s *MortgageService) Defaults() config.Defaults {
	return s.defaults
}

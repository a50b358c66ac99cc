package repository

import (
	"context"

	"mortgage-afford/domain"
	"mortgage-afford/obs"
)

// RateSource supplies current market quotes.
type RateSource interface {
	Quotes(ctx context.Context) ([]domain.RateQuote, error)
}

// StaticRateSource serves a fixed list of quotes, typically from config.
type StaticRateSource struct {
	quotes []domain.RateQuote
}

func NewStaticRateSource(quotes []domain.RateQuote) *StaticRateSource {
	cp := make([]domain.RateQuote, len(quotes))
	copy(cp, quotes)
	return &StaticRateSource{quotes: cp}
}

func (s *StaticRateSource) Quotes(ctx context.Context) ([]domain.RateQuote, error) {
	out := make([]domain.RateQuote, len(s.quotes))
	copy(out, s.quotes)
	return out, nil
}

// FallbackRateSource asks Primary first and serves Fallback when it fails.
type FallbackRateSource struct {
	Primary  RateSource
	Fallback RateSource
}

func (s *FallbackRateSource) Quotes(ctx context.Context) ([]domain.RateQuote, error) {
	quotes, err := s.Primary.Quotes(ctx)
	if err == nil {
		return quotes, nil
	}

	obs.Logger.Warn().Err(err).Msg("rate_feed_fallback")
	return s.Fallback.Quotes(ctx)
}

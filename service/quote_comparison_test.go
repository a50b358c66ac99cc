package service

import (
	"errors"
	"fmt"
	"testing"

	"mortgage-afford/domain"
)

func TestCompareQuotes_SortedByTotalCost(t *testing.T) {

	quotes := []domain.RateQuote{
		{ProductName: "30-year fixed", RatePercent: 7, TermYears: 30},
		{ProductName: "15-year fixed", RatePercent: 6, TermYears: 15},
		{ProductName: "30-year FHA", RatePercent: 6, TermYears: 30},
		{ProductName: "unknown term", RatePercent: 6.5},
		{ProductName: "broken", RatePercent: -1, TermYears: 30},
	}

	costs, err := CompareQuotes(300000, quotes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(costs) != 4 {
		t.Fatalf("expected invalid quote to be skipped, got %d costs", len(costs))
	}

	order := []string{"15-year fixed", "30-year FHA", "unknown term", "30-year fixed"}
	for i, name := range order {
		if costs[i].Quote.ProductName != name {
			t.Errorf("position %d: expected %s, got %s", i, name, costs[i].Quote.ProductName)
		}
	}

	assertClose(t, 647514.57, costs[1].TotalCost, "30-year at 6%")
	if costs[0].Principal != 300000 {
		t.Errorf("expected principal 300000, got %.2f", costs[0].Principal)
	}
}

func TestCompareQuotes_Capped(t *testing.T) {

	var quotes []domain.RateQuote
	for i := 0; i < 15; i++ {
		quotes = append(quotes, domain.RateQuote{
			ProductName: fmt.Sprintf("product %d", i),
			RatePercent: 5 + float64(i)*0.125,
			TermYears:   30,
		})
	}

	costs, err := CompareQuotes(250000, quotes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(costs) != MaxQuoteComparisons {
		t.Errorf("expected %d costs, got %d", MaxQuoteComparisons, len(costs))
	}
	if costs[0].Quote.ProductName != "product 0" {
		t.Errorf("expected cheapest quote first, got %s", costs[0].Quote.ProductName)
	}
}

func TestCompareQuotes_InvalidInput(t *testing.T) {

	if _, err := CompareQuotes(0, []domain.RateQuote{{RatePercent: 5}}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero principal, got %v", err)
	}
	if _, err := CompareQuotes(100000, nil); err == nil {
		t.Errorf("expected error without quotes")
	}
}

func TestDefaultRate(t *testing.T) {

	quotes := []domain.RateQuote{
		{ProductName: "15-year fixed", RatePercent: 6.123, TermYears: 15},
		{ProductName: "30-year fixed", RatePercent: 6.8749, TermYears: 30},
		{ProductName: "30-year jumbo", RatePercent: 7.1, TermYears: 30},
	}

	rate, ok := DefaultRate(quotes, 30)
	if !ok || rate != 6.87 {
		t.Errorf("expected 6.87, got %v (%v)", rate, ok)
	}

	if _, ok := DefaultRate(quotes, 20); ok {
		t.Errorf("expected no 20-year quote")
	}

	// rates round half away from zero, not to whole cents of currency
	tie := []domain.RateQuote{{ProductName: "10-year ARM", RatePercent: 6.125, TermYears: 10}}
	if rate, _ := DefaultRate(tie, 10); rate != 6.13 {
		t.Errorf("expected 6.13, got %v", rate)
	}
}

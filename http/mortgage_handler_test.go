package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mortgage-afford/config"
	"mortgage-afford/domain"
	"mortgage-afford/repository"
	"mortgage-afford/service"
)

type failingRateSource struct{}

func (failingRateSource) Quotes(ctx context.Context) ([]domain.RateQuote, error) {
	return nil, errors.New("connection refused")
}

var testDefaults = config.Defaults{TermYears: 30, MaxMonthlyPayment: 5000, DownPayment: 100000}

func newTestHandler(source repository.RateSource) *MortgageHandler {
	if source == nil {
		source = repository.NewStaticRateSource([]domain.RateQuote{
			{ProductName: "Conventional 30-year fixed", RatePercent: 6.5, APRPercent: 6.6, TermYears: 30},
			{ProductName: "Conventional 15-year fixed", RatePercent: 5.75, APRPercent: 5.9, TermYears: 15},
		})
	}
	svc := service.NewMortgageService(source, service.NewAdvisorService("", ""), testDefaults)
	return NewMortgageHandler(svc)
}

func post(handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestAffordabilityHandler_OK(t *testing.T) {

	handler := newTestHandler(nil)

	w := post(handler.Affordability, "/mortgage/affordability", `{
		"maxMonthlyPayment": 3000,
		"downPayment": 60000,
		"annualRatePercent": 6,
		"termYears": 30
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var report domain.AffordabilityReport
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.MaxPurchasePrice <= 60000 {
		t.Errorf("expected price above down payment, got %.2f", report.MaxPurchasePrice)
	}
	if len(report.Matrix.Payments) == 0 || len(report.ByRate) == 0 {
		t.Errorf("expected sensitivity views")
	}
	if report.Explanation == "" {
		t.Errorf("expected explanation")
	}
}

func TestAffordabilityHandler_DefaultsAndFeedRate(t *testing.T) {

	handler := newTestHandler(nil)

	w := post(handler.Affordability, "/mortgage/affordability", `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var report domain.AffordabilityReport
	json.NewDecoder(w.Body).Decode(&report)

	if report.Input.AnnualRatePercent != 6.5 {
		t.Errorf("expected 30-year feed rate, got %.2f", report.Input.AnnualRatePercent)
	}
	if report.Input.MaxMonthlyPayment != 5000 || report.Input.DownPayment != 100000 || report.Input.TermYears != 30 {
		t.Errorf("expected configured defaults, got %+v", report.Input)
	}
}

func TestAffordabilityHandler_FeedDown(t *testing.T) {

	handler := newTestHandler(failingRateSource{})

	w := post(handler.Affordability, "/mortgage/affordability", `{"maxMonthlyPayment": 3000}`)
	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}

	// an explicit rate needs no feed
	w = post(handler.Affordability, "/mortgage/affordability", `{"maxMonthlyPayment": 3000, "annualRatePercent": 7}`)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAffordabilityHandler_InvalidInput(t *testing.T) {

	handler := newTestHandler(nil)

	w := post(handler.Affordability, "/mortgage/affordability", `{"maxMonthlyPayment": -1, "annualRatePercent": 6}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}

	var body jsonError
	json.NewDecoder(w.Body).Decode(&body)
	if body.Error != "invalid input" {
		t.Errorf("unexpected error body %+v", body)
	}
}

func TestAffordabilityHandler_MethodNotAllowed(t *testing.T) {

	handler := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/mortgage/affordability", nil)
	w := httptest.NewRecorder()
	handler.Affordability(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestAffordabilityHandler_BadRequest(t *testing.T) {

	handler := newTestHandler(nil)

	w := post(handler.Affordability, "/mortgage/affordability", `{invalid-json}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}

	w = post(handler.Affordability, "/mortgage/affordability", `{"monto": 10000}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown field, got %d", w.Code)
	}
}

func TestMatrixHandler(t *testing.T) {

	handler := newTestHandler(nil)

	w := post(handler.Matrix, "/mortgage/matrix", `{"annualRatePercent": 6, "price": 400000, "downPayment": 100000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Prices   []int64   `json:"prices"`
		Rates    []float64 `json:"rates"`
		Payments [][]int64 `json:"payments"`
		Median   float64   `json:"median"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Prices) != 10 || len(resp.Rates) != 9 {
		t.Errorf("unexpected axes %v %v", resp.Prices, resp.Rates)
	}
	if resp.Median <= 0 {
		t.Errorf("expected positive median, got %v", resp.Median)
	}

	w = post(handler.Matrix, "/mortgage/matrix", `{"annualRatePercent": 6, "price": 0}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for zero price, got %d", w.Code)
	}
}

func TestTableHandlers(t *testing.T) {

	handler := newTestHandler(nil)
	body := `{"annualRatePercent": 6.5, "downPayment": 100000, "price": 400000}`

	w := post(handler.PriceTable, "/mortgage/tables/price", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var priceRows []domain.PriceRow
	json.NewDecoder(w.Body).Decode(&priceRows)
	if len(priceRows) != 10 {
		t.Errorf("expected 10 price rows, got %d", len(priceRows))
	}

	w = post(handler.RateTable, "/mortgage/tables/rate", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var rateRows []domain.RateRow
	json.NewDecoder(w.Body).Decode(&rateRows)
	if len(rateRows) != 25 {
		t.Errorf("expected 25 rate rows, got %d", len(rateRows))
	}

	w = post(handler.RateTable, "/mortgage/tables/rate", `{"annualRatePercent": 6.5, "price": 400000, "termYears": -3}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative term, got %d", w.Code)
	}
}

func TestMatrixAndTables_RateFromFeed(t *testing.T) {

	handler := newTestHandler(nil)
	body := `{"price": 400000, "downPayment": 100000}`

	w := post(handler.Matrix, "/mortgage/matrix", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var matrix struct {
		Rates []float64 `json:"rates"`
	}
	json.NewDecoder(w.Body).Decode(&matrix)
	if len(matrix.Rates) != 9 || matrix.Rates[0] != 4.5 || matrix.Rates[8] != 8.5 {
		t.Errorf("expected rates centred on the 6.5 feed quote, got %v", matrix.Rates)
	}

	w = post(handler.RateTable, "/mortgage/tables/rate", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var rateRows []domain.RateRow
	json.NewDecoder(w.Body).Decode(&rateRows)
	if len(rateRows) != 25 || rateRows[0].RatePercent != 3.5 || rateRows[24].RatePercent != 9.5 {
		t.Errorf("expected rate table centred on 6.5, got %d rows", len(rateRows))
	}

	w = post(handler.PriceTable, "/mortgage/tables/price", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var priceRows []domain.PriceRow
	json.NewDecoder(w.Body).Decode(&priceRows)
	want, _ := service.Amortize(200000, 6.5, 30)
	if len(priceRows) != 10 || math.Abs(priceRows[0].MonthlyPayment-want.MonthlyPayment) > 0.01 {
		t.Errorf("expected first row priced at 6.5, got %+v", priceRows)
	}

	// explicit zero is a rate, not a missing field
	w = post(handler.Matrix, "/mortgage/matrix", `{"annualRatePercent": 0, "price": 400000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	json.NewDecoder(w.Body).Decode(&matrix)
	if matrix.Rates[0] != 0 {
		t.Errorf("expected zero-rate column, got %v", matrix.Rates)
	}
}

func TestMatrixAndTables_FeedDown(t *testing.T) {

	handler := newTestHandler(failingRateSource{})
	body := `{"price": 400000, "downPayment": 100000}`

	for name, h := range map[string]http.HandlerFunc{
		"matrix":      handler.Matrix,
		"price table": handler.PriceTable,
		"rate table":  handler.RateTable,
	} {
		if w := post(h, "/mortgage", body); w.Code != http.StatusBadGateway {
			t.Errorf("%s: expected 502, got %d", name, w.Code)
		}
	}

	if w := post(handler.Matrix, "/mortgage/matrix", `{"annualRatePercent": 6, "price": 400000}`); w.Code != http.StatusOK {
		t.Errorf("explicit rate should not need the feed, got %d", w.Code)
	}
}

func TestRatesHandlers(t *testing.T) {

	handler := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/mortgage/rates", nil)
	w := httptest.NewRecorder()
	handler.Rates(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var quotes []domain.RateQuote
	json.NewDecoder(w.Body).Decode(&quotes)
	if len(quotes) != 2 {
		t.Errorf("expected 2 quotes, got %d", len(quotes))
	}

	w = post(handler.CompareRates, "/mortgage/rates/compare", `{"principal": 300000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var costs []domain.QuoteCost
	json.NewDecoder(w.Body).Decode(&costs)
	if len(costs) != 2 || costs[0].Quote.TermYears != 15 {
		t.Errorf("expected cheaper 15-year quote first, got %+v", costs)
	}

	failing := newTestHandler(failingRateSource{})
	w = httptest.NewRecorder()
	failing.Rates(w, httptest.NewRequest(http.MethodGet, "/mortgage/rates", nil))
	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
}

func TestRouter_RateLimitAndRequestID(t *testing.T) {

	store := repository.NewMemoryCounterStore()
	defer store.Stop()

	limiter := NewRateLimiter(store, 2, time.Minute)
	fixed := time.Date(2026, 3, 1, 10, 0, 30, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }
	router := NewRouter(newTestHandler(nil), limiter)

	body := `{"annualRatePercent": 6, "price": 400000, "downPayment": 100000}`
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/mortgage/matrix", bytes.NewBufferString(body))
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)

		if w.Header().Get("X-Request-Id") == "" {
			t.Errorf("expected request id header")
		}
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("unexpected status sequence %v", codes)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Header().Get("X-Request-Id") != "abc-123" {
		t.Errorf("expected health ok with propagated request id, got %d %q", w.Code, w.Header().Get("X-Request-Id"))
	}
}

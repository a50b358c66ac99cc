package http

import (
	"net/http"

	"mortgage-afford/domain"
	"mortgage-afford/service"
)

type MortgageHandler struct {
	service *service.MortgageService
}

func NewMortgageHandler(service *service.MortgageService) *MortgageHandler {
	return &MortgageHandler{service: service}
}

// Omitted payment and down payment fall back to the configured defaults;
// an omitted rate is taken from today's quotes.
type affordabilityRequest struct {
	MaxMonthlyPayment *float64 `json:"maxMonthlyPayment"`
	DownPayment       *float64 `json:"downPayment"`
	AnnualRatePercent *float64 `json:"annualRatePercent"`
	TermYears         int      `json:"termYears"`
}

// An omitted rate on the matrix and table requests is also taken from
// today's quotes.
type matrixRequest struct {
	AnnualRatePercent *float64 `json:"annualRatePercent"`
	Price             float64  `json:"price"`
	DownPayment       float64  `json:"downPayment"`
}

type matrixResponse struct {
	domain.SensitivityMatrix
	Median float64 `json:"median"`
}

type tableRequest struct {
	AnnualRatePercent *float64 `json:"annualRatePercent"`
	DownPayment       float64  `json:"downPayment"`
	TermYears         int      `json:"termYears"`
	Price             float64  `json:"price"`
}

func (h *MortgageHandler) Affordability(w http.ResponseWriter, r *http.Request) {
	var req affordabilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	defaults := h.service.Defaults()
	input := domain.AffordabilityInput{
		MaxMonthlyPayment: defaults.MaxMonthlyPayment,
		DownPayment:       defaults.DownPayment,
		TermYears:         req.TermYears,
	}
	if req.MaxMonthlyPayment != nil {
		input.MaxMonthlyPayment = *req.MaxMonthlyPayment
	}
	if req.DownPayment != nil {
		input.DownPayment = *req.DownPayment
	}

	rate, err := h.service.ResolveRate(r.Context(), req.AnnualRatePercent)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	input.AnnualRatePercent = rate

	report, err := h.service.Estimate(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, report)
}

func (h *MortgageHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	var req matrixRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rate, err := h.service.ResolveRate(r.Context(), req.AnnualRatePercent)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	m, err := service.BuildMatrix(rate, req.Price, req.DownPayment)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, matrixResponse{SensitivityMatrix: m, Median: m.Median()})
}

func (h *MortgageHandler) PriceTable(w http.ResponseWriter, r *http.Request) {
	var req tableRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rate, err := h.service.ResolveRate(r.Context(), req.AnnualRatePercent)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	rows, err := service.TableByPrice(rate, req.DownPayment, h.term(req.TermYears), req.Price)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, rows)
}

func (h *MortgageHandler) RateTable(w http.ResponseWriter, r *http.Request) {
	var req tableRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rate, err := h.service.ResolveRate(r.Context(), req.AnnualRatePercent)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	rows, err := service.TableByRate(rate, req.DownPayment, h.term(req.TermYears), req.Price)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, rows)
}

func (h *MortgageHandler) term(requested int) int {
	if requested == 0 {
		return h.service.Defaults().TermYears
	}
	return requested
}

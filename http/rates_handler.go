package http

import (
	"net/http"
)

type compareRequest struct {
	Principal float64 `json:"principal"`
}

func (h *MortgageHandler) Rates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	quotes, err := h.service.Rates(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, quotes)
}

func (h *MortgageHandler) CompareRates(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	costs, err := h.service.CompareRates(r.Context(), req.Principal)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, costs)
}

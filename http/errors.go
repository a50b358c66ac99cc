package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"mortgage-afford/domain"
	"mortgage-afford/obs"
	"mortgage-afford/service"
)

type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSONError writes a JSON error payload with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonError{Error: message, Details: details})
}

// writeServiceError maps calculator and rate feed failures onto statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var feedErr *service.RateFeedError

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, "invalid input", err.Error())
	case errors.As(err, &feedErr):
		obs.Logger.Warn().
			Err(err).
			Str("request_id", RequestIDFromContext(r.Context())).
			Msg("rate_feed_unavailable")
		WriteJSONError(w, http.StatusBadGateway, "rate feed unavailable", feedErr.Err.Error())
	default:
		obs.Logger.Error().
			Err(err).
			Str("request_id", RequestIDFromContext(r.Context())).
			Msg("request_failed")
		WriteJSONError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		obs.Logger.Error().Err(err).Msg("encode_response")
		WriteJSONError(w, http.StatusInternalServerError, "internal server error", "")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		obs.Logger.Warn().
			Err(err).
			Str("request_id", RequestIDFromContext(r.Context())).
			Msg("write_response")
	}
}

// decodeJSON enforces POST with a JSON body and reports whether the
// handler should continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return false
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return true
}

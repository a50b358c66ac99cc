package http

import (
	"net/http"
)

// NewRouter registers the mortgage routes behind the rate limiter and wraps
// everything in request-id and access-log middleware.
func NewRouter(handler *MortgageHandler, limiter *RateLimiter) http.Handler {
	mux := http.NewServeMux()

	limited := func(fn http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, fn)
	}

	mux.Handle("/mortgage/affordability", limited(handler.Affordability))
	mux.Handle("/mortgage/matrix", limited(handler.Matrix))
	mux.Handle("/mortgage/tables/price", limited(handler.PriceTable))
	mux.Handle("/mortgage/tables/rate", limited(handler.RateTable))
	mux.Handle("/mortgage/rates", limited(handler.Rates))
	mux.Handle("/mortgage/rates/compare", limited(handler.CompareRates))
	mux.HandleFunc("/healthz", healthHandler)

	return WithRequestID(WithLogging(mux))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]string{"status": "ok"})
}

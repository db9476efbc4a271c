package health

import (
	"encoding/json"
	"net/http"
)

// HTTPStatusCode maps a State to a response code: 200 for UP, 503 otherwise.
func HTTPStatusCode(state State) int {
	if state == StateUp {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

// LivenessHandler returns an HTTP handler for liveness probes.
// It reports only that the process is serving and never runs checks.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// StatusHandler returns an HTTP handler that writes the aggregator's Status
// in its full form: {"status","details","timestamp"}.
func StatusHandler(agg *Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, agg.Status(r.Context()), true)
	}
}

// SimpleStatusHandler returns an HTTP handler that writes {"status"} only.
func SimpleStatusHandler(agg *Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, agg.Status(r.Context()), false)
	}
}

// RefreshHandler returns an HTTP handler that forces a recomputation and
// writes the resulting Status in its full form. Only POST is accepted.
func RefreshHandler(agg *Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		writeStatus(w, agg.ForceUpdateStatus(r.Context()), true)
	}
}

func writeStatus(w http.ResponseWriter, status Status, full bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatusCode(status.State()))

	if full {
		_ = json.NewEncoder(w).Encode(status)
		return
	}
	_ = json.NewEncoder(w).Encode(status.SimpleRepresentation())
}

// RegisterHandlers registers all health handlers on the given mux:
//
//	/healthz        liveness
//	/health         full status
//	/health/simple  status only
//	/health/refresh forced recomputation (POST)
func RegisterHandlers(mux *http.ServeMux, agg *Aggregator) {
	mux.HandleFunc("/healthz", LivenessHandler())
	mux.HandleFunc("/health", StatusHandler(agg))
	mux.HandleFunc("/health/simple", SimpleStatusHandler(agg))
	mux.HandleFunc("/health/refresh", RefreshHandler(agg))
}

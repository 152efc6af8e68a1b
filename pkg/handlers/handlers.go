// Package handlers serves the solar engine over HTTP.
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/spencer-p/sunelevation/pkg/cache"
	"github.com/spencer-p/sunelevation/pkg/metrics"
)

// Register installs the API on r. Maximizer responses are memoized in c.
func Register(r *mux.Router, c *cache.Timed) {
	r.Use(logRequests, measureRequests)

	r.Handle("/maximum_sun_elevation", makeServeMaximum(c)).Methods(http.MethodPost)
	r.HandleFunc("/elevation", serveElevation).Methods(http.MethodGet)
	r.HandleFunc("/sun_events", serveSunEvents).Methods(http.MethodGet)
	r.HandleFunc("/health", serveHealth).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
}

func serveHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

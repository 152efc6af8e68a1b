package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/spencer-p/sunelevation/pkg/sunset"
	"github.com/spencer-p/sunelevation/pkg/timetricks"
)

const (
	day     = 24 * time.Hour
	maxDays = 31
)

func serveSunEvents(w http.ResponseWriter, r *http.Request) {
	o, err := observerFromQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	place := sunset.In(o, nil)
	start := time.Now().In(place.Location)
	if s := r.URL.Query().Get("start"); s != "" {
		if start, err = timetricks.ParseInstant(s); err != nil {
			writeError(w, r, http.StatusBadRequest, "start: "+err.Error())
			return
		}
	}
	// start names a calendar day at the observer.
	start = start.In(place.Location)
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, place.Location)

	days := 1
	if s := r.URL.Query().Get("days"); s != "" {
		days, err = strconv.Atoi(s)
		if err != nil || days < 1 || days > maxDays {
			writeError(w, r, http.StatusBadRequest,
				fmt.Sprintf("days must be an integer between 1 and %d, got %q", maxDays, s))
			return
		}
	}

	// Stop just short of the next midnight so only the requested days
	// are returned.
	events := sunset.GetSunEvents(start, time.Duration(days)*day-time.Second, place)
	writeJSON(w, r, http.StatusOK, map[string]any{"events": events})
}

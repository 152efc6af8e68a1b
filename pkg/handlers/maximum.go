package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spencer-p/sunelevation/pkg/cache"
	"github.com/spencer-p/sunelevation/pkg/logger"
	"github.com/spencer-p/sunelevation/pkg/metrics"
	"github.com/spencer-p/sunelevation/pkg/peak"
	"github.com/spencer-p/sunelevation/pkg/solar"
	"github.com/spencer-p/sunelevation/pkg/timetricks"
)

const (
	cacheHeader  = "X-Cache"
	maxBodyBytes = 1 << 20
)

type coordinates struct {
	Lon *float64 `json:"lon"`
	Lat *float64 `json:"lat"`
}

type maximumRequest struct {
	Coordinates *coordinates `json:"coordinates"`
	ElevationM  float64      `json:"elevation_m"`
	StartTime   string       `json:"start_time"`
	EndTime     string       `json:"end_time"`
	Refine      bool         `json:"refine"`
}

type maximumResponse struct {
	MaximumSunElevation float64   `json:"maximum_sun_elevation"`
	At                  time.Time `json:"at"`
	Samples             int       `json:"samples"`
	StepMinutes         int64     `json:"step_minutes"`
}

// query is a validated maximumRequest.
type query struct {
	observer solar.Observer
	window   peak.Window
	refine   bool
}

func (q query) key() string {
	return fmt.Sprintf("%v|%v|%v|%d|%d|%t",
		q.observer.Latitude, q.observer.Longitude, q.observer.Altitude,
		q.window.Start.UnixNano(), q.window.End.UnixNano(), q.refine)
}

func (req *maximumRequest) validate() (query, error) {
	var q query
	if req.Coordinates == nil {
		return q, errors.New("coordinates are required")
	}
	if req.Coordinates.Lat == nil || req.Coordinates.Lon == nil {
		return q, errors.New("coordinates.lat and coordinates.lon are required")
	}
	q.observer = solar.Observer{
		Latitude:  *req.Coordinates.Lat,
		Longitude: *req.Coordinates.Lon,
		Altitude:  req.ElevationM,
	}
	if err := q.observer.Validate(); err != nil {
		return q, err
	}

	if req.StartTime == "" || req.EndTime == "" {
		return q, errors.New("start_time and end_time are required")
	}
	var err error
	if q.window.Start, err = timetricks.ParseInstant(req.StartTime); err != nil {
		return q, fmt.Errorf("start_time: %w", err)
	}
	if q.window.End, err = timetricks.ParseInstant(req.EndTime); err != nil {
		return q, fmt.Errorf("end_time: %w", err)
	}
	if err := q.window.Validate(); err != nil {
		return q, err
	}

	q.refine = req.Refine
	return q, nil
}

func makeServeMaximum(c *cache.Timed) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req maximumRequest
		if err := decodeStrict(http.MaxBytesReader(w, r.Body, maxBodyBytes), &req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, r, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("body must not exceed %d bytes", tooLarge.Limit))
				return
			}
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		q, err := req.validate()
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}

		// The maximizer is a pure function of the query, so its
		// responses never go stale before the cache drops them.
		key := q.key()
		if cached, ok := c.Get(key); ok {
			metrics.ObserveCache(true)
			w.Header().Set(cacheHeader, "hit")
			writeRaw(w, r, http.StatusOK, cached)
			return
		}
		metrics.ObserveCache(false)

		m := peak.Maximizer{Refine: q.refine}
		res := m.Maximize(q.observer, q.window)
		metrics.ObserveSamples(res.Samples)
		logger.DebugKV(r.Context(), "maximized",
			"observer", q.observer.String(),
			"samples", res.Samples,
			"step", res.Step,
			"elevation", res.Elevation)

		b, err := json.Marshal(maximumResponse{
			MaximumSunElevation: res.Elevation,
			At:                  res.At,
			Samples:             res.Samples,
			StepMinutes:         int64(res.Step / time.Minute),
		})
		if err != nil {
			logger.ErrorKV(r.Context(), "encode failed", "err", err)
			writeError(w, r, http.StatusInternalServerError, "internal error")
			return
		}
		c.Set(key, b)

		w.Header().Set(cacheHeader, "miss")
		writeRaw(w, r, http.StatusOK, b)
	})
}

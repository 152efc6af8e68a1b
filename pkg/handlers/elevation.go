package handlers

import (
	"net/http"
	"time"

	"github.com/spencer-p/sunelevation/pkg/solar"
	"github.com/spencer-p/sunelevation/pkg/timetricks"
)

type elevationResponse struct {
	Observer       solar.Observer `json:"observer"`
	Time           time.Time      `json:"time"`
	JulianDay      float64        `json:"julian_day"`
	Declination    float64        `json:"declination"`
	EquationOfTime float64        `json:"equation_of_time"`
	HourAngle      float64        `json:"hour_angle"`
	Geometric      float64        `json:"geometric_elevation"`
	Refraction     float64        `json:"refraction"`
	Elevation      float64        `json:"elevation"`
}

// observerFromQuery reads lat, lon and elevation_m.
func observerFromQuery(r *http.Request) (solar.Observer, error) {
	var o solar.Observer
	var err error
	if o.Latitude, err = queryFloat(r, "lat", true, 0); err != nil {
		return o, err
	}
	if o.Longitude, err = queryFloat(r, "lon", true, 0); err != nil {
		return o, err
	}
	if o.Altitude, err = queryFloat(r, "elevation_m", false, 0); err != nil {
		return o, err
	}
	return o, o.Validate()
}

func serveElevation(w http.ResponseWriter, r *http.Request) {
	o, err := observerFromQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	t := time.Now().UTC()
	if s := r.URL.Query().Get("time"); s != "" {
		if t, err = timetricks.ParseInstant(s); err != nil {
			writeError(w, r, http.StatusBadRequest, "time: "+err.Error())
			return
		}
	}

	p := solar.Compute(o, t)
	writeJSON(w, r, http.StatusOK, elevationResponse{
		Observer:       o,
		Time:           t,
		JulianDay:      p.JulianDay,
		Declination:    p.Declination,
		EquationOfTime: p.EquationOfTime,
		HourAngle:      p.HourAngle,
		Geometric:      p.Geometric,
		Refraction:     p.Refraction,
		Elevation:      p.Elevation,
	})
}

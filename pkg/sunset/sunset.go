package sunset

import (
	"math"
	"sort"
	"time"

	"github.com/keep94/sunrise"
	gosunrise "github.com/nathan-osman/go-sunrise"

	"github.com/spencer-p/sunelevation/pkg/solar"
	"github.com/spencer-p/sunelevation/pkg/timetricks"
)

// GetSunEvents returns the ordered sunrises, solar noons and sunsets for the
// calendar days in place's time zone touched by [start, start+duration]. Days
// without a sunrise or sunset (polar day or night) contribute only the events
// that exist. Each event carries the apparent elevation at its instant.
func GetSunEvents(start time.Time, duration time.Duration, place Place) SunEvents {
	start = start.In(place.Location)

	numDays := timetricks.Days(start, duration)
	ret := make(SunEvents, 0, numDays*3)
	day := timetricks.TrimClock(start)
	for i := 0; i < numDays; i++ {
		// The sunrise package is not very clean with its dates, so anchor
		// each day at midday and keep only events on that day.
		var s sunrise.Sunrise
		s.Around(place.Latitude, place.Longitude, day.Add(12*time.Hour))
		if rise := s.Sunrise(); valid(rise, day) {
			ret = append(ret, event(rise, Sunrise, place))
		}
		if noon, ok := SolarNoon(day, place); ok {
			ret = append(ret, event(noon, Noon, place))
		}
		if set := s.Sunset(); valid(set, day) {
			ret = append(ret, event(set, Sunset, place))
		}
		day = day.AddDate(0, 0, 1)
	}

	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Time.Before(ret[j].Time)
	})
	return ret
}

// SolarNoon returns the apparent solar noon, the midpoint between sunrise and
// sunset, on the calendar day of date. ok is false when the sun does not both
// rise and set that day.
func SolarNoon(date time.Time, place Place) (noon time.Time, ok bool) {
	rise, set := gosunrise.SunriseSunset(place.Latitude, place.Longitude, date.Year(), date.Month(), date.Day())
	if rise.IsZero() || set.IsZero() {
		return time.Time{}, false
	}
	return rise.Add(set.Sub(rise) / 2).In(place.Location), true
}

func valid(t, day time.Time) bool {
	return !t.IsZero() && timetricks.SameDay(t.In(day.Location()), day)
}

func event(t time.Time, e Event, place Place) SunEvent {
	t = t.In(place.Location)
	return SunEvent{
		Time:      t,
		Event:     e,
		Elevation: math.Round(solar.Elevation(place.Observer, t)*1e6) / 1e6,
	}
}

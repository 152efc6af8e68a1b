package sunset

import (
	"fmt"
	"math"
	"time"

	"github.com/spencer-p/sunelevation/pkg/solar"
)

// Place is an observer on the Earth matched with its time zone.
type Place struct {
	solar.Observer
	Location *time.Location
}

var (
	SantaCruz = Place{
		solar.Observer{Latitude: 36.9741, Longitude: -122.0308},
		locationOrPanic("America/Los_Angeles"),
	}
)

// In returns a Place for o in loc. A nil loc means the fixed zone whose
// offset is the observer's longitude rounded to whole hours, so that local
// days line up with the sun.
func In(o solar.Observer, loc *time.Location) Place {
	if loc == nil {
		loc = solarZone(o.Longitude)
	}
	return Place{o, loc}
}

func solarZone(lon float64) *time.Location {
	h := int(math.Round(lon / 15))
	if h == 0 {
		return time.UTC
	}
	return time.FixedZone(fmt.Sprintf("UTC%+d", h), h*60*60)
}

// SunEvents is a time series of SunEvent.
type SunEvents []SunEvent

// SunEvent is a sunrise, solar noon or sunset.
type SunEvent struct {
	Time  time.Time `json:"time"`
	Event Event     `json:"event"`
	// Elevation is the apparent elevation at Time.
	Elevation float64 `json:"elevation"`
}

func (s *SunEvent) String() string {
	return fmt.Sprintf("%s %s", s.Time.Format(time.RFC822), s.Event)
}

// Event encodes the kind of a SunEvent.
type Event int

const (
	Sunrise Event = iota
	Noon
	Sunset
)

func (e Event) String() string {
	switch e {
	case Sunrise:
		return "Sunrise"
	case Noon:
		return "Noon"
	case Sunset:
		return "Sunset"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

func (e Event) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func locationOrPanic(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

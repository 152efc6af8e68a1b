package solar

import (
	"errors"
	"fmt"
	"math"
)

// MinAltitude is the lowest altitude, in meters, an Observer may have.
const MinAltitude = -500.0

var (
	ErrLatitude  = errors.New("latitude must be within [-90, 90]")
	ErrLongitude = errors.New("longitude must be within [-180, 180]")
	ErrAltitude  = errors.New("altitude must be finite and at least -500 m")
)

// Observer is a point on the WGS84 ellipsoid with an altitude in meters.
type Observer struct {
	Latitude  float64 `json:"lat" yaml:"lat"`
	Longitude float64 `json:"lon" yaml:"lon"`
	Altitude  float64 `json:"elevation_m" yaml:"elevation_m"`
}

// Validate reports whether o is inside the domain the engine is meant for.
// The engine itself never calls it.
func (o Observer) Validate() error {
	if math.IsNaN(o.Latitude) || o.Latitude < -90 || o.Latitude > 90 {
		return fmt.Errorf("%w: got %v", ErrLatitude, o.Latitude)
	}
	if math.IsNaN(o.Longitude) || o.Longitude < -180 || o.Longitude > 180 {
		return fmt.Errorf("%w: got %v", ErrLongitude, o.Longitude)
	}
	if math.IsNaN(o.Altitude) || math.IsInf(o.Altitude, 0) || o.Altitude < MinAltitude {
		return fmt.Errorf("%w: got %v", ErrAltitude, o.Altitude)
	}
	return nil
}

func (o Observer) String() string {
	return fmt.Sprintf("(%.6f, %.6f) @ %.1fm", o.Latitude, o.Longitude, o.Altitude)
}

package solar

import "time"

// Position is the sun as seen by an Observer at one instant. Angles are in
// degrees, EquationOfTime is in minutes.
type Position struct {
	JulianDay      float64
	Declination    float64
	EquationOfTime float64
	HourAngle      float64

	// Geometric is the elevation from spherical geometry alone.
	Geometric float64
	// Refraction is the pressure scaled correction applied to Geometric.
	Refraction float64
	// Elevation is the apparent elevation, Geometric + Refraction.
	Elevation float64
}

// Compute runs the full pipeline for o at t. t is read in UTC.
func Compute(o Observer, t time.Time) Position {
	t = t.UTC()

	jd := julianDay(t)
	T := julianCentury(jd)

	L0 := meanLongitude(T)
	M := meanAnomaly(T)
	e := eccentricity(T)
	C := equationOfCenter(T, M)
	lambda := apparentLongitude(T, L0+C)
	obliquity := correctedObliquity(T, meanObliquity(T))
	decl := declination(obliquity, lambda)
	eqTime := equationOfTime(L0, e, M, obliquity)

	tst := trueSolarTime(clockMinutes(t), eqTime, o.Longitude)
	ha := hourAngle(tst)

	h := geometricElevation(o.Latitude, decl, ha)
	r := refraction(h, o.Altitude)

	return Position{
		JulianDay:      jd,
		Declination:    decl,
		EquationOfTime: eqTime,
		HourAngle:      ha,
		Geometric:      h,
		Refraction:     r,
		Elevation:      h + r,
	}
}

// Elevation returns the apparent elevation of the sun in degrees for o at t.
func Elevation(o Observer, t time.Time) float64 {
	return Compute(o, t).Elevation
}

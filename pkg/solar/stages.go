package solar

import (
	"math"
	"time"
)

const (
	j2000          = 2451545.0
	daysPerCentury = 36525.0
	minutesPerDay  = 1440.0

	// Below this geometric elevation the refraction model is not applied.
	refractionCutoff = -0.575

	seaLevelPressure  = 1010.0 // hPa
	pressureScale     = 8434.5 // m
	referenceTemp     = 15.0   // °C
	refractionTempRef = 283.0
)

func rad(deg float64) float64 { return deg * math.Pi / 180 }
func deg(rad float64) float64 { return rad * 180 / math.Pi }

// floorMod is a modulo whose result has the sign of m.
func floorMod(x, m float64) float64 {
	return x - m*math.Floor(x/m)
}

// clockMinutes is the number of minutes since UTC midnight, at whole second
// precision.
func clockMinutes(t time.Time) float64 {
	h, m, s := t.Clock()
	return float64(h*60+m) + float64(s)/60
}

func julianDay(t time.Time) float64 {
	year, month, d := t.Date()
	y, m := float64(year), float64(month)
	day := float64(d) + clockMinutes(t)/minutesPerDay
	if month <= time.February {
		y--
		m += 12
	}
	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + day + b - 1524.5
}

func julianCentury(jd float64) float64 {
	return (jd - j2000) / daysPerCentury
}

func meanLongitude(T float64) float64 {
	return floorMod(280.46646+T*(36000.76983+0.0003032*T), 360)
}

func meanAnomaly(T float64) float64 {
	return 357.52911 + T*(35999.05029-0.0001537*T)
}

func eccentricity(T float64) float64 {
	return 0.016708634 - T*(0.000042037+0.0000001267*T)
}

func equationOfCenter(T, M float64) float64 {
	m := rad(M)
	return (1.914602-T*(0.004817+0.000014*T))*math.Sin(m) +
		(0.019993-0.000101*T)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)
}

// omega is the longitude of the ascending node of the moon's orbit.
func omega(T float64) float64 {
	return 125.04 - 1934.136*T
}

func apparentLongitude(T, trueLong float64) float64 {
	return trueLong - 0.00569 - 0.00478*math.Sin(rad(omega(T)))
}

func meanObliquity(T float64) float64 {
	seconds := 21.448 - T*(46.815+T*(0.00059-T*0.001813))
	return 23 + (26+seconds/60)/60
}

func correctedObliquity(T, mean float64) float64 {
	return mean + 0.00256*math.Cos(rad(omega(T)))
}

func declination(obliquity, appLong float64) float64 {
	return deg(math.Asin(math.Sin(rad(obliquity)) * math.Sin(rad(appLong))))
}

// equationOfTime returns the sundial minus clock offset in minutes.
func equationOfTime(L0, e, M, obliquity float64) float64 {
	t := math.Tan(rad(obliquity / 2))
	y := t * t
	l0, m := rad(L0), rad(M)
	E := y*math.Sin(2*l0) -
		2*e*math.Sin(m) +
		4*e*y*math.Sin(m)*math.Cos(2*l0) -
		0.5*y*y*math.Sin(4*l0) -
		1.25*e*e*math.Sin(2*m)
	return deg(E) * 4
}

func trueSolarTime(clock, eqTime, longitude float64) float64 {
	return floorMod(clock+eqTime+4*longitude, minutesPerDay)
}

// hourAngle is zero at solar noon and within [-180, 180].
func hourAngle(tst float64) float64 {
	if tst/4 < 0 {
		return tst/4 + 180
	}
	return tst/4 - 180
}

func geometricElevation(latitude, decl, ha float64) float64 {
	lat, d, h := rad(latitude), rad(decl), rad(ha)
	cosZenith := math.Sin(lat)*math.Sin(d) + math.Cos(lat)*math.Cos(d)*math.Cos(h)
	cosZenith = math.Max(-1, math.Min(1, cosZenith))
	return 90 - deg(math.Acos(cosZenith))
}

// pressure is a barometric approximation in hPa.
func pressure(altitude float64) float64 {
	return seaLevelPressure * math.Exp(-altitude/pressureScale)
}

// refraction returns the correction in degrees to add to the geometric
// elevation h. The cutoff keeps h+5.11 far from zero.
func refraction(h, altitude float64) float64 {
	if h <= refractionCutoff {
		return 0
	}
	r := (1.02 / math.Tan(rad(h+10.3/(h+5.11)))) / 60
	return r * (pressure(altitude) / seaLevelPressure) * (refractionTempRef / (273 + referenceTemp))
}

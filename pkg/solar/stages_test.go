package solar

import (
	"math"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

func within(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

func TestJulianDay(t *testing.T) {
	table := []struct {
		in   time.Time
		want float64
	}{{
		in:   time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC),
		want: 2451545.0,
	}, {
		in:   time.Date(2024, time.February, 29, 6, 30, 15, 0, time.UTC),
		want: 2460369.7710069446,
	}, {
		in:   time.Date(1987, time.January, 27, 0, 0, 0, 0, time.UTC),
		want: 2446822.5,
	}}

	for _, test := range table {
		t.Run(test.in.Format(time.RFC3339), func(t *testing.T) {
			got := julianDay(test.in)
			if !within(got, test.want, 1e-9) {
				t.Errorf("julianDay = %.10f, want %.10f", got, test.want)
			}
			// Independent implementation.
			if ref := julian.TimeToJD(test.in); !within(got, ref, 1e-8) {
				t.Errorf("julianDay = %.10f, meeus says %.10f", got, ref)
			}
		})
	}
}

func TestJulianDayIgnoresSubSecond(t *testing.T) {
	base := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	if julianDay(base) != julianDay(base.Add(999*time.Millisecond)) {
		t.Errorf("sub-second component changed the julian day")
	}
}

func TestStagesAtEquinox(t *testing.T) {
	when := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)
	T := julianCentury(julianDay(when))
	L0 := meanLongitude(T)
	M := meanAnomaly(T)
	e := eccentricity(T)
	obliquity := correctedObliquity(T, meanObliquity(T))
	lambda := apparentLongitude(T, L0+equationOfCenter(T, M))
	eqTime := equationOfTime(L0, e, M, obliquity)
	tst := trueSolarTime(clockMinutes(when), eqTime, 0)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"T", T, 0.24216290212183436},
		{"L0", L0, 358.51737843349474},
		{"M", M, 9075.163592842853},
		{"e", e, 0.016698446768031727},
		{"lambda", lambda, 360.3696394311333},
		{"obliquity", obliquity, 23.43859446906484},
		{"declination", declination(obliquity, lambda), 0.14702913960369737},
		{"equation of time", eqTime, -7.290700872837004},
		{"true solar time", tst, 712.709299127163},
		{"hour angle", hourAngle(tst), -1.8226752182092412},
	}
	for _, c := range checks {
		if !within(c.got, c.want, 1e-9) {
			t.Errorf("%s = %.12f, want %.12f", c.name, c.got, c.want)
		}
	}
}

func TestMeanLongitudeBeforeEpoch(t *testing.T) {
	for _, T := range []float64{-0.99, -0.5, -0.01, 0, 0.5, 0.99} {
		if L0 := meanLongitude(T); L0 < 0 || L0 >= 360 {
			t.Errorf("meanLongitude(%v) = %v, outside [0, 360)", T, L0)
		}
	}
}

func TestTrueSolarTimeWraps(t *testing.T) {
	table := []struct {
		clock, eq, lon float64
		want           float64
	}{
		{0, 0, 0, 0},
		{60, 0, -122, 1012},
		{1439, 10, 45, 189},
		{720, -7.5, 0, 712.5},
	}
	for _, test := range table {
		got := trueSolarTime(test.clock, test.eq, test.lon)
		if !within(got, test.want, 1e-9) {
			t.Errorf("trueSolarTime(%v, %v, %v) = %v, want %v", test.clock, test.eq, test.lon, got, test.want)
		}
		if got < 0 || got >= minutesPerDay {
			t.Errorf("trueSolarTime out of range: %v", got)
		}
	}
}

func TestHourAngle(t *testing.T) {
	table := []struct{ tst, want float64 }{
		{0, -180},
		{720, 0},
		{1080, 90},
		{1439.9, 179.975},
		{-4, 179},
	}
	for _, test := range table {
		if got := hourAngle(test.tst); !within(got, test.want, 1e-9) {
			t.Errorf("hourAngle(%v) = %v, want %v", test.tst, got, test.want)
		}
	}
}

func TestGeometricElevationClampsAtZenith(t *testing.T) {
	// Latitude equal to declination at noon puts the sun straight overhead,
	// where rounding can push the cosine just past 1.
	for _, lat := range []float64{0, 23.44, -23.44, 10.123456789} {
		got := geometricElevation(lat, lat, 0)
		if math.IsNaN(got) || !within(got, 90, 1e-5) {
			t.Errorf("geometricElevation(%v, %v, 0) = %v, want 90", lat, lat, got)
		}
	}
	if got := geometricElevation(90, -90, 0); math.IsNaN(got) || !within(got, -90, 1e-5) {
		t.Errorf("nadir elevation = %v, want -90", got)
	}
}

func TestRefractionCutoff(t *testing.T) {
	if got := refraction(refractionCutoff, 0); got != 0 {
		t.Errorf("refraction at cutoff = %v, want 0", got)
	}
	if got := refraction(-5.11-10.3, 0); got != 0 {
		t.Errorf("refraction at the pole of the formula = %v, want 0", got)
	}
	if got := refraction(-10, 0); got != 0 {
		t.Errorf("refraction below horizon = %v, want 0", got)
	}
	if got := refraction(refractionCutoff+1e-9, 0); got <= 0 {
		t.Errorf("refraction just above cutoff = %v, want > 0", got)
	}
}

func TestRefractionDecreasesWithAltitude(t *testing.T) {
	for _, h := range []float64{-0.5, 0, 1, 10, 45, 89} {
		prev := math.Inf(1)
		for _, alt := range []float64{-400, 0, 500, 2000, 5000, 9000} {
			r := refraction(h, alt)
			if r <= 0 {
				t.Fatalf("refraction(%v, %v) = %v, want > 0", h, alt, r)
			}
			if r >= prev {
				t.Errorf("refraction(%v, %v) = %v, not below %v at lower altitude", h, alt, r, prev)
			}
			prev = r
		}
	}
}

func TestPressure(t *testing.T) {
	if got := pressure(0); got != seaLevelPressure {
		t.Errorf("pressure(0) = %v, want %v", got, seaLevelPressure)
	}
	if got := pressure(pressureScale); !within(got, seaLevelPressure/math.E, 1e-9) {
		t.Errorf("pressure at scale height = %v", got)
	}
}

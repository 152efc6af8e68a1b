package solar

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nathan-osman/go-sunrise"
)

func TestElevationGolden(t *testing.T) {
	table := []struct {
		name string
		obs  Observer
		at   time.Time
		want float64
	}{{
		name: "equator at equinox noon",
		obs:  Observer{0, 0, 0},
		at:   time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC),
		want: 88.17190730865991,
	}, {
		name: "santa cruz afternoon",
		obs:  Observer{36.9741, -122.0308, 0},
		at:   time.Date(2020, time.October, 25, 20, 0, 0, 0, time.UTC),
		want: 40.54503247421751,
	}, {
		name: "london midsummer midnight",
		obs:  Observer{51.5, 0, 0},
		at:   time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC),
		want: -15.060380932388384,
	}, {
		name: "before the epoch",
		obs:  Observer{40, -105, 1600},
		at:   time.Date(1950, time.July, 4, 18, 30, 0, 0, time.UTC),
		want: 71.42535705428656,
	}, {
		name: "curitiba at 961m",
		obs:  Observer{-25.4025905, -49.3124416, 961},
		at:   time.Date(2023, time.October, 1, 15, 7, 0, 0, time.UTC),
		want: 67.84944565022352,
	}, {
		name: "curitiba at sea level",
		obs:  Observer{-25.4025905, -49.3124416, 0},
		at:   time.Date(2023, time.October, 1, 15, 7, 0, 0, time.UTC),
		want: 67.85017300480337,
	}}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			if got := Elevation(test.obs, test.at); !within(got, test.want, 1e-9) {
				t.Errorf("Elevation = %.12f, want %.12f", got, test.want)
			}
		})
	}
}

func TestComputeReadsUTC(t *testing.T) {
	obs := Observer{-23.559798, -46.634971, 776}
	utc := time.Date(2024, time.January, 1, 15, 10, 0, 0, time.UTC)
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	want := Compute(obs, utc)
	got := Compute(obs, utc.In(saoPaulo))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("zone changed the result (-want,+got): %s", diff)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	obs := Observer{59.3258414, 17.70188, 9}
	at := time.Date(2024, time.January, 31, 11, 0, 0, 0, time.UTC)
	first := Compute(obs, at)
	for i := 0; i < 10; i++ {
		if got := Compute(obs, at); got != first {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestElevationRange(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for lat := -90.0; lat <= 90; lat += 7.5 {
		for lon := -180.0; lon <= 180; lon += 30 {
			for hours := 0; hours < 366*24; hours += 97 {
				obs := Observer{lat, lon, 0}
				e := Elevation(obs, start.Add(time.Duration(hours)*time.Hour))
				if math.IsNaN(e) || e < -91 || e > 91 {
					t.Fatalf("Elevation(%v) = %v, outside [-91, 91]", obs, e)
				}
			}
		}
	}
}

func TestRefractionAtHorizon(t *testing.T) {
	obs := Observer{36.9741, -122.0308, 0}
	day := time.Date(2020, time.October, 25, 0, 0, 0, 0, time.UTC)

	var above, below int
	for m := 0; m < 24*60; m++ {
		p := Compute(obs, day.Add(time.Duration(m)*time.Minute))
		switch {
		case p.Geometric > refractionCutoff:
			above++
			if p.Elevation <= p.Geometric {
				t.Errorf("%+v: apparent not above geometric", p)
			}
		default:
			below++
			if p.Elevation != p.Geometric {
				t.Errorf("%+v: refraction applied below cutoff", p)
			}
		}
	}
	if above == 0 || below == 0 {
		t.Fatalf("day did not cross the horizon: %d above, %d below", above, below)
	}
}

func TestAltitudeMovesTowardsGeometric(t *testing.T) {
	at := time.Date(2024, time.June, 21, 4, 0, 0, 0, time.UTC)
	base := Observer{51.4779, -0.0015, 0}

	prev := Compute(base, at)
	if prev.Refraction <= 0 {
		t.Fatalf("expected refraction at %v, got %+v", at, prev)
	}
	for _, alt := range []float64{100, 1000, 4000, 9000} {
		obs := base
		obs.Altitude = alt
		p := Compute(obs, at)
		if p.Geometric != prev.Geometric {
			t.Errorf("altitude changed geometric elevation: %v vs %v", p.Geometric, prev.Geometric)
		}
		if p.Refraction >= prev.Refraction {
			t.Errorf("refraction at %vm = %v, want below %v", alt, p.Refraction, prev.Refraction)
		}
		if p.Elevation-p.Geometric >= prev.Elevation-prev.Geometric {
			t.Errorf("apparent elevation at %vm did not move towards geometric", alt)
		}
		prev = p
	}
}

func TestSunriseIsAtHorizon(t *testing.T) {
	// go-sunrise finds the instant the sun's centre is 0.833 degrees below
	// the horizon using a coarser model, so allow a few minutes of solar
	// motion between the two.
	table := []Observer{
		{36.9741, -122.0308, 0},
		{-25.4025905, -49.3124416, 961},
		{53.200386, 45.021838, 142},
	}
	days := []time.Time{
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.November, 30, 0, 0, 0, 0, time.UTC),
	}
	for _, obs := range table {
		for _, d := range days {
			rise, set := sunrise.SunriseSunset(obs.Latitude, obs.Longitude, d.Year(), d.Month(), d.Day())
			for _, at := range []time.Time{rise, set} {
				if got := Compute(obs, at).Geometric; !within(got, -0.833, 1) {
					t.Errorf("geometric elevation(%v, %v) = %v, want near -0.833", obs, at, got)
				}
			}
		}
	}
}

func TestObserverValidate(t *testing.T) {
	table := []struct {
		obs  Observer
		want error
	}{
		{Observer{0, 0, 0}, nil},
		{Observer{-90, 180, -500}, nil},
		{Observer{90, -180, 8848}, nil},
		{Observer{90.0001, 0, 0}, ErrLatitude},
		{Observer{math.NaN(), 0, 0}, ErrLatitude},
		{Observer{0, -180.5, 0}, ErrLongitude},
		{Observer{0, 0, -501}, ErrAltitude},
		{Observer{0, 0, math.Inf(1)}, ErrAltitude},
	}
	for _, test := range table {
		err := test.obs.Validate()
		if !errors.Is(err, test.want) {
			t.Errorf("%v.Validate() = %v, want %v", test.obs, err, test.want)
		}
		if test.want == nil && err != nil {
			t.Errorf("%v.Validate() = %v, want nil", test.obs, err)
		}
	}
}

func TestPositionFields(t *testing.T) {
	at := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)
	got := Compute(Observer{0, 0, 0}, at)
	want := Position{
		JulianDay:      2460390.0,
		Declination:    0.14702913960369737,
		EquationOfTime: -7.290700872837004,
		HourAngle:      -1.8226752182092412,
	}
	opts := cmp.Options{
		cmpopts.EquateApprox(0, 1e-9),
		cmpopts.IgnoreFields(Position{}, "Geometric", "Refraction", "Elevation"),
	}
	if diff := cmp.Diff(want, got, opts); diff != "" {
		t.Errorf("Compute mismatch (-want,+got): %s", diff)
	}
	if got.Elevation != got.Geometric+got.Refraction {
		t.Errorf("Elevation %v != Geometric %v + Refraction %v", got.Elevation, got.Geometric, got.Refraction)
	}
}

// Command hourly prints the apparent sun elevation at a fixed step, one
// line per sample, for plotting. It defaults to Santa Cruz.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/spencer-p/sunelevation/pkg/solar"
	"github.com/spencer-p/sunelevation/pkg/sunset"
	"github.com/spencer-p/sunelevation/pkg/timetricks"
)

func main() {
	var (
		o     solar.Observer
		start string
		days  int
		step  time.Duration
	)
	pflag.Float64Var(&o.Latitude, "lat", sunset.SantaCruz.Latitude, "latitude in degrees")
	pflag.Float64Var(&o.Longitude, "lon", sunset.SantaCruz.Longitude, "longitude in degrees")
	pflag.Float64Var(&o.Altitude, "elevation-m", sunset.SantaCruz.Altitude, "altitude in meters")
	pflag.StringVar(&start, "start", "", "first sample, ISO-8601 (default local midnight today)")
	pflag.IntVar(&days, "days", 14, "number of days")
	pflag.DurationVar(&step, "step", 2*time.Hour, "time between samples")
	pflag.Parse()

	if err := o.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if step <= 0 {
		fmt.Fprintln(os.Stderr, "--step must be positive")
		os.Exit(2)
	}

	place := sunset.SantaCruz
	if pflag.CommandLine.Changed("lat") || pflag.CommandLine.Changed("lon") {
		place = sunset.In(o, nil)
	}
	place.Observer = o

	tstart := timetricks.TrimClock(time.Now().In(place.Location))
	if start != "" {
		var err error
		if tstart, err = timetricks.ParseInstant(start); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		tstart = tstart.In(place.Location)
	}

	tend := tstart.Add(time.Duration(days) * 24 * time.Hour)
	for t := tstart; t.Before(tend); t = t.Add(step) {
		fmt.Printf("%s %f\n", t.Format(time.RFC3339), solar.Elevation(o, t))
	}
}

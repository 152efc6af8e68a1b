package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/spencer-p/sunelevation/pkg/config"
	"github.com/spencer-p/sunelevation/pkg/peak"
	"github.com/spencer-p/sunelevation/pkg/solar"
	"github.com/spencer-p/sunelevation/pkg/timetricks"
)

// observerFlags selects an observer either by coordinates or by name from a
// places file.
type observerFlags struct {
	observer solar.Observer
	place    string
	places   string
}

func (f *observerFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&f.observer.Latitude, "lat", 0, "latitude in degrees, north positive")
	fs.Float64Var(&f.observer.Longitude, "lon", 0, "longitude in degrees, east positive")
	fs.Float64Var(&f.observer.Altitude, "elevation-m", 0, "altitude above sea level in meters")
	fs.StringVar(&f.place, "place", "", "name of a place in the --places file")
	fs.StringVar(&f.places, "places", "places.yaml", "YAML file of named places")
}

func (f *observerFlags) resolve(fs *pflag.FlagSet) (solar.Observer, error) {
	if f.place == "" {
		if !fs.Changed("lat") || !fs.Changed("lon") {
			return solar.Observer{}, errors.New("either --place or both --lat and --lon are required")
		}
		return f.observer, f.observer.Validate()
	}

	places, err := config.LoadPlaces(f.places)
	if err != nil {
		return solar.Observer{}, err
	}
	for _, p := range places {
		if p.Name == f.place {
			return p.Observer, nil
		}
	}
	return solar.Observer{}, fmt.Errorf("no place named %q in %s", f.place, f.places)
}

func newMaxCommand() *cobra.Command {
	var (
		of         observerFlags
		start, end string
		refine     bool
	)

	cmd := &cobra.Command{
		Use:   "max",
		Short: "Print the highest apparent sun elevation during a window",
		Example: `  sunelevation max --lat -25.4025905 --lon -49.3124416 --elevation-m 961 \
    --start 2023-10-01T00:00:00Z --end 2023-10-01T23:59:59Z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := of.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			var w peak.Window
			if w.Start, err = timetricks.ParseInstant(start); err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			if w.End, err = timetricks.ParseInstant(end); err != nil {
				return fmt.Errorf("--end: %w", err)
			}
			if err := w.Validate(); err != nil {
				return err
			}

			m := peak.Maximizer{Refine: refine}
			res := m.Maximize(o, w)
			return printYAML(cmd.OutOrStdout(), struct {
				Observer            solar.Observer `yaml:"observer"`
				MaximumSunElevation float64        `yaml:"maximum_sun_elevation"`
				At                  time.Time      `yaml:"at"`
				Samples             int            `yaml:"samples"`
				Step                string         `yaml:"step"`
				Refined             bool           `yaml:"refined"`
			}{o, res.Elevation, res.At, res.Samples, res.Step.String(), res.Refined})
		},
	}
	of.register(cmd.Flags())
	cmd.Flags().StringVar(&start, "start", "", "window start, ISO-8601 (required)")
	cmd.Flags().StringVar(&end, "end", "", "window end, ISO-8601 (required)")
	cmd.Flags().BoolVar(&refine, "refine", false, "search between samples for a higher peak")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newElevationCommand() *cobra.Command {
	var (
		of observerFlags
		at string
	)

	cmd := &cobra.Command{
		Use:   "elevation",
		Short: "Print the sun's position for one instant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := of.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			t := time.Now().UTC()
			if at != "" {
				if t, err = timetricks.ParseInstant(at); err != nil {
					return fmt.Errorf("--time: %w", err)
				}
			}

			p := solar.Compute(o, t)
			return printYAML(cmd.OutOrStdout(), struct {
				Observer       solar.Observer `yaml:"observer"`
				Time           time.Time      `yaml:"time"`
				JulianDay      float64        `yaml:"julian_day"`
				Declination    float64        `yaml:"declination"`
				EquationOfTime float64        `yaml:"equation_of_time"`
				HourAngle      float64        `yaml:"hour_angle"`
				Geometric      float64        `yaml:"geometric_elevation"`
				Refraction     float64        `yaml:"refraction"`
				Elevation      float64        `yaml:"elevation"`
			}{o, t, p.JulianDay, p.Declination, p.EquationOfTime, p.HourAngle, p.Geometric, p.Refraction, p.Elevation})
		},
	}
	of.register(cmd.Flags())
	cmd.Flags().StringVar(&at, "time", "", "instant, ISO-8601 (default now)")
	return cmd
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Package peak finds the highest apparent sun elevation over a time window by
// sampling the solar engine at a step that keeps the work per call bounded.
package peak

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/spencer-p/sunelevation/pkg/solar"
)

const (
	// Cap is the number of minutes up to which every minute is sampled.
	// Longer windows get a coarser step so the sample count stays near Cap.
	Cap = 2880

	// seed is lower than any attainable elevation.
	seed = -90.0

	precision = 1e6
)

var ErrEmptyWindow = errors.New("end must be after start")

// Window is a closed interval of time.
type Window struct {
	Start, End time.Time
}

// Validate reports whether w is non-empty.
func (w Window) Validate() error {
	if !w.End.After(w.Start) {
		return fmt.Errorf("%w: start %s, end %s", ErrEmptyWindow,
			w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
	}
	return nil
}

// Step returns the sampling interval for w. The length is measured in whole
// seconds since time.Duration saturates at about 292 years.
func (w Window) Step() time.Duration {
	total := (w.End.Unix() - w.Start.Unix()) / 60
	if total <= Cap {
		return time.Minute
	}
	step := total / Cap
	if step < 1 {
		step = 1
	}
	return time.Duration(step) * time.Minute
}

// Result is the outcome of one maximization.
type Result struct {
	// Elevation is the highest apparent elevation seen, rounded to six
	// decimal places.
	Elevation float64
	// At is the first sampled instant reaching the maximum.
	At time.Time
	// Samples is the number of engine evaluations.
	Samples int
	Step    time.Duration
	Refined bool
}

// Maximizer walks a window with an elevation function.
type Maximizer struct {
	// Eval defaults to solar.Elevation.
	Eval func(solar.Observer, time.Time) float64
	// Refine searches around the coarse maximum for a better one.
	Refine bool
}

// Maximize returns the highest apparent sun elevation seen by o during w
// using solar.Elevation, without refinement.
func Maximize(o solar.Observer, w Window) Result {
	var m Maximizer
	return m.Maximize(o, w)
}

// Maximize samples w starting at w.Start, at w.Step() intervals, for as long
// as the sample is not after w.End. The caller guarantees w.End > w.Start.
func (m *Maximizer) Maximize(o solar.Observer, w Window) Result {
	eval := m.eval()
	step := w.Step()

	res := Result{Elevation: seed, At: w.Start, Step: step}
	for cur := w.Start; !cur.After(w.End); cur = cur.Add(step) {
		e := eval(o, cur)
		res.Samples++
		if e > res.Elevation {
			res.Elevation = e
			res.At = cur
		}
	}

	if m.Refine {
		at, e, n := refine(eval, o, w, res.At, step)
		res.Samples += n
		if e > res.Elevation {
			res.Elevation = e
			res.At = at
			res.Refined = true
		}
	}

	res.Elevation = round(res.Elevation)
	return res
}

func (m *Maximizer) eval() func(solar.Observer, time.Time) float64 {
	if m.Eval != nil {
		return m.Eval
	}
	return solar.Elevation
}

func round(x float64) float64 {
	return math.Round(x*precision) / precision
}

package peak

import (
	"math"
	"time"

	"github.com/spencer-p/sunelevation/pkg/solar"
)

const tolerance = time.Second

// invPhi is 1/φ, the golden section ratio.
var invPhi = (math.Sqrt(5) - 1) / 2

// refine runs a golden section search for the maximum of eval on
// [at-step, at+step] clipped to w. Elevation is unimodal over such a short
// interval unless it spans the polar day/night boundary, in which case the
// coarse result simply wins. It returns the best instant, its elevation and
// the number of evaluations.
func refine(eval func(solar.Observer, time.Time) float64, o solar.Observer, w Window, at time.Time, step time.Duration) (time.Time, float64, int) {
	lo, hi := at.Add(-step), at.Add(step)
	if lo.Before(w.Start) {
		lo = w.Start
	}
	if hi.After(w.End) {
		hi = w.End
	}

	n := 0
	f := func(t time.Time) float64 {
		n++
		return eval(o, t)
	}
	probe := func(a, b time.Time, r float64) time.Time {
		return a.Add(time.Duration(float64(b.Sub(a)) * r))
	}

	c, d := probe(lo, hi, 1-invPhi), probe(lo, hi, invPhi)
	fc, fd := f(c), f(d)
	for hi.Sub(lo) > tolerance {
		if fc >= fd {
			hi = d
			d, fd = c, fc
			c = probe(lo, hi, 1-invPhi)
			fc = f(c)
		} else {
			lo = c
			c, fc = d, fd
			d = probe(lo, hi, invPhi)
			fd = f(d)
		}
	}

	if fc >= fd {
		return c, fc, n
	}
	return d, fd, n
}

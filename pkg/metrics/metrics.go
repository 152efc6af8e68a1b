package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const subsystem = "sunelevation"

var (
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "request_latency",
			Subsystem: subsystem,
			Help:      "HTTP request latencies in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0},
		},
		[]string{"verb", "path", "code"},
	)

	samples = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:      "maximize_samples",
			Subsystem: subsystem,
			Help:      "Solar engine evaluations per maximization.",
			Buckets:   prometheus.LinearBuckets(0, 720, 9),
		},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "cache_lookups_total",
			Subsystem: subsystem,
			Help:      "Response cache lookups by result.",
		},
		[]string{"result"},
	)

	placeElevation = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:      "place_elevation_degrees",
			Subsystem: subsystem,
			Help:      "Current apparent sun elevation at configured places.",
		},
		[]string{"place"},
	)
)

func init() {
	prometheus.MustRegister(
		requestLatency,
		samples,
		cacheLookups,
		placeElevation,
	)
}

func ObserveRequestLatency(verb, path, code string, latency float64) {
	requestLatency.With(prometheus.Labels{
		"code": code,
		"verb": verb,
		"path": path,
	}).Observe(latency)
}

// ObserveSamples records how many engine evaluations one maximization took.
func ObserveSamples(n int) {
	samples.Observe(float64(n))
}

// ObserveCache counts a response cache hit or miss.
func ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(result).Inc()
}

// SetPlaceElevation publishes the current elevation at a named place.
func SetPlaceElevation(place string, degrees float64) {
	placeElevation.WithLabelValues(place).Set(degrees)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// statusRecorder remembers the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// LatencyHandler observes request latency for next. route names the path
// label so that query strings and path parameters do not explode the label
// space; if it returns "" the URL path is used.
func LatencyHandler(route func(*http.Request) string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		verb := r.Method
		path := route(r)
		if path == "" && r.URL != nil {
			path = r.URL.Path
		}
		rec := &statusRecorder{ResponseWriter: w}

		// Defer metric observing. Any panics in next are reported as 500 errors
		// and then re-thrown.
		defer func() {
			if err := recover(); err != nil {
				ObserveRequestLatency(verb, path, "500", time.Since(t).Seconds())
				panic(err)
			}
			ObserveRequestLatency(verb, path, statusCode(rec), time.Since(t).Seconds())
		}()

		next.ServeHTTP(rec, r)
	})
}

func statusCode(rec *statusRecorder) string {
	if rec.status == 0 {
		// Nothing written, will be set to 200 by stdlib.
		return "200"
	}
	return strconv.Itoa(rec.status)
}

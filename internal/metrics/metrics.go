// Package metrics records layout generation statistics in a Prometheus registry.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/derekprior/minitourney/internal/layout"
)

// Generation outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeInfeasible = "infeasible"
	OutcomeInvalid    = "invalid"
)

// Option applies a configuration option to the Recorder.
type Option func(*Recorder)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom buckets for the generation latency histogram.
func WithHistogramBuckets(buckets []float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.buckets = buckets
		}
	}
}

// WithRegistry registers metrics on the given registry instead of a fresh one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(r *Recorder) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// Recorder holds the generator's counters and latency histogram.
type Recorder struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	runs     *prometheus.CounterVec
	layouts  prometheus.Counter
	games    *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewRecorder creates a Recorder with its own registry unless WithRegistry is given.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: "minitourney",
		buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}

	auto := promauto.With(r.registry)
	r.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "generator",
		Name:      "runs_total",
		Help:      "Layout generation runs by outcome",
	}, []string{"outcome"})

	r.layouts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "generator",
		Name:      "layouts_total",
		Help:      "Layout options produced",
	})

	r.games = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: "generator",
		Name:      "games_total",
		Help:      "Games scheduled across all produced layouts, by kind",
	}, []string{"kind"})

	r.duration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: "generator",
		Name:      "duration_seconds",
		Help:      "Time spent generating layouts",
		Buckets:   r.buckets,
	})

	return r
}

// ObserveGeneration records the result of one call to layout.Generate.
func (r *Recorder) ObserveGeneration(layouts []layout.Layout, elapsed time.Duration, err error) {
	r.duration.Observe(elapsed.Seconds())

	switch {
	case errors.Is(err, layout.ErrInvalidInput):
		r.runs.WithLabelValues(OutcomeInvalid).Inc()
		return
	case err != nil:
		r.runs.WithLabelValues("error").Inc()
		return
	case len(layouts) == 0:
		r.runs.WithLabelValues(OutcomeInfeasible).Inc()
		return
	}

	r.runs.WithLabelValues(OutcomeOK).Inc()
	r.layouts.Add(float64(len(layouts)))
	for _, l := range layouts {
		r.games.WithLabelValues("real").Add(float64(l.RealGames))
		r.games.WithLabelValues("bye").Add(float64(l.ByeGames))
	}
}

// Gatherer exposes the registry for scraping or inspection.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes every metric in the Prometheus text format, for
// pickup by a node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Outcome labels for executed statements.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Collector exposes Prometheus metrics for cleanup runs.
type Collector struct {
	registry        *prometheus.Registry
	statementsTotal *prometheus.CounterVec
	runDuration     prometheus.Histogram
}

// NewCollector constructs a collector with default counters/histograms.
func NewCollector() (*Collector, error) {
	registry := prometheus.NewRegistry()

	statementsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "apreset",
		Subsystem: "cleanup",
		Name:      "statements_total",
		Help:      "Total number of cleanup statements executed.",
	}, []string{"operation", "outcome"})

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "apreset",
		Subsystem: "cleanup",
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of complete cleanup runs.",
		Buckets:   prometheus.DefBuckets,
	})

	if err := registry.Register(statementsTotal); err != nil {
		return nil, err
	}

	if err := registry.Register(runDuration); err != nil {
		return nil, err
	}

	collector := &Collector{
		registry:        registry,
		statementsTotal: statementsTotal,
		runDuration:     runDuration,
	}

	return collector, nil
}

// ObserveStatement records the outcome of a single cleanup statement.
func (c *Collector) ObserveStatement(operation string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	c.statementsTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveRun records the duration of a complete cleanup run.
func (c *Collector) ObserveRun(d time.Duration) {
	c.runDuration.Observe(d.Seconds())
}

// Handler returns an HTTP handler for exposing Prometheus metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Snapshot aggregates the statement counters by outcome. It backs the
// end-of-run summary log line.
func (c *Collector) Snapshot() (ok, failed int) {
	families, err := c.registry.Gather()
	if err != nil {
		return 0, 0
	}

	for _, family := range families {
		if family.GetName() != "apreset_cleanup_statements_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			value := int(metric.GetCounter().GetValue())
			if labelValue(metric, "outcome") == OutcomeError {
				failed += value
			} else {
				ok += value
			}
		}
	}

	return ok, failed
}

func labelValue(metric *dto.Metric, name string) string {
	for _, label := range metric.GetLabel() {
		if label.GetName() == name {
			return label.GetValue()
		}
	}
	return ""
}

// Package metrics provides Prometheus observability metrics for the sweep
// driver: per-cell result gauges for dashboards and operational counters and
// histograms for run health.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// MeanWaitTime reports the mean waiting time of each completed run.
var MeanWaitTime = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "sim",
	Name:      "mean_wait_time",
	Help:      "Mean request waiting time per (threshold, arrival rate) run",
}, []string{"threshold", "arrival_rate"})

// MeanQoE reports the mean quality of experience of each completed run.
var MeanQoE = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "sim",
	Name:      "mean_qoe",
	Help:      "Mean QoE per (threshold, arrival rate) run",
}, []string{"threshold", "arrival_rate"})

// MeanExtraAgents reports the mean simplified-agent count of each run.
var MeanExtraAgents = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "sim",
	Name:      "mean_extra_agents",
	Help:      "Mean number of extra simplified agents per (threshold, arrival rate) run",
}, []string{"threshold", "arrival_rate"})

// RequestsCompletedTotal counts requests that finished service across all runs.
var RequestsCompletedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "sim",
	Name:      "requests_completed_total",
	Help:      "Total requests that completed service across all runs",
})

// ModeSwitchesTotal counts mode transitions by direction across all runs.
var ModeSwitchesTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sim",
	Name:      "mode_switches_total",
	Help:      "Total mode transitions across all runs, by direction",
}, []string{"direction"})

// RunsCompletedTotal counts simulation runs that finished without error.
var RunsCompletedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "sweep",
	Name:      "runs_completed_total",
	Help:      "Total simulation runs completed by the sweep driver",
})

// RunDurationSeconds tracks wall-clock time per simulation run.
var RunDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "sweep",
	Name:      "run_duration_seconds",
	Help:      "Wall-clock time taken by a single simulation run",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
})

// RunLabels builds the gauge labels for one (threshold, arrival rate) cell.
func RunLabels(threshold int, arrivalRate float64) prometheus.Labels {
	return prometheus.Labels{
		"threshold":    strconv.Itoa(threshold),
		"arrival_rate": strconv.FormatFloat(arrivalRate, 'g', -1, 64),
	}
}

package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ActionsTotal counts pipeline steps by action type and outcome.
var ActionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mudengine_actions_total",
		Help: "Total number of action pipeline steps by action and outcome",
	},
	[]string{"action", "outcome"},
)

// ParseErrorsTotal counts rejected input lines by parse error kind.
var ParseErrorsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mudengine_parse_errors_total",
		Help: "Total number of input lines that failed to parse by kind",
	},
	[]string{"kind"},
)

// TicksTotal counts advances of the in-game clock.
var TicksTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "mudengine_ticks_total",
		Help: "Total number of simulation ticks",
	},
)

// ProcessDuration observes how long each scheduler pass takes.
var ProcessDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "mudengine_process_seconds",
		Help:    "Duration of one scheduler pass in seconds",
		Buckets: prometheus.DefBuckets,
	},
)

// RegisterMetrics registers the engine metrics with reg.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(ActionsTotal)
	reg.MustRegister(ParseErrorsTotal)
	reg.MustRegister(TicksTotal)
	reg.MustRegister(ProcessDuration)
}

func recordProcess(d time.Duration) {
	ProcessDuration.Observe(d.Seconds())
}

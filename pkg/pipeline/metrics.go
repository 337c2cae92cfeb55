package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks pipeline counters.
type Metrics struct {
	processed          *prometheus.CounterVec
	toMe               prometheus.Counter
	preprocessorErrors prometheus.Counter
}

// NewMetrics creates pipeline metrics registered on reg. A nil registerer
// leaves the counters unregistered, which suits callers without a metrics
// endpoint.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		processed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mtcode",
			Subsystem: "pipeline",
			Name:      "events_processed_total",
			Help:      "Events processed, by detail type.",
		}, []string{"detail_type"}),
		toMe: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "mtcode",
			Subsystem: "pipeline",
			Name:      "events_to_me_total",
			Help:      "Events resolved as addressed to the bot.",
		}),
		preprocessorErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "mtcode",
			Subsystem: "pipeline",
			Name:      "preprocessor_errors_total",
			Help:      "Errors returned by preprocessors.",
		}),
	}
}

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ExternalCallDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "external_call_duration_seconds",
		Help:    "Latency of calls to managed services by service, operation and outcome",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	}, []string{"service", "operation", "outcome"})
	ExternalCallErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "external_call_errors_total",
		Help: "Failed calls to managed services by service and operation",
	}, []string{"service", "operation"})
)

// Register adds the collectors to reg. The app registers once at startup.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{ExternalCallDuration, ExternalCallErrorsTotal} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Handler serves the collectors gathered by reg.
func Handler(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// ObserveCall records one external call. Use as
// `defer metrics.ObserveCall("s3", "put_object", time.Now(), &err)`.
func ObserveCall(service, operation string, start time.Time, errp *error) {
	outcome := "ok"
	if errp != nil && *errp != nil {
		outcome = "error"
		ExternalCallErrorsTotal.WithLabelValues(service, operation).Inc()
	}
	ExternalCallDuration.WithLabelValues(service, operation, outcome).Observe(time.Since(start).Seconds())
}

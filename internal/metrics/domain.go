package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	contentWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studio",
			Name:      "content_writes_total",
			Help:      "Total number of accepted content section writes.",
		},
		[]string{"section"},
	)

	watchStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "studio",
			Name:      "watch_streams",
			Help:      "Number of content watch streams currently open.",
		},
	)

	flowCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studio",
			Name:      "flow_calls_total",
			Help:      "Total number of generative flow invocations by outcome.",
		},
		[]string{"flow", "outcome"},
	)

	appointmentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studio",
			Name:      "appointment_submissions_total",
			Help:      "Total number of accepted appointment submissions.",
		},
	)
)

// ContentWrite records an accepted write to a content section.
func ContentWrite(section string) {
	contentWritesTotal.WithLabelValues(section).Inc()
}

// WatchStreamOpened increments the open-stream gauge; the returned func
// decrements it and must be deferred by the stream handler.
func WatchStreamOpened() func() {
	watchStreams.Inc()
	return watchStreams.Dec
}

// FlowCall records one generative flow invocation. Outcome is one of
// "ok", "invalid", or "error".
func FlowCall(flow, outcome string) {
	flowCallsTotal.WithLabelValues(flow, outcome).Inc()
}

// AppointmentSubmitted records an accepted appointment request.
func AppointmentSubmitted() {
	appointmentsTotal.Inc()
}

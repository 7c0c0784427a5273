package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "thetop36"

var (
	PaymentsProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_processed_total",
		Help:      "Payment confirmations by entry path and outcome.",
	}, []string{"source", "result"})

	DrawRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "draw_runs_total",
		Help:      "Daily draw invocations by outcome.",
	}, []string{"result"})

	ProviderSyncs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_marker_syncs_total",
		Help:      "Processed markers mirrored to the payment provider by outcome.",
	}, []string{"result"})

	HubSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "realtime_subscribers",
		Help:      "Currently connected realtime subscribers.",
	})

	HubEventsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_events_published_total",
		Help:      "Realtime events published by type.",
	}, []string{"type"})

	HubDeliveryFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_delivery_failures_total",
		Help:      "Realtime deliveries that failed and removed their subscriber.",
	})
)

var collectorsList = []prometheus.Collector{
	PaymentsProcessed,
	DrawRuns,
	ProviderSyncs,
	HubSubscribers,
	HubEventsPublished,
	HubDeliveryFailures,
}

// NewHandler exposes the service collectors next to the Go runtime ones on a private registry.
func NewHandler() http.Handler {
	registry := prometheus.NewRegistry()

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectorsList...)

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

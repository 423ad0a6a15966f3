package events

import "github.com/prometheus/client_golang/prometheus"

type busMetrics struct {
	eventsTotal *prometheus.CounterVec
	subscribers *prometheus.GaugeVec
}

func (b *Bus) initMetrics(registry prometheus.Registerer) {
	b.metrics = &busMetrics{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "codex_events_published_total",
				Help: "Total events published per event type",
			},
			[]string{"type"},
		),
		subscribers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "codex_event_subscribers",
				Help: "Current subscriber count per event type",
			},
			[]string{"type"},
		),
	}
	registry.MustRegister(b.metrics.eventsTotal)
	registry.MustRegister(b.metrics.subscribers)
}

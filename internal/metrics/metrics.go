package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/campusevents/eventfront/internal/event_bus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eventfront"

// Metrics holds the Prometheus collectors of the front end. Each instance owns its registry.
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	Reservations     prometheus.Counter
	EventsCreated    prometheus.Counter
	FeedbackSent     prometheus.Counter
	FetchFailures    *prometheus.CounterVec
	ActiveEvents     prometheus.Gauge
	CatalogRefreshes prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Reservations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_created_total",
			Help:      "Reservations accepted by the booking API",
		}),
		EventsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_created_total",
			Help:      "Events accepted by the booking API",
		}),
		FeedbackSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_sent_total",
			Help:      "Contact messages accepted by the booking API",
		}),
		FetchFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "catalog",
				Name:      "fetch_failures_total",
				Help:      "Failed listing calls swallowed during catalog refresh",
			},
			[]string{"call"},
		),
		ActiveEvents: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "active_events",
			Help:      "Active events after the last refresh",
		}),
		CatalogRefreshes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "refreshes_total",
			Help:      "Completed catalog refresh cycles",
		}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Subscribe feeds the bus events into the collectors.
func (m *Metrics) Subscribe(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped(bus, event_bus.ReservationCreatedType, func(e event_bus.EventT[event_bus.ReservationCreated]) error {
		m.Reservations.Inc()
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.EventCreatedType, func(e event_bus.EventT[event_bus.EventCreated]) error {
		m.EventsCreated.Inc()
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.FeedbackSentType, func(e event_bus.EventT[event_bus.FeedbackSent]) error {
		m.FeedbackSent.Inc()
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.CatalogRefreshedType, func(e event_bus.EventT[event_bus.CatalogRefreshed]) error {
		m.CatalogRefreshes.Inc()
		m.ActiveEvents.Set(float64(e.Data.ActiveEvents))
		if e.Data.EventsErr != nil {
			m.FetchFailures.WithLabelValues("events").Inc()
		}
		if e.Data.ReservationsErr != nil {
			m.FetchFailures.WithLabelValues("reservations").Inc()
		}
		return nil
	})
}

// Observe records one finished HTTP request.
func (m *Metrics) Observe(method, route string, status int, elapsed time.Duration) {
	m.RequestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

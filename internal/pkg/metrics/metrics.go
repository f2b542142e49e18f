package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics - счётчики агента, отдаются на /metrics
type Metrics struct {
	registry *prometheus.Registry

	resolutions     *prometheus.CounterVec
	notifications   *prometheus.CounterVec
	gatewayRequests *prometheus.CounterVec
	gatewayRetries  prometheus.Counter
	readings        *prometheus.CounterVec
}

// New создает реестр и регистрирует счётчики агента
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agent_zone_resolutions_total",
			Help: "Zone resolutions by resulting kind and mode (local/remote)",
		}, []string{"kind", "mode"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agent_notifications_total",
			Help: "Notification decisions by outcome (dispatched/suppressed/gated/failed)",
		}, []string{"outcome"}),
		gatewayRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agent_gateway_requests_total",
			Help: "Backend gateway requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		gatewayRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "agent_gateway_retries_total",
			Help: "Backend gateway retry attempts",
		}),
		readings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agent_location_readings_total",
			Help: "Location readings by decision (accepted/throttled)",
		}, []string{"decision"}),
	}
}

func (m *Metrics) IncResolution(kind, mode string) {
	m.resolutions.WithLabelValues(kind, mode).Inc()
}

func (m *Metrics) IncNotification(outcome string) {
	m.notifications.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncGatewayRequest(endpoint, outcome string) {
	m.gatewayRequests.WithLabelValues(endpoint, outcome).Inc()
}

func (m *Metrics) IncGatewayRetry() {
	m.gatewayRetries.Inc()
}

func (m *Metrics) IncReading(decision string) {
	m.readings.WithLabelValues(decision).Inc()
}

// Handler возвращает http.Handler для /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

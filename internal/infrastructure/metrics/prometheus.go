// Package metrics expone contadores Prometheus del back office.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Phoneshop-api/internal/application/ports"
	"github.com/jhoicas/Phoneshop-api/internal/domain"
)

const namespace = "phoneshop"

var _ ports.WorkflowMetrics = (*Prometheus)(nil)

// Prometheus implementa ports.WorkflowMetrics sobre un registro propio,
// de modo que varias instancias (p. ej. en tests) no colisionen.
type Prometheus struct {
	registry *prometheus.Registry

	created     *prometheus.CounterVec
	transitions *prometheus.CounterVec
	rejected    *prometheus.CounterVec
	audit       *prometheus.CounterVec
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// NewPrometheus registra los colectores del proceso y los de negocio.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_created_total",
			Help:      "Registros creados por tipo.",
		}, []string{"entity_type"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Transiciones de estado confirmadas.",
		}, []string{"entity_type", "from", "to"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_rejected_total",
			Help:      "Transiciones rechazadas por motivo.",
		}, []string{"entity_type", "reason"}),
		audit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_events_total",
			Help:      "Eventos de auditoría confirmados por acción.",
		}, []string{"action"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por ruta y código.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	p.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.created, p.transitions, p.rejected, p.audit, p.requests, p.latency,
	)
	return p
}

// Registry para consultas directas (tests) o para exponer otros colectores.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

func (p *Prometheus) EntityCreated(t domain.EntityType) {
	p.created.WithLabelValues(string(t)).Inc()
}

func (p *Prometheus) Transitioned(t domain.EntityType, from, to string) {
	p.transitions.WithLabelValues(string(t), from, to).Inc()
}

func (p *Prometheus) TransitionRejected(t domain.EntityType, reason string) {
	p.rejected.WithLabelValues(string(t), reason).Inc()
}

func (p *Prometheus) AuditRecorded(action string) {
	p.audit.WithLabelValues(action).Inc()
}

// Handler expone /metrics en formato Prometheus.
func (p *Prometheus) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))
}

// Middleware cuenta peticiones usando la ruta registrada (no la URL), para
// acotar la cardinalidad de etiquetas.
func (p *Prometheus) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		route := c.Route().Path
		p.requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		p.latency.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

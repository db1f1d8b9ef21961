package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects the Prometheus metrics for the application.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	TenantsProvisioned prometheus.Counter
	InvitesCreated     prometheus.Counter
	InvitesAccepted    prometheus.Counter
	InvitesExpired     prometheus.Counter
	AuditFailures      prometheus.Counter
}

// NewMetrics initialises the registry and base metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quayside_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quayside_http_request_duration_seconds",
		Help:    "HTTP request duration per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	tenants := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quayside_tenants_provisioned_total",
		Help: "Tenants successfully provisioned.",
	})
	invitesCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quayside_invites_created_total",
		Help: "Invitations issued.",
	})
	invitesAccepted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quayside_invites_accepted_total",
		Help: "Invitations accepted.",
	})
	invitesExpired := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quayside_invites_expired_total",
		Help: "Invitations observed expired by the sweep job.",
	})
	auditFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quayside_audit_failures_total",
		Help: "Audit events that could not be recorded.",
	})
	registry.MustRegister(requests, duration, tenants, invitesCreated, invitesAccepted, invitesExpired, auditFailures)
	return &Metrics{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:      requests,
		requestDuration:    duration,
		TenantsProvisioned: tenants,
		InvitesCreated:     invitesCreated,
		InvitesAccepted:    invitesAccepted,
		InvitesExpired:     invitesExpired,
		AuditFailures:      auditFailures,
	}
}

// Handler returns the http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records metrics for every HTTP request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)

		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if ctx := chi.RouteContext(r.Context()); ctx != nil {
		if pattern := ctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

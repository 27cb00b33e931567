// Package metrics exposes prometheus counters for the login, OTP and ledger
// flows. A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultPartial = "partial"
)

// Metrics is the set of collectors registered on one registry.
type Metrics struct {
	Registry *prometheus.Registry

	Logins       *prometheus.CounterVec
	OTPs         *prometheus.CounterVec
	Sessions     *prometheus.CounterVec
	Transactions *prometheus.CounterVec
	Transfers    *prometheus.CounterVec
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec
}

// New registers every collector on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_logins_total",
			Help: "Login attempts by step and result.",
		}, []string{"step", "result"}),
		OTPs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_otps_total",
			Help: "One-time codes by event.",
		}, []string{"event"}),
		Sessions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_sessions_total",
			Help: "Session lifecycle events.",
		}, []string{"event"}),
		Transactions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_transactions_total",
			Help: "Applied transactions by kind and result.",
		}, []string{"kind", "result"}),
		Transfers: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_transfers_total",
			Help: "Transfers by result.",
		}, []string{"result"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wallet_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Login counts one login step ("password" or "otp").
func (m *Metrics) Login(step, result string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(step, result).Inc()
}

// OTP counts an OTP event: issued, consumed, rejected, expired or revoked.
func (m *Metrics) OTP(event string) {
	if m == nil {
		return
	}
	m.OTPs.WithLabelValues(event).Inc()
}

// Session counts a session event: created, revoked or expired.
func (m *Metrics) Session(event string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Sessions.WithLabelValues(event).Add(float64(n))
}

// Transaction counts an applied or rejected transaction.
func (m *Metrics) Transaction(kind, result string) {
	if m == nil {
		return
	}
	m.Transactions.WithLabelValues(kind, result).Inc()
}

// Transfer counts a transfer outcome.
func (m *Metrics) Transfer(result string) {
	if m == nil {
		return
	}
	m.Transfers.WithLabelValues(result).Inc()
}

// Request records one served HTTP request.
func (m *Metrics) Request(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Result maps an error to a result label.
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

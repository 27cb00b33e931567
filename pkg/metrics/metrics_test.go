package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/amirasaad/wallet/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()
	m := metrics.New()

	m.Login("password", metrics.ResultSuccess)
	m.Login("password", metrics.ResultSuccess)
	m.OTP("issued")
	m.Session("revoked", 3)
	m.Session("revoked", 0)
	m.Transaction("credit", metrics.Result(nil))
	m.Transfer(metrics.Result(errors.New("boom")))
	m.Request("GET", "/user", 200, 10*time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.Logins.WithLabelValues("password", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.OTPs.WithLabelValues("issued")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.Sessions.WithLabelValues("revoked")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Transactions.WithLabelValues("credit", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Transfers.WithLabelValues("failure")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/user", "200")), 0)

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.Login("otp", metrics.ResultFailure)
		m.OTP("issued")
		m.Session("created", 1)
		m.Transaction("debit", metrics.ResultFailure)
		m.Transfer(metrics.ResultPartial)
		m.Request("POST", "/wallet", 500, time.Second)
	})
}

package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trxclicker/internal/core/port"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestObserveIngest(t *testing.T) {
	m := New()
	m.ObserveIngest(port.IngestReport{Credited: 2, Duplicates: 3, Malformed: 1}, 10*time.Millisecond)
	m.ObserveIngest(port.IngestReport{Credited: 1, Unattributed: 1}, 10*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `trxclicker_deposits_processed_total{result="credited"} 3`)
	assert.Contains(t, body, `trxclicker_deposits_processed_total{result="unattributed"} 1`)
	assert.Contains(t, body, `trxclicker_deposits_processed_total{result="duplicate"} 3`)
	assert.Contains(t, body, `trxclicker_deposits_processed_total{result="below_minimum"} 0`)
	assert.Contains(t, body, "trxclicker_deposit_poll_duration_seconds_count 2")
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.Decisions.WithLabelValues("withdrawal", "rejected").Inc()

	body := scrape(t, m)
	assert.Contains(t, body, `trxclicker_admin_decisions_total{kind="withdrawal",outcome="rejected"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestHealthHandler(t *testing.T) {
	ok := func(context.Context) error { return nil }

	rec := httptest.NewRecorder()
	HealthHandler(map[string]HealthFunc{"store": ok}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	HealthHandler(map[string]HealthFunc{
		"store": ok,
		"redis": func(context.Context) error { return errors.New("connection refused") },
	}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis: connection refused")
}

package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddleware(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/items/:id", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.GET("/fail", func(c echo.Context) error { return echo.ErrBadRequest })

	for _, path := range []string{"/items/1", "/items/2", "/fail"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/items/:id", "204")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/fail", "400")))
}

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.LoginAttempt(LoginSucceeded)
	m.LoginAttempt(LoginFailed)
	m.LoginAttempt(LoginFailed)
	m.AccessLogDropped()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.loginAttemptsTotal.WithLabelValues(LoginFailed)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.accessLogDropped))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `site_admin_login_attempts_total{result="failure"} 2`)
	assert.Contains(t, body, "site_access_log_dropped_total 1")
	assert.Contains(t, body, "go_goroutines")
}

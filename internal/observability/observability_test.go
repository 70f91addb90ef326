package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bpdb/power-portal/internal/config"
)

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "chatty"}, config.AppConfig{Name: "power-portal"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/me", "GET", 200, 15*time.Millisecond)
	m.RecordRequest("/me", "GET", 200, 5*time.Millisecond)
	m.RecordError("/auth/login", "POST", "UNAUTHORIZED")
	m.RecordSignIn("DIRECTOR")
	m.RecordSignIn("DIRECTOR")
	m.RecordAuthzDecision("incidents", "write", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCount.WithLabelValues("/me", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorCount.WithLabelValues("/auth/login", "POST", "UNAUTHORIZED")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.signIns.WithLabelValues("DIRECTOR")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authzDecisions.WithLabelValues("incidents", "write", "denied")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.RecordSignIn("CUSTOMER") })
}

func TestRequestLoggerSetsRequestIDAndCounts(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/ping/:id", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest("GET", "/ping/7", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "pong", string(body))
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues("/ping/:id", "GET", "200")))

	req := httptest.NewRequest("GET", "/ping/8", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestMetricsHandlerExposesRegistry(t *testing.T) {
	m := NewMetrics()
	m.RecordSignIn("CUSTOMER")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.True(t, strings.Contains(rec.Body.String(), `portal_auth_sign_ins_total{tier="CUSTOMER"} 1`))
}

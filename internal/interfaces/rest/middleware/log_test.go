package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"
	"github.com/pot-code/course-platform/internal/infrastructure/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newLoggedApp(t *testing.T) (*echo.Echo, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	app := echo.New()
	app.Use(echo_middleware.RequestID())
	app.Use(Logging(logger))
	api := app.Group("/api", SetTraceLogger(logger))
	api.GET("/courses/:courseId", func(c echo.Context) error {
		logging.ExtractLoggerFromContext(c.Request().Context()).Info("handled")
		return c.NoContent(http.StatusOK)
	})
	api.GET("/missing", func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	})
	api.GET("/ws/progress", func(c echo.Context) error {
		return nil
	})
	return app, logs
}

func TestLogging_RequestIdentifiers(t *testing.T) {
	app, logs := newLoggedApp(t)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/courses/A?userId=U", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	handled := logs.FilterMessage("handled").All()
	require.Len(t, handled, 1)
	fields := handled[0].ContextMap()
	assert.Equal(t, "A", fields["course.id"])
	assert.Equal(t, "U", fields["user.id"])
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), fields["trace.id"])

	access := logs.FilterMessage(http.StatusText(http.StatusOK)).All()
	require.Len(t, access, 1)
	assert.Equal(t, zapcore.DebugLevel, access[0].Level)
	fields = access[0].ContextMap()
	assert.Equal(t, "A", fields["course.id"])
	assert.Equal(t, "/api/courses/A", fields["url.path"])
	assert.EqualValues(t, http.StatusOK, fields["http.response.status_code"])
}

func TestLogging_Levels(t *testing.T) {
	app, logs := newLoggedApp(t)

	app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/missing", nil))
	notFound := logs.FilterMessage(http.StatusText(http.StatusNotFound)).All()
	require.Len(t, notFound, 1)
	assert.Equal(t, zapcore.InfoLevel, notFound[0].Level)

	req := httptest.NewRequest(http.MethodGet, "/api/ws/progress", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	app.ServeHTTP(httptest.NewRecorder(), req)
	upgraded := logs.FilterMessage("Websocket upgraded").All()
	require.Len(t, upgraded, 1)
	assert.Equal(t, "websocket", upgraded[0].ContextMap()["network.protocol"])
}

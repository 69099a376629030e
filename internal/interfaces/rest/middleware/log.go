package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pot-code/course-platform/internal/infrastructure/logging"
	"go.uber.org/zap"
)

// identifierFields request identifiers found in route params or the query string, mapped to
// the zap keys the use cases log with
var identifierFields = []struct {
	name string
	key  string
}{
	{"userId", "user.id"},
	{"courseId", "course.id"},
	{"moduleId", "module.id"},
	{"lectureId", "lecture.id"},
	{"attachmentId", "attachment.id"},
}

type LoggingConfig struct {
	// Skipper defines a function to skip middleware.
	Skipper middleware.Skipper
}

// Logging access log with zap, one entry per request
//
// 5xx are logged at warn level (ErrorHandling already logged the cause), 4xx at info and the
// rest at debug. Websocket upgrades are tagged and logged at info, the session itself
// outlives the request.
func Logging(base *zap.Logger, options ...*LoggingConfig) echo.MiddlewareFunc {
	cfg := &LoggingConfig{
		Skipper: middleware.DefaultSkipper,
	}
	if len(options) > 0 {
		option := options[0]
		if option.Skipper != nil {
			cfg.Skipper = option.Skipper
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}
			start := time.Now()
			err := next(c)

			req := c.Request()
			code := c.Response().Status
			fields := append([]zap.Field{
				zap.String("trace.id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("http.request.method", req.Method),
				zap.String("url.path", req.URL.Path),
				zap.String("client.address", c.RealIP()),
				zap.Int("http.response.status_code", code),
				zap.Duration("event.duration", time.Since(start)),
			}, identifiers(c)...)

			switch {
			case isWebsocketUpgrade(req):
				base.Info("Websocket upgraded", append(fields, zap.String("network.protocol", "websocket"))...)
			case code >= http.StatusInternalServerError:
				base.Warn(http.StatusText(code), fields...)
			case code >= http.StatusBadRequest:
				base.Info(http.StatusText(code), fields...)
			default:
				base.Debug(http.StatusText(code), append(fields, zap.Int64("http.request.body.bytes", req.ContentLength))...)
			}
			return err
		}
	}
}

// SetTraceLogger put a logger bound to the trace ID and the request identifiers into the request context
func SetTraceLogger(base *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			r := c.Request()
			fields := append([]zap.Field{zap.String("trace.id", c.Response().Header().Get(echo.HeaderXRequestID))}, identifiers(c)...)
			c.SetRequest(r.WithContext(logging.SetLoggerInContext(r.Context(), base.With(fields...))))
			return next(c)
		}
	}
}

func identifiers(c echo.Context) []zap.Field {
	var fields []zap.Field
	for _, f := range identifierFields {
		v := c.Param(f.name)
		if v == "" {
			v = c.QueryParam(f.name)
		}
		if v != "" {
			fields = append(fields, zap.String(f.key, v))
		}
	}
	return fields
}

func isWebsocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

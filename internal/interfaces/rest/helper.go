package rest

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	"net/http/pprof"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pot-code/course-platform/internal/infrastructure/driver"
	"go.uber.org/zap"
)

const healthzTimeout = 3 * time.Second

// methods the route table accepts, the platform API has no HEAD/PATCH surface
var tableMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

// endpoint a versioned API root, e.g. /api/v1
type endpoint struct {
	apiVersion  string
	middlewares []echo.MiddlewareFunc
	groups      []*apiGroup
}

// apiGroup resource prefix under an endpoint, e.g. /admin
type apiGroup struct {
	prefix      string
	middlewares []echo.MiddlewareFunc
	routes      []*route
}

type route struct {
	method      string
	path        string
	handler     echo.HandlerFunc
	middlewares []echo.MiddlewareFunc
}

// createEndpoint register the route table, panics on unknown methods and duplicated routes
func createEndpoint(app *echo.Echo, def *endpoint) {
	root := app.Group("/"+strings.TrimPrefix(def.apiVersion, "/"), def.middlewares...)
	registered := make(map[string]bool)

	for _, group := range def.groups {
		echoGroup := root.Group(group.prefix, group.middlewares...)
		for _, api := range group.routes {
			if !tableMethods[api.method] {
				panic(fmt.Errorf("createEndpoint: unknown method %s for %s%s", api.method, group.prefix, api.path))
			}
			key := api.method + " " + path.Join("/", def.apiVersion, group.prefix, api.path)
			if registered[key] {
				panic(fmt.Errorf("createEndpoint: route %s registered twice", key))
			}
			registered[key] = true
			echoGroup.Add(api.method, api.path, api.handler, api.middlewares...)
		}
	}
}

// printRoutes log the route table, echo's own catch-all routes are left out
func printRoutes(app *echo.Echo, logger *zap.Logger) {
	for _, route := range app.Routes() {
		if !strings.HasPrefix(route.Name, "github.com/labstack/echo") {
			logger.Info("Registered route", zap.String("method", route.Method), zap.String("path", route.Path))
		}
	}
}

// registerLivenessProbe /healthz answers 200 only when both the database and the revocation list respond
func registerLivenessProbe(app *echo.Echo, db driver.ITransactionalDB, rdb driver.KeyValueDB) {
	app.GET("/healthz", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthzTimeout)
		defer cancel()
		if db.Ping(ctx) == nil && rdb.Ping(ctx) == nil {
			return c.NoContent(http.StatusOK)
		}
		return c.NoContent(http.StatusServiceUnavailable)
	})
}

func registerProfileEndpoints(app *echo.Echo) {
	expvarHandler := expvar.Handler()
	app.GET("/debug/vars", func(c echo.Context) error {
		expvarHandler.ServeHTTP(c.Response().Writer, c.Request())
		return nil
	})
	app.GET("/debug/pprof/", func(c echo.Context) error {
		pprof.Index(c.Response().Writer, c.Request())
		return nil
	})
	app.GET("/debug/pprof/:name", func(c echo.Context) error {
		switch c.Param("name") {
		case "cmdline":
			pprof.Cmdline(c.Response().Writer, c.Request())
		case "profile":
			pprof.Profile(c.Response().Writer, c.Request())
		case "symbol":
			pprof.Symbol(c.Response().Writer, c.Request())
		case "trace":
			pprof.Trace(c.Response().Writer, c.Request())
		default:
			pprof.Handler(c.Param("name")).ServeHTTP(c.Response().Writer, c.Request())
		}
		return nil
	})
}

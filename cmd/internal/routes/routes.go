// Package routes assembles the echo server: middleware, error rendering
// and the /api routes.
package routes

import (
	"net/http"

	"devjournal/cmd/internal/http/handler"
	httpmw "devjournal/cmd/internal/http/middleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Options struct {
	BodyLimit    string
	AllowOrigins []string
	// LogRequests enables the per-request log line.
	LogRequests bool
}

func New(opts Options, entries *handler.DefaultEntryRoute) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler

	if opts.LogRequests {
		e.Use(httpmw.NewRequestLogger())
	}
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins(opts.AllowOrigins),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(middleware.BodyLimit(bodyLimit(opts.BodyLimit)))

	api := e.Group("/api")
	api.GET("/entries", entries.GetEntries)
	api.GET("/entries/:id", entries.GetEntry)
	api.POST("/entries", entries.CreateEntry)
	api.PUT("/entries/:id", entries.UpdateEntry)
	api.DELETE("/entries/:id", entries.DeleteEntry)

	// Docker Compose healthcheck
	e.GET("/health", handler.HealthCheck)

	return e
}

func allowOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func bodyLimit(limit string) string {
	if limit == "" {
		return "1M"
	}
	return limit
}

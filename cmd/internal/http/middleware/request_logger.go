package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// NewRequestLogger logs one line per request through the gommon logger,
// at warn level for 4xx and error level for 5xx responses.
func NewRequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			latency := v.Latency.Round(time.Microsecond)

			switch {
			case v.Status >= 500:
				log.Errorf("%s %s -> %d (%s): %v", v.Method, v.URI, v.Status, latency, v.Error)
			case v.Status >= 400:
				log.Warnf("%s %s -> %d (%s)", v.Method, v.URI, v.Status, latency)
			default:
				log.Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, latency)
			}
			return nil
		},
	})
}

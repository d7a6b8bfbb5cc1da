package handler

import (
	"errors"
	"net/http"

	"devjournal/cmd/internal/contract"
	"devjournal/cmd/internal/utils/apierror"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// ErrorHandler renders errors escaping the routes (unknown path, wrong
// method, body limit, recovered panics) in the API error envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apierr apierror.ErrorResponse
	var he *echo.HTTPError
	if errors.As(err, &he) {
		apierr = apierror.FromStatus(he.Code)
	} else {
		log.Errorf("unhandled error on %s %s: %v", c.Request().Method, c.Path(), err)
		apierr = apierror.InternalServerError
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(apierr.Code())
	} else {
		err = apierror.Write(c, apierr)
	}

	if err != nil {
		log.Errorf("failed to write error response: %v", err)
	}
}

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, &contract.HealthResponse{Status: "ok"})
}

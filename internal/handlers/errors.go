package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/youdeservebetter/backend/internal/domain"
)

// HTTPErrorHandler renders errors as {"error": message}. Domain errors keep
// their status; anything unrecognised is a 500 and gets logged.
func HTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := "internal server error"

		var domainErr domain.HTTPError
		var echoErr *echo.HTTPError
		switch {
		case errors.As(err, &domainErr):
			status, msg = domainErr.StatusCode(), domainErr.Error()
		case errors.As(err, &echoErr):
			status = echoErr.Code
			if status < http.StatusInternalServerError {
				msg = fmt.Sprint(echoErr.Message)
			}
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", status,
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, map[string]string{"error": msg})
		}
		if err != nil {
			logger.Error("failed to write error response", "error", err)
		}
	}
}

// bindAndValidate binds the request body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

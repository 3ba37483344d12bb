package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/apperr"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

// ErrorHandler renders every error as {"error": ..., "fields": ...}. Internal causes are logged
// and never sent to the client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	l := logging.FromContext(c.Request().Context())

	status, body := render(err)
	if status >= http.StatusInternalServerError {
		l.Error("unhandled_error", "status", status, "error", err)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, body)
	}
	if werr != nil {
		l.Error("write_error_response", "error", werr)
	}
}

func render(err error) (int, transport.ErrorResponse) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae.Kind.Status(), transport.ErrorResponse{Error: ae.Message, Fields: ae.Fields}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, transport.ErrorResponse{Error: "internal server error"}
		}
		msg := http.StatusText(he.Code)
		switch m := he.Message.(type) {
		case string:
			msg = m
		case error:
			msg = m.Error()
		case nil:
		default:
			msg = fmt.Sprint(m)
		}
		return he.Code, transport.ErrorResponse{Error: msg}
	}

	return http.StatusInternalServerError, transport.ErrorResponse{Error: "internal server error"}
}

package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
)

// StatusClientClosedRequest is reported when the caller went away.
const StatusClientClosedRequest = 499

// ErrorHandler writes the failure envelope. Handler errors are always 500 and
// carry their stack. Echo's own route errors keep their status code.
func ErrorHandler(log Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		resp := models.NewErrorEnvelope(err)

		switch v := err.(type) {
		case *echo.HTTPError:
			status = v.Code
			resp.ErrorMsg = fmt.Sprint(v.Message)
			resp.ErrorStack = ""
		default:
			// detect canceled request error
			if errors.Is(err, context.Canceled) && c.Request().Context().Err() == context.Canceled {
				status = StatusClientClosedRequest
			}
		}

		if status == http.StatusNotFound && isNotFoundHandler(c.Handler()) {
			resp.ErrorMsg = "no route matched"
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, resp)
		}
		if err != nil {
			log.Errorw("could not response", "code", status, "response_body", resp)
		}
	}
}

package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Unprocessable is implemented by errors that mean the inputs were readable
// but gave nothing to evaluate.
type Unprocessable interface {
	Unprocessable() bool
}

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Error(), "title": "validation error"})
			return
		}

		var se *SchemaError
		if errors.As(err, &se) {
			_ = c.JSON(http.StatusBadRequest, map[string]string{"error": se.Error(), "title": "schema error"})
			return
		}

		var ue Unprocessable
		if errors.As(err, &ue) && ue.Unprocessable() {
			_ = c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error(), "title": "nothing to evaluate"})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ToHTTPError converts an error to an Echo HTTP error using its code.
func ToHTTPError(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return echo.NewHTTPError(ToHTTPStatus(appErr.Code()), appErr.Error())
	}

	if echoErr, ok := err.(*echo.HTTPError); ok {
		return echoErr
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

package blogcrm

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// statusFor maps an accessor error to an HTTP status.
func statusFor(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorFlash turns an accessor error into a notification. Store errors are
// shown with their original message.
func errorFlash(err error) Flash {
	return Flash{Kind: "error", Title: "Error", Message: err.Error()}
}

func successFlash(msg string) Flash {
	return Flash{Kind: "success", Title: "Success", Message: msg}
}

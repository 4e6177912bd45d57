package blogcrm

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// handleIndex renders the landing page with its entry link. Without an
// Index view it redirects straight to the admin panel or the login page.
func (a *App) handleIndex(c echo.Context) error {
	_, signedIn := a.currentSession(c)
	if a.Views.Index == nil {
		if signedIn {
			return c.Redirect(http.StatusSeeOther, "/admin/")
		}
		return c.Redirect(http.StatusSeeOther, "/auth/")
	}
	return Render(c, a.Views.Index(IndexPage{
		SiteName: a.Config.Name,
		SignedIn: signedIn,
		Flashes:  takeFlashes(c),
	}))
}

func (a *App) handleAuthPage(c echo.Context) error {
	if _, ok := a.currentSession(c); ok {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.Login(a.loginPage(c, "", "")))
}

func (a *App) handleLogin(c echo.Context) error {
	ip := c.RealIP()
	email := strings.TrimSpace(c.FormValue("email"))
	if !a.loginLimiter.Check(ip) {
		return RenderStatus(c, http.StatusTooManyRequests,
			a.Views.Login(a.loginPage(c, email, "Too many login attempts. Try again later.")))
	}

	p, err := a.auth.Authenticate(c.Request().Context(), email, c.FormValue("password"))
	if err != nil {
		a.loginLimiter.Record(ip)
		a.Log.Warn().Str("email", email).Str("ip", ip).Msg("failed login")
		return RenderStatus(c, http.StatusUnauthorized, a.Views.Login(a.loginPage(c, email, err.Error())))
	}

	a.loginLimiter.Reset(ip)
	if err := startSession(c, p); err != nil {
		return err
	}
	a.Log.Info().Str("email", p.Email).Msg("signed in")
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) loginPage(c echo.Context, email, errMsg string) LoginPage {
	return LoginPage{
		SiteName:  a.Config.Name,
		Email:     email,
		Error:     errMsg,
		Flashes:   takeFlashes(c),
		CSRFToken: csrfToken(c),
	}
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if isAPIRequest(c) {
		msg := http.StatusText(code)
		if ok {
			if m, isStr := he.Message.(string); isStr {
				msg = m
			}
		}
		_ = c.JSON(code, apiErrorBody{Error: msg})
		return
	}
	if code == http.StatusNotFound && a.Views.NotFound != nil {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	if code >= 500 {
		a.Log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		if a.Views.ServerError != nil {
			_ = RenderStatus(c, code, a.Views.ServerError())
			return
		}
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

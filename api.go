package blogcrm

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type apiErrorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type publishRequest struct {
	Published *bool `json:"published"`
}

// apiError writes err as JSON with a status derived from its kind.
func (a *App) apiError(c echo.Context, err error) error {
	code := statusFor(err)
	body := apiErrorBody{Error: err.Error()}
	var ve *ValidationError
	if errors.As(err, &ve) {
		body.Field = ve.Field
	}
	if code >= 500 {
		a.Log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("api store error")
	}
	return c.JSON(code, body)
}

func (a *App) handleAPIToken(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.JSON(http.StatusTooManyRequests, apiErrorBody{Error: "too many login attempts"})
	}
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiErrorBody{Error: "invalid request body"})
	}
	p, err := a.auth.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		a.loginLimiter.Record(ip)
		return c.JSON(http.StatusUnauthorized, apiErrorBody{Error: err.Error()})
	}
	a.loginLimiter.Reset(ip)
	token, exp, err := a.tokens.Issue(p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token, ExpiresAt: exp})
}

func (a *App) handleAPIListCategories(c echo.Context) error {
	cats, err := a.Categories.List(c.Request().Context())
	if err != nil {
		return a.apiError(c, err)
	}
	if cats == nil {
		cats = []Category{}
	}
	return c.JSON(http.StatusOK, cats)
}

func (a *App) handleAPIGetCategory(c echo.Context) error {
	cat, err := a.Categories.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return a.apiError(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (a *App) handleAPICreateCategory(c echo.Context) error {
	var in CategoryInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, apiErrorBody{Error: "invalid request body"})
	}
	cat, err := a.Categories.Create(c.Request().Context(), in)
	if err != nil {
		return a.apiError(c, err)
	}
	a.CategoryCache.Merge(cat)
	return c.JSON(http.StatusCreated, cat)
}

func (a *App) handleAPIUpdateCategory(c echo.Context) error {
	var in CategoryInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, apiErrorBody{Error: "invalid request body"})
	}
	cat, err := a.Categories.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return a.apiError(c, err)
	}
	a.CategoryCache.Merge(cat)
	return c.JSON(http.StatusOK, cat)
}

func (a *App) handleAPIDeleteCategory(c echo.Context) error {
	id := c.Param("id")
	if err := a.Categories.Delete(c.Request().Context(), id); err != nil {
		return a.apiError(c, err)
	}
	a.CategoryCache.Remove(id)
	return c.NoContent(http.StatusNoContent)
}

func (a *App) handleAPIListPosts(c echo.Context) error {
	posts, err := a.Posts.List(c.Request().Context())
	if err != nil {
		return a.apiError(c, err)
	}
	if posts == nil {
		posts = []BlogPost{}
	}
	return c.JSON(http.StatusOK, posts)
}

func (a *App) handleAPIGetPost(c echo.Context) error {
	post, err := a.Posts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return a.apiError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleAPICreatePost(c echo.Context) error {
	in := PostInput{Author: a.Config.DefaultAuthor}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, apiErrorBody{Error: "invalid request body"})
	}
	post, err := a.Posts.Create(c.Request().Context(), in)
	if err != nil {
		return a.apiError(c, err)
	}
	return c.JSON(http.StatusCreated, post)
}

func (a *App) handleAPIUpdatePost(c echo.Context) error {
	var in PostInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, apiErrorBody{Error: "invalid request body"})
	}
	post, err := a.Posts.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return a.apiError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleAPISetPublished(c echo.Context) error {
	var req publishRequest
	if err := c.Bind(&req); err != nil || req.Published == nil {
		return c.JSON(http.StatusBadRequest, apiErrorBody{Error: `body must be {"published": true|false}`})
	}
	post, err := a.Posts.SetPublished(c.Request().Context(), c.Param("id"), *req.Published)
	if err != nil {
		return a.apiError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleAPIDeletePost(c echo.Context) error {
	if err := a.Posts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return a.apiError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

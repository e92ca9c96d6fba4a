package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/gif-feed/backend/internal/auth"
	"github.com/anonto42/gif-feed/backend/internal/middleware"
	"github.com/anonto42/gif-feed/backend/internal/providers"
	"github.com/anonto42/gif-feed/backend/internal/repositories"
	"github.com/anonto42/gif-feed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps domain errors onto status codes. Unknown errors become a
// 500 that keeps the cause as the internal error for the request log.
func toHTTPError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	var upstream *providers.UpstreamError
	switch {
	case errors.Is(err, services.ErrInvalidQuery),
		errors.Is(err, services.ErrInvalidURL),
		errors.Is(err, services.ErrInvalidPagination),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrSelfFollow):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTargetNotFound),
		errors.Is(err, services.ErrGifNotFound),
		errors.Is(err, services.ErrPromptNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, repositories.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, providers.ErrProviderUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "GIF provider unavailable").SetInternal(err)
	case errors.As(err, &upstream):
		return echo.NewHTTPError(http.StatusBadGateway, "GIF provider error").SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
	}
}

func currentPrincipal(c echo.Context) (*auth.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return p, nil
}

// bindAndValidate binds the request body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return c.Validate(req)
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/anonto42/gif-feed/backend/internal/auth"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// Authenticate verifies the bearer token on every request and stores the
// resulting principal in the echo context.
func Authenticate(verifier auth.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" || tokenParts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			principal, err := verifier.Verify(c.Request().Context(), tokenParts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// EnsureSelfParam only lets the request through when the path parameter names
// the caller. Admins may act on anyone.
func EnsureSelfParam(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			if principal.IsAdmin || principal.UserID == c.Param(param) {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
		}
	}
}

// PrincipalFrom returns the principal stored by Authenticate.
func PrincipalFrom(c echo.Context) (*auth.Principal, bool) {
	p, ok := c.Get(principalKey).(*auth.Principal)
	return p, ok && p != nil
}

// SetPrincipal stores p as the authenticated caller.
func SetPrincipal(c echo.Context, p *auth.Principal) {
	c.Set(principalKey, p)
}

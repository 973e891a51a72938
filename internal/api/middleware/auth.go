package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/postable/content-api/internal/core/domain"
	"github.com/postable/content-api/internal/core/ports"
	"github.com/postable/content-api/internal/core/token"
)

// Cookie names shared between the identity resolver and the session issuer.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// UserContextKey is where Auth stores the resolved *domain.User.
const UserContextKey = "user"

// Auth resolves the request identity: it reads a token from the access_token
// cookie, falling back to the Authorization bearer header when the cookie is
// absent (cookie wins when both are present, so a browser session and a
// programmatic bearer credential can coexist). The token is decoded and its
// subject loaded from the user store; every failure mode (missing token,
// bad signature, expiry, deleted account) collapses into a 401 before any
// handler logic runs.
//
// Either token class authenticates here; only the refresh endpoint checks
// the class tag, so refresh tokens double as long-lived session credentials.
func Auth(codec *token.Codec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := tokenFromRequest(c)
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}

			claims, err := codec.Decode(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
				}
				return err
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

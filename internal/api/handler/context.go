package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/postable/content-api/internal/api/middleware"
	"github.com/postable/content-api/internal/core/domain"
)

// currentUser extracts the identity resolved by the Auth middleware and
// fast-fails before any service call when it is missing; presence proves
// the middleware ran on this route.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserContextKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quickservice/marketplace-api/internal/api/middleware"
	"github.com/quickservice/marketplace-api/internal/core/domain"
)

// currentUser extracts the user the Auth middleware fetched from the store.
// Its presence proves the middleware ran; a protected route reached without
// it is a wiring bug, answered with 401 rather than a panic.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.CurrentUserKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

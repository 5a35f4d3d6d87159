package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/quickservice/marketplace-api/internal/api/metrics"
	"github.com/quickservice/marketplace-api/internal/core/domain"
	"github.com/quickservice/marketplace-api/internal/core/ports"
	"github.com/quickservice/marketplace-api/pkg/token"
)

// CurrentUserKey is the echo context key holding the authenticated user.
const CurrentUserKey = "current_user"

// Auth validates the bearer token and re-fetches the user row so deleted or
// mutated accounts are caught immediately; the token is only a snapshot.
// Expired tokens get 401, tampered or malformed ones 403.
func Auth(verifier *token.Signer, users ports.UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.TokenChecksTotal.WithLabelValues("expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				metrics.TokenChecksTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.TokenChecksTotal.WithLabelValues("user_gone").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
				}
				return err
			}

			metrics.TokenChecksTotal.WithLabelValues("ok").Inc()
			c.Set(CurrentUserKey, user)
			return next(c)
		}
	}
}

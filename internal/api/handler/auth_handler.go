package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quickservice/marketplace-api/internal/core/domain"
	"github.com/quickservice/marketplace-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account and returns a token with the user view.
// POST /auth/register → 201 | 400 | 409
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		Role:       domain.Role(req.Role),
		Phone:      req.Phone,
		Profession: req.Profession,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{
		Token: result.Token,
		User:  toProfileResponse(result.Profile),
	})
}

// Login authenticates a user and returns a token with the merged user view.
// POST /auth/login → 200 | 400 | 401
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Token: result.Token,
		User:  toProfileResponse(result.Profile),
	})
}

// Verify confirms the caller's token is valid and the account still exists.
// The Auth middleware has already done both checks; this just echoes the
// fresh user back.
// GET /auth/verify → 200 | 401 | 403
func (h *AuthHandler) Verify(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, verifyResponse{Valid: true, User: toUserResponse(user)})
}

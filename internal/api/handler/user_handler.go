package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quickservice/marketplace-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile returns the caller's merged profile view.
// GET /users/profile → 200 | 404
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileEnvelope{User: toProfileResponse(profile)})
}

// UpdateProfile updates the caller's core fields and, for workers, upserts
// the extension row; the updated merged view comes back.
// PUT /users/profile → 200 | 400
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.userService.UpdateProfile(c.Request().Context(), user.ID, user.Role, ports.UpdateProfileInput{
		Name:            req.Name,
		Phone:           req.Phone,
		AvatarURL:       req.AvatarURL,
		Profession:      req.Profession,
		Description:     req.Description,
		ExperienceYears: req.ExperienceYears,
		HourlyRate:      req.HourlyRate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileEnvelope{User: toProfileResponse(profile)})
}

// ChangePassword replaces the caller's password after re-verifying the
// current one.
// PUT /users/password → 200 | 400
func (h *UserHandler) ChangePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.ChangePassword(c.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}

// UpdateAvatar sets the caller's avatar URL.
// PUT /users/avatar → 200 | 400
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateAvatarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.UpdateAvatar(c.Request().Context(), user.ID, req.AvatarURL); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "avatar updated"})
}

// DeleteAccount removes the caller's account after re-verifying the
// password. Related worker rows cascade away with it.
// DELETE /users/profile → 200 | 400
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req deleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.DeleteAccount(c.Request().Context(), user.ID, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "account deleted"})
}

// Stats returns the caller's per-role aggregates.
// GET /users/stats → 200
func (h *UserHandler) Stats(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	stats, err := h.userService.Stats(c.Request().Context(), user.ID, user.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"stats": stats})
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/quickservice/marketplace-api/internal/api/metrics"
	"github.com/quickservice/marketplace-api/internal/core/domain"
	"github.com/quickservice/marketplace-api/internal/core/ports"
)

// WorkerHandler serves the public worker directory and the worker-only
// availability toggle.
type WorkerHandler struct {
	userService ports.UserService
}

func NewWorkerHandler(userService ports.UserService) *WorkerHandler {
	return &WorkerHandler{userService: userService}
}

// List returns verified workers filtered by profession, minimum rating, and
// availability, ordered by rating then completed services.
// GET /users/workers → 200 | 400
func (h *WorkerHandler) List(c echo.Context) error {
	filter := ports.WorkerFilter{
		Profession:    c.QueryParam("profession"),
		OnlyAvailable: c.QueryParam("available") == "true",
	}
	if raw := c.QueryParam("min_rating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "min_rating must be a number")
		}
		filter.MinRating = &minRating
	}

	listings, err := h.userService.ListWorkers(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	metrics.WorkerSearchesTotal.Inc()

	workers := make([]workerResponse, 0, len(listings))
	for i := range listings {
		workers = append(workers, toWorkerResponse(&listings[i]))
	}
	return c.JSON(http.StatusOK, workersEnvelope{Workers: workers})
}

// Get returns one worker's public profile.
// GET /users/workers/:id → 200 | 404
func (h *WorkerHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid worker id")
	}

	listing, err := h.userService.GetWorker(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]workerResponse{"worker": toWorkerResponse(listing)})
}

// SetAvailability updates the caller's availability state. Routed behind
// Auth + RBAC(worker).
// PUT /users/workers/availability → 200 | 400
func (h *WorkerHandler) SetAvailability(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.SetAvailability(c.Request().Context(), user.ID, domain.Availability(req.Availability)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message":      "availability updated",
		"availability": req.Availability,
	})
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"counsellor/internal/repository"
	"counsellor/internal/service"
)

// UniversityHandler handles catalog and shortlist endpoints.
type UniversityHandler struct {
	universityService service.UniversityService
}

// NewUniversityHandler creates a new university handler.
func NewUniversityHandler(universityService service.UniversityService) *UniversityHandler {
	return &UniversityHandler{universityService: universityService}
}

// ShortlistRequest adds a university to the caller's shortlist.
type ShortlistRequest struct {
	UniversityID uint   `json:"university_id" validate:"required"`
	Category     string `json:"category,omitempty" validate:"omitempty,oneof=dream target safe"`
	Notes        string `json:"notes,omitempty"`
}

// LockRequest identifies the shortlist entry to lock or unlock.
type LockRequest struct {
	UniversityID uint `json:"university_id" validate:"required"`
}

// ApplicationStatusRequest moves a shortlist entry through the pipeline.
type ApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=shortlisted preparing submitted interview offer rejected"`
}

// List godoc
// @Summary List or filter the university catalog
// @Tags universities
// @Produce json
// @Security BearerAuth
// @Param country query string false "Country substring"
// @Param budget_max query number false "Maximum annual tuition"
// @Param program query string false "Program substring"
// @Success 200 {array} model.RankedUniversity
// @Failure 400 {object} errors.ErrorResponse
// @Router /universities/ [get]
func (h *UniversityHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	// Unknown query parameters are ignored.
	filter := repository.UniversityFilter{
		Country: c.QueryParam("country"),
		Program: c.QueryParam("program"),
	}
	if raw := c.QueryParam("budget_max"); raw != "" {
		budget, err := decimal.NewFromString(raw)
		if err != nil || budget.IsNegative() {
			return badRequest(c, "budget_max must be a non-negative number")
		}
		filter.BudgetMax = budget
	}

	universities, err := h.universityService.List(c.Request().Context(), userID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, universities)
}

// Recommendations godoc
// @Summary Ranked suggestions for the caller's profile
// @Tags universities
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.RankedUniversity
// @Failure 409 {object} errors.ErrorResponse
// @Router /universities/recommendations [get]
func (h *UniversityHandler) Recommendations(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	universities, err := h.universityService.Recommendations(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, universities)
}

// Shortlist godoc
// @Summary List the caller's shortlist
// @Tags universities
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ShortlistEntry
// @Router /universities/shortlist [get]
func (h *UniversityHandler) Shortlist(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	entries, err := h.universityService.Shortlist(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// AddToShortlist godoc
// @Summary Add a university to the shortlist
// @Description Idempotent: re-adding an already shortlisted university returns the existing entry.
// @Tags universities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ShortlistRequest true "University to shortlist"
// @Success 201 {object} model.ShortlistEntry
// @Failure 404 {object} errors.ErrorResponse
// @Router /universities/shortlist [post]
func (h *UniversityHandler) AddToShortlist(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req ShortlistRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	entry, err := h.universityService.AddToShortlist(c.Request().Context(), userID, req.UniversityID, req.Category, req.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// RemoveFromShortlist godoc
// @Summary Remove a university from the shortlist
// @Tags universities
// @Produce json
// @Security BearerAuth
// @Param university_id path int true "University ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /universities/shortlist/{university_id} [delete]
func (h *UniversityHandler) RemoveFromShortlist(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	universityID, err := parseIDParam(c, "university_id")
	if err != nil {
		return badRequest(c, "invalid university id")
	}

	if err := h.universityService.RemoveFromShortlist(c.Request().Context(), userID, universityID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "university removed from shortlist"})
}

// UpdateApplicationStatus godoc
// @Summary Update the application status of a shortlist entry
// @Tags universities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param university_id path int true "University ID"
// @Param request body ApplicationStatusRequest true "New status"
// @Success 200 {object} model.ShortlistEntry
// @Failure 404 {object} errors.ErrorResponse
// @Router /universities/shortlist/{university_id}/status [put]
func (h *UniversityHandler) UpdateApplicationStatus(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	universityID, err := parseIDParam(c, "university_id")
	if err != nil {
		return badRequest(c, "invalid university id")
	}

	var req ApplicationStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	entry, err := h.universityService.UpdateApplicationStatus(c.Request().Context(), userID, universityID, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

// Lock godoc
// @Summary Lock a shortlisted university
// @Tags universities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LockRequest true "University to lock"
// @Success 200 {object} model.ShortlistEntry
// @Failure 404 {object} errors.ErrorResponse
// @Router /universities/lock [post]
func (h *UniversityHandler) Lock(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req LockRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	entry, err := h.universityService.Lock(c.Request().Context(), userID, req.UniversityID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

// Unlock godoc
// @Summary Unlock a shortlisted university
// @Tags universities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LockRequest true "University to unlock"
// @Success 200 {object} model.ShortlistEntry
// @Failure 404 {object} errors.ErrorResponse
// @Router /universities/unlock [post]
func (h *UniversityHandler) Unlock(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req LockRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	entry, err := h.universityService.Unlock(c.Request().Context(), userID, req.UniversityID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

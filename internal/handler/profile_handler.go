package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"counsellor/internal/service"
)

// ProfileHandler handles profile and onboarding endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileRequest carries partial profile fields; absent fields are left
// unchanged.
type ProfileRequest struct {
	EducationLevel     *string  `json:"education_level,omitempty"`
	Degree             *string  `json:"degree,omitempty"`
	Major              *string  `json:"major,omitempty"`
	GraduationYear     *int     `json:"graduation_year,omitempty" validate:"omitempty,gte=1950,lte=2100"`
	GPA                *float64 `json:"gpa,omitempty" validate:"omitempty,gte=0,lte=4"`
	IntendedDegree     *string  `json:"intended_degree,omitempty"`
	FieldOfStudy       *string  `json:"field_of_study,omitempty"`
	TargetIntake       *string  `json:"target_intake,omitempty"`
	PreferredCountries *string  `json:"preferred_countries,omitempty"`
	BudgetMin          *float64 `json:"budget_min,omitempty" validate:"omitempty,gte=0"`
	BudgetMax          *float64 `json:"budget_max,omitempty" validate:"omitempty,gte=0"`
	FundingType        *string  `json:"funding_type,omitempty" validate:"omitempty,oneof=self_funded scholarship loan"`
	IELTSStatus        *string  `json:"ielts_status,omitempty" validate:"omitempty,oneof=not_started preparing completed"`
	IELTSScore         *float64 `json:"ielts_score,omitempty" validate:"omitempty,gte=0,lte=9"`
	TOEFLStatus        *string  `json:"toefl_status,omitempty" validate:"omitempty,oneof=not_started preparing completed"`
	TOEFLScore         *int     `json:"toefl_score,omitempty" validate:"omitempty,gte=0,lte=120"`
	GREStatus          *string  `json:"gre_status,omitempty" validate:"omitempty,oneof=not_started preparing completed"`
	GREScore           *int     `json:"gre_score,omitempty" validate:"omitempty,gte=260,lte=340"`
	GMATStatus         *string  `json:"gmat_status,omitempty" validate:"omitempty,oneof=not_started preparing completed"`
	GMATScore          *int     `json:"gmat_score,omitempty" validate:"omitempty,gte=200,lte=805"`
	SOPStatus          *string  `json:"sop_status,omitempty" validate:"omitempty,oneof=not_started draft ready"`
}

// CompleteOnboardingRequest wraps the final onboarding answers.
type CompleteOnboardingRequest struct {
	Profile ProfileRequest `json:"profile"`
}

func (r ProfileRequest) toUpdate() service.ProfileUpdate {
	update := service.ProfileUpdate{
		EducationLevel:     r.EducationLevel,
		Degree:             r.Degree,
		Major:              r.Major,
		GraduationYear:     r.GraduationYear,
		GPA:                r.GPA,
		IntendedDegree:     r.IntendedDegree,
		FieldOfStudy:       r.FieldOfStudy,
		TargetIntake:       r.TargetIntake,
		PreferredCountries: r.PreferredCountries,
		FundingType:        r.FundingType,
		IELTSStatus:        r.IELTSStatus,
		IELTSScore:         r.IELTSScore,
		TOEFLStatus:        r.TOEFLStatus,
		TOEFLScore:         r.TOEFLScore,
		GREStatus:          r.GREStatus,
		GREScore:           r.GREScore,
		GMATStatus:         r.GMATStatus,
		GMATScore:          r.GMATScore,
		SOPStatus:          r.SOPStatus,
	}
	if r.BudgetMin != nil {
		d := decimal.NewFromFloat(*r.BudgetMin)
		update.BudgetMin = &d
	}
	if r.BudgetMax != nil {
		d := decimal.NewFromFloat(*r.BudgetMax)
		update.BudgetMax = &d
	}
	return update
}

// Get godoc
// @Summary Fetch the caller's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Profile
// @Failure 404 {object} errors.ErrorResponse
// @Router /profile/ [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.Get(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// Update godoc
// @Summary Update the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileRequest true "Fields to update"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Router /profile/ [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	profile, err := h.profileService.Update(c.Request().Context(), userID, req.toUpdate())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// CompleteOnboarding godoc
// @Summary Finalize onboarding
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CompleteOnboardingRequest true "Onboarding answers"
// @Success 200 {object} model.Profile
// @Failure 409 {object} errors.ErrorResponse
// @Router /profile/onboarding/complete [post]
func (h *ProfileHandler) CompleteOnboarding(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CompleteOnboardingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req.Profile); err != nil {
		return badRequest(c, err.Error())
	}

	profile, err := h.profileService.CompleteOnboarding(c.Request().Context(), userID, req.Profile.toUpdate())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// Dashboard godoc
// @Summary Aggregated journey view
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Dashboard
// @Router /profile/dashboard [get]
func (h *ProfileHandler) Dashboard(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	dashboard, err := h.profileService.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dashboard)
}

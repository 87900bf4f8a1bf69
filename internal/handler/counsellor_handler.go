package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"counsellor/internal/service"
)

// defaultHistoryLimit is how many messages History returns when the caller
// does not specify a limit.
const defaultHistoryLimit = 50

// CounsellorHandler handles AI counsellor endpoints.
type CounsellorHandler struct {
	counsellorService service.CounsellorService
}

// NewCounsellorHandler creates a new counsellor handler.
func NewCounsellorHandler(counsellorService service.CounsellorService) *CounsellorHandler {
	return &CounsellorHandler{counsellorService: counsellorService}
}

// ChatRequest is one user message to the counsellor.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// VoiceOnboardingRequest carries a spoken answer transcribed client-side.
type VoiceOnboardingRequest struct {
	Transcript  string `json:"transcript" validate:"required"`
	CurrentStep string `json:"current_step,omitempty"`
}

// Chat godoc
// @Summary Send a message to the AI counsellor
// @Tags counsellor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChatRequest true "User message"
// @Success 200 {object} service.ChatResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 504 {object} errors.ErrorResponse
// @Router /counsellor/chat [post]
func (h *CounsellorHandler) Chat(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.counsellorService.Chat(c.Request().Context(), userID, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// VoiceOnboarding godoc
// @Summary Process one voice onboarding turn
// @Tags counsellor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body VoiceOnboardingRequest true "Spoken answer transcript"
// @Success 200 {object} service.VoiceOnboardingResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /counsellor/voice-onboarding [post]
func (h *CounsellorHandler) VoiceOnboarding(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req VoiceOnboardingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.counsellorService.VoiceOnboarding(c.Request().Context(), userID, req.Transcript, req.CurrentStep)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// History godoc
// @Summary Conversation history, oldest first
// @Tags counsellor
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max messages (default 50)"
// @Success 200 {array} model.Conversation
// @Router /counsellor/history [get]
func (h *CounsellorHandler) History(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	limit := defaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return badRequest(c, "limit must be a non-negative integer")
		}
		limit = parsed
	}

	messages, err := h.counsellorService.History(c.Request().Context(), userID, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, messages)
}

// ClearHistory godoc
// @Summary Delete all conversation history
// @Tags counsellor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /counsellor/history [delete]
func (h *CounsellorHandler) ClearHistory(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.counsellorService.ClearHistory(c.Request().Context(), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "conversation history cleared"})
}

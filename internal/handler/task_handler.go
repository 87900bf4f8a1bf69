package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"counsellor/internal/model"
	"counsellor/internal/repository"
	"counsellor/internal/service"
)

const dueDateLayout = "2006-01-02"

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest creates a task for the caller.
type CreateTaskRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description,omitempty"`
	Category     string `json:"category,omitempty"`
	Priority     string `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	DueDate      string `json:"due_date,omitempty"`
	UniversityID *uint  `json:"university_id,omitempty"`
}

// UpdateTaskRequest applies a partial update; absent fields are unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	DueDate     *string `json:"due_date,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

// List godoc
// @Summary List the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Param is_completed query bool false "Filter by completion"
// @Param university_id query int false "Filter by university"
// @Success 200 {array} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Router /tasks/ [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	filter := repository.TaskFilter{Category: c.QueryParam("category")}
	if raw := c.QueryParam("is_completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "is_completed must be a boolean")
		}
		filter.IsCompleted = &completed
	}
	if raw := c.QueryParam("university_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return badRequest(c, "university_id must be an integer")
		}
		universityID := uint(id)
		filter.UniversityID = &universityID
	}

	tasks, err := h.taskService.List(c.Request().Context(), userID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task to create"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Router /tasks/ [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	task := &model.Task{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Priority:     req.Priority,
		UniversityID: req.UniversityID,
	}
	if req.DueDate != "" {
		due, err := time.Parse(dueDateLayout, req.DueDate)
		if err != nil {
			return badRequest(c, "due_date must be in YYYY-MM-DD format")
		}
		task.DueDate = &due
	}

	created, err := h.taskService.Create(c.Request().Context(), userID, task)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param task_id path int true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to update"
// @Success 200 {object} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{task_id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	taskID, err := parseIDParam(c, "task_id")
	if err != nil {
		return badRequest(c, "invalid task id")
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	update := service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		IsCompleted: req.IsCompleted,
	}
	if req.DueDate != nil {
		due, err := time.Parse(dueDateLayout, *req.DueDate)
		if err != nil {
			return badRequest(c, "due_date must be in YYYY-MM-DD format")
		}
		update.DueDate = &due
	}

	task, err := h.taskService.Update(c.Request().Context(), userID, taskID, update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// Complete godoc
// @Summary Mark a task completed
// @Description Idempotent: completing an already completed task keeps the original completion time.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param task_id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{task_id}/complete [post]
func (h *TaskHandler) Complete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	taskID, err := parseIDParam(c, "task_id")
	if err != nil {
		return badRequest(c, "invalid task id")
	}

	task, err := h.taskService.Complete(c.Request().Context(), userID, taskID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "counsellor/internal/errors"
	"counsellor/internal/model"
	"counsellor/internal/repository"
)

// TaskUpdate carries partial-update fields; nil means "leave unchanged".
type TaskUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *string
	DueDate     *time.Time
	IsCompleted *bool
}

// TaskService handles per-user task management.
type TaskService interface {
	List(ctx context.Context, userID uint, filter repository.TaskFilter) ([]model.Task, error)
	Create(ctx context.Context, userID uint, task *model.Task) (*model.Task, error)
	Update(ctx context.Context, userID, taskID uint, update TaskUpdate) (*model.Task, error)
	Complete(ctx context.Context, userID, taskID uint) (*model.Task, error)
}

type taskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new task service.
func NewTaskService(taskRepo repository.TaskRepository) TaskService {
	return &taskService{taskRepo: taskRepo}
}

// List lists the caller's tasks.
func (s *taskService) List(ctx context.Context, userID uint, filter repository.TaskFilter) ([]model.Task, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Create creates a task owned by the caller.
func (s *taskService) Create(ctx context.Context, userID uint, task *model.Task) (*model.Task, error) {
	task.UserID = userID
	if task.Priority == "" {
		task.Priority = "medium"
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Update applies a partial update to a task the caller owns. Completion
// timestamps track the is_completed transitions.
func (s *taskService) Update(ctx context.Context, userID, taskID uint, update TaskUpdate) (*model.Task, error) {
	task, err := s.find(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Category != nil {
		task.Category = *update.Category
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	if update.IsCompleted != nil {
		switch {
		case *update.IsCompleted && !task.IsCompleted:
			now := time.Now()
			task.CompletedAt = &now
		case !*update.IsCompleted:
			task.CompletedAt = nil
		}
		task.IsCompleted = *update.IsCompleted
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Complete transitions a task from open to completed. Completing an already
// completed task is a no-op that keeps the original completion time.
func (s *taskService) Complete(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.find(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.IsCompleted {
		return task, nil
	}

	now := time.Now()
	task.IsCompleted = true
	task.CompletedAt = &now
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (s *taskService) find(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByIDAndUser(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

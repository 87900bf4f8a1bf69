package repository

import (
	"context"

	"gorm.io/gorm"

	"counsellor/internal/model"
)

// TaskFilter narrows a task listing. Nil values mean "no filter".
type TaskFilter struct {
	Category     string
	IsCompleted  *bool
	UniversityID *uint
}

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	CreateBatch(ctx context.Context, tasks []model.Task) error
	Update(ctx context.Context, task *model.Task) error
	FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Task, error)
	ListByUser(ctx context.Context, userID uint, filter TaskFilter) ([]model.Task, error)
	CountByUser(ctx context.Context, userID uint, completed bool) (int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create creates a new task.
func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// CreateBatch inserts tasks in a single statement.
func (r *taskRepository) CreateBatch(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&tasks).Error
}

// Update updates an existing task.
func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// FindByIDAndUser finds a task owned by the given user.
func (r *taskRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByUser lists a user's tasks, highest priority and newest first.
func (r *taskRepository) ListByUser(ctx context.Context, userID uint, filter TaskFilter) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.IsCompleted != nil {
		query = query.Where("is_completed = ?", *filter.IsCompleted)
	}
	if filter.UniversityID != nil {
		query = query.Where("university_id = ?", *filter.UniversityID)
	}

	var tasks []model.Task
	err := query.
		Order("FIELD(priority, 'high', 'medium', 'low')").
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByUser counts the user's tasks in the given completion state.
func (r *taskRepository) CountByUser(ctx context.Context, userID uint, completed bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND is_completed = ?", userID, completed).
		Count(&count).Error
	return count, err
}

package model

import "time"

// Task is a per-user to-do item, optionally tied to a university
// application. States: open, completed.
type Task struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UserID       uint       `json:"user_id" gorm:"not null;index"`
	UniversityID *uint      `json:"university_id,omitempty"`
	Title        string     `json:"title" gorm:"size:255;not null"`
	Description  string     `json:"description,omitempty" gorm:"type:text"`
	Category     string     `json:"category,omitempty" gorm:"size:50"` // document, exam, application, general
	Priority     string     `json:"priority" gorm:"size:20;default:'medium'"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	IsCompleted  bool       `json:"is_completed" gorm:"default:false;index"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

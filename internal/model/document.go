package model

import "time"

// Document verification statuses.
const (
	DocumentPending  = "pending"
	DocumentVerified = "verified"
	DocumentRejected = "rejected"
)

// Document is an uploaded application document owned by a user.
type Document struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Type      string    `json:"type,omitempty" gorm:"size:50"`
	Size      string    `json:"size,omitempty" gorm:"size:50"`     // human readable, e.g. "2.4 MB"
	Category  string    `json:"category,omitempty" gorm:"size:50"` // academic, application, financial, identity
	Status    string    `json:"status" gorm:"size:50;default:'pending'"`
	FilePath  string    `json:"-" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

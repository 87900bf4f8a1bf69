package model

import "time"

// Application statuses a shortlist entry moves through.
const (
	ApplicationShortlisted = "shortlisted"
	ApplicationPreparing   = "preparing"
	ApplicationSubmitted   = "submitted"
	ApplicationInterview   = "interview"
	ApplicationOffer       = "offer"
	ApplicationRejected    = "rejected"
)

// ShortlistEntry relates a user to a shortlisted university. The (user,
// university) pair is unique; locking marks the entry as committed.
type ShortlistEntry struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	UserID            uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_university"`
	UniversityID      uint       `json:"university_id" gorm:"not null;uniqueIndex:idx_user_university"`
	Category          string     `json:"category,omitempty" gorm:"size:20"` // dream, target, safe
	ApplicationStatus string     `json:"application_status" gorm:"size:20;default:'shortlisted'"`
	IsLocked          bool       `json:"is_locked" gorm:"default:false"`
	LockedAt          *time.Time `json:"locked_at,omitempty"`
	Notes             string     `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt         time.Time  `json:"created_at"`

	University University `json:"university" gorm:"foreignKey:UniversityID"`
}

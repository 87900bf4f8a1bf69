package model

import "time"

// Journey stages a user moves through, in order.
const (
	StageBuildingProfile         = 1
	StageDiscoveringUniversities = 2
	StageFinalizingUniversities  = 3
	StagePreparingApplications   = 4
)

// User represents an authenticated user in the system.
type User struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	Email               string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash        string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FullName            string    `json:"full_name" gorm:"size:255;not null"`
	OnboardingCompleted bool      `json:"onboarding_completed" gorm:"default:false"`
	CurrentStage        int       `json:"current_stage" gorm:"default:1"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

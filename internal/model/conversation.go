package model

import "time"

// Conversation message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation is a single chat message between a user and the AI
// counsellor. Append order equals display order per user.
type Conversation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Role      string    `json:"role" gorm:"size:20;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

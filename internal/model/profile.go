package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Profile holds a user's onboarding data: academic background, study goals,
// budget, and exam readiness. One profile per user.
type Profile struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"uniqueIndex;not null"`

	// Academic background
	EducationLevel string  `json:"education_level,omitempty" gorm:"size:100"`
	Degree         string  `json:"degree,omitempty" gorm:"size:255"`
	Major          string  `json:"major,omitempty" gorm:"size:255"`
	GraduationYear int     `json:"graduation_year,omitempty"`
	GPA            float64 `json:"gpa,omitempty"`

	// Study goals
	IntendedDegree     string `json:"intended_degree,omitempty" gorm:"size:100"`
	FieldOfStudy       string `json:"field_of_study,omitempty" gorm:"size:255"`
	TargetIntake       string `json:"target_intake,omitempty" gorm:"size:50"`
	PreferredCountries string `json:"preferred_countries,omitempty" gorm:"type:text"` // JSON string array

	// Budget
	BudgetMin   decimal.Decimal `json:"budget_min" gorm:"type:decimal(12,2);default:0"`
	BudgetMax   decimal.Decimal `json:"budget_max" gorm:"type:decimal(12,2);default:0"`
	FundingType string          `json:"funding_type,omitempty" gorm:"size:50"` // self_funded, scholarship, loan

	// Exam readiness
	IELTSStatus string  `json:"ielts_status,omitempty" gorm:"size:50"` // not_started, preparing, completed
	IELTSScore  float64 `json:"ielts_score,omitempty"`
	TOEFLStatus string  `json:"toefl_status,omitempty" gorm:"size:50"`
	TOEFLScore  int     `json:"toefl_score,omitempty"`
	GREStatus   string  `json:"gre_status,omitempty" gorm:"size:50"`
	GREScore    int     `json:"gre_score,omitempty"`
	GMATStatus  string  `json:"gmat_status,omitempty" gorm:"size:50"`
	GMATScore   int     `json:"gmat_score,omitempty"`
	SOPStatus   string  `json:"sop_status,omitempty" gorm:"size:50"` // not_started, draft, ready

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PreferredCountryList decodes the JSON-encoded preferred countries column.
// Malformed or empty values decode to nil.
func (p *Profile) PreferredCountryList() []string {
	if p.PreferredCountries == "" {
		return nil
	}
	var countries []string
	if err := json.Unmarshal([]byte(p.PreferredCountries), &countries); err != nil {
		return nil
	}
	return countries
}

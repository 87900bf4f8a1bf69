package model

import "github.com/shopspring/decimal"

// University is a read-only catalog record. Not owned by any user.
type University struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	Name                string          `json:"name" gorm:"size:255;not null;index"`
	Country             string          `json:"country,omitempty" gorm:"size:100;index"`
	City                string          `json:"city,omitempty" gorm:"size:100"`
	Ranking             int             `json:"ranking,omitempty"`
	TuitionMin          decimal.Decimal `json:"tuition_min" gorm:"type:decimal(12,2);default:0"`
	TuitionMax          decimal.Decimal `json:"tuition_max" gorm:"type:decimal(12,2);default:0"`
	Programs            string          `json:"programs,omitempty" gorm:"type:text"` // JSON string array
	AcceptanceRate      float64         `json:"acceptance_rate,omitempty"`
	IELTSRequirement    float64         `json:"ielts_requirement,omitempty"`
	GRERequirement      int             `json:"gre_requirement,omitempty"`
	TOEFLRequirement    int             `json:"toefl_requirement,omitempty"`
	ApplicationDeadline string          `json:"application_deadline,omitempty" gorm:"size:100"`
	ImageURL            string          `json:"image_url,omitempty" gorm:"size:500"`
	Description         string          `json:"description,omitempty" gorm:"type:text"`
}

// RankedUniversity is a catalog record annotated with profile-derived fit
// data for listing and recommendations.
type RankedUniversity struct {
	University
	FitScore  int    `json:"fit_score"`
	Category  string `json:"category"`   // dream, target, safe
	RiskLevel string `json:"risk_level"` // high, medium, low
}

package models

import "time"

// Objective is a goal attached to a node directly or through a period.
type Objective struct {
	ID           string    `gorm:"primaryKey;size:32" json:"id"`
	NodeID       *string   `gorm:"size:32;index" json:"node_id"`
	PeriodID     *string   `gorm:"size:32;index" json:"period_id"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	TargetValue  float64   `gorm:"default:100" json:"target_value"`
	CurrentValue float64   `gorm:"default:0" json:"current_value"`
	Quarter      *int      `json:"quarter"`
	Year         *int      `json:"year"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	KeyResults []KeyResult `gorm:"foreignKey:ObjectiveID" json:"key_results,omitempty"`
	Tasks      []Task      `gorm:"foreignKey:ObjectiveID" json:"tasks,omitempty"`
}

// KeyResult is a measurable sub-target of an objective. Its description is
// unique within the objective under case-insensitive trimmed comparison,
// checked at creation time only.
type KeyResult struct {
	ID           string    `gorm:"primaryKey;size:32" json:"id"`
	ObjectiveID  string    `gorm:"size:32;not null;index" json:"objective_id"`
	Description  string    `gorm:"not null" json:"description"`
	TargetValue  float64   `gorm:"default:100" json:"target_value"`
	CurrentValue float64   `gorm:"default:0" json:"current_value"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

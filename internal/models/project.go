package models

import "time"

// Project is an independent entity linked to objectives through an
// associative table. Link changes are transactional: either all links
// commit with the project write or none do.
type Project struct {
	ID          string    `gorm:"primaryKey;size:32" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"size:32;default:active" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Objectives []Objective `gorm:"many2many:project_objectives" json:"objectives,omitempty"`
}

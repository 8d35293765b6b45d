package models

import "time"

// Node is an organizational unit owning periods and objectives.
type Node struct {
	ID                string    `gorm:"primaryKey;size:32" json:"id"`
	Name              string    `gorm:"not null" json:"name"`
	Description       string    `gorm:"type:text" json:"description"`
	Color             string    `gorm:"size:16" json:"color"`
	OwnerID           string    `gorm:"size:64" json:"owner_id"`
	Active            bool      `gorm:"default:true" json:"active"`
	Central           bool      `gorm:"default:false" json:"central"`
	RevenueGenerating bool      `gorm:"default:false" json:"revenue_generating"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Periods    []Period    `gorm:"foreignKey:NodeID" json:"periods,omitempty"`
	Objectives []Objective `gorm:"foreignKey:NodeID" json:"objectives,omitempty"`
}

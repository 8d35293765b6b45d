package models

import "time"

// Period is a named time window ("objective group") scoped to one node.
// Alias uniqueness per node is enforced only by the replication path,
// never as a schema constraint; direct creation may duplicate aliases.
type Period struct {
	ID         string     `gorm:"primaryKey;size:32" json:"id"`
	NodeID     string     `gorm:"size:32;not null;index" json:"node_id"`
	Alias      string     `gorm:"size:128;not null" json:"alias"`
	TargetDate *time.Time `json:"target_date"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Node       *Node       `gorm:"foreignKey:NodeID" json:"-"`
	Objectives []Objective `gorm:"foreignKey:PeriodID" json:"objectives,omitempty"`
}

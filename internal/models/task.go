package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StatusDone is the terminal task status gated on deliverable evidence.
const StatusDone = "Done"

// Task is a unit of work under an objective. Completion to StatusDone
// requires at least one deliverable.
type Task struct {
	ID          string     `gorm:"primaryKey;size:32" json:"id"`
	ObjectiveID string     `gorm:"size:32;not null;index" json:"objective_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	AssigneeID  string     `gorm:"size:64" json:"assignee_id"`
	WeekNumber  int        `json:"week_number"`
	Weight      float64    `gorm:"default:1" json:"weight"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `gorm:"size:32;default:Todo;index" json:"status"`
	// EvidenceURL is the legacy single-evidence field. A value supplied on
	// a status update is auto-appended to FinalDeliverables, which is the
	// authoritative completion signal.
	EvidenceURL       string          `gorm:"size:512" json:"evidence_url"`
	FinalDeliverables DeliverableList `gorm:"type:json" json:"final_deliverables"`
	PriorityScore     float64         `gorm:"default:0" json:"priority_score"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	Comments []Comment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}

// Deliverable is one element of a task's final_deliverables list. Elements
// carry a stable ID so index-based removal can be resolved to an element
// inside the same write that removes it.
type Deliverable struct {
	ID                    string    `json:"id"`
	Type                  string    `json:"type"`
	URL                   string    `json:"url"`
	Title                 string    `json:"title"`
	Thumbnail             *string   `json:"thumbnail"`
	AddedBy               *string   `json:"added_by"`
	PromotedFromCommentID *string   `json:"promoted_from_comment_id"`
	AddedAt               time.Time `json:"added_at"`
}

// DeliverableList stores deliverables as a JSON column on the task row.
// List order is insertion order.
type DeliverableList []Deliverable

// Value marshals the list for storage. A nil list stores as an empty array.
func (l DeliverableList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("models: marshal deliverables: %w", err)
	}
	return string(data), nil
}

// Scan unmarshals the stored JSON column back into the list.
func (l *DeliverableList) Scan(value interface{}) error {
	if value == nil {
		*l = DeliverableList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("models: scan deliverables: unsupported type %T", value)
	}
	if len(data) == 0 {
		*l = DeliverableList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

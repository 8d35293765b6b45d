package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Comment is a free-form note on a task. A comment must carry non-empty
// content or at least one attachment.
type Comment struct {
	ID          string         `gorm:"primaryKey;size:32" json:"id"`
	TaskID      string         `gorm:"size:32;not null;index" json:"task_id"`
	UserName    string         `gorm:"size:64;default:Anonymous" json:"user_name"`
	Content     string         `gorm:"type:text" json:"content"`
	Attachments AttachmentList `gorm:"type:json" json:"attachments"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Attachment is one element of a comment's attachment list, addressed by
// position. Attachments are promotion candidates for task deliverables.
type Attachment struct {
	Type      string  `json:"type"`
	URL       string  `json:"url"`
	Name      string  `json:"name"`
	Thumbnail *string `json:"thumbnail"`
}

// AttachmentList stores attachments as a JSON column on the comment row.
type AttachmentList []Attachment

// Value marshals the list for storage. A nil list stores as an empty array.
func (l AttachmentList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("models: marshal attachments: %w", err)
	}
	return string(data), nil
}

// Scan unmarshals the stored JSON column back into the list.
func (l *AttachmentList) Scan(value interface{}) error {
	if value == nil {
		*l = AttachmentList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("models: scan attachments: unsupported type %T", value)
	}
	if len(data) == 0 {
		*l = AttachmentList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

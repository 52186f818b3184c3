package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Webhook struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	UserID    uuid.UUID       `json:"user_id" db:"user_id"`
	URL       string          `json:"url" db:"url"`
	Events    json.RawMessage `json:"events" db:"events"`
	Secret    string          `json:"-" db:"secret"`
	IsActive  bool            `json:"is_active" db:"is_active"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

const (
	EventComplaintCreated = "complaint.created"
	EventComplaintDeleted = "complaint.deleted"
	EventPromptGenerated  = "prompt.generated"
)

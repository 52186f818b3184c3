package models

import (
	"time"

	"github.com/google/uuid"
)

// Template is a reusable named prompt pattern. Placeholders such as
// {chief_complaint} are descriptive only; generation never interpolates them.
type Template struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	TemplateText string    `json:"template_text" db:"template_text"`
	Placeholders []string  `json:"placeholders,omitempty" db:"-"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

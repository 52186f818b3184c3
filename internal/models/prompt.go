package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PromptKindTriage     = "triage"
	PromptKindGuidelines = "guidelines"
	PromptKindCombined   = "combined"
)

// Prompt is a generated text artifact derived from a Complaint. Rows are
// immutable once inserted; regeneration always creates a new row.
type Prompt struct {
	ID                uuid.UUID `json:"id" db:"id"`
	ComplaintID       uuid.UUID `json:"complaint_id" db:"complaint_id"`
	ComplaintSummary  string    `json:"complaint_summary,omitempty" db:"-"`
	Kind              string    `json:"prompt_type" db:"kind"`
	GeneratedPrompt   string    `json:"generated_prompt" db:"generated_prompt"`
	TriageContext     string    `json:"triage_context" db:"triage_context"`
	GuidelinesContext string    `json:"guidelines_context" db:"guidelines_context"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

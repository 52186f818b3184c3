package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Complaint is a patient's Signs & Current Complaints (SCC) record, the
// subjective part of a SOAP note, entered by the clinician who owns it.
type Complaint struct {
	ID                     uuid.UUID `json:"id" db:"id"`
	CreatedBy              uuid.UUID `json:"created_by" db:"created_by"`
	PatientIdentifier      string    `json:"patient_identifier" db:"patient_identifier"`
	ChiefComplaint         string    `json:"chief_complaint" db:"chief_complaint"`
	SignsSymptoms          string    `json:"signs_symptoms" db:"signs_symptoms"`
	HistoryPresentIllness  string    `json:"history_present_illness" db:"history_present_illness"`
	RelevantMedicalHistory string    `json:"relevant_medical_history" db:"relevant_medical_history"`
	CreatedAt              time.Time `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time `json:"updated_at" db:"updated_at"`
}

// Summary is the short label used when a prompt references its complaint.
func (c *Complaint) Summary() string {
	return fmt.Sprintf("%s - %s", c.PatientIdentifier, c.ChiefComplaint)
}

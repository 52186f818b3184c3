package handlers

import (
	"testing"

	"github.com/medrounds/sccprompts/internal/complaint"
)

func TestValidateComplaint(t *testing.T) {
	valid := complaint.CreateRequest{
		PatientIdentifier: "P001",
		ChiefComplaint:    "Chest pain",
		SignsSymptoms:     "Sharp chest pain",
	}

	t.Run("valid request", func(t *testing.T) {
		if errs := validateComplaint(valid); len(errs) != 0 {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		errs := validateComplaint(complaint.CreateRequest{})
		for _, field := range []string{"patient_identifier", "chief_complaint", "signs_symptoms"} {
			if len(errs[field]) == 0 {
				t.Errorf("missing error for %s", field)
			}
		}
	})

	t.Run("patient identifier too long", func(t *testing.T) {
		req := valid
		for len(req.PatientIdentifier) <= 100 {
			req.PatientIdentifier += "X"
		}
		errs := validateComplaint(req)
		if len(errs["patient_identifier"]) == 0 {
			t.Error("oversized patient_identifier must be rejected")
		}
	})

	t.Run("chief complaint too long", func(t *testing.T) {
		req := valid
		for len(req.ChiefComplaint) <= 500 {
			req.ChiefComplaint += "X"
		}
		errs := validateComplaint(req)
		if len(errs["chief_complaint"]) == 0 {
			t.Error("oversized chief_complaint must be rejected")
		}
	})

	t.Run("optional fields may be empty", func(t *testing.T) {
		req := valid
		req.HistoryPresentIllness = ""
		req.RelevantMedicalHistory = ""
		if errs := validateComplaint(req); len(errs) != 0 {
			t.Errorf("unexpected errors: %v", errs)
		}
	})
}

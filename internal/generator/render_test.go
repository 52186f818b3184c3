package generator

import (
	"strings"
	"testing"

	"github.com/medrounds/sccprompts/internal/models"
)

func fullComplaint() *models.Complaint {
	return &models.Complaint{
		PatientIdentifier:      "P001",
		ChiefComplaint:         "Chest pain",
		SignsSymptoms:          "Sharp chest pain, radiating to left arm",
		HistoryPresentIllness:  "Started 2 hours ago",
		RelevantMedicalHistory: "Hypertension, smoker",
	}
}

func TestRenderTriage(t *testing.T) {
	text := RenderTriage(fullComplaint())

	for _, want := range []string{
		"# Mock Triage Assessment",
		"P001",
		"Chest pain",
		"Sharp chest pain, radiating to left arm",
		"History of Present Illness",
		"Relevant Medical History",
		"Urgency level",
		"Differential diagnoses",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("triage prompt missing %q", want)
		}
	}
}

func TestRenderGuidelines(t *testing.T) {
	text := RenderGuidelines(fullComplaint())

	for _, want := range []string{
		"# Clinical Guidelines Consultation",
		"P001",
		"Evidence-based",
		"Treatment protocols",
		"Patient safety considerations",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("guidelines prompt missing %q", want)
		}
	}

	if strings.Contains(text, "# Mock Triage Assessment") {
		t.Error("guidelines prompt contains the triage header")
	}
}

func TestRenderCombined(t *testing.T) {
	text := RenderCombined(fullComplaint())

	for _, want := range []string{
		"# Professional Clinical Assessment - Grand Rounds Format",
		"P001",
		"A. Triage Assessment",
		"B. Clinical Guidelines Review",
		"C. Differential Diagnosis",
		"D. Clinical Decision Making",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("combined prompt missing %q", want)
		}
	}
}

func TestOptionalSections(t *testing.T) {
	render := map[string]func(*models.Complaint) string{
		"triage":     RenderTriage,
		"guidelines": RenderGuidelines,
		"combined":   RenderCombined,
	}

	tests := []struct {
		name    string
		hpi     string
		history string
	}{
		{"both empty", "", ""},
		{"hpi only", "Started 2 hours ago", ""},
		{"history only", "", "Hypertension"},
		{"both set", "Started 2 hours ago", "Hypertension"},
	}

	for _, tt := range tests {
		for kind, fn := range render {
			t.Run(tt.name+"/"+kind, func(t *testing.T) {
				c := fullComplaint()
				c.HistoryPresentIllness = tt.hpi
				c.RelevantMedicalHistory = tt.history
				text := fn(c)

				if got := strings.Contains(text, "History of Present Illness"); got != (tt.hpi != "") {
					t.Errorf("HPI section present=%v, want %v", got, tt.hpi != "")
				}
				if got := strings.Contains(text, "Relevant Medical History"); got != (tt.history != "") {
					t.Errorf("history section present=%v, want %v", got, tt.history != "")
				}
			})
		}
	}
}

func TestRenderScenarioP001(t *testing.T) {
	c := &models.Complaint{
		PatientIdentifier:      "P001",
		ChiefComplaint:         "Chest pain",
		SignsSymptoms:          "Sharp chest pain",
		HistoryPresentIllness:  "",
		RelevantMedicalHistory: "Hypertension",
	}

	text := RenderTriage(c)

	for _, want := range []string{"P001", "Chest pain", "Sharp chest pain", "Relevant Medical History", "Hypertension"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(text, "History of Present Illness") {
		t.Error("empty HPI must not produce a section header")
	}
}

func TestNormalizeKind(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"triage", models.PromptKindTriage},
		{"guidelines", models.PromptKindGuidelines},
		{"combined", models.PromptKindCombined},
		{"", models.PromptKindCombined},
		{"bogus", models.PromptKindCombined},
		{"TRIAGE", models.PromptKindCombined},
	}
	for _, tt := range tests {
		if got := NormalizeKind(tt.in); got != tt.want {
			t.Errorf("NormalizeKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderUnknownKindFallsBackToCombined(t *testing.T) {
	c := fullComplaint()
	if got, want := Render("bogus", c), RenderCombined(c); got != want {
		t.Error("unknown kind must render identically to combined")
	}
}

func TestContextNotes(t *testing.T) {
	tests := []struct {
		kind           string
		wantTriage     string
		wantGuidelines string
	}{
		{"triage", "Triage assessment for emergency/urgent care prioritization", ""},
		{"guidelines", "", "Evidence-based clinical guidelines and protocols"},
		{"combined", "Comprehensive triage with urgency assessment", "Evidence-based guidelines and best practices"},
		{"bogus", "Comprehensive triage with urgency assessment", "Evidence-based guidelines and best practices"},
	}
	for _, tt := range tests {
		tc, gc := ContextNotes(tt.kind)
		if tc != tt.wantTriage || gc != tt.wantGuidelines {
			t.Errorf("ContextNotes(%q) = (%q, %q), want (%q, %q)", tt.kind, tc, gc, tt.wantTriage, tt.wantGuidelines)
		}
	}
}

package generator

import (
	"strings"

	"github.com/medrounds/sccprompts/internal/models"
)

// The renderers turn a complaint into a Grand Rounds style text prompt. Each
// kind shares the same subjective header; only the closing request block
// differs. Sections for HPI and medical history appear iff the stored value
// is non-empty.

const (
	triageRequestBlock = `
**Triage Assessment Request:**
Based on the above subjective information (S - Subjective part of SOAP), please provide:
1. Urgency level assessment (Critical/High/Medium/Low)
2. Recommended immediate actions
3. Red flags or concerning features
4. Suggested clinical pathway
5. Differential diagnoses to consider

Please provide a professional triage assessment as would be discussed in a Grand Rounds meeting.
`

	guidelinesRequestBlock = `
**Guidelines Request:**
Based on the above subjective clinical information, please provide:
1. Applicable clinical practice guidelines
2. Evidence-based diagnostic approach
3. Recommended investigations/tests
4. Treatment protocols to consider
5. Follow-up recommendations
6. Patient safety considerations

Please reference current clinical guidelines and best practices as would be expected in a professional medical consultation.
`

	combinedRequestBlock = `
**Professional Assessment Request (Pro-Prompt):**

This case is presented for comprehensive clinical evaluation combining both triage and guidelines review, as would be conducted in a Grand Rounds setting.

Please provide:

**A. Triage Assessment:**
1. Urgency level (Critical/High/Medium/Low) with justification
2. Immediate management priorities
3. Red flags and concerning features
4. Time-sensitive interventions

**B. Clinical Guidelines Review:**
1. Applicable evidence-based guidelines
2. Recommended diagnostic workup
3. Treatment protocols and algorithms
4. Quality and safety considerations

**C. Differential Diagnosis:**
1. Most likely diagnoses (prioritized)
2. Must-not-miss diagnoses
3. Supporting and contradicting features

**D. Clinical Decision Making:**
1. Recommended clinical pathway
2. When to escalate care
3. Follow-up plan
4. Patient education points

This assessment will be used to support professional medical decision-making and should reflect current best practices and evidence-based medicine.
`
)

// RenderTriage emits the Mock Triage prompt for a complaint.
func RenderTriage(c *models.Complaint) string {
	var b strings.Builder
	writeHeader(&b, "# Mock Triage Assessment", "**Signs & Symptoms:**", c)
	b.WriteString(triageRequestBlock)
	return b.String()
}

// RenderGuidelines emits the Clinical Guidelines Consultation prompt.
func RenderGuidelines(c *models.Complaint) string {
	var b strings.Builder
	writeHeader(&b, "# Clinical Guidelines Consultation", "**Signs & Symptoms:**", c)
	b.WriteString(guidelinesRequestBlock)
	return b.String()
}

// RenderCombined emits the combined Pro-Prompt covering both triage and
// guidelines review.
func RenderCombined(c *models.Complaint) string {
	var b strings.Builder
	writeHeader(&b, "# Professional Clinical Assessment - Grand Rounds Format",
		"**Subjective (S) - Signs & Current Complaints (SCC):**", c)
	b.WriteString(combinedRequestBlock)
	return b.String()
}

// writeHeader assembles the shared subjective block. Section order is fixed:
// case id, chief complaint, signs block, then the two optional sections.
func writeHeader(b *strings.Builder, title, signsLabel string, c *models.Complaint) {
	b.WriteString(title)
	b.WriteString("\n\n**Patient Case ID:** ")
	b.WriteString(c.PatientIdentifier)
	b.WriteString("\n\n**Chief Complaint:** ")
	b.WriteString(c.ChiefComplaint)
	b.WriteString("\n\n")
	b.WriteString(signsLabel)
	b.WriteString("\n")
	b.WriteString(c.SignsSymptoms)
	b.WriteString("\n")

	if c.HistoryPresentIllness != "" {
		b.WriteString("\n**History of Present Illness:**\n")
		b.WriteString(c.HistoryPresentIllness)
		b.WriteString("\n")
	}

	if c.RelevantMedicalHistory != "" {
		b.WriteString("\n**Relevant Medical History:**\n")
		b.WriteString(c.RelevantMedicalHistory)
		b.WriteString("\n")
	}
}

// NormalizeKind maps any unrecognized value to combined. This fallback is a
// deliberate default, not a validation error.
func NormalizeKind(kind string) string {
	switch kind {
	case models.PromptKindTriage, models.PromptKindGuidelines:
		return kind
	default:
		return models.PromptKindCombined
	}
}

// Render selects the renderer for a (normalized) kind.
func Render(kind string, c *models.Complaint) string {
	switch NormalizeKind(kind) {
	case models.PromptKindTriage:
		return RenderTriage(c)
	case models.PromptKindGuidelines:
		return RenderGuidelines(c)
	default:
		return RenderCombined(c)
	}
}

// ContextNotes returns the fixed (triage, guidelines) context pair for a kind.
func ContextNotes(kind string) (string, string) {
	switch NormalizeKind(kind) {
	case models.PromptKindTriage:
		return "Triage assessment for emergency/urgent care prioritization", ""
	case models.PromptKindGuidelines:
		return "", "Evidence-based clinical guidelines and protocols"
	default:
		return "Comprehensive triage with urgency assessment", "Evidence-based guidelines and best practices"
	}
}

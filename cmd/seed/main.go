package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/medrounds/sccprompts/internal/complaint"
	"github.com/medrounds/sccprompts/internal/config"
	"github.com/medrounds/sccprompts/internal/database"
	"github.com/medrounds/sccprompts/internal/identity"
	"github.com/medrounds/sccprompts/internal/models"
	"github.com/medrounds/sccprompts/internal/queue"
	"github.com/medrounds/sccprompts/internal/template"
)

// Seeds demonstration data: a demo clinician, three sample complaints, two
// sample templates. A combined prompt is pregenerated for each new complaint
// through the worker queue.

var sampleComplaints = []complaint.CreateRequest{
	{
		PatientIdentifier:      "P001",
		ChiefComplaint:         "Chest pain",
		SignsSymptoms:          "Sharp chest pain radiating to left arm, diaphoresis, shortness of breath",
		HistoryPresentIllness:  "Sudden onset 2 hours ago while watching TV. Pain score 8/10.",
		RelevantMedicalHistory: "Hypertension, diabetes mellitus type 2, active smoker (20 pack-years)",
	},
	{
		PatientIdentifier:      "P002",
		ChiefComplaint:         "Severe headache",
		SignsSymptoms:          "Sudden onset worst headache of life, photophobia, neck stiffness",
		HistoryPresentIllness:  "Woke up with headache this morning, progressively worsening over 4 hours",
		RelevantMedicalHistory: "No significant medical history, takes oral contraceptives",
	},
	{
		PatientIdentifier:      "P003",
		ChiefComplaint:         "Abdominal pain",
		SignsSymptoms:          "Right lower quadrant pain, nausea, vomiting, fever (38.5C)",
		HistoryPresentIllness:  "Started with periumbilical pain 12 hours ago, now localized to RLQ",
		RelevantMedicalHistory: "Appendectomy ruled out (patient still has appendix)",
	},
}

var sampleTemplates = []template.UpsertRequest{
	{
		Name:        "Emergency Triage Template",
		Description: "Standard template for emergency department triage",
		TemplateText: `Patient: {patient_identifier}
Chief Complaint: {chief_complaint}
Signs & Symptoms: {signs_symptoms}

Triage Assessment Required:
1. Urgency level (ESI 1-5)
2. Vital signs priority
3. Immediate interventions needed`,
	},
	{
		Name:        "Guidelines Review Template",
		Description: "Template for clinical guidelines consultation",
		TemplateText: `Case ID: {patient_identifier}
Presenting Complaint: {chief_complaint}

Clinical Guidelines Request:
Please provide evidence-based guidelines for:
- Diagnostic approach
- Treatment protocols
- Follow-up care`,
	},
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, cfg.Database.MigrationsPath); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	ids := identity.NewService(db)
	user, err := ids.GetUserByEmail(ctx, "demo@example.com")
	if err != nil {
		user, err = ids.CreateUser(ctx, "demo@example.com", "Demo Doctor")
		if err != nil {
			slog.Error("failed to create demo user", "error", err)
			os.Exit(1)
		}
		slog.Info("created demo user", "email", user.Email)
	}

	q := queue.NewClient(cfg.Redis)
	defer q.Close()

	complaintSvc := complaint.NewService(db)
	created := 0
	for _, req := range sampleComplaints {
		exists, err := complaintExists(ctx, db, user, req.PatientIdentifier)
		if err != nil {
			slog.Error("failed to check complaint", "error", err)
			os.Exit(1)
		}
		if exists {
			continue
		}

		c, err := complaintSvc.Create(ctx, user.ID, req)
		if err != nil {
			slog.Error("failed to create complaint", "error", err)
			os.Exit(1)
		}
		created++
		slog.Info("created complaint", "patient_identifier", c.PatientIdentifier)

		// Pregenerate a combined prompt for demonstration.
		err = q.EnqueuePromptPregenerate(queue.PromptPregeneratePayload{
			ComplaintID: c.ID.String(),
			OwnerID:     user.ID.String(),
			Kind:        models.PromptKindCombined,
		})
		if err != nil {
			slog.Warn("failed to enqueue prompt pregeneration", "error", err)
		}
	}
	slog.Info("complaints seeded", "created", created)

	templateSvc := template.NewService(db, nil, 0)
	templateCount := 0
	for _, req := range sampleTemplates {
		exists, err := templateExists(ctx, db, req.Name)
		if err != nil {
			slog.Error("failed to check template", "error", err)
			os.Exit(1)
		}
		if exists {
			continue
		}

		t, err := templateSvc.Create(ctx, req)
		if err != nil {
			slog.Error("failed to create template", "error", err)
			os.Exit(1)
		}
		templateCount++
		slog.Info("created template", "name", t.Name)
	}
	slog.Info("templates seeded", "created", templateCount)
	slog.Info("sample data loaded", "demo_user", user.Email)
}

func complaintExists(ctx context.Context, db *pgxpool.Pool, user *models.User, patientID string) (bool, error) {
	var one int
	err := db.QueryRow(ctx,
		"SELECT 1 FROM complaints WHERE created_by = $1 AND patient_identifier = $2",
		user.ID, patientID,
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func templateExists(ctx context.Context, db *pgxpool.Pool, name string) (bool, error) {
	var one int
	err := db.QueryRow(ctx,
		"SELECT 1 FROM prompt_templates WHERE name = $1", name,
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

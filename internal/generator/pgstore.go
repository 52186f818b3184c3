package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medrounds/sccprompts/internal/models"
)

// PgStore is the Postgres-backed Store used in production.
type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) ComplaintByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Complaint, error) {
	var c models.Complaint
	err := s.db.QueryRow(ctx,
		`SELECT id, created_by, patient_identifier, chief_complaint, signs_symptoms, history_present_illness, relevant_medical_history, created_at, updated_at
		 FROM complaints WHERE id = $1 AND created_by = $2`,
		id, ownerID,
	).Scan(&c.ID, &c.CreatedBy, &c.PatientIdentifier, &c.ChiefComplaint, &c.SignsSymptoms, &c.HistoryPresentIllness, &c.RelevantMedicalHistory, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrComplaintNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get complaint: %w", err)
	}
	return &c, nil
}

func (s *PgStore) InsertPrompt(ctx context.Context, p *models.Prompt) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO prompts (complaint_id, kind, generated_prompt, triage_context, guidelines_context)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		p.ComplaintID, p.Kind, p.GeneratedPrompt, p.TriageContext, p.GuidelinesContext,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert prompt: %w", err)
	}
	return nil
}

func (s *PgStore) PromptByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Prompt, error) {
	var p models.Prompt
	var patientID, chief string
	err := s.db.QueryRow(ctx,
		`SELECT p.id, p.complaint_id, p.kind, p.generated_prompt, p.triage_context, p.guidelines_context, p.created_at,
		        c.patient_identifier, c.chief_complaint
		 FROM prompts p JOIN complaints c ON c.id = p.complaint_id
		 WHERE p.id = $1 AND c.created_by = $2`,
		id, ownerID,
	).Scan(&p.ID, &p.ComplaintID, &p.Kind, &p.GeneratedPrompt, &p.TriageContext, &p.GuidelinesContext, &p.CreatedAt, &patientID, &chief)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPromptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get prompt: %w", err)
	}
	p.ComplaintSummary = fmt.Sprintf("%s - %s", patientID, chief)
	return &p, nil
}

func (s *PgStore) ListPrompts(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]models.Prompt, error) {
	rows, err := s.db.Query(ctx,
		`SELECT p.id, p.complaint_id, p.kind, p.generated_prompt, p.triage_context, p.guidelines_context, p.created_at,
		        c.patient_identifier, c.chief_complaint
		 FROM prompts p JOIN complaints c ON c.id = p.complaint_id
		 WHERE c.created_by = $1
		 ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	var prompts []models.Prompt
	for rows.Next() {
		var p models.Prompt
		var patientID, chief string
		if err := rows.Scan(&p.ID, &p.ComplaintID, &p.Kind, &p.GeneratedPrompt, &p.TriageContext, &p.GuidelinesContext, &p.CreatedAt, &patientID, &chief); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		p.ComplaintSummary = fmt.Sprintf("%s - %s", patientID, chief)
		prompts = append(prompts, p)
	}
	return prompts, nil
}

package complaint

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medrounds/sccprompts/internal/models"
)

// ErrNotFound covers both missing rows and rows owned by someone else; the
// two cases are deliberately indistinguishable to the caller.
var ErrNotFound = errors.New("complaint not found")

type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

type CreateRequest struct {
	PatientIdentifier      string `json:"patient_identifier"`
	ChiefComplaint         string `json:"chief_complaint"`
	SignsSymptoms          string `json:"signs_symptoms"`
	HistoryPresentIllness  string `json:"history_present_illness"`
	RelevantMedicalHistory string `json:"relevant_medical_history"`
}

// Create persists a complaint owned by ownerID. The owner always comes from
// the authenticated identity, never from the request body.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req CreateRequest) (*models.Complaint, error) {
	var c models.Complaint
	err := s.db.QueryRow(ctx,
		`INSERT INTO complaints (created_by, patient_identifier, chief_complaint, signs_symptoms, history_present_illness, relevant_medical_history)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_by, patient_identifier, chief_complaint, signs_symptoms, history_present_illness, relevant_medical_history, created_at, updated_at`,
		ownerID, req.PatientIdentifier, req.ChiefComplaint, req.SignsSymptoms, req.HistoryPresentIllness, req.RelevantMedicalHistory,
	).Scan(&c.ID, &c.CreatedBy, &c.PatientIdentifier, &c.ChiefComplaint, &c.SignsSymptoms, &c.HistoryPresentIllness, &c.RelevantMedicalHistory, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert complaint: %w", err)
	}
	return &c, nil
}

func (s *Service) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Complaint, error) {
	var c models.Complaint
	err := s.db.QueryRow(ctx,
		`SELECT id, created_by, patient_identifier, chief_complaint, signs_symptoms, history_present_illness, relevant_medical_history, created_at, updated_at
		 FROM complaints WHERE id = $1 AND created_by = $2`,
		id, ownerID,
	).Scan(&c.ID, &c.CreatedBy, &c.PatientIdentifier, &c.ChiefComplaint, &c.SignsSymptoms, &c.HistoryPresentIllness, &c.RelevantMedicalHistory, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get complaint: %w", err)
	}
	return &c, nil
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]models.Complaint, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, created_by, patient_identifier, chief_complaint, signs_symptoms, history_present_illness, relevant_medical_history, created_at, updated_at
		 FROM complaints WHERE created_by = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		var c models.Complaint
		if err := rows.Scan(&c.ID, &c.CreatedBy, &c.PatientIdentifier, &c.ChiefComplaint, &c.SignsSymptoms, &c.HistoryPresentIllness, &c.RelevantMedicalHistory, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan complaint: %w", err)
		}
		complaints = append(complaints, c)
	}
	return complaints, nil
}

// Update rewrites the content fields; created_by is never touched.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, req CreateRequest) (*models.Complaint, error) {
	var c models.Complaint
	err := s.db.QueryRow(ctx,
		`UPDATE complaints
		 SET patient_identifier = $3, chief_complaint = $4, signs_symptoms = $5, history_present_illness = $6, relevant_medical_history = $7, updated_at = now()
		 WHERE id = $1 AND created_by = $2
		 RETURNING id, created_by, patient_identifier, chief_complaint, signs_symptoms, history_present_illness, relevant_medical_history, created_at, updated_at`,
		id, ownerID, req.PatientIdentifier, req.ChiefComplaint, req.SignsSymptoms, req.HistoryPresentIllness, req.RelevantMedicalHistory,
	).Scan(&c.ID, &c.CreatedBy, &c.PatientIdentifier, &c.ChiefComplaint, &c.SignsSymptoms, &c.HistoryPresentIllness, &c.RelevantMedicalHistory, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update complaint: %w", err)
	}
	return &c, nil
}

// Delete removes the complaint; dependent prompts go with it via the
// ON DELETE CASCADE constraint.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		"DELETE FROM complaints WHERE id = $1 AND created_by = $2", id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete complaint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

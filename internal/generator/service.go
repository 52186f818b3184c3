package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/medrounds/sccprompts/internal/models"
)

var (
	ErrComplaintNotFound = errors.New("complaint does not exist")
	ErrPromptNotFound    = errors.New("prompt not found")
)

// Store is the persistence surface the generator needs. All reads are scoped
// to the requesting owner; a row owned by someone else is reported the same
// way as a missing one.
type Store interface {
	ComplaintByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Complaint, error)
	InsertPrompt(ctx context.Context, p *models.Prompt) error
	PromptByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Prompt, error)
	ListPrompts(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]models.Prompt, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreatePrompt renders a prompt of the given kind for the complaint and
// persists it. Each call inserts a new row; generation is never deduplicated.
func (s *Service) CreatePrompt(ctx context.Context, ownerID, complaintID uuid.UUID, kind string) (*models.Prompt, error) {
	c, err := s.store.ComplaintByID(ctx, ownerID, complaintID)
	if err != nil {
		return nil, fmt.Errorf("complaint %s: %w", complaintID, err)
	}

	kind = NormalizeKind(kind)
	triageCtx, guidelinesCtx := ContextNotes(kind)

	p := &models.Prompt{
		ComplaintID:       c.ID,
		ComplaintSummary:  c.Summary(),
		Kind:              kind,
		GeneratedPrompt:   Render(kind, c),
		TriageContext:     triageCtx,
		GuidelinesContext: guidelinesCtx,
	}

	if err := s.store.InsertPrompt(ctx, p); err != nil {
		return nil, fmt.Errorf("save prompt: %w", err)
	}
	return p, nil
}

func (s *Service) GetPrompt(ctx context.Context, ownerID, id uuid.UUID) (*models.Prompt, error) {
	return s.store.PromptByID(ctx, ownerID, id)
}

func (s *Service) ListPrompts(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]models.Prompt, error) {
	return s.store.ListPrompts(ctx, ownerID, limit, offset)
}

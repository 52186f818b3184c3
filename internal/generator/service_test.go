package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/medrounds/sccprompts/internal/models"
)

// memStore is an in-memory Store for exercising the generation semantics
// without a database.
type memStore struct {
	complaints map[uuid.UUID]*models.Complaint
	prompts    []*models.Prompt
}

func newMemStore() *memStore {
	return &memStore{complaints: make(map[uuid.UUID]*models.Complaint)}
}

func (m *memStore) addComplaint(ownerID uuid.UUID, c models.Complaint) *models.Complaint {
	c.ID = uuid.New()
	c.CreatedBy = ownerID
	m.complaints[c.ID] = &c
	return &c
}

func (m *memStore) ComplaintByID(_ context.Context, ownerID, id uuid.UUID) (*models.Complaint, error) {
	c, ok := m.complaints[id]
	if !ok || c.CreatedBy != ownerID {
		return nil, ErrComplaintNotFound
	}
	return c, nil
}

func (m *memStore) InsertPrompt(_ context.Context, p *models.Prompt) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	stored := *p
	m.prompts = append(m.prompts, &stored)
	return nil
}

func (m *memStore) PromptByID(_ context.Context, ownerID, id uuid.UUID) (*models.Prompt, error) {
	for _, p := range m.prompts {
		if p.ID != id {
			continue
		}
		if c, ok := m.complaints[p.ComplaintID]; ok && c.CreatedBy == ownerID {
			return p, nil
		}
	}
	return nil, ErrPromptNotFound
}

func (m *memStore) ListPrompts(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]models.Prompt, error) {
	var out []models.Prompt
	for _, p := range m.prompts {
		if c, ok := m.complaints[p.ComplaintID]; ok && c.CreatedBy == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func testComplaint() models.Complaint {
	return models.Complaint{
		PatientIdentifier: "P001",
		ChiefComplaint:    "Chest pain",
		SignsSymptoms:     "Sharp chest pain",
	}
}

func TestCreatePromptTriage(t *testing.T) {
	store := newMemStore()
	owner := uuid.New()
	c := store.addComplaint(owner, testComplaint())

	svc := NewService(store)
	p, err := svc.CreatePrompt(context.Background(), owner, c.ID, "triage")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Kind != models.PromptKindTriage {
		t.Errorf("kind = %q, want triage", p.Kind)
	}
	if !strings.Contains(p.GeneratedPrompt, "# Mock Triage Assessment") {
		t.Error("generated text missing triage header")
	}
	if p.TriageContext == "" || p.GuidelinesContext != "" {
		t.Errorf("triage context notes = (%q, %q)", p.TriageContext, p.GuidelinesContext)
	}
	if p.ComplaintSummary != "P001 - Chest pain" {
		t.Errorf("complaint summary = %q", p.ComplaintSummary)
	}
}

func TestCreatePromptUnknownKindBehavesAsCombined(t *testing.T) {
	store := newMemStore()
	owner := uuid.New()
	c := store.addComplaint(owner, testComplaint())

	svc := NewService(store)
	p, err := svc.CreatePrompt(context.Background(), owner, c.ID, "not-a-kind")
	if err != nil {
		t.Fatalf("unknown kind must not error, got: %v", err)
	}

	combined, err := svc.CreatePrompt(context.Background(), owner, c.ID, "combined")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Kind != models.PromptKindCombined {
		t.Errorf("kind = %q, want combined", p.Kind)
	}
	if p.GeneratedPrompt != combined.GeneratedPrompt {
		t.Error("unknown kind must render identically to combined")
	}
	if p.TriageContext != combined.TriageContext || p.GuidelinesContext != combined.GuidelinesContext {
		t.Error("unknown kind must carry combined context notes")
	}
}

func TestCreatePromptMissingComplaint(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	_, err := svc.CreatePrompt(context.Background(), uuid.New(), uuid.New(), "triage")
	if !errors.Is(err, ErrComplaintNotFound) {
		t.Fatalf("error = %v, want ErrComplaintNotFound", err)
	}
	if len(store.prompts) != 0 {
		t.Errorf("no prompt row may be created, got %d", len(store.prompts))
	}
}

func TestCreatePromptIsNeverDeduplicated(t *testing.T) {
	store := newMemStore()
	owner := uuid.New()
	c := store.addComplaint(owner, testComplaint())

	svc := NewService(store)
	p1, err := svc.CreatePrompt(context.Background(), owner, c.ID, "guidelines")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p2, err := svc.CreatePrompt(context.Background(), owner, c.ID, "guidelines")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p1.ID == p2.ID {
		t.Error("identical calls must create distinct rows")
	}
	if len(store.prompts) != 2 {
		t.Errorf("prompt rows = %d, want 2", len(store.prompts))
	}
	for _, id := range []uuid.UUID{p1.ID, p2.ID} {
		if _, err := svc.GetPrompt(context.Background(), owner, id); err != nil {
			t.Errorf("prompt %s not retrievable: %v", id, err)
		}
	}
}

func TestCreatePromptOwnership(t *testing.T) {
	store := newMemStore()
	userA := uuid.New()
	userB := uuid.New()
	c := store.addComplaint(userA, testComplaint())

	svc := NewService(store)
	_, err := svc.CreatePrompt(context.Background(), userB, c.ID, "triage")
	if !errors.Is(err, ErrComplaintNotFound) {
		t.Fatalf("foreign complaint must look missing, got: %v", err)
	}

	// A's prompt is invisible to B.
	p, err := svc.CreatePrompt(context.Background(), userA, c.ID, "triage")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetPrompt(context.Background(), userB, p.ID); !errors.Is(err, ErrPromptNotFound) {
		t.Fatalf("foreign prompt must look missing, got: %v", err)
	}

	listB, err := svc.ListPrompts(context.Background(), userB, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listB) != 0 {
		t.Errorf("user B sees %d prompts, want 0", len(listB))
	}
}

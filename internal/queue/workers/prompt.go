package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/medrounds/sccprompts/internal/generator"
	"github.com/medrounds/sccprompts/internal/queue"
)

// PromptWorker generates prompts out of band, e.g. the demonstration prompts
// the seed loader enqueues for each sample complaint.
type PromptWorker struct {
	svc *generator.Service
}

func NewPromptWorker(svc *generator.Service) *PromptWorker {
	return &PromptWorker{svc: svc}
}

func (w *PromptWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.PromptPregeneratePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	complaintID, err := uuid.Parse(payload.ComplaintID)
	if err != nil {
		return fmt.Errorf("invalid complaint id: %w", err)
	}
	ownerID, err := uuid.Parse(payload.OwnerID)
	if err != nil {
		return fmt.Errorf("invalid owner id: %w", err)
	}

	p, err := w.svc.CreatePrompt(ctx, ownerID, complaintID, payload.Kind)
	if err != nil {
		if errors.Is(err, generator.ErrComplaintNotFound) {
			// Complaint was deleted before the task ran; nothing to retry.
			slog.Warn("skipping pregeneration, complaint gone", "complaint_id", payload.ComplaintID)
			return nil
		}
		return fmt.Errorf("pregenerate prompt: %w", err)
	}

	slog.Info("pregenerated prompt", "prompt_id", p.ID, "complaint_id", p.ComplaintID, "kind", p.Kind)
	return nil
}

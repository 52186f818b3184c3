package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/medrounds/sccprompts/internal/audit"
	"github.com/medrounds/sccprompts/internal/complaint"
	"github.com/medrounds/sccprompts/internal/generator"
	"github.com/medrounds/sccprompts/internal/identity"
	"github.com/medrounds/sccprompts/internal/models"
	"github.com/medrounds/sccprompts/internal/webhook"
)

type ComplaintHandler struct {
	svc    *complaint.Service
	gen    *generator.Service
	audits *audit.Service
	hooks  *webhook.Service
}

func NewComplaintHandler(svc *complaint.Service, gen *generator.Service, audits *audit.Service, hooks *webhook.Service) *ComplaintHandler {
	return &ComplaintHandler{svc: svc, gen: gen, audits: audits, hooks: hooks}
}

// validateComplaint returns a per-field error map; an empty map means the
// request is acceptable.
func validateComplaint(req complaint.CreateRequest) map[string][]string {
	errs := map[string][]string{}
	if req.PatientIdentifier == "" {
		errs["patient_identifier"] = append(errs["patient_identifier"], "this field is required")
	}
	if len(req.PatientIdentifier) > 100 {
		errs["patient_identifier"] = append(errs["patient_identifier"], "must be at most 100 characters")
	}
	if req.ChiefComplaint == "" {
		errs["chief_complaint"] = append(errs["chief_complaint"], "this field is required")
	}
	if len(req.ChiefComplaint) > 500 {
		errs["chief_complaint"] = append(errs["chief_complaint"], "must be at most 500 characters")
	}
	if req.SignsSymptoms == "" {
		errs["signs_symptoms"] = append(errs["signs_symptoms"], "this field is required")
	}
	return errs
}

func (h *ComplaintHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req complaint.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if errs := validateComplaint(req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return
	}

	ownerID := identity.UserIDFromContext(r.Context())
	c, err := h.svc.Create(r.Context(), ownerID, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.audits.Log(r.Context(), audit.LogEntry{
		Action:       "complaint.create",
		ResourceType: "complaint",
		ResourceID:   &c.ID,
		IPAddress:    r.RemoteAddr,
	})
	h.hooks.Dispatch(r.Context(), models.EventComplaintCreated, c)

	writeJSON(w, http.StatusCreated, c)
}

func (h *ComplaintHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}

	ownerID := identity.UserIDFromContext(r.Context())
	complaints, err := h.svc.List(r.Context(), ownerID, limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"complaints": complaints, "count": len(complaints)})
}

func (h *ComplaintHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid complaint ID"})
		return
	}

	ownerID := identity.UserIDFromContext(r.Context())
	c, err := h.svc.GetByID(r.Context(), ownerID, id)
	if errors.Is(err, complaint.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "complaint not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *ComplaintHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid complaint ID"})
		return
	}

	var req complaint.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if errs := validateComplaint(req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return
	}

	ownerID := identity.UserIDFromContext(r.Context())
	c, err := h.svc.Update(r.Context(), ownerID, id, req)
	if errors.Is(err, complaint.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "complaint not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.audits.Log(r.Context(), audit.LogEntry{
		Action:       "complaint.update",
		ResourceType: "complaint",
		ResourceID:   &c.ID,
		IPAddress:    r.RemoteAddr,
	})

	writeJSON(w, http.StatusOK, c)
}

func (h *ComplaintHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid complaint ID"})
		return
	}

	ownerID := identity.UserIDFromContext(r.Context())
	err = h.svc.Delete(r.Context(), ownerID, id)
	if errors.Is(err, complaint.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "complaint not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.audits.Log(r.Context(), audit.LogEntry{
		Action:       "complaint.delete",
		ResourceType: "complaint",
		ResourceID:   &id,
		IPAddress:    r.RemoteAddr,
	})
	h.hooks.Dispatch(r.Context(), models.EventComplaintDeleted, map[string]string{"id": id.String()})

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type generatePromptRequest struct {
	PromptType string `json:"prompt_type"`
	// Accepted by the request shape but not consulted by generation; the
	// context notes are always fully populated per kind.
	IncludeTriageContext     *bool `json:"include_triage_context,omitempty"`
	IncludeGuidelinesContext *bool `json:"include_guidelines_context,omitempty"`
}

// GeneratePrompt renders and persists a new prompt for the complaint. Any
// failure, including an unknown or foreign complaint id, is a 400 with the
// failure message.
func (h *ComplaintHandler) GeneratePrompt(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid complaint ID"})
		return
	}

	var req generatePromptRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}

	ownerID := identity.UserIDFromContext(r.Context())
	p, err := h.gen.CreatePrompt(r.Context(), ownerID, id, req.PromptType)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	h.audits.Log(r.Context(), audit.LogEntry{
		Action:       "prompt.generate",
		ResourceType: "prompt",
		ResourceID:   &p.ID,
		Details:      map[string]interface{}{"kind": p.Kind, "complaint_id": p.ComplaintID.String()},
		IPAddress:    r.RemoteAddr,
	})
	h.hooks.Dispatch(r.Context(), models.EventPromptGenerated, p)

	writeJSON(w, http.StatusCreated, p)
}

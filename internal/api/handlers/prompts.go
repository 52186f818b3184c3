package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/medrounds/sccprompts/internal/generator"
	"github.com/medrounds/sccprompts/internal/identity"
)

// PromptHandler is read-only; prompts are created through the complaint
// generate_prompt action.
type PromptHandler struct {
	gen *generator.Service
}

func NewPromptHandler(gen *generator.Service) *PromptHandler {
	return &PromptHandler{gen: gen}
}

func (h *PromptHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}

	ownerID := identity.UserIDFromContext(r.Context())
	prompts, err := h.gen.ListPrompts(r.Context(), ownerID, limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"prompts": prompts, "count": len(prompts)})
}

func (h *PromptHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid prompt ID"})
		return
	}

	ownerID := identity.UserIDFromContext(r.Context())
	p, err := h.gen.GetPrompt(r.Context(), ownerID, id)
	if errors.Is(err, generator.ErrPromptNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "prompt not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, p)
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/medrounds/sccprompts/internal/audit"
)

type AdminHandler struct {
	audits *audit.Service
}

func NewAdminHandler(audits *audit.Service) *AdminHandler {
	return &AdminHandler{audits: audits}
}

func (h *AdminHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	q := audit.Query{
		Action:       r.URL.Query().Get("action"),
		ResourceType: r.URL.Query().Get("resource_type"),
	}
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	q.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	if v := r.URL.Query().Get("start_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q.StartDate = &t
		}
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q.EndDate = &t
		}
	}

	logs, err := h.audits.GetLogs(r.Context(), q)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"logs": logs, "count": len(logs)})
}

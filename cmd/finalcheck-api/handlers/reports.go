package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Treedy2020/FinalCheck/internal/observability"
	"github.com/Treedy2020/FinalCheck/internal/storage"
)

// ReportsHandler serves stored reports.
type ReportsHandler struct {
	logger  *observability.Logger
	reports *storage.ReportRepository
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(logger *observability.Logger, reports *storage.ReportRepository) *ReportsHandler {
	return &ReportsHandler{logger: logger, reports: reports}
}

// List returns report summaries, newest first. An optional "limit" query
// parameter bounds the result.
func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	summaries, err := h.reports.List(r.Context(), limit)
	if err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"reports": summaries})
}

// Get returns one stored report with its full body.
func (h *ReportsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "reportId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid report id")
		return
	}

	stored, err := h.reports.GetByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, stored)
}

// Delete removes a stored report.
func (h *ReportsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "reportId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid report id")
		return
	}

	if err := h.reports.Delete(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "report not found")
			return
		}
		respondDomainError(h.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

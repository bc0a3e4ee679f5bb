package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/Treedy2020/FinalCheck/internal/observability"
	"github.com/Treedy2020/FinalCheck/internal/storage"
	"github.com/Treedy2020/FinalCheck/pkg/compliance"
)

// AnalyzeHandler handles document analysis requests.
type AnalyzeHandler struct {
	logger   *observability.Logger
	client   *compliance.Client
	reports  *storage.ReportRepository
	maxBytes int64
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(logger *observability.Logger, client *compliance.Client, reports *storage.ReportRepository, maxBytes int64) *AnalyzeHandler {
	return &AnalyzeHandler{
		logger:   logger,
		client:   client,
		reports:  reports,
		maxBytes: maxBytes,
	}
}

// AnalyzeResponseDTO wraps the report with its storage id.
type AnalyzeResponseDTO struct {
	ReportID string                      `json:"reportId,omitempty"`
	Report   compliance.ComplianceReport `json:"report"`
}

// Analyze accepts a multipart upload and runs compliance verification.
// The "document" form field carries the file; standards come from either a
// comma-separated "standards" field or a "product" field naming a product
// type.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	// Leave headroom above the document cap for the multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1024*1024)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, "upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing document field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "read upload")
		return
	}

	var (
		report  compliance.ComplianceReport
		runErr  error
		product = r.FormValue("product")
	)
	if product != "" {
		report, runErr = h.client.AnalyzeForProduct(r.Context(), header.Filename, data, product)
	} else {
		ids := splitStandards(r.FormValue("standards"))
		if len(ids) == 0 {
			respondError(w, http.StatusBadRequest, "provide standards or product")
			return
		}
		report, runErr = h.client.AnalyzeBytes(r.Context(), header.Filename, data, ids)
	}
	if runErr != nil {
		respondDomainError(h.logger, w, runErr)
		return
	}

	resp := AnalyzeResponseDTO{Report: report}
	if h.reports != nil {
		id, err := h.reports.Create(r.Context(), report)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to persist report")
		} else {
			resp.ReportID = id.String()
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

func splitStandards(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

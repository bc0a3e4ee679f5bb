package handlers

import (
	"net/http"

	"github.com/Treedy2020/FinalCheck/internal/observability"
	"github.com/Treedy2020/FinalCheck/pkg/compliance"
)

// CatalogHandler serves the standard and product catalogs.
type CatalogHandler struct {
	logger *observability.Logger
	client *compliance.Client
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(logger *observability.Logger, client *compliance.Client) *CatalogHandler {
	return &CatalogHandler{logger: logger, client: client}
}

// ListStandards returns all registered compliance standards.
func (h *CatalogHandler) ListStandards(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"standards": h.client.Standards(),
	})
}

// ListProducts returns all registered product types.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"products": h.client.Products(),
	})
}

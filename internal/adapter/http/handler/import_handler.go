package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dormhub/dormledger/internal/adapter/http/dto"
	"github.com/dormhub/dormledger/internal/adapter/http/middleware"
	"github.com/dormhub/dormledger/internal/usecase"
)

// ImportService defines the behavior needed by ImportHandler.
type ImportService interface {
	Run(ctx context.Context, input usecase.ImportInput) (*usecase.ImportSummary, error)
}

// ImportHandler handles import reconciler HTTP requests.
type ImportHandler struct {
	importUC ImportService
	maxRows  int
}

// NewImportHandler creates a new ImportHandler. maxRows caps a single run;
// zero means no cap.
func NewImportHandler(importUC ImportService, maxRows int) *ImportHandler {
	return &ImportHandler{importUC: importUC, maxRows: maxRows}
}

// Run executes one import reconciler run against the dorm's ledger.
func (h *ImportHandler) Run(w http.ResponseWriter, r *http.Request) {
	dormID := chi.URLParam(r, "dormID")
	if dormID == "" {
		writeError(w, http.StatusBadRequest, "missing dorm ID", "")
		return
	}

	var req dto.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if len(req.Rows) == 0 {
		writeError(w, http.StatusBadRequest, "no rows to import", "")
		return
	}
	if h.maxRows > 0 && len(req.Rows) > h.maxRows {
		writeError(w, http.StatusRequestEntityTooLarge, "too many rows",
			fmt.Sprintf("got %d rows, limit is %d", len(req.Rows), h.maxRows))
		return
	}

	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	summary, err := h.importUC.Run(r.Context(), req.ToUseCaseInput(dormID, actor))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "import run failed", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ImportSummaryFromDomain(summary))
}

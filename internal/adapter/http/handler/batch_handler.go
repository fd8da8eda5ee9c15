package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dormhub/dormledger/internal/adapter/http/dto"
	"github.com/dormhub/dormledger/internal/adapter/http/middleware"
	"github.com/dormhub/dormledger/internal/usecase"
)

// BatchService defines the behavior needed by BatchHandler.
type BatchService interface {
	CreateContributionBatch(ctx context.Context, input usecase.CreateContributionBatchInput) (*usecase.BatchResult, error)
}

// BatchHandler handles contribution batch HTTP requests.
type BatchHandler struct {
	batchUC BatchService
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(batchUC BatchService) *BatchHandler {
	return &BatchHandler{batchUC: batchUC}
}

// Create charges a contribution batch across the dorm's active roster.
func (h *BatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	dormID := chi.URLParam(r, "dormID")
	if dormID == "" {
		writeError(w, http.StatusBadRequest, "missing dorm ID", "")
		return
	}

	var req dto.CreateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	result, err := h.batchUC.CreateContributionBatch(r.Context(), req.ToUseCaseInput(dormID, actor))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to run contribution batch", err.Error())

		return
	}

	// Partial failures are reported, not rolled back. 207 tells the caller
	// to inspect the body and re-run for the listed occupants.
	status := http.StatusCreated
	if result.Failed > 0 {
		status = http.StatusMultiStatus
	}

	writeJSON(w, status, dto.BatchResultFromDomain(result))
}

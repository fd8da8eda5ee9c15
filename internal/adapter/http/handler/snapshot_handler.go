package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dormhub/dormledger/internal/adapter/http/dto"
	"github.com/dormhub/dormledger/internal/usecase"
)

// SnapshotService defines the behavior needed by SnapshotHandler.
type SnapshotService interface {
	GetSemesterSnapshots(ctx context.Context, dormID string) ([]*usecase.SemesterSnapshot, error)
}

// SnapshotHandler handles semester snapshot HTTP requests.
type SnapshotHandler struct {
	carryForwardUC SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(carryForwardUC SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{carryForwardUC: carryForwardUC}
}

// List returns the dorm's semesters with chained cash positions.
func (h *SnapshotHandler) List(w http.ResponseWriter, r *http.Request) {
	dormID := chi.URLParam(r, "dormID")
	if dormID == "" {
		writeError(w, http.StatusBadRequest, "missing dorm ID", "")
		return
	}

	snapshots, err := h.carryForwardUC.GetSemesterSnapshots(r.Context(), dormID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build snapshots", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SnapshotsFromDomain(snapshots))
}

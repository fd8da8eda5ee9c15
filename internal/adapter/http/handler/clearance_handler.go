package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dormhub/dormledger/internal/adapter/http/dto"
	"github.com/dormhub/dormledger/internal/usecase"
)

// ClearanceService defines the behavior needed by ClearanceHandler.
type ClearanceService interface {
	GetClearanceList(ctx context.Context, dormID, semesterID string) (*usecase.ClearanceList, error)
}

// ClearanceHandler handles clearance evaluation HTTP requests.
type ClearanceHandler struct {
	clearanceUC ClearanceService
}

// NewClearanceHandler creates a new ClearanceHandler.
func NewClearanceHandler(clearanceUC ClearanceService) *ClearanceHandler {
	return &ClearanceHandler{clearanceUC: clearanceUC}
}

// List evaluates clearance for every active occupant of the dorm.
func (h *ClearanceHandler) List(w http.ResponseWriter, r *http.Request) {
	dormID := chi.URLParam(r, "dormID")
	if dormID == "" {
		writeError(w, http.StatusBadRequest, "missing dorm ID", "")
		return
	}

	list, err := h.clearanceUC.GetClearanceList(r.Context(), dormID, r.URL.Query().Get("semester_id"))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to evaluate clearance", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ClearanceFromDomain(list))
}

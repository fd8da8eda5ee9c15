package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dormhub/dormledger/internal/adapter/http/dto"
	"github.com/dormhub/dormledger/internal/domain"
	"github.com/dormhub/dormledger/internal/usecase"
)

// BalanceService defines the behavior needed by BalanceHandler.
type BalanceService interface {
	GetBalance(ctx context.Context, q usecase.BalanceQuery) (*usecase.BalanceSummary, error)
}

// BalanceHandler handles balance aggregation HTTP requests.
type BalanceHandler struct {
	balanceUC BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC}
}

// Get computes a balance for the dorm or one of its occupants.
func (h *BalanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	dormID := chi.URLParam(r, "dormID")
	if dormID == "" {
		writeError(w, http.StatusBadRequest, "missing dorm ID", "")
		return
	}

	q := r.URL.Query()
	query := usecase.BalanceQuery{
		DormID:     dormID,
		OccupantID: q.Get("occupant_id"),
		SemesterID: q.Get("semester_id"),
	}
	for _, l := range q["ledger"] {
		query.Ledgers = append(query.Ledgers, domain.Ledger(l))
	}

	if v := q.Get("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date", err.Error())
			return
		}
		query.From = &from
	}
	if v := q.Get("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to date", err.Error())
			return
		}
		query.To = &to
	}

	summary, err := h.balanceUC.GetBalance(r.Context(), query)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute balance", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromSummary(summary))
}

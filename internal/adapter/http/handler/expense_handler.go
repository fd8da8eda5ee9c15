package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dormhub/dormledger/internal/adapter/http/dto"
	"github.com/dormhub/dormledger/internal/adapter/http/middleware"
	"github.com/dormhub/dormledger/internal/domain"
	"github.com/dormhub/dormledger/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	RecordExpense(ctx context.Context, input usecase.RecordExpenseInput) (*domain.Expense, error)
	ReviewExpense(ctx context.Context, id string, approve bool, actor string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, dormID, semesterID string) ([]*domain.Expense, error)
}

// ExpenseHandler handles expense HTTP requests.
type ExpenseHandler struct {
	expenseUC ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// Record records a new pending expense.
func (h *ExpenseHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	expense, err := h.expenseUC.RecordExpense(r.Context(), req.ToUseCaseInput(actor))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record expense", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}

// Approve approves a pending expense.
func (h *ExpenseHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, true)
}

// Reject rejects a pending expense.
func (h *ExpenseHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, false)
}

func (h *ExpenseHandler) review(w http.ResponseWriter, r *http.Request, approve bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	expense, err := h.expenseUC.ReviewExpense(r.Context(), id, approve, actor)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to review expense", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// List lists a dorm's expenses, optionally scoped to one semester.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	dormID := r.URL.Query().Get("dorm_id")
	if dormID == "" {
		writeError(w, http.StatusBadRequest, "missing dorm_id", "")
		return
	}

	expenses, err := h.expenseUC.ListExpenses(r.Context(), dormID, r.URL.Query().Get("semester_id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpensesFromDomain(expenses))
}

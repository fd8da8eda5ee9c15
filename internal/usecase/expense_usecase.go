package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dormhub/dormledger/internal/domain"
	"github.com/dormhub/dormledger/internal/infrastructure/metrics"
)

// ExpenseUseCase records and approves dorm expenses. Approved expenses feed
// the carry-forward calculator.
type ExpenseUseCase struct {
	expenseRepo ExpenseRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(expenseRepo ExpenseRepository, auditRepo AuditRepository, idGen IDGenerator, logger zerolog.Logger) *ExpenseUseCase {
	return &ExpenseUseCase{
		expenseRepo: expenseRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
		logger:      logger,
	}
}

// WithMetrics enables counter updates on expense writes.
func (uc *ExpenseUseCase) WithMetrics(m *metrics.Metrics) *ExpenseUseCase {
	uc.metrics = m
	return uc
}

// RecordExpenseInput represents input for recording an expense.
type RecordExpenseInput struct {
	DormID     string
	SemesterID string
	Title      string
	Amount     decimal.Decimal
	Note       string
	SpentAt    *time.Time
	Actor      string
}

// RecordExpense creates a pending expense record.
func (uc *ExpenseUseCase) RecordExpense(ctx context.Context, input RecordExpenseInput) (*domain.Expense, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	spentAt := now
	if input.SpentAt != nil {
		spentAt = input.SpentAt.UTC()
	}

	expense := &domain.Expense{
		ID:         uc.idGen.Generate(),
		DormID:     input.DormID,
		SemesterID: input.SemesterID,
		Title:      input.Title,
		Amount:     input.Amount,
		Status:     domain.ExpenseStatusPending,
		Note:       input.Note,
		SpentAt:    spentAt,
		RecordedBy: input.Actor,
		CreatedAt:  now,
	}

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ExpensesRecorded.Inc()
	}

	return expense, nil
}

// ReviewExpense approves or rejects a pending expense.
func (uc *ExpenseUseCase) ReviewExpense(ctx context.Context, id string, approve bool, actor string) (*domain.Expense, error) {
	expense, err := uc.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense.Status != domain.ExpenseStatusPending {
		return nil, domain.ErrExpenseNotPending
	}

	now := time.Now().UTC()
	status := domain.ExpenseStatusRejected
	action := domain.AuditActionExpenseReject
	if approve {
		status = domain.ExpenseStatusApproved
		action = domain.AuditActionExpenseApprove
	}

	if err := uc.expenseRepo.SetStatus(ctx, id, status, actor, now); err != nil {
		return nil, err
	}

	audit := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		ActorID:      actor,
		Action:       string(action),
		ResourceType: "expense",
		ResourceID:   id,
		DormID:       expense.DormID,
		BeforeState:  domain.MarshalState(expense),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    now,
	}
	if err := uc.auditRepo.Create(ctx, audit); err != nil {
		uc.logger.Warn().Err(err).Str("expense_id", id).Msg("failed to write expense review audit log")
	}

	if uc.metrics != nil {
		uc.metrics.ExpensesReviewed.WithLabelValues(string(status)).Inc()
	}

	expense.Status = status
	if approve {
		expense.ApprovedBy = actor
		expense.ApprovedAt = &now
	}

	return expense, nil
}

// ListExpenses lists a semester's expenses.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, dormID, semesterID string) ([]*domain.Expense, error) {
	return uc.expenseRepo.ListBySemester(ctx, dormID, semesterID)
}

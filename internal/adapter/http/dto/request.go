package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dormhub/dormledger/internal/domain"
	"github.com/dormhub/dormledger/internal/usecase"
)

// RecordEntryRequest represents a request to record a ledger entry.
type RecordEntryRequest struct {
	DormID     string          `json:"dorm_id"`
	Ledger     string          `json:"ledger"`
	Type       string          `json:"type"`
	OccupantID string          `json:"occupant_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	PostedAt   *time.Time      `json:"posted_at,omitempty"`
	SemesterID string          `json:"semester_id,omitempty"`
	Method     string          `json:"method,omitempty"`
	Note       string          `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordEntryRequest) ToUseCaseInput(actor string) usecase.RecordTransactionInput {
	return usecase.RecordTransactionInput{
		DormID:     r.DormID,
		Ledger:     domain.Ledger(r.Ledger),
		Type:       domain.EntryType(r.Type),
		OccupantID: r.OccupantID,
		Amount:     r.Amount,
		PostedAt:   r.PostedAt,
		SemesterID: r.SemesterID,
		Method:     r.Method,
		Note:       r.Note,
		Actor:      actor,
	}
}

// VoidEntryRequest represents a request to void an entry.
type VoidEntryRequest struct {
	Reason string `json:"reason"`
}

// CreateBatchRequest represents a request to charge a contribution batch.
type CreateBatchRequest struct {
	SemesterID            string          `json:"semester_id,omitempty"`
	Title                 string          `json:"title"`
	EventID               string          `json:"event_id,omitempty"`
	Amount                decimal.Decimal `json:"amount"`
	Deadline              *time.Time      `json:"deadline,omitempty"`
	IncludeAlreadyCharged bool            `json:"include_already_charged,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBatchRequest) ToUseCaseInput(dormID, actor string) usecase.CreateContributionBatchInput {
	return usecase.CreateContributionBatchInput{
		DormID:                dormID,
		SemesterID:            r.SemesterID,
		Title:                 r.Title,
		EventID:               r.EventID,
		Amount:                r.Amount,
		Deadline:              r.Deadline,
		IncludeAlreadyCharged: r.IncludeAlreadyCharged,
		Actor:                 actor,
	}
}

// ImportRowRequest is one external transaction row in an import request.
type ImportRowRequest struct {
	Kind        string          `json:"kind"`
	Source      string          `json:"source"`
	Counterpart string          `json:"counterpart,omitempty"`
	Note        string          `json:"note,omitempty"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
}

// ImportRequest represents an import reconciler run.
type ImportRequest struct {
	SemesterID string             `json:"semester_id,omitempty"`
	Legacy     bool               `json:"legacy,omitempty"`
	Rows       []ImportRowRequest `json:"rows"`
}

// ToUseCaseInput converts to use case input.
func (r *ImportRequest) ToUseCaseInput(dormID, actor string) usecase.ImportInput {
	rows := make([]usecase.ImportRow, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = usecase.ImportRow{
			Kind:        usecase.RowKind(row.Kind),
			Source:      row.Source,
			Counterpart: row.Counterpart,
			Note:        row.Note,
			Date:        row.Date,
			Amount:      row.Amount,
		}
	}
	return usecase.ImportInput{
		DormID:     dormID,
		SemesterID: r.SemesterID,
		Rows:       rows,
		Legacy:     r.Legacy,
		Actor:      actor,
	}
}

// RecordExpenseRequest represents a request to record an expense.
type RecordExpenseRequest struct {
	DormID     string          `json:"dorm_id"`
	SemesterID string          `json:"semester_id"`
	Title      string          `json:"title"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
	SpentAt    *time.Time      `json:"spent_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordExpenseRequest) ToUseCaseInput(actor string) usecase.RecordExpenseInput {
	return usecase.RecordExpenseInput{
		DormID:     r.DormID,
		SemesterID: r.SemesterID,
		Title:      r.Title,
		Amount:     r.Amount,
		Note:       r.Note,
		SpentAt:    r.SpentAt,
		Actor:      actor,
	}
}
